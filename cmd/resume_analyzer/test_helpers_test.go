package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe
Email: jane@example.com | Phone: 555-0100

Education
B.S. Computer Science

Experience
Software Engineer, Acme Corp, 2019 - 2023
Python services, REST api design, git, docker and aws.

Skills
Python, Java, SQL, Docker`

// execute runs the CLI with args and returns stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

// writeFile creates name in a temp dir with content and returns its path
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// firstStrategyConfig writes a config that makes suggestions deterministic
func firstStrategyConfig(t *testing.T) string {
	t.Helper()
	return writeFile(t, t.TempDir(), "config.yaml", "suggestions:\n  strategy: first\nlog:\n  debug: false\n")
}
