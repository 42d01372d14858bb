package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://docs.google.com/document/d/abc123/edit", PlatformGoogleDocs},
		{"https://docs.google.com/spreadsheets/d/abc123/edit", PlatformUnknown},
		{"https://github.com/jane/cv/blob/main/resume.md", PlatformGitHub},
		{"https://www.dropbox.com/s/xyz/resume.pdf?dl=0", PlatformDropbox},
		{"https://janedoe.dev/resume", PlatformUnknown},
		{"://bad", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestResolveDownloadURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "google docs edit link",
			url:  "https://docs.google.com/document/d/abc123/edit?usp=sharing",
			want: "https://docs.google.com/document/d/abc123/export?format=txt",
		},
		{
			name: "github blob",
			url:  "https://github.com/jane/cv/blob/main/docs/resume.md",
			want: "https://raw.githubusercontent.com/jane/cv/main/docs/resume.md",
		},
		{
			name: "github repo root unchanged",
			url:  "https://github.com/jane/cv",
			want: "https://github.com/jane/cv",
		},
		{
			name: "dropbox share link",
			url:  "https://www.dropbox.com/s/xyz/resume.pdf?dl=0",
			want: "https://www.dropbox.com/s/xyz/resume.pdf?dl=1",
		},
		{
			name: "personal site unchanged",
			url:  "https://janedoe.dev/resume",
			want: "https://janedoe.dev/resume",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveDownloadURL(tt.url))
		})
	}
}

func TestNoiseSelectors(t *testing.T) {
	selectors := NoiseSelectors()
	assert.Contains(t, selectors, "form")
	assert.Contains(t, selectors, ".cookie-consent")
}
