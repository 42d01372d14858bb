package extract

import (
	"regexp"
	"strings"
)

var excessiveBlankLines = regexp.MustCompile(`\n\n\n+`)

// CleanText normalizes line endings and blank lines. Spacing within and at the
// end of non-blank lines is kept because format scoring inspects it.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u00a0", " ")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := strings.Join(lines, "\n")
	result = excessiveBlankLines.ReplaceAllString(result, "\n\n")

	return strings.Trim(result, "\n")
}

// cleanLine blanks whitespace-only lines
func cleanLine(line string) string {
	if strings.TrimSpace(line) == "" {
		return ""
	}
	return line
}
