// Package sections detects which canonical résumé sections a document contains.
package sections

import (
	"regexp"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// sectionPatterns are unanchored case-insensitive checks; a word anywhere in
// the text counts, not only in a heading.
var sectionPatterns = map[string]*regexp.Regexp{
	types.SectionEducation:  regexp.MustCompile(`(?i)education`),
	types.SectionExperience: regexp.MustCompile(`(?i)(work experience|experience)`),
	types.SectionSkills:     regexp.MustCompile(`(?i)(skills|technical skills)`),
	types.SectionContact:    regexp.MustCompile(`(?i)(email|phone|address)`),
}

// Detect reports which of the four canonical sections appear in text.
// The checks are independent. Detection fails open: on any internal failure
// the all-false map is returned.
func Detect(text string) (found types.SectionMap) {
	defer func() {
		if r := recover(); r != nil {
			found = types.SectionMap{}
		}
	}()

	for _, name := range types.SectionNames {
		found.Set(name, sectionPatterns[name].MatchString(text))
	}
	return found
}
