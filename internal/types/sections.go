// Package types provides type definitions for structured data used throughout the resume-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "encoding/json"

// Canonical résumé section names
const (
	SectionContact    = "contact"
	SectionEducation  = "education"
	SectionExperience = "experience"
	SectionSkills     = "skills"
)

// SectionNames lists the canonical sections in their fixed order.
var SectionNames = []string{SectionContact, SectionEducation, SectionExperience, SectionSkills}

// SectionMap records which canonical sections were detected in a document
type SectionMap struct {
	Contact    bool `json:"contact"`
	Education  bool `json:"education"`
	Experience bool `json:"experience"`
	Skills     bool `json:"skills"`
}

// Get returns the presence flag for a section name. Unknown names are reported absent.
func (m SectionMap) Get(name string) bool {
	switch name {
	case SectionContact:
		return m.Contact
	case SectionEducation:
		return m.Education
	case SectionExperience:
		return m.Experience
	case SectionSkills:
		return m.Skills
	default:
		return false
	}
}

// Set sets the presence flag for a section name. Unknown names are ignored.
func (m *SectionMap) Set(name string, present bool) {
	switch name {
	case SectionContact:
		m.Contact = present
	case SectionEducation:
		m.Education = present
	case SectionExperience:
		m.Experience = present
	case SectionSkills:
		m.Skills = present
	}
}

// Count returns how many sections are present
func (m SectionMap) Count() int {
	n := 0
	for _, name := range SectionNames {
		if m.Get(name) {
			n++
		}
	}
	return n
}

// AsMap converts the section flags to a name-keyed map.
func (m SectionMap) AsMap() map[string]bool {
	out := make(map[string]bool, len(SectionNames))
	for _, name := range SectionNames {
		out[name] = m.Get(name)
	}
	return out
}

// UnmarshalJSON accepts a name-keyed object; unknown keys are ignored.
func (m *SectionMap) UnmarshalJSON(data []byte) error {
	var raw map[string]bool
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = SectionMap{}
	for name, present := range raw {
		m.Set(name, present)
	}
	return nil
}
