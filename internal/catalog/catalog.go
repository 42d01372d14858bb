// Package catalog holds the static configuration tables the scorers run against:
// keyword categories, job roles, skill tiers, industries and scoring weights.
// A Catalog is validated once at load time and is read-only afterwards.
package catalog

import (
	"sort"
	"strings"
)

// Catalog bundles every static table used during analysis
type Catalog struct {
	Categories []KeywordCategory `json:"categories" yaml:"categories" validate:"required,min=1,dive"`
	Roles      []JobRole         `json:"roles" yaml:"roles" validate:"required,min=1,dive"`
	Industries []Industry        `json:"industries" yaml:"industries" validate:"required,min=1,dive"`
	Weights    ScoringWeights    `json:"weights" yaml:"weights"`
	Sections   []SectionWeight   `json:"sections" yaml:"sections" validate:"required,len=4,dive"`

	roleIndex map[string]int
}

// KeywordCategory is a named, ordered set of lowercase keywords.
// Keyword order is the tie-break order for extracted hits.
type KeywordCategory struct {
	Name     string   `json:"name" yaml:"name" validate:"required"`
	Keywords []string `json:"keywords" yaml:"keywords" validate:"required,min=1,dive,required"`
}

// JobRole defines a role's keyword set and scoring weight
type JobRole struct {
	Key           string     `json:"key" yaml:"key" validate:"required"`
	Weight        float64    `json:"weight" yaml:"weight" validate:"gt=0"`
	Keywords      []string   `json:"keywords" yaml:"keywords" validate:"required,min=1,dive,required"`
	Requirements  []string   `json:"requirements,omitempty" yaml:"requirements,omitempty" validate:"omitempty,dive,required"`
	RequiredYears float64    `json:"required_years,omitempty" yaml:"required_years,omitempty" validate:"gte=0"`
	Tiers         SkillTiers `json:"tiers" yaml:"tiers"`
}

// SkillTiers splits a role's skills by importance. The tiers are disjoint by
// convention only.
type SkillTiers struct {
	Critical  []string `json:"critical,omitempty" yaml:"critical,omitempty"`
	Important []string `json:"important,omitempty" yaml:"important,omitempty"`
	Bonus     []string `json:"bonus,omitempty" yaml:"bonus,omitempty"`
}

// Empty reports whether no tier has any skills
func (t SkillTiers) Empty() bool {
	return len(t.Critical) == 0 && len(t.Important) == 0 && len(t.Bonus) == 0
}

// Industry pairs detection patterns with an optional benchmark
type Industry struct {
	Name      string     `json:"name" yaml:"name" validate:"required"`
	Patterns  []string   `json:"patterns" yaml:"patterns" validate:"required,min=1,dive,required"`
	Benchmark *Benchmark `json:"benchmark,omitempty" yaml:"benchmark,omitempty"`
}

// Benchmark is the reference skill set for an industry
type Benchmark struct {
	RequiredSkills  []string `json:"required_skills" yaml:"required_skills"`
	PreferredSkills []string `json:"preferred_skills,omitempty" yaml:"preferred_skills,omitempty"`
}

// ScoringWeights are the ATS metric weights; they must sum to 1.0
type ScoringWeights struct {
	KeywordMatch        float64 `json:"keyword_match" yaml:"keyword_match" validate:"gte=0,lte=1"`
	SkillRelevance      float64 `json:"skill_relevance" yaml:"skill_relevance" validate:"gte=0,lte=1"`
	SectionCompleteness float64 `json:"section_completeness" yaml:"section_completeness" validate:"gte=0,lte=1"`
	FormatQuality       float64 `json:"format_quality" yaml:"format_quality" validate:"gte=0,lte=1"`
	ExperienceMatch     float64 `json:"experience_match" yaml:"experience_match" validate:"gte=0,lte=1"`
}

// Sum returns the total of all weights
func (w ScoringWeights) Sum() float64 {
	return w.KeywordMatch + w.SkillRelevance + w.SectionCompleteness + w.FormatQuality + w.ExperienceMatch
}

// AsMap returns the weights keyed by metric name
func (w ScoringWeights) AsMap() map[string]float64 {
	return map[string]float64{
		"keyword_match":        w.KeywordMatch,
		"skill_relevance":      w.SkillRelevance,
		"section_completeness": w.SectionCompleteness,
		"format_quality":       w.FormatQuality,
		"experience_match":     w.ExperienceMatch,
	}
}

// SectionWeight is the completeness weight of one canonical section
type SectionWeight struct {
	Name   string  `json:"name" yaml:"name" validate:"required,oneof=contact education experience skills"`
	Weight float64 `json:"weight" yaml:"weight" validate:"gt=0"`
}

// DefaultRequiredYears applies when a role does not set required_years.
const DefaultRequiredYears = 2.0

// Role looks up a role by key
func (c *Catalog) Role(key string) (*JobRole, bool) {
	if c.roleIndex == nil {
		// Catalogs built as literals skip Parse; scan instead of mutating shared state.
		for i := range c.Roles {
			if c.Roles[i].Key == key {
				return &c.Roles[i], true
			}
		}
		return nil, false
	}
	i, ok := c.roleIndex[key]
	if !ok {
		return nil, false
	}
	return &c.Roles[i], true
}

// RoleKeys returns all role keys in lexical order
func (c *Catalog) RoleKeys() []string {
	keys := make([]string, 0, len(c.Roles))
	for _, r := range c.Roles {
		keys = append(keys, r.Key)
	}
	sort.Strings(keys)
	return keys
}

// FallbackIndustry is the first listed industry, used when detection finds nothing
func (c *Catalog) FallbackIndustry() string {
	if len(c.Industries) == 0 {
		return ""
	}
	return c.Industries[0].Name
}

// Benchmark returns the benchmark for an industry, or nil when none is configured
func (c *Catalog) Benchmark(industry string) *Benchmark {
	for i := range c.Industries {
		if c.Industries[i].Name == industry {
			return c.Industries[i].Benchmark
		}
	}
	return nil
}

// SectionWeightMap returns section weights keyed by section name
func (c *Catalog) SectionWeightMap() map[string]float64 {
	out := make(map[string]float64, len(c.Sections))
	for _, s := range c.Sections {
		out[s.Name] = s.Weight
	}
	return out
}

// HumanizeRole turns a role key such as "data_scientist" into "data scientist".
func HumanizeRole(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}

func (c *Catalog) buildIndex() {
	c.roleIndex = make(map[string]int, len(c.Roles))
	for i, r := range c.Roles {
		c.roleIndex[r.Key] = i
	}
}
