// Package templates provides a loader for the suggestion message pools.
// Pools are stored as JSON and embedded at compile time.
package templates

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed suggestions.json
var templateFiles embed.FS

const suggestionsFile = "suggestions.json"

// Pool names in suggestions.json
const (
	PoolMissingCritical   = "missing_critical"
	PoolMissingImportant  = "missing_important"
	PoolMissingBonus      = "missing_bonus"
	PoolSectionExperience = "section_experience"
	PoolSectionEducation  = "section_education"
	PoolSectionSkills     = "section_skills"
	PoolFormat            = "format"
)

// Get retrieves a template pool by name.
// Returns an error if the pool is not found or is empty.
func Get(name string) ([]string, error) {
	pools, err := load()
	if err != nil {
		return nil, err
	}

	pool, exists := pools[name]
	if !exists {
		return nil, fmt.Errorf("template pool %q not found in %s", name, suggestionsFile)
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("template pool %q in %s is empty", name, suggestionsFile)
	}

	out := make([]string, len(pool))
	copy(out, pool)
	return out, nil
}

// Format replaces template placeholders in the form {{.Key}} with values from data.
// Placeholders without a value are left untouched.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		placeholder := fmt.Sprintf("{{.%s}}", key)
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

// load parses the embedded pool file once.
var load = sync.OnceValues(func() (map[string][]string, error) {
	data, err := templateFiles.ReadFile(suggestionsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file %s: %w", suggestionsFile, err)
	}

	var pools map[string][]string
	if err := json.Unmarshal(data, &pools); err != nil {
		return nil, fmt.Errorf("failed to parse template file %s: %w", suggestionsFile, err)
	}
	return pools, nil
})

// Pools bundles every pool the suggestion engine draws from.
type Pools struct {
	MissingCritical  []string
	MissingImportant []string
	MissingBonus     []string
	Sections         map[string][]string
	Format           []string
}

// DefaultPools returns the embedded pools, keyed for the suggestion engine.
func DefaultPools() (Pools, error) {
	var p Pools
	var err error

	if p.MissingCritical, err = Get(PoolMissingCritical); err != nil {
		return Pools{}, err
	}
	if p.MissingImportant, err = Get(PoolMissingImportant); err != nil {
		return Pools{}, err
	}
	if p.MissingBonus, err = Get(PoolMissingBonus); err != nil {
		return Pools{}, err
	}
	if p.Format, err = Get(PoolFormat); err != nil {
		return Pools{}, err
	}

	p.Sections = make(map[string][]string, 3)
	for section, pool := range map[string]string{
		"experience": PoolSectionExperience,
		"education":  PoolSectionEducation,
		"skills":     PoolSectionSkills,
	} {
		if p.Sections[section], err = Get(pool); err != nil {
			return Pools{}, err
		}
	}

	return p, nil
}
