package catalog

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalCatalog = `{
  "categories": [{"name": "Programming Languages", "keywords": ["python", "java"]}],
  "roles": [{"key": "software_engineer", "weight": 1.0, "keywords": ["python"]}],
  "industries": [{"name": "Technology", "patterns": ["software"]}],
  "weights": {
    "keyword_match": 0.30,
    "skill_relevance": 0.25,
    "section_completeness": 0.15,
    "format_quality": 0.15,
    "experience_match": 0.15
  },
  "sections": [
    {"name": "contact", "weight": 1.0},
    {"name": "education", "weight": 0.8},
    {"name": "experience", "weight": 1.0},
    {"name": "skills", "weight": 0.9}
  ]
}`

func TestDefault_Loads(t *testing.T) {
	cat := Default()
	require.NotNil(t, cat)

	assert.Len(t, cat.Categories, 7)
	assert.Len(t, cat.Roles, 17)
	assert.Len(t, cat.Industries, 6)
	assert.Equal(t, "Technology", cat.FallbackIndustry())
	assert.InDelta(t, 1.0, cat.Weights.Sum(), 1e-9)

	tiered := 0
	for _, r := range cat.Roles {
		if !r.Tiers.Empty() {
			tiered++
		}
	}
	assert.Equal(t, 15, tiered)
}

func TestDefault_SameInstance(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestDefault_Role(t *testing.T) {
	cat := Default()

	role, ok := cat.Role("software_engineer")
	require.True(t, ok)
	assert.Equal(t, 1.0, role.Weight)
	assert.Equal(t, []string{"python", "javascript", "sql", "git", "aws"}, role.Requirements)
	assert.Equal(t, 2.0, role.RequiredYears)

	role, ok = cat.Role("blockchain_developer")
	require.True(t, ok)
	assert.Equal(t, 1.3, role.Weight)

	_, ok = cat.Role("astronaut")
	assert.False(t, ok)
}

func TestDefault_Benchmarks(t *testing.T) {
	cat := Default()

	tech := cat.Benchmark("Technology")
	require.NotNil(t, tech)
	assert.Equal(t, []string{"programming", "software development", "agile"}, tech.RequiredSkills)

	finance := cat.Benchmark("Finance")
	require.NotNil(t, finance)
	assert.Contains(t, finance.PreferredSkills, "risk management")

	assert.Nil(t, cat.Benchmark("Healthcare"))
	assert.Nil(t, cat.Benchmark("Unknown"))
}

func TestRoleKeys_Sorted(t *testing.T) {
	keys := Default().RoleKeys()
	require.Len(t, keys, 17)
	for i := 1; i < len(keys); i++ {
		assert.Less(t, keys[i-1], keys[i])
	}
}

func TestRole_LiteralCatalog(t *testing.T) {
	cat := &Catalog{Roles: []JobRole{{Key: "a", Weight: 1, Keywords: []string{"x"}}}}

	role, ok := cat.Role("a")
	require.True(t, ok)
	assert.Equal(t, "a", role.Key)

	_, ok = cat.Role("b")
	assert.False(t, ok)
}

func TestSectionWeightMap(t *testing.T) {
	weights := Default().SectionWeightMap()
	assert.Equal(t, map[string]float64{
		"contact":    1.0,
		"education":  0.8,
		"experience": 1.0,
		"skills":     0.9,
	}, weights)
}

func TestHumanizeRole(t *testing.T) {
	assert.Equal(t, "data scientist", HumanizeRole("data_scientist"))
	assert.Equal(t, "ui ux designer", HumanizeRole("ui_ux_designer"))
	assert.Equal(t, "custom", HumanizeRole("custom"))
}

func TestParse_Minimal(t *testing.T) {
	cat, err := Parse([]byte(minimalCatalog))
	require.NoError(t, err)
	assert.Equal(t, []string{"software_engineer"}, cat.RoleKeys())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantMsg string
	}{
		{
			name:    "malformed JSON",
			mutate:  func(string) string { return "{" },
			wantMsg: "schema validation failed",
		},
		{
			name: "weights do not sum to one",
			mutate: func(s string) string {
				return strings.Replace(s, `"keyword_match": 0.30`, `"keyword_match": 0.40`, 1)
			},
			wantMsg: "weights must sum to 1.0",
		},
		{
			name: "role without keywords",
			mutate: func(s string) string {
				return strings.Replace(s, `"keywords": ["python"]}`, `"keywords": []}`, 1)
			},
			wantMsg: "schema validation failed",
		},
		{
			name: "zero role weight",
			mutate: func(s string) string {
				return strings.Replace(s, `"weight": 1.0, "keywords"`, `"weight": 0, "keywords"`, 1)
			},
			wantMsg: "schema validation failed",
		},
		{
			name: "uppercase keyword",
			mutate: func(s string) string {
				return strings.Replace(s, `["python", "java"]`, `["Python", "java"]`, 1)
			},
			wantMsg: "must be lowercase",
		},
		{
			name: "uppercase requirement",
			mutate: func(s string) string {
				return strings.Replace(s, `"keywords": ["python"]}`, `"keywords": ["python"], "requirements": ["Agile"]}`, 1)
			},
			wantMsg: `roles.software_engineer.requirements: keyword "Agile" must be lowercase`,
		},
		{
			name: "uppercase critical tier skill",
			mutate: func(s string) string {
				return strings.Replace(s, `"keywords": ["python"]}`, `"keywords": ["python"], "tiers": {"critical": ["SQL"]}}`, 1)
			},
			wantMsg: `roles.software_engineer.tiers.critical: keyword "SQL" must be lowercase`,
		},
		{
			name: "uppercase bonus tier skill",
			mutate: func(s string) string {
				return strings.Replace(s, `"keywords": ["python"]}`, `"keywords": ["python"], "tiers": {"bonus": ["Docker"]}}`, 1)
			},
			wantMsg: "tiers.bonus",
		},
		{
			name: "uppercase benchmark skill",
			mutate: func(s string) string {
				return strings.Replace(s, `"patterns": ["software"]}`,
					`"patterns": ["software"], "benchmark": {"required_skills": ["programming", "Agile"]}}`, 1)
			},
			wantMsg: `industries.Technology.benchmark.required_skills: keyword "Agile" must be lowercase`,
		},
		{
			name: "duplicate section",
			mutate: func(s string) string {
				return strings.Replace(s, `{"name": "skills", "weight": 0.9}`, `{"name": "contact", "weight": 0.9}`, 1)
			},
			wantMsg: "duplicate section",
		},
		{
			name: "no industries",
			mutate: func(s string) string {
				return strings.Replace(s, `[{"name": "Technology", "patterns": ["software"]}]`, `[]`, 1)
			},
			wantMsg: "schema validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.mutate(minimalCatalog)))
			require.Error(t, err)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr), "expected ConfigError, got %T", err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidate_DuplicateRole(t *testing.T) {
	cat, err := Parse([]byte(minimalCatalog))
	require.NoError(t, err)

	cat.Roles = append(cat.Roles, cat.Roles[0])
	err = cat.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate role key")
}

func TestValidate_WeightTolerance(t *testing.T) {
	cat, err := Parse([]byte(minimalCatalog))
	require.NoError(t, err)

	cat.Weights.KeywordMatch += 1e-12
	assert.NoError(t, cat.Validate())

	cat.Weights.KeywordMatch += 1e-3
	assert.Error(t, cat.Validate())
}

func TestLoad_YAML(t *testing.T) {
	yamlCatalog := `
categories:
  - name: Databases
    keywords: [sql, redis]
roles:
  - key: data_engineer
    weight: 1.1
    keywords: [sql, etl]
    required_years: 3
industries:
  - name: Technology
    patterns: [software]
weights:
  keyword_match: 0.2
  skill_relevance: 0.2
  section_completeness: 0.2
  format_quality: 0.2
  experience_match: 0.2
sections:
  - {name: contact, weight: 1}
  - {name: education, weight: 1}
  - {name: experience, weight: 1}
  - {name: skills, weight: 1}
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlCatalog), 0o600))

	cat, err := Load(path)
	require.NoError(t, err)

	role, ok := cat.Role("data_engineer")
	require.True(t, ok)
	assert.Equal(t, 3.0, role.RequiredYears)
	assert.True(t, math.Abs(cat.Weights.Sum()-1.0) < 1e-9)
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(minimalCatalog), 0o600))

	cat, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cat.Roles, 1)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read catalog file")

	tomlPath := filepath.Join(dir, "catalog.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("x = 1"), 0o600))
	_, err = Load(tomlPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported catalog file extension")

	badYAML := filepath.Join(dir, "catalog.yml")
	require.NoError(t, os.WriteFile(badYAML, []byte("roles: [unclosed"), 0o600))
	_, err = Load(badYAML)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid YAML")
}

func TestConfigError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &ConfigError{Field: "weights", Message: "bad", Cause: cause}

	assert.Equal(t, "catalog config error in weights: bad: boom", err.Error())
	assert.ErrorIs(t, err, cause)
}
