package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/types"
)

//go:embed default.json
var defaultCatalogJSON []byte

//go:embed catalog.schema.json
var catalogSchemaJSON []byte

// weightTolerance bounds floating-point error when checking that weights sum to 1.0
const weightTolerance = 1e-9

// catalogSchema compiles the embedded schema once
var catalogSchema = sync.OnceValues(func() (*schemas.Schema, error) {
	return schemas.Compile("catalog.schema.json", catalogSchemaJSON)
})

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// Default returns the embedded catalog. It panics if the embedded data is invalid,
// which can only happen through a broken build.
func Default() *Catalog {
	defaultCatalogOnce.Do(func() {
		cat, err := Parse(defaultCatalogJSON)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
		}
		defaultCatalog = cat
	})
	return defaultCatalog
}

// Load reads a catalog from a JSON or YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, &ConfigError{Field: path, Message: "invalid YAML", Cause: err}
		}
	case ".json", "":
	default:
		return nil, &ConfigError{Field: path, Message: "unsupported catalog file extension"}
	}

	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return cat, nil
}

// Parse validates raw catalog JSON against the catalog schema, decodes it and
// checks every load-time invariant.
func Parse(data []byte) (*Catalog, error) {
	schema, err := catalogSchema()
	if err != nil {
		return nil, &ConfigError{Message: "catalog schema is invalid", Cause: err}
	}
	if err := schema.Validate(data); err != nil {
		return nil, &ConfigError{Message: "schema validation failed", Cause: err}
	}

	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, &ConfigError{Message: "failed to decode catalog", Cause: err}
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}
	cat.buildIndex()

	return &cat, nil
}

// Validate checks struct constraints and the cross-field invariants that the
// scorers rely on.
func (c *Catalog) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return &ConfigError{Message: "struct validation failed", Cause: err}
	}

	if sum := c.Weights.Sum(); math.Abs(sum-1.0) > weightTolerance {
		return &ConfigError{Field: "weights", Message: fmt.Sprintf("weights must sum to 1.0, got %.6f", sum)}
	}

	seenSections := make(map[string]bool, len(c.Sections))
	for _, s := range c.Sections {
		if seenSections[s.Name] {
			return &ConfigError{Field: "sections", Message: fmt.Sprintf("duplicate section %q", s.Name)}
		}
		seenSections[s.Name] = true
	}
	for _, name := range types.SectionNames {
		if !seenSections[name] {
			return &ConfigError{Field: "sections", Message: fmt.Sprintf("missing section %q", name)}
		}
	}

	for _, cat := range c.Categories {
		if err := checkLowercase("categories."+cat.Name, cat.Keywords); err != nil {
			return err
		}
	}

	seenRoles := make(map[string]bool, len(c.Roles))
	for _, r := range c.Roles {
		field := "roles." + r.Key
		if seenRoles[r.Key] {
			return &ConfigError{Field: field, Message: "duplicate role key"}
		}
		seenRoles[r.Key] = true

		if len(r.Keywords) == 0 {
			return &ConfigError{Field: field, Message: "role must define at least one keyword"}
		}
		if r.Weight <= 0 {
			return &ConfigError{Field: field, Message: "role weight must be positive"}
		}
		lists := []struct {
			suffix   string
			keywords []string
		}{
			{"", r.Keywords},
			{".requirements", r.Requirements},
			{".tiers.critical", r.Tiers.Critical},
			{".tiers.important", r.Tiers.Important},
			{".tiers.bonus", r.Tiers.Bonus},
		}
		for _, l := range lists {
			if err := checkLowercase(field+l.suffix, l.keywords); err != nil {
				return err
			}
		}
	}

	seenIndustries := make(map[string]bool, len(c.Industries))
	for _, ind := range c.Industries {
		if seenIndustries[ind.Name] {
			return &ConfigError{Field: "industries." + ind.Name, Message: "duplicate industry"}
		}
		seenIndustries[ind.Name] = true

		if ind.Benchmark != nil {
			field := "industries." + ind.Name + ".benchmark"
			if err := checkLowercase(field+".required_skills", ind.Benchmark.RequiredSkills); err != nil {
				return err
			}
			if err := checkLowercase(field+".preferred_skills", ind.Benchmark.PreferredSkills); err != nil {
				return err
			}
		}
	}

	return nil
}

func checkLowercase(field string, keywords []string) error {
	for _, kw := range keywords {
		if strings.TrimSpace(kw) == "" {
			return &ConfigError{Field: field, Message: "empty keyword"}
		}
		if kw != strings.ToLower(kw) {
			return &ConfigError{Field: field, Message: fmt.Sprintf("keyword %q must be lowercase", kw)}
		}
	}
	return nil
}

// yamlToJSON converts a YAML document into JSON so both formats share one
// schema and decoding path.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}
