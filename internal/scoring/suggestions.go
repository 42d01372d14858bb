package scoring

import (
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/templates"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Suggestion icons
const (
	iconCritical  = "❗"
	iconImportant = "📈"
	iconBonus     = "🌟"
	iconSection   = "📝"
	iconFormat    = "📋"
)

// suggestionSections is the fixed order in which missing sections are reported
var suggestionSections = []string{types.SectionEducation, types.SectionExperience, types.SectionSkills}

// Picker chooses one message from a template pool
type Picker interface {
	Pick(pool []string) string
}

// FirstPicker always picks the first template, for reproducible output
type FirstPicker struct{}

// Pick returns the first template, or "" for an empty pool
func (FirstPicker) Pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[0]
}

// RandomPicker picks uniformly at random. It is safe for concurrent use.
type RandomPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomPicker returns a picker seeded with seed
func NewRandomPicker(seed uint64) *RandomPicker {
	return &RandomPicker{rng: rand.New(rand.NewPCG(seed, seed))}
}

// Pick returns a random template, or "" for an empty pool
func (p *RandomPicker) Pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	p.mu.Lock()
	i := p.rng.IntN(len(pool))
	p.mu.Unlock()
	return pool[i]
}

// SuggestionEngine turns skill gaps and missing sections into suggestions
type SuggestionEngine struct {
	cat    *catalog.Catalog
	pools  templates.Pools
	picker Picker
}

// NewSuggestionEngine builds an engine. A nil picker defaults to FirstPicker.
func NewSuggestionEngine(cat *catalog.Catalog, pools templates.Pools, picker Picker) *SuggestionEngine {
	if picker == nil {
		picker = FirstPicker{}
	}
	return &SuggestionEngine{cat: cat, pools: pools, picker: picker}
}

// Generate emits, in order: one suggestion per skill tier with missing skills
// (critical, important, bonus), one per missing section (experience,
// education, skills) and a final formatting suggestion. Unknown roles get no
// tier suggestions.
func (e *SuggestionEngine) Generate(role string, found map[string]bool, sections types.SectionMap) []types.Suggestion {
	humanRole := catalog.HumanizeRole(role)
	suggestions := make([]types.Suggestion, 0, 7)

	if r, ok := e.cat.Role(role); ok {
		tiers := []struct {
			typ   types.SuggestionType
			icon  string
			title string
			skill []string
			pool  []string
		}{
			{types.SuggestionCritical, iconCritical, "Critical Skills Gap", r.Tiers.Critical, e.pools.MissingCritical},
			{types.SuggestionImportant, iconImportant, "Important Skills", r.Tiers.Important, e.pools.MissingImportant},
			{types.SuggestionBonus, iconBonus, "Bonus Skills", r.Tiers.Bonus, e.pools.MissingBonus},
		}

		for _, tier := range tiers {
			missing := missingFrom(tier.skill, found)
			if len(missing) == 0 {
				continue
			}
			suggestions = append(suggestions, types.Suggestion{
				Type:  tier.typ,
				Icon:  tier.icon,
				Title: tier.title,
				Message: templates.Format(e.picker.Pick(tier.pool), map[string]string{
					"Role":   humanRole,
					"Skills": strings.Join(missing, ", "),
				}),
			})
		}
	}

	for _, section := range suggestionSections {
		if sections.Get(section) {
			continue
		}
		suggestions = append(suggestions, types.Suggestion{
			Type:    types.SuggestionSection,
			Icon:    iconSection,
			Title:   "Improve " + titleCase(section) + " Section",
			Message: templates.Format(e.picker.Pick(e.pools.Sections[section]), map[string]string{"Role": humanRole}),
		})
	}

	suggestions = append(suggestions, types.Suggestion{
		Type:    types.SuggestionFormat,
		Icon:    iconFormat,
		Title:   "Format Improvements",
		Message: e.picker.Pick(e.pools.Format),
	})

	return suggestions
}

// missingFrom keeps tier order
func missingFrom(tier []string, found map[string]bool) []string {
	var missing []string
	for _, skill := range tier {
		if !found[skill] {
			missing = append(missing, skill)
		}
	}
	return missing
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
