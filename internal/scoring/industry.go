package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const noIndustryRecommendations = "No specific recommendations at this time."

// IndustryScorer detects a résumé's industry and measures fit against that
// industry's benchmark.
type IndustryScorer struct {
	catalog *catalog.Catalog
}

// NewIndustryScorer builds a scorer over the catalog's industries
func NewIndustryScorer(cat *catalog.Catalog) *IndustryScorer {
	return &IndustryScorer{catalog: cat}
}

// DetectIndustry counts, per industry, how many of its patterns occur in text.
// The highest count wins; ties go to the earlier-listed industry, and text
// with no hits falls back to the first listed industry.
func (s *IndustryScorer) DetectIndustry(text string) string {
	best := s.catalog.FallbackIndustry()
	if best == "" {
		return ""
	}

	lowered := strings.ToLower(text)
	bestHits := 0

	for _, ind := range s.catalog.Industries {
		hits := 0
		for _, pattern := range ind.Patterns {
			if strings.Contains(lowered, strings.ToLower(pattern)) {
				hits++
			}
		}
		if hits > bestHits {
			best = ind.Name
			bestHits = hits
		}
	}

	return best
}

// AnalyzeIndustryFit detects the industry and compares the found skills with
// its benchmark's required skills.
func (s *IndustryScorer) AnalyzeIndustryFit(text string, skills map[string]bool) types.IndustryAnalysis {
	industry := s.DetectIndustry(text)
	benchmark := s.catalog.Benchmark(industry)

	missing := MissingSkills(skills, benchmark)
	recs := []string{noIndustryRecommendations}
	if len(missing) > 0 {
		recs = []string{fmt.Sprintf("Consider acquiring these skills: %s", strings.Join(missing, ", "))}
	}

	return types.IndustryAnalysis{
		Industry:        industry,
		MatchScore:      IndustryMatchScore(skills, benchmark),
		MissingSkills:   missing,
		Recommendations: recs,
	}
}

// IndustryMatchScore is the share of benchmark required skills present in
// skills, clamped to [0,100]. It is NeutralScore without a benchmark, without
// skills, or when the benchmark requires nothing.
func IndustryMatchScore(skills map[string]bool, benchmark *catalog.Benchmark) float64 {
	if benchmark == nil || len(skills) == 0 {
		return NeutralScore
	}
	required := toSet(benchmark.RequiredSkills)
	if len(required) == 0 {
		return NeutralScore
	}

	matched := 0
	for skill := range required {
		if skills[skill] {
			matched++
		}
	}
	score := float64(matched) / float64(len(required)) * 100
	return math.Min(100, math.Max(0, score))
}

// MissingSkills returns benchmark required skills absent from skills, sorted.
// It is empty without a benchmark or without skills.
func MissingSkills(skills map[string]bool, benchmark *catalog.Benchmark) []string {
	missing := make([]string, 0)
	if benchmark == nil || len(skills) == 0 {
		return missing
	}
	for skill := range toSet(benchmark.RequiredSkills) {
		if !skills[skill] {
			missing = append(missing, skill)
		}
	}
	sort.Strings(missing)
	return missing
}

func toSet(items []string) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, item := range items {
		out[item] = true
	}
	return out
}
