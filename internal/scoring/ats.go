package scoring

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// NeutralScore is the value a sub-score or a whole ATS result degrades to
const NeutralScore = 50.0

// Format quality deductions
const (
	longLinePenalty     = 10.0
	spacingPenalty      = 5.0
	specialCharsPenalty = 5.0

	maxLineLength   = 500
	maxSpecialChars = 20
	// allowedPunctuation are the non-alphanumeric characters that do not count as special
	allowedPunctuation = " .,()-:;/"
)

// Recommendation thresholds
const (
	keywordMatchThreshold        = 70.0
	formatQualityThreshold       = 80.0
	sectionCompletenessThreshold = 90.0
)

// Recommendation categories and messages
const (
	CategoryKeywords = "keywords"
	CategoryFormat   = "format"
	CategorySections = "sections"
	CategoryError    = "error"

	msgKeywords = "Include more relevant keywords from the job description"
	msgFormat   = "Simplify formatting and avoid special characters"
	msgSections = "Ensure all essential sections are present and complete"
	msgError    = "Error analyzing resume"
)

const weightTolerance = 1e-9

var (
	yearsMentionPattern = regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years?|yrs?)`)
	dateRangePattern    = regexp.MustCompile(`(?i)(\d{4})\s*-\s*(?:present|current|\d{4})`)
)

// Sub-score degradation causes
var (
	ErrNoRequirements       = errors.New("no requirement keywords")
	ErrNoSkills             = errors.New("no required or found skills")
	ErrNoSectionWeights     = errors.New("section weights sum to zero")
	ErrNoExperience         = errors.New("no experience duration found")
	ErrInvalidRequiredYears = errors.New("required years must not be negative")
)

// Requirements is what a résumé is checked against for the selected role
type Requirements struct {
	Keywords       []string
	RequiredSkills []string
	RequiredYears  float64
}

// RequirementsFor derives ATS requirements from a role. Roles without explicit
// requirements fall back to their keyword set.
func RequirementsFor(role catalog.JobRole) Requirements {
	keywords := role.Requirements
	if len(keywords) == 0 {
		keywords = role.Keywords
	}
	years := role.RequiredYears
	if years == 0 {
		years = catalog.DefaultRequiredYears
	}
	return Requirements{
		Keywords:       keywords,
		RequiredSkills: keywords,
		RequiredYears:  years,
	}
}

// Outcome is the result of one sub-score computation before it is collapsed
// into the detailed scores. A non-nil Err means Value is not meaningful.
type Outcome struct {
	Metric string
	Value  float64
	Err    error
}

// Collapse returns the outcome's value, or NeutralScore when it failed
func (o Outcome) Collapse() float64 {
	if o.Err != nil || math.IsNaN(o.Value) || math.IsInf(o.Value, 0) {
		return NeutralScore
	}
	return o.Value
}

// Degraded reports whether the outcome falls back to the neutral score
func (o Outcome) Degraded() bool {
	return o.Err != nil || math.IsNaN(o.Value) || math.IsInf(o.Value, 0)
}

// ATSScorer computes the weighted ATS compatibility score
type ATSScorer struct {
	Weights  catalog.ScoringWeights
	Sections map[string]float64
	// Now supplies the current year for date-range experience; defaults to time.Now
	Now func() time.Time
}

// NewATSScorer builds a scorer from catalog weights and section weights
func NewATSScorer(cat *catalog.Catalog) *ATSScorer {
	return &ATSScorer{
		Weights:  cat.Weights,
		Sections: cat.SectionWeightMap(),
		Now:      time.Now,
	}
}

// Score computes every sub-score, blends them by weight and derives the
// recommendations. It never fails: a broken configuration or an unexpected
// panic yields NeutralATSResult.
func (s *ATSScorer) Score(text string, req Requirements, sections types.SectionMap, skills map[string]bool) (result types.ATSResult) {
	defer func() {
		if r := recover(); r != nil {
			result = NeutralATSResult()
		}
	}()

	if sum := s.Weights.Sum(); math.Abs(sum-1.0) > weightTolerance {
		return NeutralATSResult()
	}

	outcomes := s.Outcomes(text, req, sections, skills)
	weights := s.Weights.AsMap()

	raw := make(map[string]float64, len(outcomes))
	detailed := make(map[string]float64, len(outcomes))
	var degraded []string
	overall := 0.0

	for _, o := range outcomes {
		v := o.Collapse()
		if o.Degraded() {
			degraded = append(degraded, o.Metric)
		}
		raw[o.Metric] = v
		detailed[o.Metric] = Round2(v)
		overall += v * weights[o.Metric]
	}

	if math.IsNaN(overall) || math.IsInf(overall, 0) {
		return NeutralATSResult()
	}

	return types.ATSResult{
		OverallScore:    Round2(overall),
		DetailedScores:  detailed,
		Recommendations: recommendationsFor(raw),
		Degraded:        degraded,
	}
}

// Outcomes computes the five sub-scores in their fixed metric order
func (s *ATSScorer) Outcomes(text string, req Requirements, sections types.SectionMap, skills map[string]bool) []Outcome {
	outcome := func(metric string, v float64, err error) Outcome {
		return Outcome{Metric: metric, Value: v, Err: err}
	}

	km, kmErr := KeywordMatch(text, req.Keywords)
	sr, srErr := SkillRelevance(skills, req.RequiredSkills)
	sc, scErr := SectionCompleteness(sections, s.Sections)
	fq := FormatQuality(text)
	em, emErr := ExperienceMatch(text, req.RequiredYears, s.currentYear())

	return []Outcome{
		outcome(types.MetricKeywordMatch, km, kmErr),
		outcome(types.MetricSkillRelevance, sr, srErr),
		outcome(types.MetricSectionCompleteness, sc, scErr),
		outcome(types.MetricFormatQuality, fq, nil),
		outcome(types.MetricExperienceMatch, em, emErr),
	}
}

func (s *ATSScorer) currentYear() int {
	if s.Now == nil {
		return time.Now().Year()
	}
	return s.Now().Year()
}

// NeutralATSResult is the fail-to-neutral result: every metric at NeutralScore
// and a single error recommendation.
func NeutralATSResult() types.ATSResult {
	detailed := make(map[string]float64, len(types.MetricNames))
	for _, m := range types.MetricNames {
		detailed[m] = NeutralScore
	}
	degraded := make([]string, len(types.MetricNames))
	copy(degraded, types.MetricNames)

	return types.ATSResult{
		OverallScore:    NeutralScore,
		DetailedScores:  detailed,
		Recommendations: []types.Recommendation{{Category: CategoryError, Message: msgError}},
		Degraded:        degraded,
	}
}

// KeywordMatch is the percentage of requirement keywords found as
// case-insensitive substrings of text.
func KeywordMatch(text string, keywords []string) (float64, error) {
	if len(keywords) == 0 {
		return 0, ErrNoRequirements
	}
	lowered := strings.ToLower(text)
	matched := 0
	for _, kw := range keywords {
		if strings.Contains(lowered, strings.ToLower(kw)) {
			matched++
		}
	}
	return float64(matched) / float64(len(keywords)) * 100, nil
}

// SkillRelevance is the share of required skills present in the found skill set.
func SkillRelevance(found map[string]bool, required []string) (float64, error) {
	if len(required) == 0 || len(found) == 0 {
		return 0, ErrNoSkills
	}

	requiredSet := lowerSet(required)
	foundSet := make(map[string]bool, len(found))
	for skill, ok := range found {
		if ok {
			foundSet[strings.ToLower(skill)] = true
		}
	}
	if len(requiredSet) == 0 || len(foundSet) == 0 {
		return 0, ErrNoSkills
	}

	matched := 0
	for skill := range requiredSet {
		if foundSet[skill] {
			matched++
		}
	}
	return float64(matched) / float64(len(requiredSet)) * 100, nil
}

// SectionCompleteness is the weighted share of present sections
func SectionCompleteness(sections types.SectionMap, weights map[string]float64) (float64, error) {
	total := 0.0
	earned := 0.0
	for _, name := range types.SectionNames {
		w := weights[name]
		total += w
		if sections.Get(name) {
			earned += w
		}
	}
	if total == 0 {
		return 0, ErrNoSectionWeights
	}
	return earned / total * 100, nil
}

// FormatQuality starts at 100 and applies independent deductions for an
// overlong line, tab or double-space runs, and excess special characters.
func FormatQuality(text string) float64 {
	score := 100.0

	for _, line := range strings.Split(text, "\n") {
		if utf8.RuneCountInString(line) > maxLineLength {
			score -= longLinePenalty
			break
		}
	}

	if strings.Contains(text, "\t") || strings.Contains(text, "  ") {
		score -= spacingPenalty
	}

	special := 0
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || strings.ContainsRune(allowedPunctuation, r) {
			continue
		}
		special++
	}
	if special > maxSpecialChars {
		score -= specialCharsPenalty
	}

	return math.Max(0, score)
}

// ExperienceMatch extracts candidate years of experience from explicit
// "N years" mentions and "YYYY - present" ranges, and compares the largest to
// the required years. Ranges count elapsed years up to currentYear.
func ExperienceMatch(text string, requiredYears float64, currentYear int) (float64, error) {
	if requiredYears < 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidRequiredYears, requiredYears)
	}

	var candidates []float64
	for _, m := range yearsMentionPattern.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil {
			candidates = append(candidates, n)
		}
	}
	for _, m := range dateRangePattern.FindAllStringSubmatch(text, -1) {
		if start, err := strconv.Atoi(m[1]); err == nil {
			candidates = append(candidates, float64(currentYear-start))
		}
	}

	if len(candidates) == 0 {
		return 0, ErrNoExperience
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		best = math.Max(best, c)
	}

	if best >= requiredYears {
		return 100, nil
	}
	return best / requiredYears * 100, nil
}

func recommendationsFor(scores map[string]float64) []types.Recommendation {
	recs := make([]types.Recommendation, 0, 3)
	if scores[types.MetricKeywordMatch] < keywordMatchThreshold {
		recs = append(recs, types.Recommendation{Category: CategoryKeywords, Message: msgKeywords})
	}
	if scores[types.MetricFormatQuality] < formatQualityThreshold {
		recs = append(recs, types.Recommendation{Category: CategoryFormat, Message: msgFormat})
	}
	if scores[types.MetricSectionCompleteness] < sectionCompletenessThreshold {
		recs = append(recs, types.Recommendation{Category: CategorySections, Message: msgSections})
	}
	return recs
}

func lowerSet(items []string) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, item := range items {
		if item = strings.ToLower(item); item != "" {
			out[item] = true
		}
	}
	return out
}
