// Package types provides type definitions for structured data used throughout the resume-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// RoleMatch represents how well a résumé fits a single job role
type RoleMatch struct {
	Role            string   `json:"role"`
	Confidence      float64  `json:"confidence"`
	Requirements    []string `json:"requirements"`
	MatchedKeywords []string `json:"matched_keywords"`
}

// ATS metric names
const (
	MetricKeywordMatch        = "keyword_match"
	MetricSkillRelevance      = "skill_relevance"
	MetricSectionCompleteness = "section_completeness"
	MetricFormatQuality       = "format_quality"
	MetricExperienceMatch     = "experience_match"
)

// MetricNames lists the ATS metrics in their fixed order.
var MetricNames = []string{
	MetricKeywordMatch,
	MetricSkillRelevance,
	MetricSectionCompleteness,
	MetricFormatQuality,
	MetricExperienceMatch,
}

// Recommendation is a category-tagged ATS recommendation
type Recommendation struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// ATSResult is the composite ATS compatibility score
type ATSResult struct {
	OverallScore    float64            `json:"overall_score"`
	DetailedScores  map[string]float64 `json:"detailed_scores"`
	Recommendations []Recommendation   `json:"recommendations"`
	// Degraded lists metrics that fell back to the neutral score
	Degraded []string `json:"degraded,omitempty"`
}

// IndustryAnalysis describes fit against the detected industry's benchmark
type IndustryAnalysis struct {
	Industry        string   `json:"industry"`
	MatchScore      float64  `json:"match_score"`
	MissingSkills   []string `json:"missing_skills"`
	Recommendations []string `json:"recommendations"`
}

// SuggestionType classifies an improvement suggestion
type SuggestionType string

const (
	SuggestionCritical  SuggestionType = "critical"
	SuggestionImportant SuggestionType = "important"
	SuggestionBonus     SuggestionType = "bonus"
	SuggestionSection   SuggestionType = "section"
	SuggestionFormat    SuggestionType = "format"
)

// Suggestion is a human-readable improvement hint
type Suggestion struct {
	Type    SuggestionType `json:"type"`
	Icon    string         `json:"icon,omitempty"`
	Title   string         `json:"title"`
	Message string         `json:"message"`
}

// AnalysisResult is the aggregated response for one résumé
type AnalysisResult struct {
	Role               string             `json:"job_role"`
	Score              float64            `json:"score"`
	ATSScore           float64            `json:"ats_score"`
	ATSDetails         map[string]float64 `json:"ats_details"`
	ATSRecommendations []Recommendation   `json:"ats_recommendations"`
	SectionsFound      SectionMap         `json:"sections_found"`
	Keywords           ExtractedKeywords  `json:"keywords"`
	SuitableRoles      []RoleMatch        `json:"suitable_roles"`
	Suggestions        []Suggestion       `json:"suggestions"`
	IndustryAnalysis   IndustryAnalysis   `json:"industry_analysis"`
	// ATS keeps the full ATS result, including degraded metrics
	ATS ATSResult `json:"-"`
}
