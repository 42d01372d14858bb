// Package types provides type definitions for structured data used throughout the resume-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Confidence is the frequency tier of a keyword hit
type Confidence string

const (
	ConfidenceLow    Confidence = "Low"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceHigh   Confidence = "High"
)

// KeywordHit represents a catalog keyword found in résumé text
type KeywordHit struct {
	Keyword    string     `json:"keyword"`
	Count      int        `json:"count"`
	Confidence Confidence `json:"confidence"`
}

// ExtractedKeywords maps a category name to its hits, ordered by descending count.
// Categories without hits are absent.
type ExtractedKeywords map[string][]KeywordHit

// FoundSkills returns the set of matched keyword strings across all categories.
func (e ExtractedKeywords) FoundSkills() map[string]bool {
	found := make(map[string]bool)
	for _, hits := range e {
		for _, hit := range hits {
			found[hit.Keyword] = true
		}
	}
	return found
}

// TotalHits returns the number of distinct hits across all categories
func (e ExtractedKeywords) TotalHits() int {
	total := 0
	for _, hits := range e {
		total += len(hits)
	}
	return total
}
