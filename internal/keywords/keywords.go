// Package keywords extracts categorized catalog keywords from résumé text.
package keywords

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Confidence thresholds by occurrence count
const (
	highConfidenceCount   = 3
	mediumConfidenceCount = 2
)

// Matcher holds whole-word keywords prepared once for a set of categories.
// It is immutable and safe for concurrent use.
type Matcher struct {
	categories []compiledCategory
}

type compiledCategory struct {
	name     string
	keywords []compiledKeyword
}

type compiledKeyword struct {
	keyword   string
	wordStart bool
	wordEnd   bool
}

// NewMatcher prepares every keyword in categories for whole-word matching.
// Keywords match literally, so catalog entries such as "c++" or "node.js" need no escaping.
func NewMatcher(categories []catalog.KeywordCategory) *Matcher {
	m := &Matcher{categories: make([]compiledCategory, 0, len(categories))}
	for _, cat := range categories {
		cc := compiledCategory{name: cat.Name, keywords: make([]compiledKeyword, 0, len(cat.Keywords))}
		for _, kw := range cat.Keywords {
			kw = strings.ToLower(kw)
			first, _ := utf8.DecodeRuneInString(kw)
			last, _ := utf8.DecodeLastRuneInString(kw)
			cc.keywords = append(cc.keywords, compiledKeyword{
				keyword:   kw,
				wordStart: IsWordRune(first),
				wordEnd:   IsWordRune(last),
			})
		}
		m.categories = append(m.categories, cc)
	}
	return m
}

// Extract counts non-overlapping whole-word occurrences of each keyword in text.
// Hits within a category are ordered by descending count; ties keep catalog order.
// Categories without hits are omitted.
func (m *Matcher) Extract(text string) types.ExtractedKeywords {
	lowered := strings.ToLower(text)
	result := make(types.ExtractedKeywords)

	for _, cat := range m.categories {
		var hits []types.KeywordHit
		for _, kw := range cat.keywords {
			count := kw.count(lowered)
			if count == 0 {
				continue
			}
			hits = append(hits, types.KeywordHit{
				Keyword:    kw.keyword,
				Count:      count,
				Confidence: ConfidenceFor(count),
			})
		}
		if len(hits) == 0 {
			continue
		}
		sort.SliceStable(hits, func(i, j int) bool {
			return hits[i].Count > hits[j].Count
		})
		result[cat.name] = hits
	}

	return result
}

// count returns the non-overlapping occurrences of the keyword in text that
// sit on word boundaries on both sides. A boundary lies between a word rune
// and a non-word rune, with the ends of text counting as non-word.
func (k compiledKeyword) count(text string) int {
	if k.keyword == "" {
		return 0
	}

	n := 0
	for start := 0; start < len(text); {
		i := strings.Index(text[start:], k.keyword)
		if i < 0 {
			break
		}
		at := start + i
		end := at + len(k.keyword)

		before, after := false, false
		if at > 0 {
			r, _ := utf8.DecodeLastRuneInString(text[:at])
			before = IsWordRune(r)
		}
		if end < len(text) {
			r, _ := utf8.DecodeRuneInString(text[end:])
			after = IsWordRune(r)
		}
		if before != k.wordStart && after != k.wordEnd {
			n++
			start = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[at:])
		start = at + size
	}
	return n
}

// IsWordRune reports whether r is a letter, a number or an underscore in any
// script.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Extract is a convenience wrapper that compiles a Matcher for a single call.
func Extract(text string, categories []catalog.KeywordCategory) types.ExtractedKeywords {
	return NewMatcher(categories).Extract(text)
}

// ConfidenceFor maps an occurrence count to its confidence tier
func ConfidenceFor(count int) types.Confidence {
	switch {
	case count >= highConfidenceCount:
		return types.ConfidenceHigh
	case count == mediumConfidenceCount:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}
