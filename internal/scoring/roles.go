// Package scoring implements the heuristic résumé scorers: role confidence,
// ATS compatibility, industry fit and tiered improvement suggestions.
// Scorers never return errors; they degrade to documented neutral values.
package scoring

import (
	"math"
	"sort"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Role confidence blend weights
const (
	textScoreWeight  = 0.4
	skillScoreWeight = 0.6
)

const (
	// MaxConfidence caps role confidence after the role weight is applied
	MaxConfidence = 100.0
	// MinRankConfidence is the exclusive lower bound for a role to be ranked
	MinRankConfidence = 20.0
	// MaxRankedRoles bounds the RankRoles result
	MaxRankedRoles = 3
	// maxRequirements bounds the representative keyword list on a RoleMatch
	maxRequirements = 8
)

// ScoreRole computes how well text and the found skills match a single role.
// Matching is raw substring containment, so "java" also matches "javascript".
func ScoreRole(text string, skills map[string]bool, role catalog.JobRole) types.RoleMatch {
	return scoreRole(strings.ToLower(text), skillList(skills), role)
}

// RankRoles scores every role and returns at most MaxRankedRoles matches with
// confidence strictly above MinRankConfidence, best first. Ties keep catalog order.
func RankRoles(text string, skills map[string]bool, roles []catalog.JobRole) []types.RoleMatch {
	lowered := strings.ToLower(text)
	found := skillList(skills)

	ranked := make([]types.RoleMatch, 0, MaxRankedRoles)
	for _, role := range roles {
		match := scoreRole(lowered, found, role)
		if match.Confidence > MinRankConfidence {
			ranked = append(ranked, match)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Confidence > ranked[j].Confidence
	})

	if len(ranked) > MaxRankedRoles {
		ranked = ranked[:MaxRankedRoles]
	}
	return ranked
}

// scoreRole expects lowered text and lowercased skills.
func scoreRole(lowered string, skills []string, role catalog.JobRole) types.RoleMatch {
	total := float64(len(role.Keywords))

	textMatches := 0
	skillMatches := 0
	matched := make([]string, 0)

	for _, kw := range role.Keywords {
		kw = strings.ToLower(kw)
		inText := strings.Contains(lowered, kw)
		inSkill := containedInAny(kw, skills)

		if inText {
			textMatches++
		}
		if inSkill {
			skillMatches++
		}
		if inText || inSkill {
			matched = append(matched, kw)
		}
	}

	textScore := 0.0
	skillScore := 0.0
	if total > 0 {
		textScore = float64(textMatches) / total * 100
		if len(skills) > 0 {
			skillScore = float64(skillMatches) / total * 100
		}
	}

	confidence := (textScoreWeight*textScore + skillScoreWeight*skillScore) * role.Weight
	confidence = math.Min(MaxConfidence, confidence)

	sort.Strings(matched)

	return types.RoleMatch{
		Role:            role.Key,
		Confidence:      confidence,
		Requirements:    representativeKeywords(role.Keywords),
		MatchedKeywords: matched,
	}
}

// representativeKeywords returns the lexically first keywords of a role
func representativeKeywords(keywords []string) []string {
	sorted := make([]string, len(keywords))
	copy(sorted, keywords)
	sort.Strings(sorted)
	if len(sorted) > maxRequirements {
		sorted = sorted[:maxRequirements]
	}
	return sorted
}

func containedInAny(kw string, skills []string) bool {
	for _, skill := range skills {
		if strings.Contains(skill, kw) {
			return true
		}
	}
	return false
}

// skillList flattens a skill set into sorted lowercase strings
func skillList(skills map[string]bool) []string {
	out := make([]string, 0, len(skills))
	for skill, ok := range skills {
		if ok {
			out = append(out, strings.ToLower(skill))
		}
	}
	sort.Strings(out)
	return out
}

// Round2 rounds to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
