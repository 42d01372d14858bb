package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/catalog"
)

func TestScoreRole_TextAndSkillBlend(t *testing.T) {
	role := catalog.JobRole{
		Key:      "backend",
		Weight:   1.0,
		Keywords: []string{"go", "sql", "docker", "kafka"},
	}
	skills := map[string]bool{"sql": true, "docker": true}

	match := ScoreRole("Go developer using SQL and Docker", skills, role)

	// text: go, sql, docker -> 75; skills: sql, docker -> 50
	assert.InDelta(t, 0.4*75+0.6*50, match.Confidence, 1e-9)
	assert.Equal(t, "backend", match.Role)
	assert.Equal(t, []string{"docker", "go", "sql"}, match.MatchedKeywords)
	assert.Equal(t, []string{"docker", "go", "kafka", "sql"}, match.Requirements)
}

func TestScoreRole_NoSkillsMeansZeroSkillScore(t *testing.T) {
	role := catalog.JobRole{Key: "r", Weight: 1.0, Keywords: []string{"python", "sql"}}

	match := ScoreRole("python and sql", nil, role)

	assert.InDelta(t, 40.0, match.Confidence, 1e-9)
}

func TestScoreRole_SubstringContainment(t *testing.T) {
	role := catalog.JobRole{Key: "r", Weight: 1.0, Keywords: []string{"java"}}

	match := ScoreRole("javascript", map[string]bool{"javascript": true}, role)

	assert.InDelta(t, 100.0, match.Confidence, 1e-9)
	assert.Equal(t, []string{"java"}, match.MatchedKeywords)
}

func TestScoreRole_ConfidenceBounded(t *testing.T) {
	weights := []float64{0.1, 0.5, 1.0, 1.3, 5.0}
	texts := []string{"", "python", "python sql docker", "python sql docker aws"}
	for _, w := range weights {
		for _, text := range texts {
			role := catalog.JobRole{Key: "r", Weight: w, Keywords: []string{"python", "sql", "docker", "aws"}}
			match := ScoreRole(text, map[string]bool{"python": true, "aws": true}, role)
			assert.GreaterOrEqual(t, match.Confidence, 0.0)
			assert.LessOrEqual(t, match.Confidence, MaxConfidence)
		}
	}
}

func TestScoreRole_RequirementsTruncated(t *testing.T) {
	role, ok := catalog.Default().Role("data_scientist")
	require.True(t, ok)

	match := ScoreRole("", nil, *role)

	require.Len(t, match.Requirements, 8)
	assert.Equal(t, "big data", match.Requirements[0])
	assert.Empty(t, match.MatchedKeywords)
	assert.Equal(t, 0.0, match.Confidence)
}

func TestRankRoles_ThresholdIsExclusive(t *testing.T) {
	keywords := []string{"alpha", "beta"}
	roles := []catalog.JobRole{
		{Key: "exactly_twenty", Weight: 0.5, Keywords: keywords},
		{Key: "just_above", Weight: 0.5000025, Keywords: keywords},
	}

	ranked := RankRoles("alpha beta", nil, roles)

	require.Len(t, ranked, 1)
	assert.Equal(t, "just_above", ranked[0].Role)
	assert.Greater(t, ranked[0].Confidence, MinRankConfidence)
}

func TestRankRoles_TopThreeDescending(t *testing.T) {
	text := "Python Java JavaScript algorithms data structures git api backend frontend testing debugging " +
		"machine learning statistics pandas numpy tensorflow html css react node.js docker kubernetes aws"
	skills := map[string]bool{"python": true, "java": true, "javascript": true, "git": true, "docker": true, "aws": true}

	ranked := RankRoles(text, skills, catalog.Default().Roles)

	require.NotEmpty(t, ranked)
	assert.LessOrEqual(t, len(ranked), MaxRankedRoles)
	for i, m := range ranked {
		assert.Greater(t, m.Confidence, MinRankConfidence)
		if i > 0 {
			assert.GreaterOrEqual(t, ranked[i-1].Confidence, m.Confidence)
		}
	}
}

func TestRankRoles_TiesKeepCatalogOrder(t *testing.T) {
	roles := []catalog.JobRole{
		{Key: "first", Weight: 1, Keywords: []string{"go"}},
		{Key: "second", Weight: 1, Keywords: []string{"go"}},
	}

	ranked := RankRoles("go", nil, roles)

	require.Len(t, ranked, 2)
	assert.Equal(t, "first", ranked[0].Role)
	assert.Equal(t, "second", ranked[1].Role)
}

func TestRankRoles_EmptyText(t *testing.T) {
	assert.Empty(t, RankRoles("", nil, catalog.Default().Roles))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 72.97, Round2(2.7/3.7*100))
	assert.Equal(t, 50.0, Round2(50))
	assert.Equal(t, 33.33, Round2(100.0/3))
}
