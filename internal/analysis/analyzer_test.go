package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/extract"
	"github.com/jonathan/resume-analyzer/internal/metrics"
	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const sampleResume = `Jane Doe
Email: jane@example.com | Phone: 555-0100

Education
B.S. Computer Science

Work Experience
Software Engineer, Acme Corp, 2019 - present
Built backend services in Python and Java, REST api design, git, docker, aws.
Improved algorithms and data structures for search. Python testing and debugging.

Skills
Python, Java, SQL, Git, Docker, AWS, Agile`

func fixedClock() time.Time {
	return time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
}

func newTestAnalyzer(t *testing.T, opts ...Option) *Analyzer {
	t.Helper()
	opts = append([]Option{WithClock(fixedClock), WithPicker(scoring.FirstPicker{})}, opts...)
	a, err := New(catalog.Default(), opts...)
	require.NoError(t, err)
	return a
}

func TestNew_RequiresCatalog(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestAnalyze_SampleResume(t *testing.T) {
	a := newTestAnalyzer(t)

	found := types.SectionMap{Contact: true, Education: true, Experience: true, Skills: true}
	result, err := a.Analyze(sampleResume, found, "software_engineer")
	require.NoError(t, err)

	assert.Equal(t, "software_engineer", result.Role)
	assert.Greater(t, result.Score, 0.0)
	assert.LessOrEqual(t, result.Score, 100.0)
	assert.Equal(t, result.Score, scoring.Round2(result.Score))

	assert.Equal(t, 100.0, result.ATSDetails[types.MetricSectionCompleteness])
	assert.Equal(t, 100.0, result.ATSDetails[types.MetricExperienceMatch])
	assert.Equal(t, result.ATS.OverallScore, result.ATSScore)
	assert.Len(t, result.ATSDetails, 5)

	langs := result.Keywords["Programming Languages"]
	require.NotEmpty(t, langs)
	assert.Equal(t, "python", langs[0].Keyword)
	assert.Equal(t, 3, langs[0].Count)
	assert.Equal(t, types.ConfidenceHigh, langs[0].Confidence)

	require.NotEmpty(t, result.SuitableRoles)
	assert.LessOrEqual(t, len(result.SuitableRoles), 3)

	require.NotEmpty(t, result.Suggestions)
	assert.Equal(t, types.SuggestionFormat, result.Suggestions[len(result.Suggestions)-1].Type)

	assert.Equal(t, "Technology", result.IndustryAnalysis.Industry)
}

func TestAnalyze_UnknownRole(t *testing.T) {
	m := metrics.New()
	a := newTestAnalyzer(t, WithMetrics(m))

	_, err := a.Analyze("text", types.SectionMap{}, "astronaut")

	var roleErr *UnknownRoleError
	require.True(t, errors.As(err, &roleErr))
	assert.Equal(t, "astronaut", roleErr.Role)
	assert.Equal(t, `unknown job role "astronaut"`, err.Error())
	assert.Equal(t, 1, testutil.CollectAndCount(m.Registry(), "resume_analyzer_analyses_total"))
}

func TestAnalyzeText_UnknownRolesKeepMetricsBounded(t *testing.T) {
	m := metrics.New()
	a := newTestAnalyzer(t, WithMetrics(m))

	for i := 0; i < 200; i++ {
		_, err := a.AnalyzeText("python", fmt.Sprintf("attacker_role_%d", i))
		require.Error(t, err)
	}

	assert.Equal(t, 1, testutil.CollectAndCount(m.Registry(), "resume_analyzer_analyses_total"))
}

func TestAnalyze_EmptyText(t *testing.T) {
	a := newTestAnalyzer(t)

	result, err := a.Analyze("", types.SectionMap{}, "data_scientist")
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Score)
	assert.Empty(t, result.Keywords)
	assert.Empty(t, result.SuitableRoles)
	assert.Equal(t, "Technology", result.IndustryAnalysis.Industry)
	assert.Equal(t, 50.0, result.IndustryAnalysis.MatchScore)
	assert.ElementsMatch(t, []string{types.MetricSkillRelevance, types.MetricExperienceMatch}, result.ATS.Degraded)
	assert.Equal(t, 0.0, result.ATSDetails[types.MetricKeywordMatch])
}

func TestAnalyze_Idempotent(t *testing.T) {
	a := newTestAnalyzer(t)
	found := types.SectionMap{Contact: true, Skills: true}

	first, err := a.Analyze(sampleResume, found, "web_developer")
	require.NoError(t, err)
	second, err := a.Analyze(sampleResume, found, "web_developer")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyze_ResponseShape(t *testing.T) {
	a := newTestAnalyzer(t)

	result, err := a.AnalyzeText(sampleResume, "software_engineer")
	require.NoError(t, err)

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &body))
	for _, key := range []string{
		"score", "ats_score", "ats_details", "ats_recommendations", "sections_found",
		"keywords", "suitable_roles", "suggestions", "industry_analysis",
	} {
		assert.Contains(t, body, key)
	}
	assert.NotContains(t, body, "ATS")

	var found map[string]bool
	require.NoError(t, json.Unmarshal(body["sections_found"], &found))
	assert.Equal(t, map[string]bool{"contact": true, "education": true, "experience": true, "skills": true}, found)
}

func TestAnalyzeDocument(t *testing.T) {
	m := metrics.New()
	a := newTestAnalyzer(t, WithMetrics(m))
	ctx := context.Background()

	result, err := a.AnalyzeDocument(ctx, extract.Document{Name: "resume.txt", Data: []byte(sampleResume)}, "software_engineer")
	require.NoError(t, err)
	assert.True(t, result.SectionsFound.Experience)

	_, err = a.AnalyzeDocument(ctx, extract.Document{Name: "resume.exe", Data: []byte("x")}, "software_engineer")
	assert.ErrorIs(t, err, extract.ErrUnsupportedFormat)
	assert.Equal(t, 1, testutil.CollectAndCount(m.Registry(), "resume_analyzer_extraction_failures_total"))

	_, err = a.AnalyzeDocument(ctx, extract.Document{Name: "resume.exe", Data: []byte("x")}, "astronaut")
	var roleErr *UnknownRoleError
	assert.True(t, errors.As(err, &roleErr), "role is validated before extraction")
}

func TestAnalyzeDocument_TrailingSpacingIsScored(t *testing.T) {
	a := newTestAnalyzer(t)

	tests := []struct {
		name string
		text string
		want float64
	}{
		{"clean lines", "Jane Doe\nSkills: Python", 100},
		{"double space at line end", "Jane Doe  \nSkills: Python", 95},
		{"tab at line end", "Jane Doe\t\r\nSkills: Python", 95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := a.AnalyzeDocument(context.Background(),
				extract.Document{Name: "resume.txt", Data: []byte(tt.text)}, "software_engineer")
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.ATS.DetailedScores[types.MetricFormatQuality])
		})
	}
}

func TestValidateRole(t *testing.T) {
	a := newTestAnalyzer(t)

	assert.NoError(t, a.ValidateRole(DefaultRole))
	assert.Error(t, a.ValidateRole(""))
	assert.Same(t, catalog.Default(), a.Catalog())
}

func TestAnalyze_ConcurrentUse(t *testing.T) {
	a := newTestAnalyzer(t, WithPicker(scoring.NewRandomPicker(1)))
	roles := catalog.Default().RoleKeys()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(role string) {
			defer func() { done <- struct{}{} }()
			_, err := a.AnalyzeText(sampleResume, role)
			assert.NoError(t, err)
		}(roles[i%len(roles)])
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
