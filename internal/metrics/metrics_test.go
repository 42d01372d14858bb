package metrics

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/types"
)

func TestObserveAnalysis(t *testing.T) {
	m := New()

	m.ObserveAnalysis(&types.AnalysisResult{
		Role:     "software_engineer",
		ATSScore: 72.5,
		ATS:      types.ATSResult{Degraded: []string{types.MetricExperienceMatch}},
	})
	m.ObserveAnalysis(&types.AnalysisResult{Role: "software_engineer", ATSScore: 90})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.analyses.WithLabelValues("software_engineer", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.degraded.WithLabelValues(types.MetricExperienceMatch)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.atsScore))
}

func TestFailures(t *testing.T) {
	m := New()

	m.AnalysisFailed("astronaut", OutcomeUnknownRole)
	m.ExtractionFailed(".pdf")
	m.ExtractionFailed("")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.analyses.WithLabelValues("unknown", OutcomeUnknownRole)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.extractionFailure.WithLabelValues(".pdf")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.extractionFailure.WithLabelValues("unknown")))
}

func TestAnalysisFailed_UnknownRolesShareOneSeries(t *testing.T) {
	tests := []struct {
		name    string
		roles   int
		outcome string
		want    int
	}{
		{name: "single bogus role", roles: 1, outcome: OutcomeUnknownRole, want: 1},
		{name: "many bogus roles", roles: 500, outcome: OutcomeUnknownRole, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			for i := 0; i < tt.roles; i++ {
				m.AnalysisFailed(fmt.Sprintf("made_up_role_%d", i), tt.outcome)
			}

			assert.Equal(t, tt.want, testutil.CollectAndCount(m.analyses))
			assert.Equal(t, float64(tt.roles), testutil.ToFloat64(m.analyses.WithLabelValues("unknown", tt.outcome)))
		})
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveAnalysis(&types.AnalysisResult{})
		m.AnalysisFailed("r", OutcomeOK)
		m.ExtractionFailed(".pdf")
		m.ObserveRequest("/health", http.StatusOK, time.Millisecond)
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveRequest("/analyze", http.StatusOK, 20*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `resume_analyzer_http_requests_total{code="200",route="/analyze"} 1`)
	assert.Contains(t, string(body), "resume_analyzer_http_request_duration_seconds")
}
