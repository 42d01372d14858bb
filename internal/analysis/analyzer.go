// Package analysis orchestrates one résumé analysis: keyword extraction,
// role scoring, ATS scoring, suggestions and industry fit.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/extract"
	"github.com/jonathan/resume-analyzer/internal/keywords"
	"github.com/jonathan/resume-analyzer/internal/logger"
	"github.com/jonathan/resume-analyzer/internal/metrics"
	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/sections"
	"github.com/jonathan/resume-analyzer/internal/templates"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// DefaultRole is used when a caller does not select a role
const DefaultRole = "software_engineer"

// previewChars bounds the extracted text logged at debug level
const previewChars = 120

// Analyzer runs analyses against one immutable catalog. It is safe for
// concurrent use.
type Analyzer struct {
	cat         *catalog.Catalog
	matcher     *keywords.Matcher
	ats         *scoring.ATSScorer
	industry    *scoring.IndustryScorer
	suggestions *scoring.SuggestionEngine
	extractor   *extract.Extractor
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

type options struct {
	picker    scoring.Picker
	clock     func() time.Time
	logger    *zap.Logger
	pools     *templates.Pools
	extractor *extract.Extractor
	metrics   *metrics.Metrics
}

// Option configures an Analyzer
type Option func(*options)

// WithPicker sets the suggestion template selection strategy
func WithPicker(p scoring.Picker) Option {
	return func(o *options) { o.picker = p }
}

// WithClock sets the clock used for date-range experience
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithPools overrides the embedded suggestion template pools
func WithPools(p templates.Pools) Option {
	return func(o *options) { o.pools = &p }
}

// WithExtractor sets the document extractor used by AnalyzeDocument
func WithExtractor(e *extract.Extractor) Option {
	return func(o *options) { o.extractor = e }
}

// WithMetrics records analysis outcomes
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// New builds an Analyzer over cat
func New(cat *catalog.Catalog, opts ...Option) (*Analyzer, error) {
	if cat == nil {
		return nil, errors.New("catalog is required")
	}

	o := options{
		picker: scoring.FirstPicker{},
		clock:  time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.pools == nil {
		pools, err := templates.DefaultPools()
		if err != nil {
			return nil, fmt.Errorf("failed to load suggestion templates: %w", err)
		}
		o.pools = &pools
	}
	if o.extractor == nil {
		o.extractor = extract.New()
	}

	ats := scoring.NewATSScorer(cat)
	ats.Now = o.clock

	return &Analyzer{
		cat:         cat,
		matcher:     keywords.NewMatcher(cat.Categories),
		ats:         ats,
		industry:    scoring.NewIndustryScorer(cat),
		suggestions: scoring.NewSuggestionEngine(cat, *o.pools, o.picker),
		extractor:   o.extractor,
		logger:      o.logger,
		metrics:     o.metrics,
	}, nil
}

// Catalog returns the catalog the analyzer scores against
func (a *Analyzer) Catalog() *catalog.Catalog {
	return a.cat
}

// ValidateRole returns *UnknownRoleError when role is not in the catalog
func (a *Analyzer) ValidateRole(role string) error {
	if _, ok := a.cat.Role(role); !ok {
		return &UnknownRoleError{Role: role}
	}
	return nil
}

// Analyze scores text with its detected sections against the selected role.
// The only error is *UnknownRoleError; every scorer degrades to neutral
// values instead of failing.
func (a *Analyzer) Analyze(text string, found types.SectionMap, role string) (*types.AnalysisResult, error) {
	selected, ok := a.cat.Role(role)
	if !ok {
		a.metrics.AnalysisFailed(role, metrics.OutcomeUnknownRole)
		return nil, &UnknownRoleError{Role: role}
	}

	extracted := a.matcher.Extract(text)
	skills := extracted.FoundSkills()

	match := scoring.ScoreRole(text, skills, *selected)
	ats := a.ats.Score(text, scoring.RequirementsFor(*selected), found, skills)
	if len(ats.Degraded) > 0 {
		a.logger.Debug("ats sub-scores degraded to neutral",
			zap.String("role", role),
			zap.Strings("metrics", ats.Degraded))
	}

	result := &types.AnalysisResult{
		Role:               role,
		Score:              scoring.Round2(match.Confidence),
		ATSScore:           ats.OverallScore,
		ATSDetails:         ats.DetailedScores,
		ATSRecommendations: ats.Recommendations,
		SectionsFound:      found,
		Keywords:           extracted,
		SuitableRoles:      scoring.RankRoles(text, skills, a.cat.Roles),
		Suggestions:        a.suggestions.Generate(role, skills, found),
		IndustryAnalysis:   a.industry.AnalyzeIndustryFit(text, skills),
		ATS:                ats,
	}

	a.metrics.ObserveAnalysis(result)
	a.logger.Debug("analysis complete",
		zap.String("role", role),
		zap.Float64("score", result.Score),
		zap.Float64("ats_score", result.ATSScore),
		zap.Int("keyword_hits", extracted.TotalHits()))

	return result, nil
}

// AnalyzeText detects sections in text and analyzes it
func (a *Analyzer) AnalyzeText(text, role string) (*types.AnalysisResult, error) {
	return a.Analyze(text, sections.Detect(text), role)
}

// AnalyzeDocument extracts text from doc, detects its sections and analyzes it.
// The role is validated before any extraction work.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, doc extract.Document, role string) (*types.AnalysisResult, error) {
	if err := a.ValidateRole(role); err != nil {
		a.metrics.AnalysisFailed(role, metrics.OutcomeUnknownRole)
		return nil, err
	}

	text, err := a.extractor.ExtractDocument(ctx, doc)
	if err != nil {
		a.metrics.ExtractionFailed(failedFormat(doc.Name))
		a.metrics.AnalysisFailed(role, metrics.OutcomeExtraction)
		a.logger.Warn("text extraction failed",
			zap.String("document", doc.Name),
			zap.Error(err))
		return nil, fmt.Errorf("failed to extract %s: %w", doc.Name, err)
	}
	a.logger.Debug("extracted document text",
		zap.String("document", doc.Name),
		zap.Int("chars", len(text)),
		zap.String("preview", logger.TruncateForLog(text, previewChars)))

	return a.AnalyzeText(text, role)
}

// failedFormat maps a document name to a metrics label. Unsupported
// extensions collapse to the empty string.
func failedFormat(name string) string {
	if !extract.AllowedFormat(name) {
		return ""
	}
	return extract.NormalizeFormat(name)
}
