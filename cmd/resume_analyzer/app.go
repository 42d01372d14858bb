package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/logger"
	"github.com/jonathan/resume-analyzer/internal/metrics"
	"github.com/jonathan/resume-analyzer/internal/scoring"
)

// app is the wiring shared by every command
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	metrics  *metrics.Metrics
	analyzer *analysis.Analyzer
}

// newApp loads configuration and builds the logger, metrics and analyzer.
// --debug and --json-logs override the config file when given.
func newApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Log.Debug = opts.debug
	}
	if flags.Changed("json-logs") {
		cfg.Log.JSON = opts.jsonLogs
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		cat, err = catalog.Load(cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
		log.Info("loaded catalog", zap.String("path", cfg.CatalogPath), zap.Int("roles", len(cat.RoleKeys())))
	}

	m := metrics.New()
	analyzer, err := analysis.New(cat,
		analysis.WithPicker(picker(cfg.Suggestions)),
		analysis.WithLogger(log),
		analysis.WithMetrics(m),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create analyzer: %w", err)
	}

	return &app{cfg: cfg, logger: log, metrics: m, analyzer: analyzer}, nil
}

// picker maps the configured strategy to a template picker. A zero seed
// seeds from the clock.
func picker(cfg config.SuggestionsConfig) scoring.Picker {
	if cfg.Strategy == config.StrategyFirst {
		return scoring.FirstPicker{}
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return scoring.NewRandomPicker(seed)
}

func (a *app) close() {
	_ = a.logger.Sync()
}
