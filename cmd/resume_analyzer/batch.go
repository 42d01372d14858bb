package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// defaultConcurrency bounds parallel analyses in batch mode
const defaultConcurrency = 4

type batchOptions struct {
	role        string
	concurrency int
	out         string
}

// batchResult is the outcome for one input file
type batchResult struct {
	File     string                `json:"file"`
	Analysis *types.AnalysisResult `json:"analysis,omitempty"`
	Error    string                `json:"error,omitempty"`
}

func newBatchCmd(root *rootOptions) *cobra.Command {
	opts := &batchOptions{}

	cmd := &cobra.Command{
		Use:   "batch <files...>",
		Short: "Analyze many résumé files concurrently",
		Long: `Analyze every file against one role. Results are printed as a JSON array in input order,
or written as <name>.json files into --out. Inputs sharing a name are written as <name>.<ext>.json
with a numeric suffix when still ambiguous. A failed file is reported without stopping the batch.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, root, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.role, "role", "r", analysis.DefaultRole, "Job role key")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "c", defaultConcurrency, "Maximum files analyzed at once")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Directory to write one <name>.json per file")
	return cmd
}

func runBatch(cmd *cobra.Command, root *rootOptions, opts *batchOptions, files []string) error {
	if opts.concurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1, got %d", opts.concurrency)
	}

	a, err := newApp(cmd, root)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.analyzer.ValidateRole(opts.role); err != nil {
		return err
	}
	if opts.out != "" {
		if err := os.MkdirAll(opts.out, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	results := make([]batchResult, len(files))
	var outputs []string
	if opts.out != "" {
		outputs = outputPaths(opts.out, files)
	}
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(opts.concurrency)

	for i, file := range files {
		g.Go(func() error {
			results[i] = batchResult{File: file}

			doc, err := readDocument(file)
			if err == nil {
				results[i].Analysis, err = a.analyzer.AnalyzeDocument(ctx, doc, opts.role)
			}
			if err == nil && opts.out != "" {
				err = writeJSONFile(outputs[i], results[i].Analysis)
			}
			if err != nil {
				results[i].Analysis = nil
				results[i].Error = err.Error()
				a.logger.Warn("résumé analysis failed", zap.String("file", file), zap.Error(err))
			}
			// Per-file failures are recorded, only cancellation stops the batch
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}

	if opts.out != "" {
		for i, r := range results {
			if r.Error != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "FAIL  %s: %s\n", r.File, r.Error)
			} else {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "OK    %s -> %s (score %.2f)\n", r.File, outputs[i], r.Analysis.Score)
			}
		}
	} else if err := writeJSON(cmd.OutOrStdout(), results); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d résumés failed", failed, len(files))
	}
	return nil
}

// outputPaths names one JSON result per file inside dir. Files sharing a stem
// keep their extension, and a name still taken gets a numeric suffix.
func outputPaths(dir string, files []string) []string {
	stems := make(map[string]int, len(files))
	for _, f := range files {
		stems[fileStem(f)]++
	}

	taken := make(map[string]bool, len(files))
	paths := make([]string, len(files))
	for i, f := range files {
		name := fileStem(f)
		if stems[name] > 1 {
			name = filepath.Base(f)
		}
		candidate := name
		for n := 2; taken[candidate]; n++ {
			candidate = fmt.Sprintf("%s-%d", name, n)
		}
		taken[candidate] = true
		paths[i] = filepath.Join(dir, candidate+".json")
	}
	return paths
}

func fileStem(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
