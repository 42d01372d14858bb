package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/extract"
	"github.com/jonathan/resume-analyzer/internal/fetch"
	"github.com/jonathan/resume-analyzer/internal/report"
)

type analyzeOptions struct {
	url         string
	role        string
	interactive bool
	browser     bool
	out         string
	format      string
}

// Output formats
const (
	formatJSON = "json"
	formatText = "text"
)

// selectRole asks the user to pick a role. Replaced in tests.
var selectRole = func(cat *catalog.Catalog) (string, error) {
	keys := cat.RoleKeys()
	labels := make([]string, len(keys))
	cursor := 0
	for i, key := range keys {
		labels[i] = fmt.Sprintf("%s (%s)", catalog.HumanizeRole(key), key)
		if key == analysis.DefaultRole {
			cursor = i
		}
	}

	prompt := promptui.Select{
		Label:     "Job role",
		Items:     labels,
		Size:      10,
		CursorPos: cursor,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(labels[index]), strings.ToLower(input))
		},
	}

	i, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("role selection aborted: %w", err)
	}
	return keys[i], nil
}

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze one résumé file or URL",
		Long: `Analyze a résumé (PDF, DOCX, TXT, HTML or image) from a local file or a URL and print the
JSON analysis. Google Docs, GitHub and Dropbox links are resolved to their raw content.`,
		Example: `  resume_analyzer analyze cv.pdf --role data_scientist
  resume_analyzer analyze --url https://example.com/cv.html --browser --out analysis.json
  resume_analyzer analyze cv.docx --interactive`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, root, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.url, "url", "", "Fetch the résumé from this URL instead of a file")
	cmd.Flags().StringVarP(&opts.role, "role", "r", "", "Job role key (default: software_engineer)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Pick the job role from a list")
	cmd.Flags().BoolVar(&opts.browser, "browser", false, "Render JavaScript-heavy pages in headless Chrome when needed (with --url)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write the analysis to this file instead of stdout")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatJSON, "Output format: json or text")
	return cmd
}

func runAnalyze(cmd *cobra.Command, root *rootOptions, opts *analyzeOptions, args []string) error {
	switch {
	case len(args) == 0 && opts.url == "":
		return errors.New("must provide either a file or --url")
	case len(args) == 1 && opts.url != "":
		return errors.New("cannot use a file with --url")
	case opts.interactive && opts.role != "":
		return errors.New("cannot use --role with --interactive")
	case opts.format != formatJSON && opts.format != formatText:
		return fmt.Errorf("unknown format %q: must be json or text", opts.format)
	}

	a, err := newApp(cmd, root)
	if err != nil {
		return err
	}
	defer a.close()

	role := opts.role
	if opts.interactive {
		role, err = selectRole(a.analyzer.Catalog())
		if err != nil {
			return err
		}
	}
	if role == "" {
		role = analysis.DefaultRole
	}
	if err := a.analyzer.ValidateRole(role); err != nil {
		return err
	}

	var doc extract.Document
	if opts.url != "" {
		fetchOpts := fetch.DefaultOptions()
		fetchOpts.UseBrowser = opts.browser
		doc, err = fetch.Resume(cmd.Context(), opts.url, fetchOpts, a.logger)
		if err != nil {
			return fmt.Errorf("failed to fetch résumé: %w", err)
		}
	} else {
		doc, err = readDocument(args[0])
		if err != nil {
			return err
		}
	}

	result, err := a.analyzer.AnalyzeDocument(cmd.Context(), doc, role)
	if err != nil {
		return err
	}

	switch {
	case opts.out == "" && opts.format == formatText:
		report.NewPrinter(cmd.OutOrStdout()).PrintAnalysis(result)
		return nil
	case opts.out == "":
		return writeJSON(cmd.OutOrStdout(), result)
	case opts.format == formatText:
		var sb strings.Builder
		report.NewPrinter(&sb).PrintAnalysis(result)
		if err := os.WriteFile(opts.out, []byte(sb.String()), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	default:
		if err := writeJSONFile(opts.out, result); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Analysis written to %s (score %.2f)\n", opts.out, result.Score)
	return nil
}

// readDocument loads a local résumé, rejecting formats the extractor cannot read
func readDocument(path string) (extract.Document, error) {
	name := filepath.Base(path)
	if !extract.AllowedFormat(name) {
		return extract.Document{}, fmt.Errorf("unsupported file type %q: allowed types are %s",
			filepath.Ext(name), strings.Join(extract.Formats(), ", "))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return extract.Document{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return extract.Document{Name: name, Data: data}, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
