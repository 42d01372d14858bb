// Package main provides the resume_analyzer command line interface: an HTTP
// API server, one-off and batch analysis, and an MCP tool server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	configFile string
	debug      bool
	jsonLogs   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "resume_analyzer",
		Short:         "Resume ATS analyzer",
		Long:          "Resume Analyzer scores résumés for ATS compatibility against job roles and suggests improvements, from the command line, over a REST API or as MCP tools.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "Verbose/debug logging")
	rootCmd.PersistentFlags().BoolVarP(&opts.jsonLogs, "json-logs", "j", false, "JSON format for logging")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newAnalyzeCmd(opts),
		newBatchCmd(opts),
		newRolesCmd(opts),
		newMCPCmd(opts),
	)
	return rootCmd
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
