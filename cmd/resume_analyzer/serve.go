package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/server"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  `Start an HTTP server that exposes the analyzer as REST endpoints: POST /analyze, POST /analyze/batch, GET /roles, GET /health and GET /metrics.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, root)
			if err != nil {
				return err
			}
			defer a.close()

			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
				if err := a.cfg.Validate(); err != nil {
					return err
				}
			}

			srv, err := server.New(a.cfg, a.analyzer, a.logger, a.metrics)
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}
			return srv.Start(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on (overrides server.port)")
	return cmd
}
