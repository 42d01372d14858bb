package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/fetch"
	"github.com/jonathan/resume-analyzer/internal/mcptools"
)

func newMCPCmd(root *rootOptions) *cobra.Command {
	var httpAddr string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the analyzer as MCP tools",
		Long:  `Serve analyze_resume, analyze_resume_url and list_roles as Model Context Protocol tools over stdio, or over streamable HTTP with --http.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, root)
			if err != nil {
				return err
			}
			defer a.close()

			server := mcptools.NewServer(a.analyzer, version, mcptools.Options{
				Fetch:  fetch.DefaultOptions(),
				Logger: a.logger,
			})

			if httpAddr == "" {
				a.logger.Info("serving MCP over stdio")
				return server.Run(cmd.Context(), &mcp.StdioTransport{})
			}
			return serveMCPHTTP(cmd.Context(), httpAddr, server, a.logger)
		},
	}

	cmd.Flags().StringVar(&httpAddr, "http", "", "Serve streamable HTTP on this address (e.g. :8891) instead of stdio")
	return cmd
}

func serveMCPHTTP(ctx context.Context, addr string, server *mcp.Server, logger *zap.Logger) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving MCP over HTTP", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("mcp server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
