// Package mcptools exposes the analyzer as Model Context Protocol tools.
package mcptools

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/extract"
	"github.com/jonathan/resume-analyzer/internal/fetch"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// ServerName identifies this implementation to MCP clients
const ServerName = "resume_analyzer"

// AnalyzeInput is the input of the analyze_resume tool
type AnalyzeInput struct {
	Text    string `json:"text" jsonschema:"Plain text of the résumé"`
	JobRole string `json:"job_role,omitempty" jsonschema:"Role key from list_roles (default: software_engineer)"`
}

// AnalyzeURLInput is the input of the analyze_resume_url tool
type AnalyzeURLInput struct {
	URL        string `json:"url" jsonschema:"Public URL of a résumé page or document (Google Docs, GitHub and Dropbox links are resolved)"`
	JobRole    string `json:"job_role,omitempty" jsonschema:"Role key from list_roles (default: software_engineer)"`
	UseBrowser bool   `json:"use_browser,omitempty" jsonschema:"Render JavaScript-heavy pages in headless Chrome when the plain fetch finds little text"`
}

// ListRolesInput is the (empty) input of the list_roles tool
type ListRolesInput struct{}

// Role describes one selectable role
type Role struct {
	Key      string   `json:"key"`
	Title    string   `json:"title"`
	Keywords []string `json:"keywords"`
}

// ListRolesOutput is the output of the list_roles tool
type ListRolesOutput struct {
	Roles   []Role   `json:"roles"`
	Default string   `json:"default"`
	Formats []string `json:"formats"`
}

// Options configures the registered tools
type Options struct {
	// Fetch is used by analyze_resume_url; nil means fetch.DefaultOptions
	Fetch  *fetch.Options
	Logger *zap.Logger
}

// NewServer creates an MCP server with every analyzer tool registered
func NewServer(analyzer *analysis.Analyzer, version string, opts Options) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: version,
	}, nil)
	RegisterTools(server, analyzer, opts)
	return server
}

// RegisterTools registers analyze_resume, analyze_resume_url and list_roles
func RegisterTools(server *mcp.Server, analyzer *analysis.Analyzer, opts Options) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Fetch == nil {
		opts.Fetch = fetch.DefaultOptions()
	}

	registerAnalyze(server, analyzer)
	registerAnalyzeURL(server, analyzer, opts)
	registerListRoles(server, analyzer)
}

func registerAnalyze(server *mcp.Server, analyzer *analysis.Analyzer) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_resume",
		Description: "Score a résumé for ATS compatibility against a job role. Returns the overall score, per-metric ATS details, detected sections, keyword hits by category, the best-fitting roles, improvement suggestions and industry fit.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(_ context.Context, _ *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, *types.AnalysisResult, error) {
		if strings.TrimSpace(input.Text) == "" {
			return nil, nil, errors.New("text is required")
		}
		result, err := analyzer.AnalyzeText(extract.CleanText(input.Text), jobRole(input.JobRole))
		if err != nil {
			return nil, nil, err
		}
		return nil, result, nil
	})
}

func registerAnalyzeURL(server *mcp.Server, analyzer *analysis.Analyzer, opts Options) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_resume_url",
		Description: "Fetch a résumé from a URL (HTML page, PDF, DOCX or plain text) and score it like analyze_resume.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input AnalyzeURLInput) (*mcp.CallToolResult, *types.AnalysisResult, error) {
		if strings.TrimSpace(input.URL) == "" {
			return nil, nil, errors.New("url is required")
		}
		role := jobRole(input.JobRole)
		if err := analyzer.ValidateRole(role); err != nil {
			return nil, nil, err
		}

		fetchOpts := *opts.Fetch
		fetchOpts.UseBrowser = fetchOpts.UseBrowser || input.UseBrowser

		doc, err := fetch.Resume(ctx, input.URL, &fetchOpts, opts.Logger)
		if err != nil {
			return nil, nil, err
		}
		result, err := analyzer.AnalyzeDocument(ctx, doc, role)
		if err != nil {
			return nil, nil, err
		}
		return nil, result, nil
	})
}

func registerListRoles(server *mcp.Server, analyzer *analysis.Analyzer) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_roles",
		Description: "List the job roles a résumé can be scored against, with their keywords, the default role and the accepted document formats.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(_ context.Context, _ *mcp.CallToolRequest, _ ListRolesInput) (*mcp.CallToolResult, ListRolesOutput, error) {
		return nil, listRoles(analyzer.Catalog()), nil
	})
}

func listRoles(cat *catalog.Catalog) ListRolesOutput {
	keys := cat.RoleKeys()
	roles := make([]Role, 0, len(keys))
	for _, key := range keys {
		role, _ := cat.Role(key)
		roles = append(roles, Role{
			Key:      key,
			Title:    catalog.HumanizeRole(key),
			Keywords: role.Keywords,
		})
	}
	return ListRolesOutput{
		Roles:   roles,
		Default: analysis.DefaultRole,
		Formats: extract.Formats(),
	}
}

func jobRole(role string) string {
	if role = strings.TrimSpace(role); role == "" {
		return analysis.DefaultRole
	}
	return role
}
