// Package mcp implements codeguard's MCP server: a stdio-based tool surface
// so an editor agent can run a scan or inspect policy without shelling out.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/nox-hq/codeguard/internal/catalog"
	"github.com/nox-hq/codeguard/internal/discovery"
	"github.com/nox-hq/codeguard/internal/policy"
	"github.com/nox-hq/codeguard/internal/scan"
)

// Server is the codeguard MCP server.
type Server struct {
	version   string
	scanner   *scan.Scanner
	policies  *policy.Store
	rulePacks *policy.PackRegistry
}

// New creates an MCP server wrapping scanner and the policy store/registry
// used to answer get_policy and rules requests.
func New(version string, scanner *scan.Scanner, policies *policy.Store, rulePacks *policy.PackRegistry) *Server {
	return &Server{version: version, scanner: scanner, policies: policies, rulePacks: rulePacks}
}

// Serve starts the MCP server on stdio and blocks until the client
// disconnects.
func (s *Server) Serve() error {
	srv := mcpserver.NewMCPServer(
		"codeguard",
		s.version,
		mcpserver.WithRecovery(),
		mcpserver.WithToolCapabilities(false),
	)
	s.registerTools(srv)
	return mcpserver.ServeStdio(srv)
}

func (s *Server) registerTools(srv *mcpserver.MCPServer) {
	srv.AddTool(
		mcp.NewTool("scan",
			mcp.WithDescription("Scan a directory for security, standards, license, and duplicate-code violations"),
			mcp.WithString("path",
				mcp.Description("Absolute path to the directory to scan"),
				mcp.Required(),
			),
			mcp.WithString("repository",
				mcp.Description("Repository identifier (owner/name) for policy resolution"),
				mcp.Required(),
			),
			mcp.WithBoolean("detect_copilot",
				mcp.Description("Whether to flag AI-generated code for stricter review"),
				mcp.DefaultBool(true),
			),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleScan,
	)

	srv.AddTool(
		mcp.NewTool("get_policy",
			mcp.WithDescription("Get the resolved policy configuration for a repository"),
			mcp.WithString("repository",
				mcp.Description("Repository identifier (owner/name)"),
				mcp.Required(),
			),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleGetPolicy,
	)

	srv.AddTool(
		mcp.NewTool("rules",
			mcp.WithDescription("List every built-in rule with its ID, category, and severity"),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleRules,
	)

	srv.AddTool(
		mcp.NewTool("rule_packs",
			mcp.WithDescription("List registered custom rule packs"),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleRulePacks,
	)
}

func (s *Server) handleScan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required argument: path"), nil
	}
	repository, err := request.RequireString("repository")
	if err != nil {
		return mcp.NewToolResultError("missing required argument: repository"), nil
	}
	detectCopilot := request.GetBool("detect_copilot", true)

	files, err := discovery.NewWalker(path).Walk()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("walking %q: %v", path, err)), nil
	}
	contents, err := discovery.ReadFileInputs(files)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading files under %q: %v", path, err)), nil
	}

	inputs := make([]scan.FileInput, 0, len(files))
	for _, f := range files {
		inputs = append(inputs, scan.FileInput{Path: f.Path, Content: contents[f.Path]})
	}

	result := s.scanner.Scan(ctx, scan.Request{
		Repository:    repository,
		Files:         inputs,
		DetectCopilot: detectCopilot,
	})

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshalling scan result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleGetPolicy(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repository, err := request.RequireString("repository")
	if err != nil {
		return mcp.NewToolResultError("missing required argument: repository"), nil
	}

	cfg := s.policies.Resolve(repository, nil)
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshalling policy: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleRules(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(catalog.Rules(), "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshalling rules: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleRulePacks(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(catalog.RulePacks(s.rulePacks, s.rulePacks.Names()), "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshalling rule packs: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
