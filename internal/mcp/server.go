package mcp

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jcdickinson/rsdoc/internal/docs"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

//go:embed instructions.md
var instructions string

const (
	sourceCratesIO = "crates.io"
	sourceDocsRs   = "docs.rs"
)

type Server struct {
	mcpServer *server.MCPServer
	client    *docs.Client
	logger    *slog.Logger
}

func NewServer(client *docs.Client, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{client: client, logger: logger}

	mcpServer := server.NewMCPServer(
		"rsdoc",
		version,
		server.WithInstructions(instructions),
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	s.registerTools(mcpServer)
	s.registerResources(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func kindTokens() []string {
	kinds := docs.AllItemKinds()
	tokens := make([]string, len(kinds))
	for i, k := range kinds {
		tokens[i] = k.String()
	}
	return tokens
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(
		mcp.NewTool("rustdoc",
			mcp.WithDescription("Fetch the docs.rs page for a Rust item path (e.g. \"serde::de::Deserialize\") as Markdown. The item type is inferred from the parent module when omitted."),
			mcp.WithString("path",
				mcp.Description("Rust path, crate name first, segments separated by \"::\""),
				mcp.Required(),
			),
			mcp.WithString("item_type",
				mcp.Description("rustdoc item type token (struct, enum, fn, trait, mod, macro, ...)"),
				mcp.Enum(kindTokens()...),
			),
			mcp.WithString("version",
				mcp.Description("Crate version (default \"latest\")"),
			),
		),
		s.handleRustdoc,
	)

	mcpServer.AddTool(
		mcp.NewTool("fetch_docs",
			mcp.WithDescription("Fetch Rust documentation from docs.rs as Markdown. Provides documentation for Rust crates, modules, structs, enums, traits, functions, and more."),
			mcp.WithString("crate_name",
				mcp.Description("The name of the crate to fetch documentation for"),
				mcp.Required(),
			),
			mcp.WithString("module",
				mcp.Description("Optional module name within the crate"),
			),
			mcp.WithString("item_path",
				mcp.Description("Optional path to a specific item (e.g., \"struct.MyStruct\" or \"trait.MyTrait\")"),
			),
		),
		s.handleFetchDocs,
	)

	mcpServer.AddTool(
		mcp.NewTool("search_crates",
			mcp.WithDescription("Search for Rust crates by name or keyword."),
			mcp.WithString("query",
				mcp.Description("Search query (crate name or keyword)"),
				mcp.Required(),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of crates.io results (default 20)"),
			),
			mcp.WithString("source",
				mcp.Description("Where to search (default \"crates.io\")"),
				mcp.Enum(sourceCratesIO, sourceDocsRs),
			),
		),
		s.handleSearchCrates,
	)
}

func (s *Server) registerResources(mcpServer *server.MCPServer) {
	mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"rsdoc://{crate}/{version}/{path}",
			"Rust documentation item",
			mcp.WithTemplateDescription("Read the documentation page of a Rust item, e.g. rsdoc://serde/latest/serde::Serialize."),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		s.handleReadResource,
	)
}

func (s *Server) handleRustdoc(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, _ := args["path"].(string)
	if path == "" {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}
	kindToken, _ := args["item_type"].(string)
	version, _ := args["version"].(string)

	id, err := docs.ParseIdentifier(path, kindToken, version)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid request: %v", err)), nil
	}

	page, err := s.client.Fetch(ctx, id)
	if err != nil {
		s.logger.Error("rustdoc failed", "path", path, "item_type", kindToken, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch documentation: %v", err)), nil
	}
	s.logger.Info("rustdoc", "url", page.URL, "kind", page.Kind)
	return mcp.NewToolResultText(page.Markdown), nil
}

func (s *Server) handleFetchDocs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	crateName, _ := args["crate_name"].(string)
	if crateName == "" {
		return mcp.NewToolResultError("missing required parameter: crate_name"), nil
	}
	module, _ := args["module"].(string)
	itemPath, _ := args["item_path"].(string)

	page, err := s.client.FetchCrateDocs(ctx, crateName, module, itemPath)
	if err != nil {
		s.logger.Error("fetch_docs failed", "crate", crateName, "module", module, "item_path", itemPath, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch documentation: %v", err)), nil
	}
	s.logger.Info("fetch_docs", "url", page.URL)
	return mcp.NewToolResultText(page.Markdown), nil
}

func (s *Server) handleSearchCrates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	query, _ := args["query"].(string)
	if query == "" {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	source, _ := args["source"].(string)
	switch source {
	case sourceDocsRs:
		md, err := s.client.SearchDocsRs(ctx, query)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}
		return mcp.NewToolResultText(md), nil
	case "", sourceCratesIO:
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown source %q", source)), nil
	}

	var limit int
	if l, ok := args["limit"].(float64); ok {
		limit = int(l)
	}

	results, err := s.client.SearchCratesIO(ctx, query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	resultJSON, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(resultJSON)), nil
}

func (s *Server) handleReadResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	id, err := docs.ParseURI(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid resource URI: %w", err)
	}

	page, err := s.client.Fetch(ctx, id)
	if err != nil {
		s.logger.Error("read resource failed", "uri", uri, "error", err)
		return nil, fmt.Errorf("getting doc: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/markdown",
			Text:     page.Markdown,
		},
	}, nil
}

func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}
