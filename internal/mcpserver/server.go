// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes VaultDict tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/d0sboots/VaultDict/internal/index"
	"github.com/d0sboots/VaultDict/internal/lexicon"
)

// Server wraps the MCP server with VaultDict tools.
type Server struct {
	mcp *server.MCPServer
	svc *lexicon.Service
	db  *index.DB
}

// New creates a new MCP server with all VaultDict tools registered.
func New(svc *lexicon.Service, db *index.DB) *Server {
	s := &Server{svc: svc, db: db}

	s.mcp = server.NewMCPServer(
		"VaultDict",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("lookup_word",
		mcp.WithDescription("Look up a dictionary word or atomic concept and return its "+
			"rendered glyph string plus a per-component breakdown."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Word or concept name (case-insensitive)")),
	), s.lookupWord)

	s.mcp.AddTool(mcp.NewTool("search_words",
		mcp.WithDescription("Full-text search through word names, equivalences, and components."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchWords)

	s.mcp.AddTool(mcp.NewTool("transcribe",
		mcp.WithDescription("Render an ad-hoc sequence of components (words or concepts) as a "+
			"single canonical glyph string. Read the script rules first via the "+
			"get_script_reference tool or the vaultdict://script-reference resource."),
		mcp.WithString("components", mcp.Required(), mcp.Description("Comma-separated component names, e.g. \"water, motion\"")),
	), s.transcribe)

	s.mcp.AddTool(mcp.NewTool("list_atoms",
		mcp.WithDescription("List every glyph in the script with its concept and category."),
	), s.listAtoms)

	s.mcp.AddTool(mcp.NewTool("get_script_reference",
		mcp.WithDescription("Returns the script reference: glyph categories and how "+
			"punctuation joiners are inserted when words are rendered."),
	), s.getScriptReference)

	// Resource: script reference.
	s.mcp.AddResource(
		mcp.NewResource("vaultdict://script-reference", "Script Reference",
			mcp.WithResourceDescription("Glyph categories and rendering rules for the script."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readScriptReferenceResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) lookupWord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	detail, err := s.svc.Get(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", name)), nil
	}
	out, _ := json.MarshalIndent(detail, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchWords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.db.Search(query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) transcribe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("components")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var components []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			components = append(components, c)
		}
	}
	if len(components) == 0 {
		return mcp.NewToolResultError("components must name at least one word or concept"), nil
	}
	glyphs, err := s.svc.Transcribe(ctx, components)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(glyphs), nil
}

func (s *Server) listAtoms(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.svc.Atoms(ctx), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getScriptReference(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(ScriptReference), nil
}

func (s *Server) readScriptReferenceResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "vaultdict://script-reference",
			MIMEType: "text/markdown",
			Text:     ScriptReference,
		},
	}, nil
}
