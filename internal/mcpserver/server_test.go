package mcpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/d0sboots/VaultDict/internal/gamedata"
	"github.com/d0sboots/VaultDict/internal/index"
	"github.com/d0sboots/VaultDict/internal/lexicon"
	"github.com/d0sboots/VaultDict/internal/script"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	var doc gamedata.Document
	for _, concept := range script.Concepts() {
		g, _ := script.GlyphFor(concept)
		var atomType string
		switch {
		case strings.ContainsRune(":.,", g):
			continue
		case strings.ContainsRune(`"'();`, g):
			atomType = gamedata.TypePrefix
		case strings.ContainsRune("b?xf", g):
			atomType = gamedata.TypeModifier
		default:
			atomType = gamedata.TypeAtom
		}
		doc.Atoms = append(doc.Atoms, gamedata.Atom{Name: concept, AtomType: atomType})
	}
	doc.Words = []gamedata.Word{
		{Name: "was", Components: []string{"truth", "past_tense"}},
		{Name: "river", Equivalences: []string{"stream"}, Components: []string{"water", "motion"}},
	}
	raw, err := json.Marshal(&doc)
	if err != nil {
		t.Fatal(err)
	}
	snap, err := lexicon.Build(&doc, raw)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	svc := lexicon.NewService(snap)

	dbFile, err := os.CreateTemp("", "vaultdict-mcp-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	if err := index.Sync(db, snap, logger); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	return New(svc, db)
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so we call the handler
	// functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "lookup_word":
		result, err = srv.lookupWord(ctx, req)
	case "search_words":
		result, err = srv.searchWords(ctx, req)
	case "transcribe":
		result, err = srv.transcribe(ctx, req)
	case "list_atoms":
		result, err = srv.listAtoms(ctx, req)
	case "get_script_reference":
		result, err = srv.getScriptReference(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestLookupWord(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "lookup_word", map[string]interface{}{"name": "River"})
	if r.IsError {
		t.Fatalf("lookup error: %s", resultText(r))
	}
	var detail lexicon.Detail
	if err := json.Unmarshal([]byte(resultText(r)), &detail); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if detail.Glyphs != "=s" {
		t.Errorf("glyphs = %q, want =s", detail.Glyphs)
	}
}

func TestLookupWordMissing(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "lookup_word", map[string]interface{}{"name": "nope"})
	if !r.IsError {
		t.Error("expected error for missing word")
	}
}

func TestSearchWords(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "search_words", map[string]interface{}{"query": "stream"})
	if r.IsError {
		t.Fatalf("search error: %s", resultText(r))
	}
	var results []index.SearchResult
	if err := json.Unmarshal([]byte(resultText(r)), &results); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(results) != 1 || results[0].Name != "river" {
		t.Errorf("results = %+v, want single river hit", results)
	}
}

func TestTranscribe(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "transcribe", map[string]interface{}{"components": "was, light"})
	if r.IsError {
		t.Fatalf("transcribe error: %s", resultText(r))
	}
	if got := resultText(r); got != "ab.h" {
		t.Errorf("glyphs = %q, want ab.h", got)
	}
}

func TestTranscribeUnknown(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "transcribe", map[string]interface{}{"components": "flibbertigibbet"})
	if !r.IsError {
		t.Error("expected error for unknown component")
	}
}

func TestTranscribeEmpty(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "transcribe", map[string]interface{}{"components": " , "})
	if !r.IsError {
		t.Error("expected error for empty component list")
	}
}

func TestListAtoms(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "list_atoms", map[string]interface{}{})
	var atoms []lexicon.AtomInfo
	if err := json.Unmarshal([]byte(resultText(r)), &atoms); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(atoms) != 46 {
		t.Errorf("atoms = %d, want 46", len(atoms))
	}
}

func TestGetScriptReference(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "get_script_reference", map[string]interface{}{})
	if !strings.Contains(resultText(r), "Glyph categories") {
		t.Error("script reference missing category section")
	}
}

func TestScriptReferenceResource(t *testing.T) {
	srv := testServer(t)

	contents, err := srv.readScriptReferenceResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents = %d, want 1", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents[0] is %T, want TextResourceContents", contents[0])
	}
	if tc.URI != "vaultdict://script-reference" {
		t.Errorf("uri = %q", tc.URI)
	}
}
