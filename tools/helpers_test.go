package tools

import (
	"io"
	"log/slog"
	"testing"

	"github.com/lexandro/docscan/index"
	"github.com/lexandro/docscan/stats"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestContentIndex(t *testing.T) *index.ContentIndex {
	t.Helper()
	ci, err := index.NewContentIndex()
	if err != nil {
		t.Fatalf("failed to create content index: %v", err)
	}
	t.Cleanup(func() { ci.Close() })
	return ci
}

// addDoc stores a document in both indexes.
func addDoc(t *testing.T, di *index.DocumentIndex, ci *index.ContentIndex, label string, kind index.Kind, content string) *index.Document {
	t.Helper()
	doc := &index.Document{
		Path:  "/projects/" + label,
		Label: label,
		Kind:  kind,
		Stats: stats.Compute(content),
	}
	if di != nil {
		di.Add(doc)
	}
	if ci != nil {
		if err := ci.IndexDocument(doc); err != nil {
			t.Fatalf("indexing %s: %v", label, err)
		}
	}
	return doc
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("expected content in result")
	}
	return result.Content[0].(*mcp.TextContent).Text
}
