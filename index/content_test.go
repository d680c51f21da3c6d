package index

import (
	"testing"

	"github.com/lexandro/docscan/stats"
)

func newTestContentIndex(t *testing.T) *ContentIndex {
	t.Helper()
	ci, err := NewContentIndex()
	if err != nil {
		t.Fatalf("failed to create content index: %v", err)
	}
	t.Cleanup(func() { ci.Close() })
	return ci
}

func newTestDocument(label string, kind Kind, content string) *Document {
	return &Document{
		Path:  "/projects/" + label,
		Label: label,
		Kind:  kind,
		Stats: stats.Compute(content),
	}
}

func indexDocs(t *testing.T, ci *ContentIndex, docs ...*Document) {
	t.Helper()
	for _, doc := range docs {
		if err := ci.IndexDocument(doc); err != nil {
			t.Fatalf("failed to index %s: %v", doc.Label, err)
		}
	}
}

func Test_ContentIndex_IndexAndSearch(t *testing.T) {
	ci := newTestContentIndex(t)
	indexDocs(t, ci, newTestDocument("ProjectX/README.md", KindReadme, "# Project X\n\nAn agent that plans trips.\n"))

	results, totalMatches, err := ci.Search(SearchOptions{Query: "agent", MaxResults: 10})
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if totalMatches != 1 {
		t.Errorf("expected 1 matching line, got %d", totalMatches)
	}
	if results[0].Label != "ProjectX/README.md" {
		t.Errorf("expected ProjectX/README.md, got %s", results[0].Label)
	}
	if results[0].Title != "Project X" {
		t.Errorf("expected stored title 'Project X', got %q", results[0].Title)
	}
	if results[0].Matches[0].LineNumber != 3 {
		t.Errorf("expected match on line 3, got %d", results[0].Matches[0].LineNumber)
	}
}

func Test_ContentIndex_PhraseSearch(t *testing.T) {
	ci := newTestContentIndex(t)
	indexDocs(t, ci,
		newTestDocument("A/README.md", KindReadme, "retrieval augmented generation"),
		newTestDocument("B/README.md", KindReadme, "generation of retrieval data"),
	)

	results, _, err := ci.Search(SearchOptions{Query: `"retrieval augmented"`, MaxResults: 10})
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(results) != 1 || results[0].Label != "A/README.md" {
		t.Errorf("expected only A/README.md for the phrase, got %+v", results)
	}
}

func Test_ContentIndex_SearchWithContextLines(t *testing.T) {
	ci := newTestContentIndex(t)
	indexDocs(t, ci, newTestDocument("A/docs/setup.md", KindDocs, "line1\nline2\nline3 target\nline4\nline5\n"))

	results, _, err := ci.Search(SearchOptions{Query: "target", ContextLines: 1})
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(results) == 0 || len(results[0].Matches) == 0 {
		t.Fatal("expected results")
	}

	match := results[0].Matches[0]
	if match.LineNumber != 3 {
		t.Errorf("expected line 3, got %d", match.LineNumber)
	}
	if len(match.ContextBefore) != 1 || match.ContextBefore[0] != "line2" {
		t.Errorf("expected [line2] before, got %v", match.ContextBefore)
	}
	if len(match.ContextAfter) != 1 || match.ContextAfter[0] != "line4" {
		t.Errorf("expected [line4] after, got %v", match.ContextAfter)
	}
}

func Test_ContentIndex_SearchWithLabelGlob(t *testing.T) {
	ci := newTestContentIndex(t)
	indexDocs(t, ci,
		newTestDocument("A/README.md", KindReadme, "hello from the readme"),
		newTestDocument("A/docs/guide.md", KindDocs, "hello from the guide"),
	)

	results, _, err := ci.Search(SearchOptions{Query: "hello", LabelGlob: "*/docs/*"})
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(results) != 1 || results[0].Label != "A/docs/guide.md" {
		t.Errorf("expected only the guide, got %+v", results)
	}
}

func Test_ContentIndex_SearchByKind(t *testing.T) {
	ci := newTestContentIndex(t)
	indexDocs(t, ci,
		newTestDocument("A/README.md", KindReadme, "hello from the readme"),
		newTestDocument("A/docs/guide.md", KindDocs, "hello from the guide"),
	)

	results, _, err := ci.Search(SearchOptions{Query: "hello", Kind: KindReadme})
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(results) != 1 || results[0].Label != "A/README.md" {
		t.Errorf("expected only the readme, got %+v", results)
	}
}

func Test_ContentIndex_InvalidGlob(t *testing.T) {
	ci := newTestContentIndex(t)

	if _, _, err := ci.Search(SearchOptions{Query: "x", LabelGlob: "[unclosed"}); err == nil {
		t.Error("expected error for invalid glob")
	}
}

func Test_ContentIndex_EmptyQuery(t *testing.T) {
	ci := newTestContentIndex(t)

	if _, _, err := ci.Search(SearchOptions{Query: "   "}); err == nil {
		t.Error("expected error for empty query")
	}
}

func Test_ContentIndex_ReplaceWith(t *testing.T) {
	ci := newTestContentIndex(t)
	indexDocs(t, ci,
		newTestDocument("A/README.md", KindReadme, "old alpha"),
		newTestDocument("B/README.md", KindReadme, "old beta"),
	)

	fresh := newTestContentIndex(t)
	indexDocs(t, fresh, newTestDocument("C/README.md", KindReadme, "new gamma"))

	if err := ci.ReplaceWith(fresh); err != nil {
		t.Fatalf("ReplaceWith: %v", err)
	}

	if ci.DocumentCount() != 1 {
		t.Errorf("expected 1 doc after replace, got %d", ci.DocumentCount())
	}
	if _, ok := ci.Content("A/README.md"); ok {
		t.Error("expected old content to be dropped")
	}
	results, _, err := ci.Search(SearchOptions{Query: "gamma"})
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(results) != 1 || results[0].Label != "C/README.md" {
		t.Errorf("expected C/README.md from the new index, got %+v", results)
	}
}

func Test_ContentIndex_Content(t *testing.T) {
	ci := newTestContentIndex(t)
	expected := "# Guide\n\nSteps.\n"
	indexDocs(t, ci, newTestDocument("A/docs/guide.md", KindDocs, expected))

	content, ok := ci.Content("A/docs/guide.md")
	if !ok {
		t.Fatal("expected document to be found")
	}
	if content != expected {
		t.Errorf("content mismatch:\ngot:  %q\nwant: %q", content, expected)
	}

	if _, ok := ci.Content("missing/README.md"); ok {
		t.Error("expected missing document not to be found")
	}
}
