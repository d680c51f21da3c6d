package tools

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lexandro/docscan/index"
)

// --- ListHandler ---

func Test_ListHandler_AllDocuments(t *testing.T) {
	di := index.NewDocumentIndex()
	addDoc(t, di, nil, "ProjectX/README.md", index.KindReadme, "# Project X\n\nhello world\n")
	addDoc(t, di, nil, "ProjectX/docs/guide.md", index.KindDocs, "steps")
	h := &ListHandler{DocumentIndex: di, Logger: testLogger()}

	result, _, err := h.Handle(context.Background(), nil, ListArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatal("expected success, got error result")
	}

	text := resultText(t, result)
	for _, expected := range []string{
		"Found 2 documents",
		"ProjectX/README.md  (readme, 5 words)  Project X",
		"ProjectX/docs/guide.md  (docs, 1 words)",
	} {
		if !strings.Contains(text, expected) {
			t.Errorf("expected %q in:\n%s", expected, text)
		}
	}
}

func Test_ListHandler_Pattern(t *testing.T) {
	di := index.NewDocumentIndex()
	addDoc(t, di, nil, "A/README.md", index.KindReadme, "a")
	addDoc(t, di, nil, "A/docs/guide.md", index.KindDocs, "g")
	h := &ListHandler{DocumentIndex: di, Logger: testLogger()}

	result, _, _ := h.Handle(context.Background(), nil, ListArgs{Pattern: "*/docs/*"})
	text := resultText(t, result)
	if strings.Contains(text, "A/README.md") || !strings.Contains(text, "A/docs/guide.md") {
		t.Errorf("expected only docs files, got:\n%s", text)
	}
}

func Test_ListHandler_InvalidPattern(t *testing.T) {
	h := &ListHandler{DocumentIndex: index.NewDocumentIndex(), Logger: testLogger()}

	result, _, err := h.Handle(context.Background(), nil, ListArgs{Pattern: "[oops"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected IsError=true for invalid pattern")
	}
}

func Test_ListHandler_NoDocuments(t *testing.T) {
	h := &ListHandler{DocumentIndex: index.NewDocumentIndex(), Logger: testLogger()}

	result, _, _ := h.Handle(context.Background(), nil, ListArgs{})
	if text := resultText(t, result); text != "No documents matched." {
		t.Errorf("unexpected text: %q", text)
	}
}

// --- ReadHandler ---

func Test_ReadHandler_EmptyLabel(t *testing.T) {
	h := &ReadHandler{ContentIndex: newTestContentIndex(t), Logger: testLogger()}

	result, _, err := h.Handle(context.Background(), nil, ReadArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError || !strings.Contains(resultText(t, result), "label parameter is required") {
		t.Errorf("expected required-label error, got %q", resultText(t, result))
	}
}

func Test_ReadHandler_NotFound(t *testing.T) {
	h := &ReadHandler{ContentIndex: newTestContentIndex(t), Logger: testLogger()}

	result, _, _ := h.Handle(context.Background(), nil, ReadArgs{Label: "Nope/README.md"})
	if !result.IsError || !strings.Contains(resultText(t, result), "Document not found") {
		t.Errorf("expected not-found error, got %q", resultText(t, result))
	}
}

func Test_ReadHandler_Success(t *testing.T) {
	ci := newTestContentIndex(t)
	addDoc(t, nil, ci, "ProjectX/README.md", index.KindReadme, "# Project X\n\nhello\n")
	h := &ReadHandler{ContentIndex: ci, Logger: testLogger()}

	result, _, _ := h.Handle(context.Background(), nil, ReadArgs{Label: "ProjectX/README.md"})
	if result.IsError {
		t.Fatalf("expected success, got %q", resultText(t, result))
	}
	text := resultText(t, result)
	for _, expected := range []string{"ProjectX/README.md (3 lines)", "1│ # Project X", "3│ hello"} {
		if !strings.Contains(text, expected) {
			t.Errorf("expected %q in:\n%s", expected, text)
		}
	}
}

// --- PreviewHandler ---

func Test_PreviewHandler_Success(t *testing.T) {
	di := index.NewDocumentIndex()
	addDoc(t, di, nil, "ProjectX/docs/guide.md", index.KindDocs, "hello world")
	h := &PreviewHandler{DocumentIndex: di, Logger: testLogger()}

	result, _, _ := h.Handle(context.Background(), nil, PreviewArgs{Label: "ProjectX/docs/guide.md"})
	if result.IsError {
		t.Fatalf("expected success, got %q", resultText(t, result))
	}
	want := "📄 ProjectX/docs/guide.md\n   Words: 2\n   Preview: hello world...\n"
	if got := resultText(t, result); got != want {
		t.Errorf("preview = %q, want %q", got, want)
	}
}

func Test_PreviewHandler_NotFound(t *testing.T) {
	h := &PreviewHandler{DocumentIndex: index.NewDocumentIndex(), Logger: testLogger()}

	result, _, _ := h.Handle(context.Background(), nil, PreviewArgs{Label: "X/README.md"})
	if !result.IsError {
		t.Error("expected IsError=true for unknown label")
	}
}

// --- SearchHandler ---

func Test_SearchHandler_EmptyQuery(t *testing.T) {
	h := &SearchHandler{ContentIndex: newTestContentIndex(t), Logger: testLogger()}

	result, _, _ := h.Handle(context.Background(), nil, SearchArgs{Query: "  "})
	if !result.IsError || !strings.Contains(resultText(t, result), "query parameter is required") {
		t.Errorf("expected required-query error, got %q", resultText(t, result))
	}
}

func Test_SearchHandler_UnknownKind(t *testing.T) {
	h := &SearchHandler{ContentIndex: newTestContentIndex(t), Logger: testLogger()}

	result, _, _ := h.Handle(context.Background(), nil, SearchArgs{Query: "x", Kind: "wiki"})
	if !result.IsError {
		t.Error("expected IsError=true for unknown kind")
	}
}

func Test_SearchHandler_FindsMatch(t *testing.T) {
	ci := newTestContentIndex(t)
	addDoc(t, nil, ci, "ProjectX/README.md", index.KindReadme, "# Project X\n\nUses retrieval pipelines.\n")
	addDoc(t, nil, ci, "ProjectY/README.md", index.KindReadme, "# Project Y\n\nNothing relevant.\n")
	h := &SearchHandler{ContentIndex: ci, Logger: testLogger()}

	result, _, _ := h.Handle(context.Background(), nil, SearchArgs{Query: "retrieval", Kind: "README"})
	if result.IsError {
		t.Fatalf("expected success, got %q", resultText(t, result))
	}
	text := resultText(t, result)
	if !strings.Contains(text, "── ProjectX/README.md (Project X) ──") {
		t.Errorf("expected ProjectX header, got:\n%s", text)
	}
	if !strings.Contains(text, "3: Uses retrieval pipelines.") {
		t.Errorf("expected numbered match line, got:\n%s", text)
	}
	if strings.Contains(text, "ProjectY") {
		t.Errorf("did not expect ProjectY, got:\n%s", text)
	}
}

// --- StatusHandler ---

func Test_StatusHandler_Handle(t *testing.T) {
	di := index.NewDocumentIndex()
	ci := newTestContentIndex(t)
	addDoc(t, di, ci, "A/README.md", index.KindReadme, strings.Repeat("word ", 1200))
	addDoc(t, di, ci, "A/docs/guide.md", index.KindDocs, "one two")

	scanned := time.Now().Add(-90 * time.Second)
	h := &StatusHandler{
		DocumentIndex: di,
		ContentIndex:  ci,
		StartTime:     time.Now(),
		RootDir:       "/projects",
		LastScan:      func() time.Time { return scanned },
		Logger:        testLogger(),
	}

	result, _, err := h.Handle(context.Background(), nil, StatusArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := resultText(t, result)
	for _, expected := range []string{
		"docscan Status",
		"Root directory: /projects",
		"Last scan: 1m30s ago",
		"README files: 1",
		"Doc files: 1",
		"Searchable documents: 2",
		"Total words: 1,202",
	} {
		if !strings.Contains(text, expected) {
			t.Errorf("expected %q in:\n%s", expected, text)
		}
	}
}

func Test_FormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"Seconds_zero", 0, "0s"},
		{"Seconds_59", 59 * time.Second, "59s"},
		{"Minutes_5m30s", 5*time.Minute + 30*time.Second, "5m30s"},
		{"Hours_2h0m", 2 * time.Hour, "2h0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatDuration(tt.duration); got != tt.expected {
				t.Errorf("formatDuration(%v) = %q, want %q", tt.duration, got, tt.expected)
			}
		})
	}
}

// --- RescanHandler ---

func Test_RescanHandler_Success(t *testing.T) {
	h := &RescanHandler{
		DoRescan: func() (RescanOutcome, error) {
			return RescanOutcome{Readmes: 4, Docs: 9, Skipped: 1, Elapsed: 1500 * time.Millisecond}, nil
		},
		Logger: testLogger(),
	}

	result, _, _ := h.Handle(context.Background(), nil, RescanArgs{})
	if result.IsError {
		t.Fatal("expected success, got error result")
	}
	want := "Rescan complete: 4 README files, 9 doc files, 1 skipped in 1.5s"
	if got := resultText(t, result); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func Test_RescanHandler_Error(t *testing.T) {
	h := &RescanHandler{
		DoRescan: func() (RescanOutcome, error) {
			return RescanOutcome{}, fmt.Errorf("index closed")
		},
		Logger: testLogger(),
	}

	result, _, _ := h.Handle(context.Background(), nil, RescanArgs{})
	if !result.IsError || !strings.Contains(resultText(t, result), "index closed") {
		t.Errorf("expected error result mentioning the cause, got %q", resultText(t, result))
	}
}
