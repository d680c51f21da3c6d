package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lexandro/docscan/index"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchArgs defines the input parameters for the docs_search tool.
type SearchArgs struct {
	Query        string `json:"query" jsonschema:"Search query. Plain text for word match, quoted for exact phrase, /regex/ for regular expression"`
	LabelGlob    string `json:"labelGlob,omitempty" jsonschema:"Optional glob over document labels (e.g. ProjectX/**)"`
	Kind         string `json:"kind,omitempty" jsonschema:"Optional document kind: readme or docs"`
	MaxResults   int    `json:"maxResults,omitempty" jsonschema:"Maximum number of documents to return (default 20)"`
	ContextLines int    `json:"contextLines,omitempty" jsonschema:"Number of context lines before and after each match (default 1)"`
}

// SearchHandler holds the dependencies for the search tool.
type SearchHandler struct {
	ContentIndex *index.ContentIndex
	Logger       *slog.Logger
}

// Handle processes a docs_search request.
func (h *SearchHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SearchArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if strings.TrimSpace(args.Query) == "" {
		h.Logger.Warn("docs_search called with empty query")
		return errorResult("Error: query parameter is required"), nil, nil
	}

	kind := index.Kind(strings.ToLower(strings.TrimSpace(args.Kind)))
	if kind != "" && kind != index.KindReadme && kind != index.KindDocs {
		return errorResult(fmt.Sprintf("Error: unknown kind %q (must be readme or docs)", args.Kind)), nil, nil
	}

	contextLines := args.ContextLines
	if contextLines == 0 {
		contextLines = 1
	}

	results, totalMatches, err := h.ContentIndex.Search(index.SearchOptions{
		Query:        args.Query,
		LabelGlob:    args.LabelGlob,
		Kind:         kind,
		MaxResults:   args.MaxResults,
		ContextLines: contextLines,
	})
	if err != nil {
		h.Logger.Error("docs_search failed", "query", args.Query, "error", err)
		return errorResult(fmt.Sprintf("Search error: %v", err)), nil, nil
	}

	h.Logger.Info("docs_search",
		"query", args.Query,
		"labelGlob", args.LabelGlob,
		"kind", kind,
		"documents", len(results),
		"matches", totalMatches,
		"elapsed", time.Since(start),
	)

	return textResult(FormatSearchResults(results, totalMatches)), nil, nil
}
