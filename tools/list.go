package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lexandro/docscan/index"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListArgs defines the input parameters for the docs_list tool.
type ListArgs struct {
	Pattern    string `json:"pattern,omitempty" jsonschema:"Glob over document labels (e.g. */README.md or ProjectX/docs/*). Default: all documents"`
	MaxResults int    `json:"maxResults,omitempty" jsonschema:"Maximum number of documents to return (default 50)"`
}

// ListHandler holds the dependencies for the list tool.
type ListHandler struct {
	DocumentIndex *index.DocumentIndex
	Logger        *slog.Logger
}

// Handle processes a docs_list request.
func (h *ListHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ListArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	docs, err := h.DocumentIndex.SearchByGlob(args.Pattern, args.MaxResults)
	if err != nil {
		h.Logger.Warn("docs_list failed", "pattern", args.Pattern, "error", err)
		return errorResult(fmt.Sprintf("List error: %v", err)), nil, nil
	}

	h.Logger.Info("docs_list",
		"pattern", args.Pattern,
		"results", len(docs),
		"elapsed", time.Since(start),
	)

	return textResult(FormatDocumentList(docs)), nil, nil
}
