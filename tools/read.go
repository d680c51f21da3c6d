package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lexandro/docscan/index"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ReadArgs defines the input parameters for the docs_read tool.
type ReadArgs struct {
	Label string `json:"label" jsonschema:"Document label as shown by docs_list (e.g. ProjectX/README.md)"`
}

// ReadHandler holds the dependencies for the read tool.
type ReadHandler struct {
	ContentIndex *index.ContentIndex
	Logger       *slog.Logger
}

// Handle processes a docs_read request. The text is served from memory.
func (h *ReadHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ReadArgs) (*mcp.CallToolResult, any, error) {
	if args.Label == "" {
		h.Logger.Warn("docs_read called with empty label")
		return errorResult("Error: label parameter is required"), nil, nil
	}

	content, ok := h.ContentIndex.Content(args.Label)
	if !ok {
		h.Logger.Info("docs_read document not found", "label", args.Label)
		return errorResult(fmt.Sprintf("Document not found: %s", args.Label)), nil, nil
	}

	h.Logger.Info("docs_read", "label", args.Label, "chars", len(content))
	return textResult(FormatDocument(args.Label, content)), nil, nil
}
