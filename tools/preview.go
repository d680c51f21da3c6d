package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lexandro/docscan/index"
	"github.com/lexandro/docscan/report"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// PreviewArgs defines the input parameters for the docs_preview tool.
type PreviewArgs struct {
	Label string `json:"label" jsonschema:"Document label as shown by docs_list (e.g. ProjectX/docs/guide.md)"`
}

// PreviewHandler holds the dependencies for the preview tool.
type PreviewHandler struct {
	DocumentIndex *index.DocumentIndex
	Logger        *slog.Logger
}

// Handle processes a docs_preview request, returning the same block the report prints.
func (h *PreviewHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args PreviewArgs) (*mcp.CallToolResult, any, error) {
	if args.Label == "" {
		return errorResult("Error: label parameter is required"), nil, nil
	}

	doc := h.DocumentIndex.Get(args.Label)
	if doc == nil {
		h.Logger.Info("docs_preview document not found", "label", args.Label)
		return errorResult(fmt.Sprintf("Document not found: %s", args.Label)), nil, nil
	}

	h.Logger.Info("docs_preview", "label", doc.Label)
	block := strings.TrimPrefix(report.PreviewBlock(doc.Path, &doc.Stats), "\n")
	return textResult(block), nil, nil
}
