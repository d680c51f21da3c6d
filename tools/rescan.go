package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RescanArgs defines the input parameters for the docs_rescan tool.
type RescanArgs struct{}

// RescanOutcome summarizes a completed rescan.
type RescanOutcome struct {
	Readmes int
	Docs    int
	Skipped int
	Elapsed time.Duration
}

// RescanFunc performs a full rescan. It is provided by main to avoid an import cycle.
type RescanFunc func() (RescanOutcome, error)

// RescanHandler holds the dependencies for the rescan tool.
type RescanHandler struct {
	DoRescan RescanFunc
	Logger   *slog.Logger
}

// Handle processes a docs_rescan request.
func (h *RescanHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args RescanArgs) (*mcp.CallToolResult, any, error) {
	h.Logger.Info("docs_rescan started")

	outcome, err := h.DoRescan()
	if err != nil {
		h.Logger.Error("docs_rescan failed", "error", err)
		return errorResult(fmt.Sprintf("Rescan error: %v", err)), nil, nil
	}

	h.Logger.Info("docs_rescan complete",
		"readmes", outcome.Readmes,
		"docs", outcome.Docs,
		"skipped", outcome.Skipped,
		"elapsed", outcome.Elapsed,
	)

	text := fmt.Sprintf("Rescan complete: %d README files, %d doc files", outcome.Readmes, outcome.Docs)
	if outcome.Skipped > 0 {
		text += fmt.Sprintf(", %d skipped", outcome.Skipped)
	}
	text += fmt.Sprintf(" in %s", outcome.Elapsed.Round(time.Millisecond))
	return textResult(text), nil, nil
}
