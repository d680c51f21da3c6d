package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lexandro/docscan/index"
	"github.com/lexandro/docscan/report"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// StatusArgs defines the input parameters for the docs_status tool (none required).
type StatusArgs struct{}

// StatusHandler holds the dependencies for the status tool.
type StatusHandler struct {
	DocumentIndex *index.DocumentIndex
	ContentIndex  *index.ContentIndex
	StartTime     time.Time
	RootDir       string
	LastScan      func() time.Time // optional
	Logger        *slog.Logger
}

// Handle processes a docs_status request.
func (h *StatusHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args StatusArgs) (*mcp.CallToolResult, any, error) {
	summary := h.DocumentIndex.Summarize()
	searchable := h.ContentIndex.DocumentCount()
	uptime := time.Since(h.StartTime)

	h.Logger.Info("docs_status",
		"readmes", summary.Readmes,
		"docs", summary.Docs,
		"words", summary.TotalWords,
		"uptime", uptime,
	)

	var builder strings.Builder
	builder.WriteString("=== docscan Status ===\n\n")
	fmt.Fprintf(&builder, "Root directory: %s\n", h.RootDir)
	fmt.Fprintf(&builder, "Uptime: %s\n", formatDuration(uptime))
	if h.LastScan != nil {
		if last := h.LastScan(); !last.IsZero() {
			fmt.Fprintf(&builder, "Last scan: %s ago\n", formatDuration(time.Since(last)))
		}
	}
	fmt.Fprintf(&builder, "README files: %d\n", summary.Readmes)
	fmt.Fprintf(&builder, "Doc files: %d\n", summary.Docs)
	fmt.Fprintf(&builder, "Searchable documents: %d\n", searchable)
	fmt.Fprintf(&builder, "Total words: %s\n", report.FormatCount(summary.TotalWords))
	fmt.Fprintf(&builder, "Total characters: %s\n", report.FormatCount(summary.TotalChars))

	return textResult(builder.String()), nil, nil
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	totalSeconds := int(d.Seconds())
	if totalSeconds < 60 {
		return fmt.Sprintf("%ds", totalSeconds)
	}
	totalMinutes := totalSeconds / 60
	remainderSeconds := totalSeconds % 60
	if totalMinutes < 60 {
		return fmt.Sprintf("%dm%ds", totalMinutes, remainderSeconds)
	}
	hours := totalMinutes / 60
	remainderMinutes := totalMinutes % 60
	return fmt.Sprintf("%dh%dm", hours, remainderMinutes)
}
