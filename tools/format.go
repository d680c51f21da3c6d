package tools

import (
	"fmt"
	"strings"

	"github.com/lexandro/docscan/index"
	"github.com/lexandro/docscan/report"
)

// FormatSearchResults formats content search results as human-readable text,
// grouped by document with line numbers and context.
func FormatSearchResults(results []index.ContentSearchResult, totalMatches int) string {
	if len(results) == 0 {
		return "No matches found."
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "Found %d matching lines in %d documents:\n\n", totalMatches, len(results))

	for i, result := range results {
		if i > 0 {
			builder.WriteString("\n")
		}
		if result.Title != "" {
			fmt.Fprintf(&builder, "── %s (%s) ──\n", result.Label, result.Title)
		} else {
			fmt.Fprintf(&builder, "── %s ──\n", result.Label)
		}

		for _, match := range result.Matches {
			for _, ctxLine := range match.ContextBefore {
				fmt.Fprintf(&builder, "  %s\n", ctxLine)
			}
			fmt.Fprintf(&builder, "  %d: %s\n", match.LineNumber, match.LineText)
			for _, ctxLine := range match.ContextAfter {
				fmt.Fprintf(&builder, "  %s\n", ctxLine)
			}
		}
	}

	return builder.String()
}

// FormatDocumentList formats documents as one line each: label, kind, word count and title.
func FormatDocumentList(docs []*index.Document) string {
	if len(docs) == 0 {
		return "No documents matched."
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "Found %d documents:\n\n", len(docs))

	for _, doc := range docs {
		fmt.Fprintf(&builder, "  %s  (%s, %s words)", doc.Label, doc.Kind, report.FormatCount(doc.Stats.WordCount))
		if doc.Stats.Title != "" {
			fmt.Fprintf(&builder, "  %s", doc.Stats.Title)
		}
		builder.WriteString("\n")
	}

	return builder.String()
}

// FormatDocument formats a document's text with a header and numbered lines.
func FormatDocument(label string, content string) string {
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	lineCount := len(lines)

	var builder strings.Builder
	fmt.Fprintf(&builder, "── %s (%d lines) ──\n", label, lineCount)

	width := len(fmt.Sprintf("%d", lineCount))
	for i, line := range lines {
		fmt.Fprintf(&builder, "%*d│ %s\n", width, i+1, line)
	}

	return builder.String()
}
