package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/lexandro/docscan/finder"
	"github.com/lexandro/docscan/index"
	"github.com/lexandro/docscan/report"
	"github.com/lexandro/docscan/stats"
)

// ScanResult holds the outcome of one full scan.
type ScanResult struct {
	Readmes  int // READMEs indexed
	Docs     int // docs files indexed
	Skipped  int // discovered but unreadable or undecodable
	Duration time.Duration
}

// performScan rebuilds both indexes from the finder's results, READMEs first.
// Documents go into fresh indexes that replace the live ones only once the scan
// is complete, so concurrent readers never see a half-built set. Files are read
// one at a time. A file that vanished or is not valid UTF-8 is skipped with a
// warning rather than aborting the scan.
func performScan(
	docFinder *finder.Finder,
	docIndex *index.DocumentIndex,
	contentIndex *index.ContentIndex,
	logger *slog.Logger,
) (ScanResult, error) {
	start := time.Now()
	var result ScanResult

	freshDocs := index.NewDocumentIndex()
	freshContent, err := index.NewContentIndex()
	if err != nil {
		return result, err
	}

	groups := []struct {
		kind  index.Kind
		paths []string
		count *int
	}{
		{index.KindReadme, docFinder.FindReadmes(), &result.Readmes},
		{index.KindDocs, docFinder.FindDocs(), &result.Docs},
	}

	for _, group := range groups {
		for _, path := range group.paths {
			doc, err := loadDocument(path, group.kind)
			if err != nil {
				result.Skipped++
				logger.Warn("skipped document", "path", path, "error", err)
				continue
			}
			freshDocs.Add(doc)
			if err := freshContent.IndexDocument(doc); err != nil {
				freshContent.Close()
				return result, err
			}
			*group.count++
		}
	}

	docIndex.ReplaceWith(freshDocs)
	if err := contentIndex.ReplaceWith(freshContent); err != nil {
		return result, fmt.Errorf("replacing content index: %w", err)
	}

	result.Duration = time.Since(start)
	return result, nil
}

// loadDocument reads one file and wraps its statistics in an index document.
func loadDocument(path string, kind index.Kind) (*index.Document, error) {
	fileStats, err := stats.ReadWithStats(path)
	if err != nil {
		return nil, err
	}

	doc := &index.Document{
		Path:  path,
		Label: report.Label(path),
		Kind:  kind,
		Stats: *fileStats,
	}
	if info, err := os.Stat(path); err == nil {
		doc.ModTime = info.ModTime()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return doc, nil
}
