package report

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/lexandro/docscan/finder"
	"github.com/lexandro/docscan/stats"
)

// PreviewLimit is the number of documents the report previews.
const PreviewLimit = 3

const bannerWidth = 60

// Options configures a report run.
type Options struct {
	Root   string
	Filter finder.PathFilter // optional name-based exclusion
	Color  bool
	Logger *slog.Logger
}

// Run discovers READMEs and docs under opts.Root, prints the counts and previews
// the first PreviewLimit documents to out.
//
// A document that vanished between discovery and reading is reported on one line
// and skipped. Every other read failure, including invalid UTF-8, stops the run and
// is returned.
func Run(opts Options, out io.Writer) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	p := NewPrinter(out, opts.Color)
	docFinder := finder.New(opts.Root, opts.Filter, logger)

	p.line("%s", p.paint(p.heading, "🔍 Finding README files..."))
	readmes := docFinder.FindReadmes()
	p.line("   Found %d README files\n", len(readmes))

	p.line("%s", p.paint(p.heading, "🔍 Finding documentation files..."))
	docs := docFinder.FindDocs()
	p.line("   Found %d doc files\n", len(docs))

	all := make([]string, 0, len(readmes)+len(docs))
	all = append(all, readmes...)
	all = append(all, docs...)
	p.line("📊 Total files to process: %d\n", len(all))

	logger.Info("documents discovered",
		"root", opts.Root,
		"readmes", len(readmes),
		"docs", len(docs),
	)

	banner := strings.Repeat("=", bannerWidth)
	p.line("%s", banner)
	p.line("Preview of first %d files:", PreviewLimit)
	p.line("%s", banner)

	return p.PreviewDocuments(all, logger)
}

// PreviewDocuments reads and renders up to PreviewLimit of paths, in order.
func (p *Printer) PreviewDocuments(paths []string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if len(paths) > PreviewLimit {
		paths = paths[:PreviewLimit]
	}

	for _, path := range paths {
		fileStats, err := stats.ReadWithStats(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Warn("document disappeared before reading", "path", path)
				p.line("%s", p.paint(p.fail, "❌ Error: "+err.Error()))
				continue
			}
			logger.Error("reading document failed", "path", path, "error", err)
			return err
		}
		p.RenderPreview(path, fileStats)
	}
	return nil
}
