package finder

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	// ReadmePattern matches README.md files exactly one directory below the root.
	ReadmePattern = "*/README.md"
	// DocsPattern matches markdown files in a docs folder two levels below the root.
	DocsPattern = "*/docs/*.md"
)

// PathFilter drops discovered paths by name. *ignore.Matcher satisfies it.
type PathFilter interface {
	ShouldIgnore(absolutePath string) bool
}

// Finder locates documentation files under a projects root directory.
// Matching is a single-level name test: matched files are never opened or stat'ed.
type Finder struct {
	Root   string
	Filter PathFilter // optional
	Logger *slog.Logger
}

// New creates a Finder for root. filter may be nil.
func New(root string, filter PathFilter, logger *slog.Logger) *Finder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Finder{Root: root, Filter: filter, Logger: logger}
}

// FindReadmes returns every <root>/*/README.md.
func (f *Finder) FindReadmes() []string {
	return f.Find(ReadmePattern)
}

// FindDocs returns every <root>/*/docs/*.md.
func (f *Finder) FindDocs() []string {
	return f.Find(DocsPattern)
}

// Find returns root-joined paths matching a slash-separated glob pattern relative
// to the root. It never fails: a missing root, an unreadable directory or a bad
// pattern all yield an empty result.
func (f *Finder) Find(pattern string) []string {
	matches, err := doublestar.Glob(os.DirFS(f.Root), pattern)
	if err != nil {
		f.Logger.Debug("glob failed", "root", f.Root, "pattern", pattern, "error", err)
		return []string{}
	}

	paths := make([]string, 0, len(matches))
	for _, match := range matches {
		path := filepath.Join(f.Root, filepath.FromSlash(match))
		if f.Filter != nil && f.Filter.ShouldIgnore(path) {
			f.Logger.Debug("ignored document", "path", path)
			continue
		}
		paths = append(paths, path)
	}

	f.Logger.Debug("glob complete", "pattern", pattern, "matches", len(matches), "kept", len(paths))
	return paths
}
