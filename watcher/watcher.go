package watcher

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// IgnoreChecker is used by the watcher to skip directories and spot ignore-file edits.
type IgnoreChecker interface {
	ShouldIgnoreDir(absolutePath string) bool
	IsIgnoreFile(absolutePath string) bool
}

// relevantPatterns are the root-relative paths whose changes can alter a scan:
// project folders, READMEs, docs folders and their markdown files.
var relevantPatterns = []string{
	"*",
	"*/README.md",
	"*/docs",
	"*/docs/*.md",
}

// Watcher watches the root, every project folder and every project docs folder,
// and emits debounced batches of changes that can affect the document set.
type Watcher struct {
	fsWatcher     *fsnotify.Watcher
	debouncer     *Debouncer
	ignoreChecker IgnoreChecker
	rootDir       string
	logger        *slog.Logger
}

// NewWatcher creates a watcher rooted at rootDir.
func NewWatcher(rootDir string, ignoreChecker IgnoreChecker, logger *slog.Logger) (*Watcher, error) {
	return newWatcher(rootDir, ignoreChecker, logger, 250*time.Millisecond)
}

func newWatcher(rootDir string, ignoreChecker IgnoreChecker, logger *slog.Logger, quiet time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher:     fsWatcher,
		debouncer:     NewDebouncer(quiet),
		ignoreChecker: ignoreChecker,
		rootDir:       filepath.Clean(rootDir),
		logger:        logger,
	}

	if err := fsWatcher.Add(w.rootDir); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	entries, err := os.ReadDir(w.rootDir)
	if err != nil {
		fsWatcher.Close()
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			w.watchProject(filepath.Join(w.rootDir, entry.Name()))
		}
	}

	return w, nil
}

// Events returns the channel that receives debounced change batches.
func (w *Watcher) Events() <-chan []Change {
	return w.debouncer.Output()
}

// Start begins listening for file system events. Call this in a goroutine.
// It runs until the watcher is closed.
func (w *Watcher) Start() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// Close stops the watcher and closes the Events channel.
func (w *Watcher) Close() error {
	err := w.fsWatcher.Close()
	w.debouncer.Stop()
	return err
}

// watchProject subscribes to a project folder and, if present, its docs folder.
func (w *Watcher) watchProject(projectDir string) {
	if w.ignoreChecker.ShouldIgnoreDir(projectDir) {
		return
	}
	w.add(projectDir)

	docsDir := filepath.Join(projectDir, "docs")
	if info, err := os.Stat(docsDir); err == nil && info.IsDir() {
		w.add(docsDir)
	}
}

func (w *Watcher) add(dir string) {
	if err := w.fsWatcher.Add(dir); err != nil {
		w.logger.Warn("failed to watch directory", "path", dir, "error", err)
	}
}

// handleEvent filters a raw fsnotify event and feeds the debouncer.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	op := opOf(event)
	if op < 0 {
		return
	}

	if w.ignoreChecker.IsIgnoreFile(path) {
		w.debouncer.Add(path, op)
		return
	}

	relativePath, err := filepath.Rel(w.rootDir, path)
	if err != nil {
		return
	}
	relativePath = filepath.ToSlash(relativePath)
	if !isRelevant(relativePath) {
		return
	}

	// New project or docs folders need their own subscription.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if strings.Count(relativePath, "/") == 0 {
				w.watchProject(path)
			} else {
				w.add(path)
			}
		}
	}

	w.debouncer.Add(path, op)
}

func isRelevant(relativePath string) bool {
	for _, pattern := range relevantPatterns {
		if matched, _ := doublestar.Match(pattern, relativePath); matched {
			return true
		}
	}
	return false
}

func opOf(event fsnotify.Event) EventOp {
	switch {
	case event.Has(fsnotify.Create):
		return OpCreate
	case event.Has(fsnotify.Write):
		return OpWrite
	case event.Has(fsnotify.Remove):
		return OpRemove
	case event.Has(fsnotify.Rename):
		return OpRename
	}
	return -1
}
