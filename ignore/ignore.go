package ignore

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
)

// IgnoreFileName is the docscan-specific ignore file read from the root directory.
const IgnoreFileName = ".docscanignore"

// Matcher decides whether a discovered document should be left out of a scan.
// It combines the root .docscanignore, custom exclude patterns and, when enabled,
// the root .gitignore.
// Matching is purely by name: paths are never stat'ed.
// Thread-safe: Reload() acquires a write lock, ShouldIgnore() acquires a read lock.
type Matcher struct {
	mu             sync.RWMutex
	rootDir        string
	useGitignore   bool
	gitIgnore      gitignore.GitIgnore
	docscanIgnore  gitignore.GitIgnore
	customPatterns []string
}

// MatcherOptions configures the ignore matcher.
type MatcherOptions struct {
	RootDir        string
	CustomPatterns []string
	UseGitignore   bool // also honor <root>/.gitignore
}

// NewMatcher creates a matcher for the given root. Missing ignore files are not an error.
func NewMatcher(options MatcherOptions) *Matcher {
	matcher := &Matcher{
		rootDir:        options.RootDir,
		useGitignore:   options.UseGitignore,
		customPatterns: normalizePatterns(options.CustomPatterns),
	}
	matcher.gitIgnore, matcher.docscanIgnore = matcher.load()
	return matcher
}

// ShouldIgnore returns true if the file at absolutePath is excluded by any rule.
// Every ancestor directory below the root is checked too, so "ProjectB/" in an
// ignore file excludes ProjectB/README.md and ProjectB/docs/*.md.
func (m *Matcher) ShouldIgnore(absolutePath string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	relativePath := m.relative(absolutePath)
	if relativePath == "" || relativePath == "." {
		return false
	}

	if ignoredByFile(m.gitIgnore, relativePath) || ignoredByFile(m.docscanIgnore, relativePath) {
		return true
	}
	return m.matchesCustomPatterns(relativePath)
}

// ShouldIgnoreDir returns true for directories that never hold project documentation
// (version control and dependency trees) or that are excluded by ignore rules.
// Used by the watcher to decide what to subscribe to.
func (m *Matcher) ShouldIgnoreDir(absolutePath string) bool {
	switch filepath.Base(absolutePath) {
	case ".git", ".svn", ".hg", "node_modules", "__pycache__",
		".idea", ".vscode", ".venv", "venv":
		return true
	}
	return m.ShouldIgnore(absolutePath)
}

// IsIgnoreFile reports whether path is one of the ignore files this matcher reads.
func (m *Matcher) IsIgnoreFile(path string) bool {
	if filepath.Dir(path) != filepath.Clean(m.rootDir) {
		return false
	}
	switch filepath.Base(path) {
	case IgnoreFileName:
		return true
	case ".gitignore":
		return m.useGitignore
	}
	return false
}

// Reload re-reads the ignore files from disk.
func (m *Matcher) Reload() {
	newGitIgnore, newDocscanIgnore := m.load()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.gitIgnore = newGitIgnore
	m.docscanIgnore = newDocscanIgnore
}

// load reads the root ignore files. The .gitignore is skipped unless enabled.
func (m *Matcher) load() (gitIgnore, docscanIgnore gitignore.GitIgnore) {
	if m.useGitignore {
		gitIgnore = loadIgnoreFile(filepath.Join(m.rootDir, ".gitignore"), m.rootDir)
	}
	docscanIgnore = loadIgnoreFile(filepath.Join(m.rootDir, IgnoreFileName), m.rootDir)
	return gitIgnore, docscanIgnore
}

func (m *Matcher) relative(absolutePath string) string {
	relativePath, err := filepath.Rel(m.rootDir, absolutePath)
	if err != nil {
		relativePath = absolutePath
	}
	return filepath.ToSlash(relativePath)
}

// matchesCustomPatterns matches user exclude patterns against the relative path and the basename.
func (m *Matcher) matchesCustomPatterns(relativePath string) bool {
	baseName := filepath.Base(relativePath)
	for _, pattern := range m.customPatterns {
		if matched, err := doublestar.Match(pattern, relativePath); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, baseName); err == nil && matched {
			return true
		}
	}
	return false
}

// ignoredByFile walks the relative path from its first directory down to the file
// itself. As in git, an excluded directory excludes everything below it.
func ignoredByFile(gi gitignore.GitIgnore, relativePath string) bool {
	if gi == nil {
		return false
	}
	parts := strings.Split(relativePath, "/")
	for i := 1; i <= len(parts); i++ {
		isDir := i < len(parts)
		match := gi.Relative(strings.Join(parts[:i], "/"), isDir)
		if match != nil && match.Ignore() {
			return true
		}
	}
	return false
}

func normalizePatterns(patterns []string) []string {
	normalized := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(strings.ReplaceAll(pattern, "\\", "/"))
		if pattern == "" || !doublestar.ValidatePattern(pattern) {
			continue
		}
		normalized = append(normalized, pattern)
	}
	return normalized
}

// loadIgnoreFile reads an ignore file and creates a GitIgnore matcher from it.
// Uses the io.Reader constructor so the file handle is closed before returning.
func loadIgnoreFile(filePath string, baseDir string) gitignore.GitIgnore {
	f, err := os.Open(filePath)
	if err != nil {
		return nil
	}
	defer f.Close()

	return gitignore.New(f, baseDir, nil)
}
