package index

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// DocumentIndex keeps scanned documents in memory, keyed by label.
// It uses a map for O(1) lookups and a sorted slice for glob iteration.
type DocumentIndex struct {
	mu           sync.RWMutex
	documents    map[string]*Document
	sortedLabels []string
}

// NewDocumentIndex creates a new empty document index.
func NewDocumentIndex() *DocumentIndex {
	return &DocumentIndex{
		documents:    make(map[string]*Document),
		sortedLabels: make([]string, 0),
	}
}

// Add adds or replaces a document.
func (di *DocumentIndex) Add(doc *Document) {
	di.mu.Lock()
	defer di.mu.Unlock()

	_, exists := di.documents[doc.Label]
	di.documents[doc.Label] = doc

	if !exists {
		di.sortedLabels = append(di.sortedLabels, doc.Label)
		sort.Strings(di.sortedLabels)
	}
}

// Get returns the document with the given label, or nil.
func (di *DocumentIndex) Get(label string) *Document {
	di.mu.RLock()
	defer di.mu.RUnlock()
	return di.documents[normalizeLabel(label)]
}

// Count returns the number of documents.
func (di *DocumentIndex) Count() int {
	di.mu.RLock()
	defer di.mu.RUnlock()
	return len(di.documents)
}

// Summary holds aggregate numbers over the index.
type Summary struct {
	Readmes    int
	Docs       int
	TotalWords int
	TotalChars int
}

// Summarize counts documents per kind and totals their statistics.
func (di *DocumentIndex) Summarize() Summary {
	di.mu.RLock()
	defer di.mu.RUnlock()

	var summary Summary
	for _, doc := range di.documents {
		switch doc.Kind {
		case KindReadme:
			summary.Readmes++
		case KindDocs:
			summary.Docs++
		}
		summary.TotalWords += doc.Stats.WordCount
		summary.TotalChars += doc.Stats.CharCount
	}
	return summary
}

// SearchByGlob returns documents whose label matches a doublestar pattern,
// in label order, up to maxResults (default 50).
func (di *DocumentIndex) SearchByGlob(pattern string, maxResults int) ([]*Document, error) {
	di.mu.RLock()
	defer di.mu.RUnlock()

	if maxResults <= 0 {
		maxResults = 50
	}
	pattern = normalizeLabel(pattern)
	if pattern == "" {
		pattern = "**"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}

	var results []*Document
	for _, label := range di.sortedLabels {
		if len(results) >= maxResults {
			break
		}
		matched, err := doublestar.Match(pattern, label)
		if err != nil || !matched {
			continue
		}
		results = append(results, di.documents[label])
	}
	return results, nil
}

// All returns every document in label order.
func (di *DocumentIndex) All() []*Document {
	di.mu.RLock()
	defer di.mu.RUnlock()

	result := make([]*Document, 0, len(di.sortedLabels))
	for _, label := range di.sortedLabels {
		result = append(result, di.documents[label])
	}
	return result
}

// ReplaceWith swaps in the documents held by fresh in one step.
// fresh must not be used afterwards.
func (di *DocumentIndex) ReplaceWith(fresh *DocumentIndex) {
	fresh.mu.Lock()
	documents, sortedLabels := fresh.documents, fresh.sortedLabels
	fresh.documents, fresh.sortedLabels = make(map[string]*Document), make([]string, 0)
	fresh.mu.Unlock()

	di.mu.Lock()
	defer di.mu.Unlock()
	di.documents = documents
	di.sortedLabels = sortedLabels
}

func normalizeLabel(label string) string {
	return strings.TrimPrefix(strings.ReplaceAll(strings.TrimSpace(label), "\\", "/"), "/")
}
