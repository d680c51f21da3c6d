package index

import (
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
)

// ContentIndex provides full-text search over document text using a Bleve in-memory index.
type ContentIndex struct {
	mu    sync.RWMutex
	index bleve.Index
	// contents keeps raw text for line-level result extraction, keyed by label
	contents map[string]string
}

// NewContentIndex creates a new in-memory Bleve content index.
func NewContentIndex() (*ContentIndex, error) {
	bleveIndex, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("creating bleve index: %w", err)
	}

	return &ContentIndex{
		index:    bleveIndex,
		contents: make(map[string]string),
	}, nil
}

// bleveDocument is the document structure stored in Bleve.
type bleveDocument struct {
	Content string `json:"content"`
	Title   string `json:"title"`
	Label   string `json:"label"`
	Kind    string `json:"kind"`
}

// buildIndexMapping creates the Bleve mapping for documentation text.
func buildIndexMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	contentFieldMapping := bleve.NewTextFieldMapping()
	contentFieldMapping.Store = false // raw text lives in contents
	contentFieldMapping.IncludeInAll = true
	docMapping.AddFieldMappingsAt("content", contentFieldMapping)

	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Store = true
	titleFieldMapping.IncludeInAll = true
	docMapping.AddFieldMappingsAt("title", titleFieldMapping)

	labelFieldMapping := bleve.NewTextFieldMapping()
	labelFieldMapping.Store = true
	labelFieldMapping.IncludeInAll = false
	docMapping.AddFieldMappingsAt("label", labelFieldMapping)

	kindFieldMapping := bleve.NewKeywordFieldMapping()
	kindFieldMapping.Store = true
	kindFieldMapping.IncludeInAll = false
	docMapping.AddFieldMappingsAt("kind", kindFieldMapping)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// IndexDocument adds or updates a document's text in the search index.
func (ci *ContentIndex) IndexDocument(doc *Document) error {
	ci.mu.Lock()
	defer ci.mu.Unlock()

	ci.contents[doc.Label] = doc.Stats.Content

	bleveDoc := bleveDocument{
		Content: doc.Stats.Content,
		Title:   doc.Stats.Title,
		Label:   doc.Label,
		Kind:    string(doc.Kind),
	}
	if err := ci.index.Index(doc.Label, bleveDoc); err != nil {
		return fmt.Errorf("indexing document %s: %w", doc.Label, err)
	}
	return nil
}

// DocumentCount returns the number of documents in the Bleve index.
func (ci *ContentIndex) DocumentCount() uint64 {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	count, _ := ci.index.DocCount()
	return count
}

// Content returns the raw text of an indexed document.
func (ci *ContentIndex) Content(label string) (string, bool) {
	ci.mu.RLock()
	defer ci.mu.RUnlock()

	content, ok := ci.contents[normalizeLabel(label)]
	return content, ok
}

// Close closes the Bleve index.
func (ci *ContentIndex) Close() error {
	ci.mu.Lock()
	defer ci.mu.Unlock()
	if ci.index == nil {
		return nil
	}
	return ci.index.Close()
}

// ReplaceWith swaps in the index and text held by fresh, then closes the old
// index. Readers see either the old or the new contents, never a partial set.
// fresh must not be used afterwards.
func (ci *ContentIndex) ReplaceWith(fresh *ContentIndex) error {
	fresh.mu.Lock()
	newIndex, newContents := fresh.index, fresh.contents
	fresh.index, fresh.contents = nil, nil
	fresh.mu.Unlock()

	ci.mu.Lock()
	oldIndex := ci.index
	ci.index = newIndex
	ci.contents = newContents
	ci.mu.Unlock()

	if err := oldIndex.Close(); err != nil {
		return fmt.Errorf("closing old index: %w", err)
	}
	return nil
}

// lines splits text into lines without the trailing empty line of a final newline.
func lines(content string) []string {
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}
