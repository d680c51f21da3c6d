package index

import (
	"time"

	"github.com/lexandro/docscan/stats"
)

// Kind tells which finder pattern discovered a document.
type Kind string

const (
	KindReadme Kind = "readme"
	KindDocs   Kind = "docs"
)

// Document is one discovered and successfully read documentation file.
type Document struct {
	Path    string // Absolute file path
	Label   string // Display label, e.g. "ProjectX/docs/guide.md"; unique key in the index
	Kind    Kind
	Stats   stats.FileStats
	ModTime time.Time
}
