package stats

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// PreviewRunes is the maximum length of FileStats.Preview in code points.
const PreviewRunes = 100

// newlines maps CRLF and lone CR line endings to LF, as text-mode reads do.
var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// FileStats holds the text of one document and the numbers derived from it.
type FileStats struct {
	Content   string // Full decoded text
	WordCount int    // Tokens delimited by isWordSeparator
	CharCount int    // Length in Unicode code points
	Preview   string // First PreviewRunes code points of Content
	Title     string // Text of the first level-1 heading, if any
}

// ReadWithStats reads a file as UTF-8 text and computes its statistics.
// Line endings are normalized to "\n" before counting.
//
// A path that no longer exists yields a *NotFoundError. Content that is not valid
// UTF-8 yields a *DecodeError. Any other read failure is returned wrapped.
func ReadWithStats(path string) (*FileStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	content, _, err := transform.String(encoding.UTF8Validator, string(data))
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	fileStats := Compute(newlines.Replace(content))
	return &fileStats, nil
}

// Compute derives word count, character count, preview and title from text.
func Compute(content string) FileStats {
	return FileStats{
		Content:   content,
		WordCount: len(strings.FieldsFunc(content, isWordSeparator)),
		CharCount: utf8.RuneCountInString(content),
		Preview:   preview(content, PreviewRunes),
		Title:     ExtractTitle(content),
	}
}

// isWordSeparator reports Unicode white space plus the ASCII file, group, record
// and unit separators (U+001C..U+001F), which also delimit words.
func isWordSeparator(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// preview returns the first n code points of s.
func preview(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
