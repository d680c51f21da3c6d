package index

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/bmatcuk/doublestar/v4"
)

// ContentSearchResult holds the matching lines of one document.
type ContentSearchResult struct {
	Label   string
	Title   string
	Matches []LineMatch
}

// LineMatch represents a single line match within a document.
type LineMatch struct {
	LineNumber    int
	LineText      string
	ContextBefore []string
	ContextAfter  []string
}

// SearchOptions configures a content search.
type SearchOptions struct {
	Query        string
	LabelGlob    string // optional doublestar pattern over labels
	Kind         Kind   // optional; "" searches both kinds
	MaxResults   int
	ContextLines int
}

// Search performs a full-text search across all indexed documents.
// Query format:
//   - Plain text: match query (word-level matching)
//   - "quoted text": phrase query (exact phrase match)
//   - /regex/: regexp query
//
// Returns results grouped per document and the total number of matching lines.
func (ci *ContentIndex) Search(options SearchOptions) ([]ContentSearchResult, int, error) {
	ci.mu.RLock()
	defer ci.mu.RUnlock()

	if strings.TrimSpace(options.Query) == "" {
		return nil, 0, fmt.Errorf("empty query")
	}
	if options.MaxResults <= 0 {
		options.MaxResults = 20
	}
	if options.ContextLines < 0 {
		options.ContextLines = 0
	}

	labelGlob := normalizeLabel(options.LabelGlob)
	if labelGlob != "" && !doublestar.ValidatePattern(labelGlob) {
		return nil, 0, fmt.Errorf("invalid glob pattern: %s", options.LabelGlob)
	}

	var bleveQuery query.Query = buildQuery(options.Query)
	if options.Kind != "" {
		kindQuery := bleve.NewTermQuery(string(options.Kind))
		kindQuery.SetField("kind")
		bleveQuery = bleve.NewConjunctionQuery(bleveQuery, kindQuery)
	}

	searchRequest := bleve.NewSearchRequest(bleveQuery)
	searchRequest.Size = options.MaxResults * 5 // headroom for glob filtering
	searchRequest.Fields = []string{"title"}

	searchResults, err := ci.index.Search(searchRequest)
	if err != nil {
		return nil, 0, fmt.Errorf("searching index: %w", err)
	}

	var results []ContentSearchResult
	totalMatches := 0

	for _, hit := range searchResults.Hits {
		label := hit.ID
		content, ok := ci.contents[label]
		if !ok {
			continue
		}

		if labelGlob != "" {
			matched, matchErr := doublestar.Match(labelGlob, label)
			if matchErr != nil || !matched {
				continue
			}
		}

		// Stemmed or title-only hits stay in the results with no matching lines.
		lineMatches := findMatchingLines(content, options.Query, options.ContextLines)
		totalMatches += len(lineMatches)

		title, _ := hit.Fields["title"].(string)
		results = append(results, ContentSearchResult{
			Label:   label,
			Title:   title,
			Matches: lineMatches,
		})

		if len(results) >= options.MaxResults {
			break
		}
	}

	return results, totalMatches, nil
}

// buildQuery parses the query string into a Bleve query.
func buildQuery(queryString string) query.Query {
	queryString = strings.TrimSpace(queryString)

	if strings.HasPrefix(queryString, "/") && strings.HasSuffix(queryString, "/") && len(queryString) > 2 {
		return bleve.NewRegexpQuery(queryString[1 : len(queryString)-1])
	}

	if strings.HasPrefix(queryString, "\"") && strings.HasSuffix(queryString, "\"") && len(queryString) > 2 {
		return bleve.NewMatchPhraseQuery(queryString[1 : len(queryString)-1])
	}

	return bleve.NewMatchQuery(queryString)
}

// findMatchingLines searches content line by line for the query terms.
// A line matches when it contains any of the query words (case-insensitive);
// quoted and regex queries match on the whole stripped term.
func findMatchingLines(content string, queryString string, contextLines int) []LineMatch {
	allLines := lines(content)
	terms := searchTerms(queryString)

	var matches []LineMatch
	for lineIdx, line := range allLines {
		if !containsAny(strings.ToLower(line), terms) {
			continue
		}

		match := LineMatch{
			LineNumber: lineIdx + 1,
			LineText:   line,
		}

		if contextLines > 0 {
			start := max(lineIdx-contextLines, 0)
			match.ContextBefore = append(match.ContextBefore, allLines[start:lineIdx]...)

			end := min(lineIdx+contextLines+1, len(allLines))
			match.ContextAfter = append(match.ContextAfter, allLines[lineIdx+1:end]...)
		}

		matches = append(matches, match)
	}

	return matches
}

// searchTerms strips query syntax and returns lower-cased terms for line matching.
func searchTerms(queryString string) []string {
	queryString = strings.TrimSpace(queryString)

	if len(queryString) > 2 {
		if (strings.HasPrefix(queryString, "/") && strings.HasSuffix(queryString, "/")) ||
			(strings.HasPrefix(queryString, "\"") && strings.HasSuffix(queryString, "\"")) {
			return []string{strings.ToLower(queryString[1 : len(queryString)-1])}
		}
	}

	return strings.Fields(strings.ToLower(queryString))
}

func containsAny(line string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(line, term) {
			return true
		}
	}
	return false
}
