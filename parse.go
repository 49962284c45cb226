package tablerecon

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// DefaultNGramSize is the fingerprint substring length used when no
// explicit size is configured.
const DefaultNGramSize = 3

// The annotated-text input is tolerant pseudo-markup, not validated
// XML, so tables are recovered with lenient patterns rather than an
// XML parser. Unterminated spans simply never match and are skipped.
var (
	tableSpanPattern = regexp.MustCompile(`(?is)<table\s+id="([^"]*)"\s*>(.*?)</table\s*>`)
	paraRowPattern   = regexp.MustCompile(`(?i)<p\s+id="[^"]*-r(\d+)-c\d+-p\d+`)
	rowMarkerPattern = regexp.MustCompile(`(?i)<tr\s+id="[^"]*-r(\d+)\s*"`)
	markupPattern    = regexp.MustCompile(`<[^>]*>`)
	spaceRunPattern  = regexp.MustCompile(`\s+`)
)

// ParseTables extracts all table spans from an annotated-text document,
// in document order, using the default n-gram size.
func ParseTables(text string) []Table {
	return ParseTablesN(text, DefaultNGramSize)
}

// ParseTablesN extracts all table spans using the given n-gram size.
// Malformed or unterminated spans are skipped; the parser never fails.
func ParseTablesN(text string, ngramSize int) []Table {
	matches := tableSpanPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	tables := make([]Table, 0, len(matches))
	for _, m := range matches {
		id := strings.ToLower(strings.TrimSpace(m[1]))
		body := m[2]

		plain := stripMarkup(body)
		tables = append(tables, Table{
			ID:        id,
			PlainText: plain,
			NGrams:    buildNGrams(plain, ngramSize),
			RowCount:  countRows(body),
		})
	}

	return tables
}

// stripMarkup removes all tags and collapses whitespace runs to a
// single space.
func stripMarkup(body string) string {
	plain := markupPattern.ReplaceAllString(body, " ")
	plain = spaceRunPattern.ReplaceAllString(plain, " ")
	return strings.TrimSpace(plain)
}

// countRows returns the maximum row ordinal found inside a table span.
// Two row-marker dialects exist: paragraph markers carrying the full
// row-column-paragraph path, and bare <tr> markers. A given source uses
// one or the other, but both are always scanned.
func countRows(body string) int {
	max := 0
	for _, pattern := range []*regexp.Regexp{paraRowPattern, rowMarkerPattern} {
		for _, m := range pattern.FindAllStringSubmatch(body, -1) {
			ordinal, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if ordinal > max {
				max = ordinal
			}
		}
	}
	return max
}

// buildNGrams computes the n-gram fingerprint over the compacted
// (whitespace-removed) plain text. Text shorter than the n-gram length
// yields the whole compacted string as the single element; empty text
// yields an empty set.
func buildNGrams(plainText string, n int) map[string]struct{} {
	if n < 1 {
		n = DefaultNGramSize
	}

	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, plainText)

	grams := make(map[string]struct{})
	runes := []rune(compact)
	if len(runes) == 0 {
		return grams
	}
	if len(runes) < n {
		grams[string(runes)] = struct{}{}
		return grams
	}
	for i := 0; i+n <= len(runes); i++ {
		grams[string(runes[i:i+n])] = struct{}{}
	}
	return grams
}
