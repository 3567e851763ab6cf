// Package normalize implements the column-level rules used to make a
// tabular file Sheets/Looker friendly: name canonicalization, semantic
// column categories, category-specific number formatting, identifier
// injection and advisory schema types.
package normalize

import (
	"regexp"
	"strings"
)

var (
	nonWordPattern       = regexp.MustCompile(`[^\p{L}\p{N}\p{M}_\s]`)
	spaceRunPattern      = regexp.MustCompile(`\s+`)
	underscoreRunPattern = regexp.MustCompile(`_+`)
)

// ColumnName canonicalizes a raw header label into lower snake_case.
// A label made only of punctuation yields "".
func ColumnName(raw string) string {
	s := strings.TrimSpace(raw)
	s = nonWordPattern.ReplaceAllString(s, "_")
	s = spaceRunPattern.ReplaceAllString(s, "_")
	s = underscoreRunPattern.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	return strings.ToLower(s)
}

// ColumnNames applies ColumnName to every label and reports whether any
// label changed.
func ColumnNames(raw []string) ([]string, bool) {
	out := make([]string, len(raw))
	changed := false
	for i, c := range raw {
		out[i] = ColumnName(c)
		if out[i] != c {
			changed = true
		}
	}
	return out, changed
}
