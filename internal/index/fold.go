package index

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Folder normalizes a name before comparison
type Folder func(string) string

// FoldCase lower-cases s. This is the default comparison for names.
func FoldCase(s string) string {
	return strings.ToLower(s)
}

// FoldAccents lower-cases s and strips combining marks, so "Bénin" and "benin" compare equal.
func FoldAccents(s string) string {
	// transform.Chain is stateful, build one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}
