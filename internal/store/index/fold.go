package index

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	apostrophes     = strings.NewReplacer("’", "'", "′", "'")
	moveApostrophes = strings.NewReplacer("'", "’", "′", "’")
)

// Fold normalizes a lookup key: lowercase, curly and prime apostrophes as
// plain ones, and accents stripped.
func Fold(s string) string {
	return deaccent(apostrophes.Replace(strings.ToLower(s)))
}

// deaccent decomposes s, drops combining marks and recomposes
// compatibility characters
func deaccent(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFKC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// foldMoveName matches the typographic apostrophe used in move names
func foldMoveName(s string) string {
	return deaccent(moveApostrophes.Replace(strings.ToLower(s)))
}
