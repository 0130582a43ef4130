package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
	slugHyphenRuns   = regexp.MustCompile(`-+`)

	// NFD split + strip combining marks + NFC recompose folds accented
	// letters from every seeded language down to ASCII.
	slugFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// GenerateSlug normalizes a translation name into its URL slug. The same
// input always yields the same slug; uniqueness per language is enforced
// by the database, not here.
func GenerateSlug(input string) string {
	// Fold diacritics to ASCII ("Café Siësta" -> "Cafe Siesta")
	folded, _, err := transform.String(slugFold, input)
	if err != nil {
		folded = input
	}

	slug := strings.ToLower(folded)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugHyphenRuns.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	return slug
}
