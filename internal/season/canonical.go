package season

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var finalSigma = strings.NewReplacer("ς", "σ")

// Canonicalize folds a player name so different renderings of the same person
// compare equal: accents are stripped, final sigma becomes medial sigma, and
// the result is uppercased. Canonicalize is idempotent.
func Canonicalize(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, name)
	if err != nil {
		stripped = name
	}
	return strings.ToUpper(finalSigma.Replace(stripped))
}

func containsDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}
