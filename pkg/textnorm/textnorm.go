package textnorm

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds text into a comparable form: ascii only, lowercase, dashes and
// underscores turned into spaces and whitespace runs collapsed to a single space.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(transliterate(text))
	text = strings.NewReplacer("-", " ", "_", " ").Replace(text)
	return strings.Join(strings.Fields(text), " ")
}

// transliterate strips combining marks first so common latin diacritics fold
// locally, anything left outside ascii goes through the unidecode tables.
func transliterate(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}

	if isASCII(folded) {
		return folded
	}
	return unidecode.Unidecode(folded)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}
