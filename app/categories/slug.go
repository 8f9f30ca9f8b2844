package categories

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Slugify derives the URL-safe identifier for a category name:
// lowercase, diacritics stripped, every run of non-alphanumerics folded
// to a single hyphen, no leading or trailing hyphen.
func Slugify(name string) string {
	decomposed := norm.NFD.String(strings.ToLower(name))

	var b strings.Builder
	lastHyphen := false
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining mark left over from decomposition
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
