package assessment

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize reduces text to the form used for exact-match comparison:
// NFKC, case folded, punctuation and symbols removed, whitespace collapsed.
func Normalize(s string) string {
	// Casers are stateful, so each call gets its own.
	s = cases.Fold().String(norm.NFKC.String(s))

	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch {
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			continue
		case unicode.IsSpace(r):
			space = true
		default:
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Matches reports whether a submission equals the reference answer,
// ignoring capitalization, punctuation, and spacing.
func Matches(submitted, reference string) bool {
	return Normalize(submitted) == Normalize(reference)
}
