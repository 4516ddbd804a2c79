package identity

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Slug converts arbitrary node text into a hint: NFC-normalized, lowercased,
// with every non-alphanumeric run replaced by a single hyphen, trimmed, and
// truncated to MaxHintLen runes. Empty or fully non-alphanumeric input
// yields FallbackHint.
func Slug(text string) string {
	normalized := norm.NFC.String(text)

	var b strings.Builder
	b.Grow(len(normalized))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range normalized {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	slug := strings.TrimRight(b.String(), "-")
	slug = truncateRunes(slug, MaxHintLen)
	slug = strings.TrimRight(slug, "-")

	if slug == "" {
		return FallbackHint
	}
	return slug
}

// truncateRunes cuts s to at most n runes without splitting a rune.
func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
