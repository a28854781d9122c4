package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText lower-cases, strips diacritics, replaces punctuation with
// spaces and collapses whitespace. Used for fuzzy name comparison.
func NormalizeText(value string) string {
	if value == "" {
		return ""
	}

	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(t, value)
	if err != nil {
		stripped = value
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range strings.ToLower(stripped) {
		switch {
		case r > unicode.MaxASCII:
			// non-latin leftovers are dropped
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ShortTeamCode abbreviates a team name, e.g. "Manchester United" -> "MU"
func ShortTeamCode(value string) string {
	if value == "" {
		return "?"
	}

	normalized := NormalizeText(value)
	if normalized == "" {
		cleaned := strings.ReplaceAll(strings.ToUpper(value), " ", "")
		return firstRunes(cleaned, 3, "?")
	}

	var words []string
	for _, w := range strings.Split(normalized, " ") {
		if w != "" && w != "and" {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return firstRunes(strings.ToUpper(strings.ReplaceAll(normalized, " ", "")), 3, "?")
	}

	var initials strings.Builder
	for _, w := range words {
		initials.WriteByte(w[0])
	}
	if initials.Len() >= 2 {
		return firstRunes(strings.ToUpper(initials.String()), 4, "?")
	}

	return firstRunes(strings.ToUpper(strings.Join(words, "")), 3, "?")
}

func firstRunes(s string, n int, fallback string) string {
	if s == "" {
		return fallback
	}
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}
