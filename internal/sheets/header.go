package sheets

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

var (
	symbolRunes = runes.Remove(runes.Predicate(isDecoration))
	parenGroup  = regexp.MustCompile(`\([^()]*\)`)
	lower       = cases.Lower(language.Und)
)

// isDecoration matches emoji and other pictographs, currency signs, modifier
// symbols (skin tones), invisible format characters (ZWJ) and variation selectors.
func isDecoration(r rune) bool {
	return unicode.In(r, unicode.So, unicode.Sc, unicode.Sk, unicode.Cf, unicode.Me, unicode.Variation_Selector)
}

// NormalizeHeader canonicalizes a header cell for matching: decorations and
// parenthesised groups are removed, '-', '_' and '/' become spaces, other
// punctuation is dropped, and the result is lower-cased with single spaces.
// NormalizeHeader(NormalizeHeader(h)) == NormalizeHeader(h).
func NormalizeHeader(h string) string {
	s, _, err := transform.String(symbolRunes, h)
	if err != nil {
		s = h
	}
	for {
		stripped := parenGroup.ReplaceAllString(s, " ")
		if stripped == s {
			break
		}
		s = stripped
	}
	s = lower.String(s)
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '-' || r == '_' || r == '/':
			return ' '
		case unicode.IsPunct(r):
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeHeaders normalizes every header, preserving positions.
func NormalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = NormalizeHeader(h)
	}
	return out
}
