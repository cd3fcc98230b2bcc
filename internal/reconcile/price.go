package reconcile

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var (
	leadingNumber  = regexp.MustCompile(`^[+-]?(\d+(\.\d+)?|\.\d+)`)
	leadingInteger = regexp.MustCompile(`^[+-]?\d+`)
)

// CleanPrice parses a currency cell into whole units. Thousands separators,
// currency glyphs and whitespace are ignored; trailing text after the number
// ("15 cr") is dropped. Blank, unparsable and negative values yield 0.
func CleanPrice(raw string) int64 {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == ',':
			return -1
		case unicode.IsSpace(r):
			return -1
		case unicode.Is(unicode.Sc, r):
			return -1
		}
		return r
	}, raw)
	if cleaned == "" {
		return 0
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		prefix := leadingNumber.FindString(cleaned)
		if prefix == "" {
			return 0
		}
		if amount, err = decimal.NewFromString(prefix); err != nil {
			return 0
		}
	}
	if amount.IsNegative() {
		return 0
	}
	return amount.Round(0).IntPart()
}

// parseCount reads the leading integer of a cell, or 0.
func parseCount(raw string) int {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	n, err := strconv.Atoi(leadingInteger.FindString(raw))
	if err != nil {
		return 0
	}
	return n
}

// optionalCount is parseCount with zero reported as absent.
func optionalCount(raw string) *int {
	n := parseCount(raw)
	if n == 0 {
		return nil
	}
	return &n
}
