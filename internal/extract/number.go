package extract

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNoAmount is returned when a string contains no digits at all.
	ErrNoAmount = errors.New("no numeric amount")
	// ErrAmbiguousAmount is returned when the decimal/thousands separators
	// cannot be disambiguated. The string is rejected rather than guessed.
	ErrAmbiguousAmount = errors.New("ambiguous amount format")
	// ErrNonPositiveAmount is returned for zero or negative amounts.
	ErrNonPositiveAmount = errors.New("non-positive amount")
)

// ParseAmount parses a price string into a positive float.
// Currency symbols, whitespace and any other non-numeric glyphs are stripped
// first. Both '.' and ',' may act as either decimal or thousands separators;
// the separator roles are resolved heuristically and ambiguous inputs like
// "12.34.56" are rejected.
func ParseAmount(s string) (float64, error) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.TrimRight(b.String(), ".,")
	if cleaned == "" || !strings.ContainsAny(cleaned, "0123456789") {
		return 0, ErrNoAmount
	}

	canonical, err := normalizeSeparators(cleaned)
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseFloat(canonical, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrAmbiguousAmount, s)
	}
	if v <= 0 {
		return 0, ErrNonPositiveAmount
	}
	return v, nil
}

// normalizeSeparators rewrites a digits-and-separators string into the
// canonical "1234.56" form, or reports it as ambiguous.
func normalizeSeparators(s string) (string, error) {
	dots := strings.Count(s, ".")
	commas := strings.Count(s, ",")

	switch {
	case dots == 0 && commas == 0:
		return s, nil

	case dots > 0 && commas > 0:
		// The separator kind appearing last is the decimal point; the other
		// kind must form valid 3-digit thousands groups before it.
		dec, thou := byte('.'), byte(',')
		if strings.LastIndexByte(s, ',') > strings.LastIndexByte(s, '.') {
			dec, thou = ',', '.'
		}
		if strings.Count(s, string(dec)) != 1 {
			return "", fmt.Errorf("%w: %q", ErrAmbiguousAmount, s)
		}
		decIdx := strings.IndexByte(s, dec)
		intPart, fracPart := s[:decIdx], s[decIdx+1:]
		if len(fracPart) < 1 || len(fracPart) > 2 || strings.ContainsRune(fracPart, rune(thou)) {
			return "", fmt.Errorf("%w: %q", ErrAmbiguousAmount, s)
		}
		joined, err := joinThousands(intPart, thou)
		if err != nil {
			return "", err
		}
		return joined + "." + fracPart, nil

	default:
		sep := byte('.')
		count := dots
		if commas > 0 {
			sep = ','
			count = commas
		}
		if count == 1 {
			idx := strings.IndexByte(s, sep)
			intPart, tail := s[:idx], s[idx+1:]
			// A lone separator followed by exactly three digits reads as a
			// thousands separator ("1,234"); one or two trailing digits read
			// as a decimal point ("1234.56", "9.5"). Anything else is
			// ambiguous and rejected.
			switch {
			case len(tail) == 3 && intPart != "":
				return intPart + tail, nil
			case len(tail) >= 1 && len(tail) <= 2:
				if intPart == "" {
					intPart = "0"
				}
				return intPart + "." + tail, nil
			default:
				return "", fmt.Errorf("%w: %q", ErrAmbiguousAmount, s)
			}
		}
		// A repeated separator can only group thousands ("1,234,567").
		return joinThousands(s, sep)
	}
}

// joinThousands validates 3-digit grouping and strips the separators.
func joinThousands(s string, sep byte) (string, error) {
	if !strings.ContainsRune(s, rune(sep)) {
		if s == "" {
			return "", fmt.Errorf("%w: empty integer part", ErrAmbiguousAmount)
		}
		return s, nil
	}
	parts := strings.Split(s, string(sep))
	if len(parts[0]) < 1 || len(parts[0]) > 3 {
		return "", fmt.Errorf("%w: %q", ErrAmbiguousAmount, s)
	}
	for _, p := range parts[1:] {
		if len(p) != 3 {
			return "", fmt.Errorf("%w: %q", ErrAmbiguousAmount, s)
		}
	}
	return strings.Join(parts, ""), nil
}
