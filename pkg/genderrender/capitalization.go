package genderrender

import (
	"fmt"
	"strings"
	"unicode"
)

// CapitalizationStyle is one of the five recognised ways a word can be capitalized.
// The constants are in detection order.
type CapitalizationStyle int

const (
	LowerCase CapitalizationStyle = iota
	Capitalized
	AllCaps
	StudlyCaps
	AltStudlyCaps
)

var capitalizationStyles = []CapitalizationStyle{LowerCase, Capitalized, AllCaps, StudlyCaps, AltStudlyCaps}

func (c CapitalizationStyle) String() string {
	switch c {
	case LowerCase:
		return "lower-case"
	case Capitalized:
		return "capitalized"
	case AllCaps:
		return "all-caps"
	case StudlyCaps:
		return "studly-caps"
	case AltStudlyCaps:
		return "alt-studly-caps"
	default:
		return "unknown"
	}
}

// ParseCapitalizationStyle converts a style name such as "all-caps" to its style.
func ParseCapitalizationStyle(name string) (CapitalizationStyle, error) {
	for _, c := range capitalizationStyles {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, &CapitalizationError{Value: name, Message: "not a capitalization style"}
}

// Caseless runes satisfy both predicates.
func notLower(r rune) bool { return !unicode.IsLower(r) }
func notUpper(r rune) bool { return !unicode.IsUpper(r) }

// Matches reports whether s is written in style c.
func (c CapitalizationStyle) Matches(s string) bool {
	i := 0
	for _, r := range s {
		even := i%2 == 0
		var ok bool
		switch c {
		case LowerCase:
			ok = notUpper(r)
		case Capitalized:
			ok = (i == 0 && notLower(r)) || (i > 0 && notUpper(r))
		case AllCaps:
			ok = notLower(r)
		case StudlyCaps:
			ok = (even && notLower(r)) || (!even && notUpper(r))
		case AltStudlyCaps:
			ok = (!even && notLower(r)) || (even && notUpper(r))
		}
		if !ok {
			return false
		}
		i++
	}
	return true
}

// Apply rewrites s in style c.
func (c CapitalizationStyle) Apply(s string) string {
	switch c {
	case LowerCase:
		return strings.ToLower(s)
	case AllCaps:
		return strings.ToUpper(s)
	}

	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for _, r := range s {
		upper := false
		switch c {
		case Capitalized:
			upper = i == 0
		case StudlyCaps:
			upper = i%2 == 0
		case AltStudlyCaps:
			upper = i%2 == 1
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		i++
	}
	return b.String()
}

// DetectCapitalization returns the first style in detection order that matches s.
func DetectCapitalization(s string) (CapitalizationStyle, error) {
	for _, c := range capitalizationStyles {
		if c.Matches(s) {
			return c, nil
		}
	}
	return 0, &CapitalizationError{
		Value:   s,
		Message: fmt.Sprintf("matches none of the styles %v", capitalizationStyles),
	}
}
