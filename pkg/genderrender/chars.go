package genderrender

import "strings"

// CharClass is the category of a template character as seen by the lexer.
type CharClass int

const (
	CharOrdinary CharClass = iota
	CharWhitespace
	CharOpenTag
	CharCloseTag
	CharEscape
	CharTypeSeparator
	CharSectionSeparator
)

func (c CharClass) String() string {
	switch c {
	case CharOrdinary:
		return "ordinary"
	case CharWhitespace:
		return "whitespace"
	case CharOpenTag:
		return "open-tag"
	case CharCloseTag:
		return "close-tag"
	case CharEscape:
		return "escape"
	case CharTypeSeparator:
		return "type-separator"
	case CharSectionSeparator:
		return "section-separator"
	default:
		return "unknown"
	}
}

const (
	openTag          = '{'
	closeTag         = '}'
	escapeChar       = '\\'
	typeSeparator    = ':'
	sectionSeparator = '*'
	zeroWidthSpace   = '\u200b'
)

// Classify returns the class of r. Every rune has exactly one class.
func Classify(r rune) CharClass {
	switch r {
	case '\t', '\n', ' ', zeroWidthSpace:
		return CharWhitespace
	case openTag:
		return CharOpenTag
	case closeTag:
		return CharCloseTag
	case escapeChar:
		return CharEscape
	case typeSeparator:
		return CharTypeSeparator
	case sectionSeparator:
		return CharSectionSeparator
	default:
		return CharOrdinary
	}
}

// EscapeString prefixes every reserved character of s with a backslash.
// In strict mode whitespace and the separators ':' and '*' count as reserved,
// which is what values inside a tag need; otherwise only '{', '}' and '\' are escaped,
// which is enough for literal text.
func EscapeString(s string, strict bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch Classify(r) {
		case CharOpenTag, CharCloseTag, CharEscape:
			b.WriteRune(escapeChar)
		case CharWhitespace, CharTypeSeparator, CharSectionSeparator:
			if strict {
				b.WriteRune(escapeChar)
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
