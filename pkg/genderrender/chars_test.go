package genderrender

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		r    rune
		want CharClass
	}{
		{'a', CharOrdinary},
		{'Z', CharOrdinary},
		{'_', CharOrdinary},
		{'<', CharOrdinary},
		{'é', CharOrdinary},
		{' ', CharWhitespace},
		{'\t', CharWhitespace},
		{'\n', CharWhitespace},
		{'\u200b', CharWhitespace},
		{'{', CharOpenTag},
		{'}', CharCloseTag},
		{'\\', CharEscape},
		{':', CharTypeSeparator},
		{'*', CharSectionSeparator},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			if got := Classify(tt.r); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestEscapeString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		strict bool
		want   string
	}{
		{"plain", "hello", false, "hello"},
		{"braces", "{x}", false, `\{x\}`},
		{"backslash", `a\b`, false, `a\\b`},
		{"separators kept in text", "a:b*c d", false, "a:b*c d"},
		{"separators escaped in values", "a:b*c d", true, `a\:b\*c\ d`},
		{"newline in values", "a\nb", true, "a\\\nb"},
		{"empty", "", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeString(tt.input, tt.strict); got != tt.want {
				t.Errorf("EscapeString(%q, %v) = %q, want %q", tt.input, tt.strict, got, tt.want)
			}
		})
	}
}

// Every reserved character must survive escaping as literal text.
func TestEscapeString_ParsesBack(t *testing.T) {
	for _, r := range []rune{'{', '}', '\\', ':', '*', ' ', '\t', '\n', '\u200b'} {
		s := "x" + string(r) + "y"
		for _, strict := range []bool{false, true} {
			pt, err := Parse(EscapeString(s, strict))
			if err != nil {
				t.Fatalf("Failed to parse escaped %q (strict=%v): %v", s, strict, err)
			}
			if len(pt.Tags) != 0 || len(pt.Texts) != 1 || pt.Texts[0] != s {
				t.Errorf("Escaped %q (strict=%v) parsed to %#v", s, strict, pt)
			}
		}
	}
}
