package genderrender

import "strings"

// Unparse writes pt back in template syntax. Parsing the result yields pt again.
func Unparse(pt ParsedTemplate) string {
	var b strings.Builder
	for i, text := range pt.Texts {
		b.WriteString(EscapeString(text, false))
		if i < len(pt.Tags) {
			b.WriteString(UnparseTag(pt.Tags[i]))
		}
	}
	return b.String()
}

// UnparseTag writes one tag in template syntax.
func UnparseTag(tag Tag) string {
	sections := make([]string, len(tag.Sections))
	for i, s := range tag.Sections {
		values := make([]string, len(s.Values))
		for j, v := range s.Values {
			values[j] = EscapeString(v, true)
		}
		section := strings.Join(values, " ")
		if s.Type != "" {
			section = EscapeString(s.Type, true) + string(typeSeparator) + section
		}
		sections[i] = section
	}
	return string(openTag) + strings.Join(sections, string(sectionSeparator)) + string(closeTag)
}

// Unparse writes the refined template in canonical template syntax: every section typed,
// every id explicit once resolved.
func (t RefinedTemplate) Unparse() string {
	var b strings.Builder
	for i, text := range t.Texts {
		b.WriteString(EscapeString(text, false))
		if i < len(t.Tags) {
			b.WriteString(t.Tags[i].String())
		}
	}
	return b.String()
}
