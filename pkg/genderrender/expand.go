package genderrender

// contextSeparator is the literal placed between the copies of a split tag.
const contextSeparator = " "

// expandContexts splits every tag whose context section has several values into one
// tag per value. The copies keep all other sections and stand where the original stood,
// separated by a single space. The input must be typed.
func expandContexts(pt ParsedTemplate) ParsedTemplate {
	out := ParsedTemplate{Texts: []string{pt.Texts[0]}}

	for i, tag := range pt.Tags {
		ctx, _ := tag.section(ContextSection)
		if len(ctx.Values) <= 1 {
			out.Tags = append(out.Tags, cloneTag(tag))
			out.Texts = append(out.Texts, pt.Texts[i+1])
			continue
		}

		for j, value := range ctx.Values {
			copyTag := Tag{Sections: make([]Section, len(tag.Sections))}
			for k, s := range tag.Sections {
				if s.Type == ContextSection {
					copyTag.Sections[k] = Section{Type: ContextSection, Values: []string{value}}
				} else {
					copyTag.Sections[k] = Section{Type: s.Type, Values: append([]string(nil), s.Values...)}
				}
			}
			out.Tags = append(out.Tags, copyTag)
			if j < len(ctx.Values)-1 {
				out.Texts = append(out.Texts, contextSeparator)
			}
		}
		out.Texts = append(out.Texts, pt.Texts[i+1])
	}
	return out
}

func cloneTag(t Tag) Tag {
	c := Tag{Sections: make([]Section, len(t.Sections))}
	for i, s := range t.Sections {
		c.Sections[i] = Section{Type: s.Type, Values: append([]string(nil), s.Values...)}
	}
	return c
}
