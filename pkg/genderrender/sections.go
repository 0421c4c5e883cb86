package genderrender

import "sort"

// Section type names.
const (
	ContextSection        = "context"
	IDSection             = "id"
	CapitalizationSection = "capitalization"
)

// SectionType describes one kind of section a tag may contain.
type SectionType struct {
	Name     string
	Priority int
	// MultiValue allows more than one space-separated value.
	MultiValue bool
	// AutoAssign lets untyped sections receive this type.
	AutoAssign bool
}

// sectionTypes is ordered by descending priority.
var sectionTypes = []SectionType{
	{Name: ContextSection, Priority: 1000, MultiValue: true, AutoAssign: true},
	{Name: IDSection, Priority: 950, MultiValue: false, AutoAssign: true},
	{Name: CapitalizationSection, Priority: 900, MultiValue: false, AutoAssign: false},
}

// SectionTypes returns the registered section types, highest priority first.
func SectionTypes() []SectionType {
	return append([]SectionType(nil), sectionTypes...)
}

func lookupSectionType(name string) (SectionType, bool) {
	for _, st := range sectionTypes {
		if st.Name == name {
			return st, true
		}
	}
	return SectionType{}, false
}

// assignSectionTypes types the untyped entries of a tag's section type list.
// Untyped entries are filled from right to left, each with the highest-priority
// auto-assignable type that is still unused.
func assignSectionTypes(types []string) ([]string, error) {
	if len(types) > len(sectionTypes) {
		return nil, &PostprocessingError{Kind: TooManySections, Message: "tag contains more sections than there are section types"}
	}

	used := make(map[string]bool, len(types))
	for _, name := range types {
		if name == "" {
			continue
		}
		if used[name] {
			return nil, &PostprocessingError{Kind: DuplicateSectionType, Message: "section type \"" + name + "\" is used twice"}
		}
		if _, ok := lookupSectionType(name); !ok {
			return nil, &PostprocessingError{Kind: UnknownSectionType, Message: "section type \"" + name + "\" does not exist"}
		}
		used[name] = true
	}

	var available []SectionType
	for _, st := range sectionTypes {
		if st.AutoAssign && !used[st.Name] {
			available = append(available, st)
		}
	}
	sort.SliceStable(available, func(i, j int) bool { return available[i].Priority > available[j].Priority })

	result := make([]string, len(types))
	hasContext := false
	for i := len(types) - 1; i >= 0; i-- {
		name := types[i]
		if name == "" {
			if len(available) == 0 {
				return nil, &PostprocessingError{Kind: TooManySections, Message: "tag contains more untyped sections than there are assignable section types"}
			}
			name = available[0].Name
			available = available[1:]
		}
		if name == ContextSection {
			hasContext = true
		}
		result[i] = name
	}

	if !hasContext {
		return nil, &PostprocessingError{Kind: MissingContextSection, Message: "tag misses a \"context\" section"}
	}
	return result, nil
}

// typeSections returns a copy of pt where every section carries its type.
func typeSections(pt ParsedTemplate) (ParsedTemplate, error) {
	out := ParsedTemplate{
		Texts: append([]string(nil), pt.Texts...),
		Tags:  make([]Tag, len(pt.Tags)),
	}
	for i, tag := range pt.Tags {
		types := make([]string, len(tag.Sections))
		for j, s := range tag.Sections {
			types[j] = s.Type
		}
		typed, err := assignSectionTypes(types)
		if err != nil {
			perr := err.(*PostprocessingError)
			return ParsedTemplate{}, newPostprocessingError(perr.Kind, i, tag, "%s", perr.Message)
		}
		sections := make([]Section, len(tag.Sections))
		for j, s := range tag.Sections {
			sections[j] = Section{Type: typed[j], Values: append([]string(nil), s.Values...)}
		}
		out.Tags[i] = Tag{Sections: sections}
	}
	return out, nil
}

// section returns the section of the given type, if the tag has one.
func (t Tag) section(name string) (Section, bool) {
	for _, s := range t.Sections {
		if s.Type == name {
			return s, true
		}
	}
	return Section{}, false
}
