package genderrender

import "strings"

// Canonical attribute names.
const (
	AttrSubject          = "subject"
	AttrObject           = "object"
	AttrDPossessive      = "dpossessive"
	AttrIPossessive      = "ipossessive"
	AttrReflexive        = "reflexive"
	AttrAddress          = "address"
	AttrSurname          = "surname"
	AttrPersonalName     = "personal-name"
	AttrGenderAddressing = "gender-addressing"
	AttrGenderNouns      = "gender-nouns"
)

// property is one group of synonymous attribute spellings. The first name is canonical.
type property struct {
	names []string
	// direct attributes are looked up in the pronoun data as they are.
	direct     bool
	allowed    []string
	defaultVal string
}

var properties = []property{
	{names: []string{AttrSubject, "they", "subj"}, direct: true},
	{names: []string{AttrObject, "them", "obj"}, direct: true},
	{names: []string{AttrDPossessive, "their", "dposs"}, direct: true},
	{names: []string{AttrIPossessive, "theirs", "iposs"}, direct: true},
	{names: []string{AttrReflexive, "themself", "reflex"}, direct: true},
	{names: []string{AttrAddress, "Mr_s", "Mr", "Mrs"}, direct: true},
	{names: []string{AttrSurname, "Doe", "name", "family-names"}, direct: true},
	{names: []string{AttrPersonalName, "Jean", "first-name"}, direct: true},
	{names: []string{AttrGenderAddressing}, allowed: []string{"false", "true", "f", "t"}, defaultVal: "t"},
	{names: []string{AttrGenderNouns}, allowed: []string{"female", "male", "neutral"}, defaultVal: "neutral"},
}

func findProperty(name string) (property, bool) {
	for _, p := range properties {
		for _, n := range p.names {
			if strings.EqualFold(n, name) {
				return p, true
			}
		}
	}
	return property{}, false
}

// canonicalAttribute maps any spelling of a known attribute to its canonical name.
func canonicalAttribute(name string) (string, bool) {
	p, ok := findProperty(name)
	if !ok {
		return "", false
	}
	return p.names[0], true
}

// isTableSpelling reports whether name is spelled exactly like an entry of the table,
// capitalization included.
func isTableSpelling(name string) bool {
	for _, p := range properties {
		for _, n := range p.names {
			if n == name {
				return true
			}
		}
	}
	return false
}

// isCustomAttribute reports whether name uses the "<name>" syntax.
func isCustomAttribute(name string) bool {
	return len(name) > 2 && strings.HasPrefix(name, "<") && strings.HasSuffix(name, ">")
}

// customAttributeName strips the angle brackets of a custom attribute.
func customAttributeName(name string) string {
	return name[1 : len(name)-1]
}

// customAttributeKey returns the canonical "<name>" key of a custom attribute.
// Custom names are case-insensitive.
func customAttributeKey(name string) string {
	return "<" + strings.ToLower(name) + ">"
}

// attributeDefault returns the value used when the pronoun data omits name.
func attributeDefault(name string) (string, bool) {
	p, ok := findProperty(name)
	if !ok || p.defaultVal == "" {
		return "", false
	}
	return p.defaultVal, true
}

// valueAllowed reports whether value is acceptable for the canonical attribute name.
// Attributes without a restricted value set accept anything.
func valueAllowed(name, value string) bool {
	p, ok := findProperty(name)
	if !ok || len(p.allowed) == 0 {
		return true
	}
	for _, a := range p.allowed {
		if a == value {
			return true
		}
	}
	return false
}

// mapsDirectly reports whether a tag for name renders the pronoun data value as it is.
// Custom attributes always do.
func mapsDirectly(name string) bool {
	if isCustomAttribute(name) {
		return true
	}
	p, ok := findProperty(name)
	return ok && p.direct
}
