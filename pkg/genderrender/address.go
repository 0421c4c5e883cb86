package genderrender

// resolveAddresses turns address tags into personal-name tags for everybody who does
// not want to be addressed by a gendered form. Every tag must have an id.
func resolveAddresses(t RefinedTemplate, pd PronounData, diag DiagnosticSettings) RefinedTemplate {
	out := t.clone()
	for i, tag := range out.Tags {
		if tag.Context.Kind != ContextAttribute || tag.Context.Name != AttrAddress {
			continue
		}
		value, _ := attributeValue(pd, tag.ID, AttrGenderAddressing, diag)
		if value == "f" || value == "false" {
			out.Tags[i].Context = AttributeContext(AttrPersonalName)
		}
	}
	return out
}

// attributeValue looks up an attribute of one person, falling back to the attribute's
// default with a DefaultValueUsed diagnostic. ok is false when neither exists.
func attributeValue(pd PronounData, id, name string, diag DiagnosticSettings) (value string, ok bool) {
	if v, found := pd[id][name]; found {
		return v, true
	}
	def, hasDefault := attributeDefault(name)
	if !hasDefault {
		return "", false
	}
	diag.emit(DefaultValueUsed, "individual %q does not define %q; using the default %q", id, name, def)
	return def, true
}
