package genderrender

// Template is a parsed template ready for rendering. It is immutable and safe for
// concurrent use.
type Template struct {
	source  string
	parsed  ParsedTemplate
	typed   ParsedTemplate
	refined RefinedTemplate
	// diagnostics raised while parsing, replayed whenever the template is handed out again
	diagnostics []Diagnostic
}

// prepareTemplate runs the parsing pipeline: lexing, section typing, context expansion
// and normalization.
func prepareTemplate(source string, lookup NounLookup, logger *Logger) (*Template, error) {
	parsed, err := parse(source, logger)
	if err != nil {
		return nil, err
	}
	typed, err := typeSections(parsed)
	if err != nil {
		return nil, err
	}
	typed = expandContexts(typed)

	recorder := &DiagnosticRecorder{}
	refined, err := normalizeTags(typed, lookup, DiagnosticSettings{Handler: recorder})
	if err != nil {
		return nil, err
	}

	return &Template{
		source:      source,
		parsed:      parsed,
		typed:       typed,
		refined:     refined,
		diagnostics: recorder.Diagnostics(),
	}, nil
}

// Source returns the template text.
func (t *Template) Source() string {
	return t.source
}

// Parsed returns a copy of the lexer output.
func (t *Template) Parsed() ParsedTemplate {
	return cloneParsed(t.parsed)
}

// Refined returns a copy of the normalized template.
func (t *Template) Refined() RefinedTemplate {
	return t.refined.clone()
}

// UsedIDs returns the ids the template names explicitly.
func (t *Template) UsedIDs() []string {
	return t.refined.UsedIDs()
}

// HasUnspecifiedIDs reports whether some tags have no id.
func (t *Template) HasUnspecifiedIDs() bool {
	return t.refined.HasUnspecifiedIDs()
}

// Diagnostics returns the diagnostics raised while parsing.
func (t *Template) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), t.diagnostics...)
}

// Canonical returns the template with every section typed and every multi-value
// context split up.
func (t *Template) Canonical() string {
	return Unparse(t.typed)
}

func (t *Template) replayDiagnostics(s DiagnosticSettings) {
	for _, d := range t.diagnostics {
		s.report(d)
	}
}

func cloneParsed(pt ParsedTemplate) ParsedTemplate {
	c := ParsedTemplate{
		Texts: append([]string(nil), pt.Texts...),
		Tags:  make([]Tag, len(pt.Tags)),
	}
	for i, tag := range pt.Tags {
		c.Tags[i] = cloneTag(tag)
	}
	return c
}
