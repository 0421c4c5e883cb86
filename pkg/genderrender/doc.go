// Package genderrender renders text templates with the pronouns, nouns and names of
// the people they talk about.
//
// A template contains tags in curly braces. Each tag names what to render and,
// optionally, whose pronoun data to use:
//
//	{They} met {id:sam*them} at the {actor}'s party.
//
// Pronoun data maps attribute names to values, either for one unnamed person or per id:
//
//	{"subject": "xe", "object": "xem", "gender-nouns": "female"}
//	{"sam": {"subject": "she", "object": "her"}, "kim": {"subject": "they"}}
//
// # Quick Start
//
//	tmpl, err := genderrender.ParseTemplate("{They} is an {actor}.")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := genderrender.Render(tmpl, genderrender.PronounData{
//	    "": {"subject": "she", "gender-nouns": "female"},
//	})
//	// out == "She is an actress."
//
// # Template Syntax
//
// A tag consists of sections separated by '*'. A section is "type:value" or just a value:
//
//	{subject}                     - attribute of the only person, untyped
//	{context:subject}             - same, typed
//	{id:sam*context:their}        - attribute of "sam"
//	{sam*their}                   - same; untyped sections are typed from the right
//	{context:they them}           - two tags, "{they} {them}"
//	{<pet>}                       - custom attribute, "_pet" or "<pet>" in pronoun data
//	{actor}                       - noun, gendered by the "gender-nouns" attribute
//	{they*capitalization:all-caps} - explicit capitalization
//
// A backslash escapes any character. Context values are matched case-insensitively
// and their own capitalization is carried over to the output, so {They} renders "She".
// Spellings from the attribute table such as {Doe} or {Mr_s} render values unchanged.
//
// # Pipeline
//
// Parsing runs the lexer (an explicit state machine, see lexer.go), section typing,
// context expansion and normalization. Rendering runs id resolution, address
// resolution and the renderer. Every stage returns fresh values and never changes its
// input, so templates and pronoun data can be shared between goroutines.
//
// # Diagnostics
//
// Advisory messages such as "a default value was used" are passed to a
// DiagnosticHandler selected per engine (WithDiagnostics) and per call
// (UseDiagnostics). They never change results.
//
// # Structure Organization
//
//   - chars.go, lexer.go: character classes and the template lexer
//   - sections.go, expand.go, normalize.go, properties.go: postprocessing of parsed tags
//   - pronoun_data.go: validation and canonicalization of pronoun data
//   - idresolve.go, address.go, render.go, capitalization.go: rendering
//   - unparse.go: writing templates back in template syntax
//   - api.go, template.go, cache.go, config.go, logger.go, diagnostics.go, errors.go: engine
//
// The nouns sub-package holds the dataset of gendered nouns.
package genderrender
