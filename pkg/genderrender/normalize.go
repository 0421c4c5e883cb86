package genderrender

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/phseiff/gender-render/pkg/genderrender/nouns"
)

// NounLookup finds gendered versions of nouns. *nouns.Dictionary implements it.
type NounLookup interface {
	Lookup(word string) (nouns.Entry, bool)
}

// NounRef is a context value that names a noun instead of an attribute.
// Two refs are equal when their normalized words are.
type NounRef struct {
	// Word is the noun as written in the template.
	Word  string
	entry nouns.Entry
	found bool
}

func newNounRef(word string, lookup NounLookup) NounRef {
	ref := NounRef{Word: word}
	if lookup != nil {
		ref.entry, ref.found = lookup.Lookup(word)
	}
	return ref
}

// Equal compares the normalized words.
func (n NounRef) Equal(o NounRef) bool {
	return nouns.NormalizeWord(n.Word) == nouns.NormalizeWord(o.Word)
}

// Known reports whether the word was found in the noun dataset.
func (n NounRef) Known() bool {
	return n.found
}

// Render returns the word in gender g. Unknown words are returned as written.
// The first letter is upper-cased when the written word starts with an upper-case letter.
func (n NounRef) Render(g nouns.Gender) string {
	if !n.found {
		return n.Word
	}
	result := strings.ReplaceAll(n.entry.Inflect(g), nouns.WordJoiner, " ")
	first, _ := utf8.DecodeRuneInString(n.Word)
	if unicode.IsUpper(first) {
		r, size := utf8.DecodeRuneInString(result)
		result = string(unicode.ToUpper(r)) + result[size:]
	}
	return result
}

// ContextKind tells which variant a ContextRef holds.
type ContextKind int

const (
	ContextAttribute ContextKind = iota
	ContextCustom
	ContextNoun
)

func (k ContextKind) String() string {
	switch k {
	case ContextAttribute:
		return "attribute"
	case ContextCustom:
		return "custom"
	case ContextNoun:
		return "noun"
	default:
		return "unknown"
	}
}

// ContextRef is what a tag renders: a canonical attribute, a custom "<name>" attribute,
// or a noun.
type ContextRef struct {
	Kind ContextKind
	// Name is the canonical attribute name or the custom attribute including its brackets.
	// It is empty for nouns.
	Name string
	Noun NounRef
}

// AttributeContext returns a ref to a canonical attribute.
func AttributeContext(name string) ContextRef {
	return ContextRef{Kind: ContextAttribute, Name: name}
}

// CustomContext returns a ref to a custom attribute written as "<name>".
func CustomContext(name string) ContextRef {
	return ContextRef{Kind: ContextCustom, Name: name}
}

// NounContext returns a ref to a noun.
func NounContext(ref NounRef) ContextRef {
	return ContextRef{Kind: ContextNoun, Noun: ref}
}

func (c ContextRef) String() string {
	if c.Kind == ContextNoun {
		return c.Noun.Word
	}
	return c.Name
}

// RefinedTag is a tag after typing, expansion and canonicalization.
type RefinedTag struct {
	Context ContextRef
	ID      string
	HasID   bool
	// Capitalization is the explicit style if Explicit is set, otherwise the style
	// implied by how the context value was written. A capitalization section is only
	// accepted next to a lower-case context value.
	Capitalization CapitalizationStyle
	Explicit       bool
}

// recapitalizes reports whether an attribute value must be rewritten in the tag's style.
func (t RefinedTag) recapitalizes() bool {
	return t.Explicit || t.Capitalization != LowerCase
}

func (t RefinedTag) String() string {
	var b strings.Builder
	b.WriteString("{")
	if t.HasID {
		b.WriteString(IDSection + ":" + EscapeString(t.ID, true) + "*")
	}
	b.WriteString(ContextSection + ":" + EscapeString(t.Context.String(), true))
	if t.Explicit || (t.Context.Kind != ContextNoun && t.recapitalizes()) {
		b.WriteString("*" + CapitalizationSection + ":" + t.Capitalization.String())
	}
	b.WriteString("}")
	return b.String()
}

// RefinedTemplate mirrors ParsedTemplate with refined tags.
type RefinedTemplate struct {
	Texts []string
	Tags  []RefinedTag
}

// UsedIDs returns the explicitly given ids, sorted and without duplicates.
func (t RefinedTemplate) UsedIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, tag := range t.Tags {
		if tag.HasID && !seen[tag.ID] {
			seen[tag.ID] = true
			ids = append(ids, tag.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

// HasUnspecifiedIDs reports whether any tag lacks an id.
func (t RefinedTemplate) HasUnspecifiedIDs() bool {
	for _, tag := range t.Tags {
		if !tag.HasID {
			return true
		}
	}
	return false
}

func (t RefinedTemplate) clone() RefinedTemplate {
	return RefinedTemplate{
		Texts: append([]string(nil), t.Texts...),
		Tags:  append([]RefinedTag(nil), t.Tags...),
	}
}

// checkValueCounts rejects single-valued sections that carry several values.
func checkValueCounts(pt ParsedTemplate) error {
	for i, tag := range pt.Tags {
		for _, s := range tag.Sections {
			st, _ := lookupSectionType(s.Type)
			if !st.MultiValue && len(s.Values) > 1 {
				return newPostprocessingError(TooManyValues, i, tag,
					"the %q section has %d values but accepts only one", s.Type, len(s.Values))
			}
		}
	}
	return nil
}

// normalizeTags turns a typed, expanded template into a RefinedTemplate.
// Noun diagnostics are reported to diag.
func normalizeTags(pt ParsedTemplate, lookup NounLookup, diag DiagnosticSettings) (RefinedTemplate, error) {
	if err := checkValueCounts(pt); err != nil {
		return RefinedTemplate{}, err
	}

	out := RefinedTemplate{
		Texts: append([]string(nil), pt.Texts...),
		Tags:  make([]RefinedTag, len(pt.Tags)),
	}
	for i, tag := range pt.Tags {
		rt, err := refineTag(tag, lookup, diag)
		if err != nil {
			return RefinedTemplate{}, WithContext(err, "refine tag", map[string]interface{}{
				"index": i,
				"tag":   UnparseTag(tag),
			})
		}
		out.Tags[i] = rt
	}
	return out, nil
}

func refineTag(tag Tag, lookup NounLookup, diag DiagnosticSettings) (RefinedTag, error) {
	var rt RefinedTag

	ctx, _ := tag.section(ContextSection)
	raw := ctx.Values[0]

	detectOn := raw
	switch {
	case isCustomAttribute(raw):
		detectOn = customAttributeName(raw)
		rt.Context = CustomContext(customAttributeKey(detectOn))
	default:
		if name, ok := canonicalAttribute(raw); ok {
			rt.Context = AttributeContext(name)
		} else {
			ref := newNounRef(raw, lookup)
			rt.Context = NounContext(ref)
			reportNoun(ref, diag)
		}
	}

	detected, err := DetectCapitalization(detectOn)
	if err != nil {
		return RefinedTag{}, err
	}
	rt.Capitalization = detected
	if rt.Context.Kind == ContextAttribute && isTableSpelling(raw) {
		rt.Capitalization = LowerCase
	}

	if s, ok := tag.section(CapitalizationSection); ok {
		explicit, err := ParseCapitalizationStyle(s.Values[0])
		if err != nil {
			return RefinedTag{}, err
		}
		if detected != LowerCase {
			return RefinedTag{}, &CapitalizationError{
				Value: raw,
				Message: fmt.Sprintf("is written %s and the tag also asks for %s; write the context value in lower case",
					detected, explicit),
			}
		}
		rt.Capitalization = explicit
		rt.Explicit = true
	}

	if s, ok := tag.section(IDSection); ok {
		rt.ID = s.Values[0]
		rt.HasID = true
	}
	return rt, nil
}

func reportNoun(ref NounRef, diag DiagnosticSettings) {
	if !ref.found {
		diag.emit(NounNotFound, "%q is not a known noun, so it is rendered as written and might not be gendered correctly",
			ref.Word)
		return
	}
	if len(ref.entry.Warnings) > 0 {
		diag.emit(NounGenderingGuesses, "%s", strings.Join(ref.entry.Warnings, " "))
	}
}
