package genderrender

import (
	"strings"

	"github.com/phseiff/gender-render/pkg/genderrender/nouns"
)

// renderTemplate writes the final string. Every tag must carry an id defined in pd.
func renderTemplate(t RefinedTemplate, pd PronounData, diag DiagnosticSettings) (string, error) {
	var b strings.Builder
	b.WriteString(t.Texts[0])
	for i, tag := range t.Tags {
		value, err := renderTag(tag, pd, diag)
		if err != nil {
			return "", err
		}
		b.WriteString(value)
		b.WriteString(t.Texts[i+1])
	}
	return b.String(), nil
}

func renderTag(tag RefinedTag, pd PronounData, diag DiagnosticSettings) (string, error) {
	if tag.Context.Kind == ContextNoun {
		value, ok := attributeValue(pd, tag.ID, AttrGenderNouns, diag)
		if !ok {
			return "", &MissingInformationError{ID: tag.ID, Attribute: AttrGenderNouns}
		}
		gender, err := nouns.ParseGender(value)
		if err != nil {
			return "", newPronounDataError(ErrInvalidInformation, tag.ID, AttrGenderNouns, "%v", err)
		}
		word := tag.Context.Noun.Render(gender)
		if tag.Explicit {
			word = tag.Capitalization.Apply(word)
		}
		return word, nil
	}

	value, ok := attributeValue(pd, tag.ID, tag.Context.Name, diag)
	if !ok {
		return "", &MissingInformationError{ID: tag.ID, Attribute: tag.Context.Name}
	}
	if tag.recapitalizes() {
		value = tag.Capitalization.Apply(value)
	}
	return value, nil
}
