package genderrender

import (
	"strings"
	"unicode/utf8"
)

// Section is one '*'-separated part of a tag. An empty Type means the section was
// written without a "type:" prefix and still has to be typed.
type Section struct {
	Type   string
	Values []string
}

// Tag is a '{...}' placeholder as written in the template.
type Tag struct {
	Sections []Section
}

// ParsedTemplate is the lexer output. Texts[i] is the literal text before Tags[i];
// the last element of Texts follows the last tag, so len(Texts) == len(Tags)+1.
type ParsedTemplate struct {
	Texts []string
	Tags  []Tag
}

type baseState int

const (
	stateOutsideTag baseState = iota
	stateEmptySection
	stateNonEmptySectionNoValue
	stateSectionWithFinishedWord
	stateEmptyValue
	stateNonEmptyValue
)

func (s baseState) String() string {
	switch s {
	case stateOutsideTag:
		return "OutsideTag"
	case stateEmptySection:
		return "EmptySection"
	case stateNonEmptySectionNoValue:
		return "NonEmptySectionNoValue"
	case stateSectionWithFinishedWord:
		return "SectionWithFinishedWord"
	case stateEmptyValue:
		return "EmptyValue"
	case stateNonEmptyValue:
		return "NonEmptyValue"
	default:
		return "Unknown"
	}
}

// lexState is a base state plus the escaped flag. An escaped state treats the next
// character as ordinary and then drops the flag.
type lexState struct {
	base    baseState
	escaped bool
}

func (s lexState) String() string {
	if s.escaped {
		return s.base.String() + "(escaped)"
	}
	return s.base.String()
}

type transitionKey struct {
	state baseState
	class CharClass
}

type transition struct {
	next   baseState
	action func(l *lexer, r rune)
}

// transitions holds every legal move. Pairs that are missing are syntax errors.
var transitions = map[transitionKey]transition{
	{stateOutsideTag, CharOpenTag}:          {stateEmptySection, (*lexer).openTag},
	{stateOutsideTag, CharOrdinary}:         {stateOutsideTag, (*lexer).appendText},
	{stateOutsideTag, CharWhitespace}:       {stateOutsideTag, (*lexer).appendText},
	{stateOutsideTag, CharTypeSeparator}:    {stateOutsideTag, (*lexer).appendText},
	{stateOutsideTag, CharSectionSeparator}: {stateOutsideTag, (*lexer).appendText},

	{stateEmptySection, CharWhitespace}: {stateEmptySection, nil},
	{stateEmptySection, CharOrdinary}:   {stateNonEmptySectionNoValue, (*lexer).extendWord},

	{stateNonEmptySectionNoValue, CharTypeSeparator}:    {stateEmptyValue, (*lexer).wordToType},
	{stateNonEmptySectionNoValue, CharSectionSeparator}: {stateEmptySection, (*lexer).nextSection},
	{stateNonEmptySectionNoValue, CharCloseTag}:         {stateOutsideTag, (*lexer).closeTag},
	{stateNonEmptySectionNoValue, CharWhitespace}:       {stateSectionWithFinishedWord, nil},
	{stateNonEmptySectionNoValue, CharOrdinary}:         {stateNonEmptySectionNoValue, (*lexer).extendWord},

	{stateSectionWithFinishedWord, CharTypeSeparator}:    {stateEmptyValue, (*lexer).wordToType},
	{stateSectionWithFinishedWord, CharSectionSeparator}: {stateEmptySection, (*lexer).nextSection},
	{stateSectionWithFinishedWord, CharCloseTag}:         {stateOutsideTag, (*lexer).closeTag},
	{stateSectionWithFinishedWord, CharWhitespace}:       {stateSectionWithFinishedWord, nil},
	{stateSectionWithFinishedWord, CharOrdinary}:         {stateNonEmptyValue, (*lexer).startValue},

	{stateEmptyValue, CharWhitespace}: {stateEmptyValue, nil},
	{stateEmptyValue, CharOrdinary}:   {stateNonEmptyValue, (*lexer).extendWord},

	{stateNonEmptyValue, CharSectionSeparator}: {stateEmptySection, (*lexer).nextSection},
	{stateNonEmptyValue, CharCloseTag}:         {stateOutsideTag, (*lexer).closeTag},
	{stateNonEmptyValue, CharWhitespace}:       {stateNonEmptyValue, (*lexer).markValueEnd},
	{stateNonEmptyValue, CharOrdinary}:         {stateNonEmptyValue, (*lexer).extendValue},
}

// lexer accumulates the template while the state machine runs.
type lexer struct {
	out  ParsedTemplate
	text strings.Builder

	sections    []Section
	sectionType string
	values      []string
	word        strings.Builder
	pendingWord bool
}

func (l *lexer) appendText(r rune) {
	l.text.WriteRune(r)
}

func (l *lexer) openTag(rune) {
	l.out.Texts = append(l.out.Texts, l.text.String())
	l.text.Reset()
	l.sections = nil
	l.resetSection()
}

func (l *lexer) resetSection() {
	l.sectionType = ""
	l.values = nil
	l.word.Reset()
	l.pendingWord = false
}

func (l *lexer) extendWord(r rune) {
	l.word.WriteRune(r)
}

func (l *lexer) wordToType(rune) {
	l.sectionType = l.word.String()
	l.word.Reset()
}

// startValue locks the finished first word in as a value and starts a second one with r.
func (l *lexer) startValue(r rune) {
	l.values = append(l.values, l.word.String())
	l.word.Reset()
	l.word.WriteRune(r)
}

func (l *lexer) markValueEnd(rune) {
	l.pendingWord = true
}

func (l *lexer) extendValue(r rune) {
	if l.pendingWord {
		l.values = append(l.values, l.word.String())
		l.word.Reset()
		l.pendingWord = false
	}
	l.word.WriteRune(r)
}

func (l *lexer) closeSection() {
	values := l.values
	if l.word.Len() > 0 {
		values = append(values, l.word.String())
	}
	l.sections = append(l.sections, Section{Type: l.sectionType, Values: values})
	l.resetSection()
}

func (l *lexer) nextSection(rune) {
	l.closeSection()
}

func (l *lexer) closeTag(rune) {
	l.closeSection()
	l.out.Tags = append(l.out.Tags, Tag{Sections: l.sections})
	l.sections = nil
}

// Parse lexes a template with the global logger. Input that is not valid UTF-8 is
// rejected with an InvalidEncoding SyntaxError.
func Parse(input string) (ParsedTemplate, error) {
	return parse(input, GetLogger())
}

func parse(input string, logger *Logger) (ParsedTemplate, error) {
	debug := logger.IsDebugMode()
	if debug {
		logger.WithField("input_length", len(input)).Debug("Starting template lexing")
	}

	l := &lexer{}
	state := lexState{base: stateOutsideTag}
	line, column := 1, 0

	for i, r := range input {
		column++
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(input[i:]); size == 1 {
				return ParsedTemplate{}, &SyntaxError{
					Kind:       InvalidEncoding,
					Line:       line,
					Column:     column,
					SourceLine: sourceLine(input, line),
					Char:       r,
					State:      state.String(),
				}
			}
		}
		class := Classify(r)

		if debug {
			logger.WithFields(Fields{
				"state": state.String(),
				"class": class.String(),
				"char":  string(r),
			}).Debug("Lexer step")
		}

		switch {
		case state.escaped:
			// escaped characters always take the ordinary transition
			class = CharOrdinary
			state.escaped = false
		case class == CharEscape:
			state.escaped = true
			continue
		}

		t, ok := transitions[transitionKey{state.base, class}]
		if !ok {
			return ParsedTemplate{}, &SyntaxError{
				Kind:       UnexpectedCharacter,
				Line:       line,
				Column:     column,
				SourceLine: sourceLine(input, line),
				Char:       r,
				State:      state.String(),
			}
		}
		if t.action != nil {
			t.action(l, r)
		}
		state.base = t.next

		if r == '\n' {
			line, column = line+1, 0
		}
	}

	if state.escaped || state.base != stateOutsideTag {
		kind := UnterminatedTag
		if state.escaped {
			kind = DanglingEscape
		}
		endColumn := column
		if endColumn == 0 {
			endColumn = 1
		}
		return ParsedTemplate{}, &SyntaxError{
			Kind:       kind,
			Line:       line,
			Column:     endColumn,
			SourceLine: sourceLine(input, line),
			State:      state.String(),
		}
	}

	l.out.Texts = append(l.out.Texts, l.text.String())
	if debug {
		logger.WithField("tags", len(l.out.Tags)).Debug("Finished template lexing")
	}
	return l.out, nil
}

func sourceLine(input string, line int) string {
	lines := strings.Split(input, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}
