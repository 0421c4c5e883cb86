package genderrender

import (
	"errors"
	"fmt"
	"strings"
)

// Error families. Every error returned by the pipeline matches exactly one of them with errors.Is.
var (
	// ErrSyntax covers lexing and section postprocessing failures.
	ErrSyntax = errors.New("template syntax error")
	// ErrCapitalization is matched by *CapitalizationError.
	ErrCapitalization = errors.New("invalid capitalization")
	// ErrInvalidPronounData covers malformed pronoun data. ErrDoubledInformation and
	// ErrInvalidInformation are narrower kinds of it.
	ErrInvalidPronounData = errors.New("invalid pronoun data")
	ErrDoubledInformation = errors.New("doubled information in pronoun data")
	ErrInvalidInformation = errors.New("invalid information in pronoun data")
	// ErrRendering covers failures that need both the template and the pronoun data.
	ErrRendering = errors.New("rendering error")
)

// SyntaxErrorKind identifies why the lexer stopped.
type SyntaxErrorKind int

const (
	UnexpectedCharacter SyntaxErrorKind = iota
	DanglingEscape
	UnterminatedTag
	InvalidEncoding
)

func (k SyntaxErrorKind) String() string {
	switch k {
	case UnexpectedCharacter:
		return "unexpected character"
	case DanglingEscape:
		return "dangling escape"
	case UnterminatedTag:
		return "unterminated tag"
	case InvalidEncoding:
		return "invalid encoding"
	default:
		return "unknown syntax error"
	}
}

// SyntaxError is a lexing failure with its position. Line and Column are 1-based,
// Column counts runes.
type SyntaxError struct {
	Kind       SyntaxErrorKind
	Line       int
	Column     int
	SourceLine string
	Char       rune
	State      string
}

func (e *SyntaxError) Error() string {
	var msg string
	switch e.Kind {
	case UnexpectedCharacter:
		msg = fmt.Sprintf("unexpected character %q in state %s", e.Char, e.State)
	case DanglingEscape:
		msg = "template ends with an escape character that escapes nothing"
	case UnterminatedTag:
		msg = fmt.Sprintf("template ends inside a tag (state %s)", e.State)
	case InvalidEncoding:
		msg = "template is not valid UTF-8"
	default:
		msg = e.Kind.String()
	}
	pointer := ""
	if e.Column > 0 {
		pointer = strings.Repeat(" ", e.Column-1) + "^"
	}
	return fmt.Sprintf("syntax error at line %d, column %d: %s\n%s\n%s", e.Line, e.Column, msg, e.SourceLine, pointer)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// PostprocessingKind identifies a violation found after lexing.
type PostprocessingKind int

const (
	DuplicateSectionType PostprocessingKind = iota
	UnknownSectionType
	TooManySections
	MissingContextSection
	TooManyValues
)

func (k PostprocessingKind) String() string {
	switch k {
	case DuplicateSectionType:
		return "DuplicateSectionType"
	case UnknownSectionType:
		return "UnknownSectionType"
	case TooManySections:
		return "TooManySections"
	case MissingContextSection:
		return "MissingContextSection"
	case TooManyValues:
		return "TooManyValues"
	default:
		return "UnknownPostprocessingError"
	}
}

// PostprocessingError reports a tag that lexed fine but is semantically malformed.
type PostprocessingError struct {
	Kind PostprocessingKind
	// TagIndex is the 0-based position of the tag among the template's tags.
	TagIndex int
	// Tag is the offending tag in template syntax.
	Tag     string
	Message string
}

func (e *PostprocessingError) Error() string {
	return fmt.Sprintf("%s in tag %d %s: %s", e.Kind, e.TagIndex, e.Tag, e.Message)
}

func (e *PostprocessingError) Is(target error) bool {
	return target == ErrSyntax
}

func newPostprocessingError(kind PostprocessingKind, index int, tag Tag, format string, args ...interface{}) error {
	return &PostprocessingError{
		Kind:     kind,
		TagIndex: index,
		Tag:      UnparseTag(tag),
		Message:  fmt.Sprintf(format, args...),
	}
}

// CapitalizationError reports a value whose capitalization cannot be classified,
// an unknown style name, or conflicting styles on one tag.
type CapitalizationError struct {
	Value   string
	Message string
}

func (e *CapitalizationError) Error() string {
	return fmt.Sprintf("invalid capitalization of %q: %s", e.Value, e.Message)
}

func (e *CapitalizationError) Is(target error) bool {
	return target == ErrCapitalization
}

// PronounDataError reports malformed pronoun data. Kind is one of ErrInvalidPronounData,
// ErrDoubledInformation or ErrInvalidInformation.
type PronounDataError struct {
	Kind    error
	ID      string
	Key     string
	Message string
}

func (e *PronounDataError) Error() string {
	var where []string
	if e.ID != "" {
		where = append(where, fmt.Sprintf("id %q", e.ID))
	}
	if e.Key != "" {
		where = append(where, fmt.Sprintf("attribute %q", e.Key))
	}
	if len(where) > 0 {
		return fmt.Sprintf("%v [%s]: %s", e.Kind, strings.Join(where, ", "), e.Message)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Message)
}

func (e *PronounDataError) Unwrap() error {
	return e.Kind
}

func (e *PronounDataError) Is(target error) bool {
	return target == ErrInvalidPronounData
}

func newPronounDataError(kind error, id, key, format string, args ...interface{}) error {
	return &PronounDataError{Kind: kind, ID: id, Key: key, Message: fmt.Sprintf(format, args...)}
}

// IDResolutionError reports template ids that cannot be matched with the pronoun data.
type IDResolutionError struct {
	Message        string
	TemplateIDs    []string
	PronounIDs     []string
	HasUnspecified bool
}

func (e *IDResolutionError) Error() string {
	return fmt.Sprintf("id resolution failed: %s (template ids %v, unspecified tags %t, pronoun data ids %v)",
		e.Message, e.TemplateIDs, e.HasUnspecified, e.PronounIDs)
}

func (e *IDResolutionError) Is(target error) bool {
	return target == ErrRendering
}

// MissingInformationError reports a tag whose attribute is neither in the pronoun data nor defaulted.
type MissingInformationError struct {
	ID        string
	Attribute string
}

func (e *MissingInformationError) Error() string {
	return fmt.Sprintf("a tag requires the %q attribute of individual %q, but their pronoun data does not define it",
		e.Attribute, e.ID)
}

func (e *MissingInformationError) Is(target error) bool {
	return target == ErrRendering
}

// MultiError collects multiple errors
type MultiError struct {
	errors []error
}

// NewMultiError creates a new multi-error collector
func NewMultiError() *MultiError {
	return &MultiError{
		errors: make([]error, 0),
	}
}

// Add adds an error to the collection (ignores nil errors)
func (m *MultiError) Add(err error) {
	if err != nil {
		m.errors = append(m.errors, err)
	}
}

// Len returns the number of errors
func (m *MultiError) Len() int {
	return len(m.errors)
}

// Err returns the multi-error or nil if empty
func (m *MultiError) Err() error {
	if len(m.errors) == 0 {
		return nil
	}
	if len(m.errors) == 1 {
		return m.errors[0]
	}
	return m
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (m *MultiError) Unwrap() []error {
	return m.errors
}

func (m *MultiError) Error() string {
	if len(m.errors) == 0 {
		return "no errors"
	}
	if len(m.errors) == 1 {
		return m.errors[0].Error()
	}

	parts := []string{fmt.Sprintf("%d errors occurred:", len(m.errors))}
	for i, err := range m.errors {
		parts = append(parts, fmt.Sprintf("  [%d] %v", i+1, err))
	}
	return strings.Join(parts, "\n")
}

// ContextError adds context to an existing error
type ContextError struct {
	Operation string
	Context   map[string]interface{}
	Cause     error
}

func (e *ContextError) Error() string {
	var contextParts []string
	for k, v := range e.Context {
		contextParts = append(contextParts, fmt.Sprintf("%s=%v", k, v))
	}

	if len(contextParts) > 0 {
		return fmt.Sprintf("%s [%s]: %v", e.Operation, strings.Join(contextParts, ", "), e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Cause)
}

func (e *ContextError) Unwrap() error {
	return e.Cause
}

// WithContext wraps an error with additional context
func WithContext(err error, operation string, context map[string]interface{}) error {
	if err == nil {
		return nil
	}
	return &ContextError{
		Operation: operation,
		Context:   context,
		Cause:     err,
	}
}

// IsSyntaxError checks if an error is a lexing error
func IsSyntaxError(err error) bool {
	var e *SyntaxError
	return errors.As(err, &e)
}

// IsPostprocessingError checks if an error is a section postprocessing error
func IsPostprocessingError(err error) bool {
	var e *PostprocessingError
	return errors.As(err, &e)
}

// IsCapitalizationError checks if an error is a capitalization error
func IsCapitalizationError(err error) bool {
	var e *CapitalizationError
	return errors.As(err, &e)
}

// IsPronounDataError checks if an error is a pronoun data error
func IsPronounDataError(err error) bool {
	var e *PronounDataError
	return errors.As(err, &e)
}

// IsIDResolutionError checks if an error is an id resolution error
func IsIDResolutionError(err error) bool {
	var e *IDResolutionError
	return errors.As(err, &e)
}

// IsMissingInformationError checks if an error is a missing information error
func IsMissingInformationError(err error) bool {
	var e *MissingInformationError
	return errors.As(err, &e)
}
