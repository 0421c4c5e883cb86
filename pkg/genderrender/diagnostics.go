package genderrender

import (
	"fmt"
	"strings"
	"sync"
)

// DiagnosticKind classifies advisory messages. Diagnostics never change results.
type DiagnosticKind int

const (
	// IDMatchingNecessary: ids of template and pronoun data had to be matched by inference.
	IDMatchingNecessary DiagnosticKind = iota
	// DefaultValueUsed: an attribute was missing and its default was used.
	DefaultValueUsed
	// NounNotFound: a context value is not in the noun dataset and is rendered unchanged.
	NounNotFound
	// NounGenderingGuesses: the dataset entry of a noun was generated heuristically.
	NounGenderingGuesses
	// UnknownProperty: pronoun data uses an unknown attribute without the custom syntax.
	UnknownProperty
	// UnexpectedFileFormat: a file does not carry the usual extension.
	UnexpectedFileFormat
)

var diagnosticKinds = []DiagnosticKind{
	IDMatchingNecessary, DefaultValueUsed, NounNotFound, NounGenderingGuesses, UnknownProperty, UnexpectedFileFormat,
}

func (k DiagnosticKind) String() string {
	switch k {
	case IDMatchingNecessary:
		return "id-matching-necessary"
	case DefaultValueUsed:
		return "default-value-used"
	case NounNotFound:
		return "noun-not-found"
	case NounGenderingGuesses:
		return "noun-gendering-guesses"
	case UnknownProperty:
		return "unknown-property"
	case UnexpectedFileFormat:
		return "unexpected-file-format"
	default:
		return "unknown"
	}
}

// ParseDiagnosticKind converts a name such as "default-value-used" to its kind.
func ParseDiagnosticKind(name string) (DiagnosticKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, k := range diagnosticKinds {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown diagnostic kind %q", name)
}

// Diagnostic is one advisory message.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// DiagnosticHandler receives diagnostics. Handlers used with RenderBatch must be safe
// for concurrent use.
type DiagnosticHandler interface {
	HandleDiagnostic(Diagnostic)
}

// DiagnosticFunc adapts a function to DiagnosticHandler.
type DiagnosticFunc func(Diagnostic)

func (f DiagnosticFunc) HandleDiagnostic(d Diagnostic) {
	f(d)
}

// LogDiagnostics returns a handler writing every diagnostic to logger at warn level.
func LogDiagnostics(logger *Logger) DiagnosticHandler {
	return DiagnosticFunc(func(d Diagnostic) {
		logger.WithField("diagnostic", d.Kind.String()).Warn("%s", d.Message)
	})
}

// DiagnosticSettings selects which diagnostics are reported and where they go.
// The zero value reports every kind to the global logger.
type DiagnosticSettings struct {
	Handler  DiagnosticHandler
	disabled uint32
}

// SilentDiagnostics returns settings with every kind disabled.
func SilentDiagnostics() DiagnosticSettings {
	return DiagnosticSettings{}.Disable(diagnosticKinds...)
}

// Disable returns a copy of s with the given kinds switched off.
func (s DiagnosticSettings) Disable(kinds ...DiagnosticKind) DiagnosticSettings {
	for _, k := range kinds {
		s.disabled |= 1 << uint(k)
	}
	return s
}

// Enable returns a copy of s with the given kinds switched on.
func (s DiagnosticSettings) Enable(kinds ...DiagnosticKind) DiagnosticSettings {
	for _, k := range kinds {
		s.disabled &^= 1 << uint(k)
	}
	return s
}

// Enabled reports whether kind k is reported.
func (s DiagnosticSettings) Enabled(k DiagnosticKind) bool {
	return s.disabled&(1<<uint(k)) == 0
}

// WithHandler returns a copy of s reporting to h.
func (s DiagnosticSettings) WithHandler(h DiagnosticHandler) DiagnosticSettings {
	s.Handler = h
	return s
}

func (s DiagnosticSettings) report(d Diagnostic) {
	if !s.Enabled(d.Kind) {
		return
	}
	h := s.Handler
	if h == nil {
		h = LogDiagnostics(GetLogger())
	}
	h.HandleDiagnostic(d)
}

func (s DiagnosticSettings) emit(kind DiagnosticKind, format string, args ...interface{}) {
	if !s.Enabled(kind) {
		return
	}
	s.report(Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// DiagnosticRecorder collects diagnostics in memory. It is safe for concurrent use.
type DiagnosticRecorder struct {
	mu          sync.Mutex
	diagnostics []Diagnostic
}

func (r *DiagnosticRecorder) HandleDiagnostic(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diagnostics = append(r.diagnostics, d)
}

// Diagnostics returns a copy of everything recorded so far.
func (r *DiagnosticRecorder) Diagnostics() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Diagnostic(nil), r.diagnostics...)
}

// Count returns how many diagnostics of kind k were recorded.
func (r *DiagnosticRecorder) Count(k DiagnosticKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, d := range r.diagnostics {
		if d.Kind == k {
			n++
		}
	}
	return n
}

// Has reports whether at least one diagnostic of kind k was recorded.
func (r *DiagnosticRecorder) Has(k DiagnosticKind) bool {
	return r.Count(k) > 0
}

// Reset drops all recorded diagnostics.
func (r *DiagnosticRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diagnostics = nil
}
