package genderrender

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestDiagnosticSettings_EnableDisable(t *testing.T) {
	var s DiagnosticSettings
	for _, k := range diagnosticKinds {
		if !s.Enabled(k) {
			t.Errorf("Zero settings disable %v", k)
		}
	}

	s = s.Disable(NounNotFound, DefaultValueUsed)
	if s.Enabled(NounNotFound) || s.Enabled(DefaultValueUsed) {
		t.Error("Expected disabled kinds to be off")
	}
	if !s.Enabled(IDMatchingNecessary) {
		t.Error("Expected other kinds to stay on")
	}

	s = s.Enable(NounNotFound)
	if !s.Enabled(NounNotFound) || s.Enabled(DefaultValueUsed) {
		t.Error("Enable switched the wrong kinds")
	}

	silent := SilentDiagnostics()
	for _, k := range diagnosticKinds {
		if silent.Enabled(k) {
			t.Errorf("SilentDiagnostics reports %v", k)
		}
	}
}

func TestDiagnosticSettings_Emit(t *testing.T) {
	rec := &DiagnosticRecorder{}
	s := DiagnosticSettings{Handler: rec}.Disable(UnknownProperty)

	s.emit(NounNotFound, "%q is unknown", "dragon")
	s.emit(UnknownProperty, "dropped")
	s.report(Diagnostic{Kind: UnknownProperty, Message: "dropped too"})

	got := rec.Diagnostics()
	if len(got) != 1 {
		t.Fatalf("Got %d diagnostics, want 1: %v", len(got), got)
	}
	if got[0].Kind != NounNotFound || got[0].Message != `"dragon" is unknown` {
		t.Errorf("Unexpected diagnostic %v", got[0])
	}
	if got[0].String() != `noun-not-found: "dragon" is unknown` {
		t.Errorf("String() = %q", got[0].String())
	}
}

func TestDiagnosticSettings_DefaultHandlerLogs(t *testing.T) {
	original := GetLogger()
	t.Cleanup(func() { SetLogger(original) })

	var buf bytes.Buffer
	SetLogger(NewLogger(&buf, LogWarn))

	DiagnosticSettings{}.emit(DefaultValueUsed, "using the default")

	out := buf.String()
	if !strings.Contains(out, "using the default") || !strings.Contains(out, "default-value-used") {
		t.Errorf("Expected diagnostic in log output, got:\n%s", out)
	}
}

func TestDiagnosticFunc(t *testing.T) {
	var got []DiagnosticKind
	s := DiagnosticSettings{}.WithHandler(DiagnosticFunc(func(d Diagnostic) {
		got = append(got, d.Kind)
	}))
	s.emit(IDMatchingNecessary, "matched")
	if len(got) != 1 || got[0] != IDMatchingNecessary {
		t.Errorf("Handler received %v", got)
	}
}

func TestParseDiagnosticKind(t *testing.T) {
	for _, k := range diagnosticKinds {
		got, err := ParseDiagnosticKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseDiagnosticKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if got, err := ParseDiagnosticKind(" Noun-Not-Found "); err != nil || got != NounNotFound {
		t.Errorf("ParseDiagnosticKind ignores case and spaces: got %v, %v", got, err)
	}
	if _, err := ParseDiagnosticKind("typo"); err == nil {
		t.Error("Expected error for unknown kind")
	}
}

func TestDiagnosticRecorder_Concurrent(t *testing.T) {
	rec := &DiagnosticRecorder{}
	s := DiagnosticSettings{Handler: rec}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.emit(NounNotFound, "concurrent")
		}()
	}
	wg.Wait()

	if rec.Count(NounNotFound) != 50 {
		t.Errorf("Count = %d, want 50", rec.Count(NounNotFound))
	}
	rec.Reset()
	if len(rec.Diagnostics()) != 0 {
		t.Error("Expected Reset to drop everything")
	}
}
