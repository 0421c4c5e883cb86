package genderrender

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		level     LogLevel
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
		wantError bool
	}{
		{LogDebug, true, true, true, true},
		{LogInfo, false, true, true, true},
		{LogWarn, false, false, true, true},
		{LogError, false, false, false, true},
		{LogOff, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, tt.level)

			logger.Debug("debug message")
			logger.Info("info message")
			logger.Warn("warn message")
			logger.Error("error message")

			out := buf.String()
			checks := map[string]bool{
				"debug message": tt.wantDebug,
				"info message":  tt.wantInfo,
				"warn message":  tt.wantWarn,
				"error message": tt.wantError,
			}
			for msg, want := range checks {
				if got := strings.Contains(out, msg); got != want {
					t.Errorf("Output contains %q = %v, want %v\n%s", msg, got, want, out)
				}
			}
			if got := logger.IsDebugMode(); got != (tt.level == LogDebug) {
				t.Errorf("IsDebugMode() = %v", got)
			}
		})
	}
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogInfo)

	logger.WithField("render_id", "abc").WithFields(Fields{"tags": 3}).Warn("rendered %d tags", 3)

	out := buf.String()
	for _, want := range []string{"WARN", "rendered 3 tags", `"render_id": "abc"`, `"tags": 3`} {
		if !strings.Contains(out, want) {
			t.Errorf("Output %q does not contain %q", out, want)
		}
	}
}

func TestLogger_SetLevelIsShared(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogError)
	child := logger.WithField("component", "lexer")

	logger.SetLevel(LogDebug)
	child.Debug("visible")

	if !strings.Contains(buf.String(), "visible") {
		t.Error("Expected derived logger to follow the parent's level")
	}
}

func TestNewLoggerFromZap(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := NewLoggerFromZap(zap.New(core), LogWarn)

	logger.Info("dropped")
	logger.WithField("diagnostic", "noun-not-found").Warn("kept")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("Got %d entries, want 1", len(entries))
	}
	if entries[0].Message != "kept" || entries[0].ContextMap()["diagnostic"] != "noun-not-found" {
		t.Errorf("Unexpected entry %+v", entries[0])
	}
}

func TestGlobalLogger(t *testing.T) {
	original := GetLogger()
	t.Cleanup(func() { SetLogger(original) })

	var buf bytes.Buffer
	SetLogger(NewLogger(&buf, LogInfo))

	Info("global %s", "info")
	Debug("hidden")
	WithField("k", "v").Error("global error")

	out := buf.String()
	if !strings.Contains(out, "global info") || !strings.Contains(out, "global error") {
		t.Errorf("Missing global log output:\n%s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("Debug message written at info level")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug": LogDebug,
		"INFO":  LogInfo,
		"warn":  LogWarn,
		"error": LogError,
		"off":   LogOff,
		"":      LogInfo,
		"loud":  LogInfo,
	}
	for input, want := range tests {
		if got := parseLogLevel(input); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
