package app

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"INFO", LogLevelInfo},
		{"Warning", LogLevelWarn},
		{"error", LogLevelError},
		{"bogus", LogLevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf, Prefix: "test"})

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	l.Error("also shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("low-level messages leaked: %q", out)
	}
	if !strings.Contains(out, "[WARN] test: shown") {
		t.Errorf("missing warn line in %q", out)
	}
	if !strings.Contains(out, "[ERROR] test: also shown") {
		t.Errorf("missing error line in %q", out)
	}
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf})

	l.WithComponent("buffer").WithField("lines", 3).Info("opened")

	out := buf.String()
	if !strings.Contains(out, "{component=buffer, lines=3}") {
		t.Errorf("fields not rendered sorted: %q", out)
	}
}

func TestLoggerFormatArgs(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf})

	l.Info("opened %s with %d lines", "a.txt", 7)
	if !strings.Contains(buf.String(), "opened a.txt with 7 lines") {
		t.Errorf("args not formatted: %q", buf.String())
	}
}

func TestNullLogger(t *testing.T) {
	// Must not panic or write anywhere.
	NullLogger.Error("nothing")
	NullLogger.WithField("k", "v").Info("nothing")
}
