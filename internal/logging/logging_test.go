package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelInfo,
		Format: FormatText,
		Output: &buf,
	})

	logger.Info("bumped", "project", "foo")

	out := buf.String()
	if !strings.Contains(out, "bumped") {
		t.Errorf("missing message: %q", out)
	}
	if !strings.Contains(out, "project=foo") {
		t.Errorf("missing attribute: %q", out)
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelInfo,
		Format: FormatJSON,
		Output: &buf,
	})

	logger.Info("bumped")

	if !strings.Contains(buf.String(), `"msg":"bumped"`) {
		t.Errorf("expected JSON output, got %q", buf.String())
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelWarn,
		Format: FormatText,
		Output: &buf,
	})

	logger.Debug("too quiet")
	logger.Info("still too quiet")
	logger.Warn("heard")

	out := buf.String()
	if strings.Contains(out, "too quiet") {
		t.Errorf("below-level messages leaked: %q", out)
	}
	if !strings.Contains(out, "heard") {
		t.Errorf("missing warn message: %q", out)
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		want      slog.Level
	}{
		{0, slog.LevelWarn},
		{1, slog.LevelInfo},
		{2, slog.LevelDebug},
		{5, slog.LevelDebug},
		{-1, slog.LevelWarn},
	}
	for _, tt := range tests {
		got := LevelFromVerbosity(tt.verbosity)
		if got != tt.want {
			t.Errorf("LevelFromVerbosity(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}

func TestFanout(t *testing.T) {
	var a, b bytes.Buffer
	logger := slog.New(Fanout(
		slog.NewTextHandler(&a, nil),
		slog.NewTextHandler(&b, nil),
	))

	logger.Info("fan out")

	if !strings.Contains(a.String(), "fan out") || !strings.Contains(b.String(), "fan out") {
		t.Errorf("record not dispatched to all handlers: a=%q b=%q", a.String(), b.String())
	}
}

func TestFanout_SingleHandlerPassthrough(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, nil)
	if Fanout(h) != slog.Handler(h) {
		t.Error("single handler should pass through unwrapped")
	}
}

func TestNewTee(t *testing.T) {
	var term, file bytes.Buffer
	logger := NewTee(Config{
		Level:  slog.LevelInfo,
		Format: FormatText,
		Output: &term,
	}, &file)

	logger.Info("bumped", "project", "foo")

	if !strings.Contains(term.String(), "bumped") {
		t.Errorf("terminal output missing message: %q", term.String())
	}
	if !strings.Contains(file.String(), `"msg":"bumped"`) {
		t.Errorf("file output should be JSON: %q", file.String())
	}
}
