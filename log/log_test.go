package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func jsonLogger(level Level) (Logger, *bytes.Buffer) {
	var buf bytes.Buffer

	l := Make(&buf,
		WithFormat(FormatJSON),
		WithLevel(level),
		WithTimeLayout("none"),
	)

	return l, &buf
}

func TestLoggerZeroValue(t *testing.T) {
	var l Logger

	// Must not panic; every message is discarded.
	l.Info("dropped")
	l.ErrorContext(context.Background(), "dropped",
		slog.String("key", "value"))

	if l.Level() != DefaultLevel {
		t.Errorf("expected default level, got %v", l.Level())
	}

	if l.Format() != DefaultFormat {
		t.Errorf("expected default format, got %v", l.Format())
	}

	derived := l.With(slog.String("key", "value"))
	derived.Warn("dropped")
}

func TestLoggerLevelFiltering(t *testing.T) {
	l, buf := jsonLogger(LevelWarn)

	l.Trace("dropped")
	l.Debug("dropped")
	l.Info("dropped")
	l.Warn("kept")
	l.Error("kept")

	lines := strings.Count(buf.String(), "\n")
	if lines != 2 {
		t.Errorf("expected 2 records, got %d:\n%s", lines, buf.String())
	}

	if strings.Contains(buf.String(), "dropped") {
		t.Errorf("filtered message reached the output:\n%s", buf.String())
	}
}

func TestLoggerTraceLevelName(t *testing.T) {
	l, buf := jsonLogger(LevelTrace)

	l.Trace("deep")

	var rec map[string]any

	err := json.Unmarshal(buf.Bytes(), &rec)
	if err != nil {
		t.Fatalf("invalid record: %v", err)
	}

	if rec["level"] != "TRACE" {
		t.Errorf("expected TRACE, got %v", rec["level"])
	}
}

func TestLoggerAttrs(t *testing.T) {
	l, buf := jsonLogger(LevelInfo)

	l.Info("event", slog.String("source", "stdin"), slog.Int("count", 3))

	var rec map[string]any

	err := json.Unmarshal(buf.Bytes(), &rec)
	if err != nil {
		t.Fatalf("invalid record: %v", err)
	}

	if rec["source"] != "stdin" || rec["count"] != float64(3) {
		t.Errorf("unexpected record: %v", rec)
	}
}

func TestLoggerWith(t *testing.T) {
	l, buf := jsonLogger(LevelInfo)

	derived := l.With(slog.String("unit", "pump"))
	derived.Info("first")
	derived.Info("second")

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if !strings.Contains(line, `"unit":"pump"`) {
			t.Errorf("record lacks the bound attribute: %s", line)
		}
	}
}

func TestLoggerWrap(t *testing.T) {
	l, _ := jsonLogger(LevelInfo)

	wrapped := l.Wrap(WithLevel(LevelError), WithFormat(FormatText))

	if wrapped.Level() != LevelError {
		t.Errorf("expected error level, got %v", wrapped.Level())
	}

	if wrapped.Format() != FormatText {
		t.Errorf("expected text format, got %v", wrapped.Format())
	}

	// The original keeps its configuration.
	if l.Level() != LevelInfo {
		t.Errorf("wrap must not touch the source logger")
	}
}

func TestLoggerTextFormat(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf,
		WithFormat(FormatText),
		WithPretty(false),
		WithTimeLayout("none"),
	)

	l.Info("event", slog.String("key", "value"))

	out := buf.String()

	if !strings.Contains(out, "msg=event") || !strings.Contains(out, "key=value") {
		t.Errorf("unexpected text output: %s", out)
	}
}

func TestLoggerPrettyFormat(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf,
		WithFormat(FormatText),
		WithPretty(true),
		WithTimeLayout("none"),
	)

	l.Warn("event", slog.String("key", "value"))

	out := buf.String()

	if !strings.Contains(out, "\x1b[") {
		t.Errorf("expected colorized output: %q", out)
	}

	if !strings.Contains(out, "event") || !strings.Contains(out, "value") {
		t.Errorf("output lacks the message or attribute: %q", out)
	}
}

func TestMakeNilWriter(t *testing.T) {
	l := Make(nil)

	// Must not panic.
	l.Info("dropped")
}
