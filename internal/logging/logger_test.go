package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"outreach/internal/services"
)

func TestConsoleHandlerHoistsComponent(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Info("roster ingested", slog.String(FieldComponent, "workflow"), slog.Int("rows", 3))

	line := buf.String()
	if !strings.Contains(line, "INFO workflow: roster ingested") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "rows=3") {
		t.Fatalf("expected rows attr in %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should be hoisted, got %q", line)
	}
}

func TestConsoleHandlerQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Warn("save rejected", slog.String("reason", "missing webinar url"))
	if !strings.Contains(buf.String(), `reason="missing webinar url"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Info("ignored")
	if buf.Len() != 0 {
		t.Fatalf("expected info suppressed, got %q", buf.String())
	}
	logger.Error("kept")
	if !strings.Contains(buf.String(), "ERROR kept") {
		t.Fatalf("expected error line, got %q", buf.String())
	}
}

func TestWithContextAddsSessionFields(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	ctx := services.WithSessionID(context.Background(), "sess-1")
	ctx = services.WithStage(ctx, "logistics")
	WithContext(ctx, logger).Info("saved")

	line := buf.String()
	if !strings.Contains(line, "session_id=sess-1") || !strings.Contains(line, "stage=logistics") {
		t.Fatalf("expected context fields in %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
