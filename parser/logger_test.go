package parser

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNopLogger(t *testing.T) {
	t.Run("implements Logger interface", func(t *testing.T) {
		var _ Logger = NopLogger{}
	})

	t.Run("methods do nothing", func(t *testing.T) {
		l := NopLogger{}
		// Should not panic
		l.Debug("test message", "key", "value")
		l.Info("test message", "key", "value")
		l.Warn("test message", "key", "value")
		l.Error("test message", "key", "value")
	})

	t.Run("With returns same NopLogger", func(t *testing.T) {
		l := NopLogger{}
		l2 := l.With("key", "value")
		_, ok := l2.(NopLogger)
		if !ok {
			t.Error("With should return NopLogger")
		}
	})
}

func TestSlogAdapter(t *testing.T) {
	t.Run("implements Logger interface", func(t *testing.T) {
		var _ Logger = (*SlogAdapter)(nil)
	})

	t.Run("NewSlogAdapter with nil uses default", func(t *testing.T) {
		adapter := NewSlogAdapter(nil)
		if adapter.logger == nil {
			t.Error("adapter.logger should not be nil")
		}
	})

	t.Run("Debug logs at debug level", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		adapter := NewSlogAdapter(slog.New(handler))

		adapter.Debug("test debug", "foo", "bar")
		output := buf.String()
		if !strings.Contains(output, "DEBUG") {
			t.Errorf("expected DEBUG level, got: %s", output)
		}
		if !strings.Contains(output, "foo=bar") {
			t.Errorf("expected foo=bar attribute, got: %s", output)
		}
	})

	t.Run("Info logs at info level", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
		adapter := NewSlogAdapter(slog.New(handler))

		adapter.Info("test info", "count", 42)
		output := buf.String()
		if !strings.Contains(output, "INFO") {
			t.Errorf("expected INFO level, got: %s", output)
		}
		if !strings.Contains(output, "count=42") {
			t.Errorf("expected count=42 attribute, got: %s", output)
		}
	})

	t.Run("Warn logs at warn level", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})
		adapter := NewSlogAdapter(slog.New(handler))

		adapter.Warn("test warn", "problem", "something")
		if !strings.Contains(buf.String(), "WARN") {
			t.Errorf("expected WARN level, got: %s", buf.String())
		}
	})

	t.Run("Error logs at error level", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError})
		adapter := NewSlogAdapter(slog.New(handler))

		adapter.Error("test error", "err", "failed")
		if !strings.Contains(buf.String(), "ERROR") {
			t.Errorf("expected ERROR level, got: %s", buf.String())
		}
	})

	t.Run("With adds attributes", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		adapter := NewSlogAdapter(slog.New(handler))

		withAdapter := adapter.With("component", "parser")
		withAdapter.Debug("test with", "extra", "data")
		output := buf.String()
		if !strings.Contains(output, "component=parser") {
			t.Errorf("expected component=parser attribute, got: %s", output)
		}
		if !strings.Contains(output, "extra=data") {
			t.Errorf("expected extra=data attribute, got: %s", output)
		}
	})

	t.Run("With returns new SlogAdapter", func(t *testing.T) {
		adapter := NewSlogAdapter(nil)
		withAdapter := adapter.With("key", "value")
		_, ok := withAdapter.(*SlogAdapter)
		if !ok {
			t.Error("With should return *SlogAdapter")
		}
	})
}

func TestLoggerUsagePatterns(t *testing.T) {
	t.Run("chained With calls", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		adapter := NewSlogAdapter(slog.New(handler))

		l := adapter.
			With("package", "parser").
			With("operation", "resolve")
		l.Debug("resolving reference", "ref", "#/components/schemas/Pet")

		output := buf.String()
		if !strings.Contains(output, "package=parser") {
			t.Errorf("expected package=parser, got: %s", output)
		}
		if !strings.Contains(output, "operation=resolve") {
			t.Errorf("expected operation=resolve, got: %s", output)
		}
		if !strings.Contains(output, "ref=#/components/schemas/Pet") {
			t.Errorf("expected ref attribute, got: %s", output)
		}
	})

	t.Run("parse logs through the configured logger", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		adapter := NewSlogAdapter(slog.New(handler))

		_, err := ParseWithOptions(
			WithFilePath("testdata/petstore.yaml"),
			WithLogger(adapter),
		)
		if err != nil {
			t.Fatalf("unexpected parse error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "parsed specification") {
			t.Errorf("expected parse summary in output, got: %s", output)
		}
		if !strings.Contains(output, "resolving reference") {
			t.Errorf("expected resolution debug output, got: %s", output)
		}
	})
}
