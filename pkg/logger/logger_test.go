package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew(t *testing.T) {
	t.Run("jsonWithService", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(Config{Level: "info", Format: "json", Output: &buf}, "order-notifier")
		l.Debug("hidden")
		l.Info("visible", "orderId", "A1")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, `"msg":"visible"`)
		assert.Contains(t, out, `"service":"order-notifier"`)
		assert.Contains(t, out, `"orderId":"A1"`)
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(Config{Level: "debug", Format: "text", Output: &buf}, "")
		l.Debug("shown")
		assert.Contains(t, buf.String(), "msg=shown")
	})
}
