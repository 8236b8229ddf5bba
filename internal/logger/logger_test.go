package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", "json")

	log.Debug("hidden")
	log.Info("user registered", "user_id", 7)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "user registered", entry["msg"])
	assert.Equal(t, float64(7), entry["user_id"])
}

func TestPrettyHandler(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", "text").With("component", "auth")

	log.Info("hidden")
	log.Warn("token rejected", "reason", "expired")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "token rejected")
	assert.Contains(t, out, "component")
	assert.Contains(t, out, "reason")
	assert.Contains(t, out, "expired")
}

func TestPrettyHandler_NilLevel(t *testing.T) {
	h := NewPrettyHandler(&bytes.Buffer{}, nil)
	assert.True(t, h.Enabled(t.Context(), slog.LevelInfo))
	assert.False(t, h.Enabled(t.Context(), slog.LevelDebug))
}

func TestNew_RedactsCredentials(t *testing.T) {
	for _, format := range []string{"json", "text"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(&buf, "info", format)

			log.Info("login attempt",
				"email", "ana@test.com",
				"password", "secret1",
				slog.Group("req", "Authorization", "Bearer abc.def.ghi"),
			)

			out := buf.String()
			assert.Contains(t, out, "ana@test.com")
			assert.NotContains(t, out, "secret1")
			assert.NotContains(t, out, "abc.def.ghi")
			assert.Contains(t, out, "[REDACTED]")
		})
	}
}

func TestPrettyHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", "text").WithGroup("db").With("host", "localhost")

	log.Info("connected", "max_conns", 10)

	out := buf.String()
	assert.Contains(t, out, "db.host")
	assert.Contains(t, out, "db.max_conns")
	assert.NotContains(t, out, "db.db.")
}
