package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, slog.LevelWarn, cfg.Level)
	assert.False(t, cfg.JSON)
}

func TestDebugConfig(t *testing.T) {
	cfg := DebugConfig()
	assert.Equal(t, slog.LevelDebug, cfg.Level)
	assert.True(t, cfg.JSON)
	assert.True(t, cfg.AddSource)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelWarn},
		{"", slog.LevelWarn},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestInit(t *testing.T) {
	t.Cleanup(func() { Init(DefaultConfig()) })

	t.Run("text_output", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Config{Level: slog.LevelInfo, Output: &buf})

		Info("hello", KeyKey, "goals")
		assert.Contains(t, buf.String(), "hello")
		assert.Contains(t, buf.String(), "key=goals")
		assert.False(t, Debug)
	})

	t.Run("json_output", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Config{Level: slog.LevelDebug, JSON: true, Output: &buf})
		assert.True(t, Debug)

		Warn("decode failed", KeyKey, "tasks", KeyError, "boom")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "decode failed", entry["msg"])
		assert.Equal(t, "tasks", entry[KeyKey])
	})

	t.Run("level_filters", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Config{Level: slog.LevelWarn, Output: &buf})

		Info("hidden")
		DebugLog("hidden too")
		Error("shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("nil_output_uses_stderr", func(t *testing.T) {
		Init(Config{Level: slog.LevelInfo})
		assert.NotNil(t, Logger())
	})
}

func TestWith(t *testing.T) {
	t.Cleanup(func() { Init(DefaultConfig()) })

	var buf bytes.Buffer
	Init(Config{Level: slog.LevelInfo, Output: &buf})

	With(KeyEntity, "goal").Info("saved")
	assert.Contains(t, buf.String(), "entity=goal")
}

func TestLogOperation(t *testing.T) {
	t.Cleanup(func() { Init(DefaultConfig()) })

	var buf bytes.Buffer
	Init(Config{Level: slog.LevelDebug, Output: &buf})

	LogOperation("export", time.Now(), KeyCount, 3)
	out := buf.String()
	assert.True(t, strings.Contains(out, "op=export"), out)
	assert.Contains(t, out, "count=3")
	assert.Contains(t, out, KeyDuration)
}
