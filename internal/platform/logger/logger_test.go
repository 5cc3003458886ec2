package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/config"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/platform/logger"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "Warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "verbose", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := logger.ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewWritesJSONAtLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := logger.New(&buf, "warn")
	require.NoError(t, err)

	l.Info("dropped")
	l.Warn("kept", "course", "MC102")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "MC102", entry["course"])
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	_, err := logger.Setup(config.ServerConfig{LogLevel: "loud"})
	assert.Error(t, err)
}

func TestSetupInstallsDefault(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	l, err := logger.Setup(config.ServerConfig{LogLevel: "debug"})
	require.NoError(t, err)
	assert.Same(t, l, slog.Default())
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()

	_, ok := logger.FromContext(ctx)
	assert.False(t, ok)
	assert.Same(t, slog.Default(), logger.FromContextOrDefault(ctx))

	l, buf := logger.NewTestLogger()
	ctx = logger.WithLogger(ctx, l.With("trace_id", "abc"))

	got, ok := logger.FromContext(ctx)
	require.True(t, ok)
	got.Info("hello")

	entries, err := buf.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "abc", entries[0]["trace_id"])
}
