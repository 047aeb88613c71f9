package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netman-app/authkit/pkg/logger"
)

type ctxKey struct{}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json by default", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Info("hello", logger.Component("auth"))

		entry := decode(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
		assert.Equal(t, "auth", entry["component"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText))
		log.Info("hello")
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("invalid format panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
	})

	t.Run("level filters records", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelWarn))
		log.Info("dropped")
		assert.Empty(t, buf.String())
		log.Warn("kept")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("context values are injected", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextValue("request_id", ctxKey{}),
		)
		ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
		log.InfoContext(ctx, "with request")

		entry := decode(t, buf)
		assert.Equal(t, "req-1", entry["request_id"])
	})

	t.Run("environment tags records", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithEnvironment("prod", "authd"),
			logger.WithOutput(buf),
		)
		log.Debug("hidden")
		log.Info("shown")

		entry := decode(t, buf)
		assert.Equal(t, "authd", entry["service"])
		assert.Equal(t, "production", entry["env"])
	})
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	opts := logger.FromConfig(logger.Config{Level: "warn", Format: "json", Env: "development", Service: "authd"})
	log := logger.New(append(opts, logger.WithOutput(buf))...)

	log.Info("dropped")
	assert.Empty(t, buf.String())

	log.Error("failed", logger.Error(errors.New("boom")), logger.UserID(int64(7)))
	entry := decode(t, buf)
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, float64(7), entry["user_id"])
	assert.Equal(t, "development", entry["env"])
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.True(t, logger.UserID(nil).Equal(slog.Attr{}))
	assert.Equal(t, "operation", logger.Operation("refresh").Key)
	assert.Equal(t, "provider", logger.Provider("google").Key)

	g := logger.Group("grant", slog.Bool("admin", true))
	assert.Equal(t, slog.KindGroup, g.Value.Kind())
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	log := logger.Discard()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
