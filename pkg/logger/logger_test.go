package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/recipebox/pkg/environment"
	"github.com/dmitrymomot/recipebox/pkg/logger"
)

type ctxKey struct{}

func TestNewJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithFormat(logger.FormatJSON),
		logger.WithAttr(slog.String("service", "recipebox")),
		logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
			v, ok := ctx.Value(ctxKey{}).(string)
			return slog.String("request_id", v), ok
		}),
	)

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	log.InfoContext(ctx, "hello", logger.RecipeID("r1"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "recipebox", rec["service"])
	assert.Equal(t, "req-1", rec["request_id"])
	assert.Equal(t, "r1", rec["recipe_id"])
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))
	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	t.Run("production logs json at info", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithEnvironment(environment.Production, "svc"))
		log.Debug("hidden")
		log.Info("shown")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "production", rec["env"])
		assert.Equal(t, "svc", rec["service"])
	})

	t.Run("development logs debug", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithEnvironment(environment.Development, "svc"))
		log.Debug("visible")
		assert.Contains(t, buf.String(), "visible")
	})
}

func TestWithFormatPanicsOnUnknown(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.True(t, logger.UserID(nil).Equal(slog.Attr{}))
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))

	err := errors.New("boom")
	assert.Equal(t, err, logger.Error(err).Value.Any())
	assert.Equal(t, "user_id", logger.UserID("u1").Key)
	assert.Equal(t, time.Second, logger.Duration(time.Second).Value.Duration())
	assert.Equal(t, "component", logger.Component("search").Key)
}
