package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"

	appCtx "github.com/baechuer/explore-with-me/services/main-service/internal/pkg/context"
)

func TestInitWithWriter(t *testing.T) {
	t.Run("defaults_to_info_console", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("LOG_FORMAT", "")

		var buf bytes.Buffer
		InitWithWriter(&buf)

		assert.Equal(t, zerolog.InfoLevel, Logger.GetLevel())
		assert.Equal(t, Logger.GetLevel(), zlog.Logger.GetLevel())

		Logger.Debug().Msg("hidden")
		Logger.Info().Msg("hello")
		out := strings.TrimSpace(buf.String())
		assert.False(t, strings.HasPrefix(out, "{"))
		assert.Contains(t, out, "hello")
		assert.NotContains(t, out, "hidden")
	})

	t.Run("invalid_level_falls_back_to_info", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "loud")
		t.Setenv("LOG_FORMAT", "console")

		InitWithWriter(&bytes.Buffer{})
		assert.Equal(t, zerolog.InfoLevel, Logger.GetLevel())
	})

	t.Run("json_format", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "json")

		var buf bytes.Buffer
		InitWithWriter(&buf)
		Logger.Debug().Str("k", "v").Msg("hello")

		out := strings.TrimSpace(buf.String())
		assert.True(t, strings.HasPrefix(out, "{"))
		assert.Contains(t, out, `"k":"v"`)
		assert.Contains(t, out, `"service":"main-service"`)
	})
}

func TestCtx_AddsRequestID(t *testing.T) {
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_FORMAT", "json")

	var buf bytes.Buffer
	InitWithWriter(&buf)

	ctx := appCtx.WithRequestID(context.Background(), "req-42")
	Ctx(ctx).Info().Msg("tagged")
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
}
