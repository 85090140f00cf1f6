package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/promptmix/pkg/archive"
	"github.com/dmitrymomot/promptmix/pkg/config"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		app, err := config.Parse(nil)
		require.NoError(t, err)

		assert.Equal(t, "development", app.Env)
		assert.Equal(t, "promptmix", app.Name)
		assert.Equal(t, ":8080", app.HTTP.Addr)
		assert.Equal(t, 5*time.Second, app.HTTP.ShutdownTimeout)
		assert.Equal(t, "promptmix_sid", app.Session.CookieName)
		assert.Equal(t, 2*time.Hour, app.Session.IdleTimeout)
		assert.Equal(t, 1000, app.Sampler.MaxAttempts)
		assert.False(t, app.Sampler.ExhaustiveFallback)
		assert.Equal(t, int64(10<<20), app.Upload.MaxBytes)
		assert.Equal(t, archive.DriverNone, app.Archive.Driver)
		assert.Equal(t, "exports", app.Archive.Prefix)
		assert.True(t, app.RateLimit.Enabled)
		assert.Equal(t, 60, app.RateLimit.Capacity)
		assert.Equal(t, time.Second, app.RateLimit.RefillInterval)
		assert.Empty(t, app.TrustedIPHeaders)
		assert.False(t, app.IsProduction())

		_, ok := app.Level()
		assert.False(t, ok)
	})

	t.Run("variables override defaults", func(t *testing.T) {
		t.Parallel()
		app, err := config.Parse(map[string]string{
			"APP_ENV":                     "production",
			"LOG_LEVEL":                   "warn",
			"HTTP_ADDR":                   "127.0.0.1:9000",
			"HTTP_TRUSTED_IP_HEADERS":     "CF-Connecting-IP,X-Forwarded-For",
			"SESSION_IDLE_TIMEOUT":        "15m",
			"SAMPLER_MAX_ATTEMPTS":        "50",
			"SAMPLER_EXHAUSTIVE_FALLBACK": "true",
			"UPLOAD_MAX_BYTES":            "1024",
			"ARCHIVE_DRIVER":              "s3",
			"ARCHIVE_S3_BUCKET":           "exports-bucket",
			"ARCHIVE_S3_FORCE_PATH_STYLE": "true",
		})
		require.NoError(t, err)

		assert.True(t, app.IsProduction())
		level, ok := app.Level()
		assert.True(t, ok)
		assert.Equal(t, slog.LevelWarn, level)
		assert.Equal(t, "127.0.0.1:9000", app.HTTP.Addr)
		assert.Equal(t, []string{"CF-Connecting-IP", "X-Forwarded-For"}, app.TrustedIPHeaders)
		assert.Equal(t, 15*time.Minute, app.Session.IdleTimeout)
		assert.Equal(t, 50, app.Sampler.MaxAttempts)
		assert.True(t, app.Sampler.ExhaustiveFallback)
		assert.Equal(t, int64(1024), app.Upload.MaxBytes)
		assert.Equal(t, "s3", app.Archive.Driver)
		assert.Equal(t, "exports-bucket", app.Archive.S3Bucket)
		assert.True(t, app.Archive.S3ForcePathStyle)
	})

	t.Run("malformed value", func(t *testing.T) {
		t.Parallel()
		_, err := config.Parse(map[string]string{"SAMPLER_MAX_ATTEMPTS": "many"})
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("out of range value", func(t *testing.T) {
		t.Parallel()
		_, err := config.Parse(map[string]string{"SAMPLER_MAX_ATTEMPTS": "0"})
		assert.ErrorIs(t, err, config.ErrInvalidValue)
	})

	t.Run("process environment is not consulted", func(t *testing.T) {
		t.Parallel()
		app, err := config.Parse(map[string]string{})
		require.NoError(t, err)
		assert.Equal(t, ":8080", app.HTTP.Addr)
	})
}

func TestApp_Validate(t *testing.T) {
	base, err := config.Parse(nil)
	require.NoError(t, err)
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*config.App)
	}{
		{"zero attempts", func(a *config.App) { a.Sampler.MaxAttempts = 0 }},
		{"negative scan limit", func(a *config.App) { a.Sampler.ScanLimit = -1 }},
		{"zero upload size", func(a *config.App) { a.Upload.MaxBytes = 0 }},
		{"zero idle timeout", func(a *config.App) { a.Session.IdleTimeout = 0 }},
		{"zero rate limit capacity", func(a *config.App) { a.RateLimit.Capacity = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := base
			tt.mutate(&app)
			assert.ErrorIs(t, app.Validate(), config.ErrInvalidValue)
		})
	}

	t.Run("disabled rate limit is not validated", func(t *testing.T) {
		app := base
		app.RateLimit.Enabled = false
		app.RateLimit.Capacity = 0
		assert.NoError(t, app.Validate())
	})
}
