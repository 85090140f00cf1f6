package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/promptmix/pkg/config"
)

func TestLoad(t *testing.T) {
	t.Run("reads the process environment", func(t *testing.T) {
		t.Setenv("HTTP_ADDR", "127.0.0.1:7000")
		t.Setenv("SAMPLER_MAX_ATTEMPTS", "25")

		app, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:7000", app.HTTP.Addr)
		assert.Equal(t, 25, app.Sampler.MaxAttempts)
	})

	t.Run("validates the result", func(t *testing.T) {
		t.Setenv("UPLOAD_MAX_BYTES", "0")

		_, err := config.Load()
		assert.ErrorIs(t, err, config.ErrInvalidValue)
	})

	t.Run("sees changes between calls", func(t *testing.T) {
		t.Setenv("APP_NAME", "first")
		first, err := config.Load()
		require.NoError(t, err)

		t.Setenv("APP_NAME", "second")
		second, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "first", first.Name)
		assert.Equal(t, "second", second.Name)
	})
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("PROMPTMIX_TEST_FROM_FILE=from_file\nPROMPTMIX_TEST_PRESET=file\n"), 0o600))

	t.Setenv("PROMPTMIX_TEST_PRESET", "process")
	t.Setenv("PROMPTMIX_TEST_FROM_FILE", "")
	require.NoError(t, os.Unsetenv("PROMPTMIX_TEST_FROM_FILE"))

	require.NoError(t, config.LoadEnv(file))
	assert.Equal(t, "from_file", os.Getenv("PROMPTMIX_TEST_FROM_FILE"))
	assert.Equal(t, "process", os.Getenv("PROMPTMIX_TEST_PRESET"), "existing variables win")

	assert.ErrorIs(t, config.LoadEnv(filepath.Join(dir, "missing.env")), config.ErrLoadingEnvFile)
}
