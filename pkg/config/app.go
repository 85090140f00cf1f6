package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/promptmix/pkg/archive"
	"github.com/dmitrymomot/promptmix/pkg/httpserver"
	"github.com/dmitrymomot/promptmix/pkg/logger"
	"github.com/dmitrymomot/promptmix/pkg/ratelimiter"
	"github.com/dmitrymomot/promptmix/pkg/session"
)

// App is the configuration of the promptmix binary.
type App struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Name     string `env:"APP_NAME" envDefault:"promptmix"`
	LogLevel string `env:"LOG_LEVEL"`

	// TrustedIPHeaders are proxy headers consulted for the client address.
	TrustedIPHeaders []string `env:"HTTP_TRUSTED_IP_HEADERS" envSeparator:","`

	HTTP      httpserver.Config
	Session   session.Config
	Sampler   SamplerConfig
	Upload    UploadConfig
	RateLimit ratelimiter.Config
	Archive   archive.Config
}

// SamplerConfig tunes combination sampling.
type SamplerConfig struct {
	MaxAttempts        int  `env:"SAMPLER_MAX_ATTEMPTS" envDefault:"1000"`
	ExhaustiveFallback bool `env:"SAMPLER_EXHAUSTIVE_FALLBACK" envDefault:"false"`
	ScanLimit          int  `env:"SAMPLER_SCAN_LIMIT" envDefault:"1048576"`
}

// UploadConfig limits data source uploads.
type UploadConfig struct {
	MaxBytes int64 `env:"UPLOAD_MAX_BYTES" envDefault:"10485760"`
}

// IsProduction reports whether Env names a production-like environment.
func (a App) IsProduction() bool {
	switch strings.ToLower(a.Env) {
	case logger.EnvProduction, "prod", "staging", "stage":
		return true
	}
	return false
}

// Level returns the configured log level, or ok=false when LogLevel is empty
// or unknown and the environment default should apply.
func (a App) Level() (slog.Level, bool) {
	if a.LogLevel == "" {
		return slog.LevelInfo, false
	}
	return logger.ParseLevel(a.LogLevel)
}

// Validate checks values env tags cannot express.
func (a App) Validate() error {
	switch {
	case a.Sampler.MaxAttempts < 1:
		return fmt.Errorf("%w: SAMPLER_MAX_ATTEMPTS must be positive, got %d", ErrInvalidValue, a.Sampler.MaxAttempts)
	case a.Sampler.ScanLimit < 0:
		return fmt.Errorf("%w: SAMPLER_SCAN_LIMIT must not be negative, got %d", ErrInvalidValue, a.Sampler.ScanLimit)
	case a.Upload.MaxBytes < 1:
		return fmt.Errorf("%w: UPLOAD_MAX_BYTES must be positive, got %d", ErrInvalidValue, a.Upload.MaxBytes)
	case a.Session.IdleTimeout <= 0 || a.Session.MaxLifetime <= 0:
		return fmt.Errorf("%w: session timeouts must be positive", ErrInvalidValue)
	}
	if a.RateLimit.Enabled {
		if err := a.RateLimit.Validate(); err != nil {
			return errors.Join(ErrInvalidValue, err)
		}
	}
	return nil
}
