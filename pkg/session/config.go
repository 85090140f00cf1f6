package session

import "time"

// Config holds the SESSION_* settings.
type Config struct {
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"promptmix_sid"`

	// IdleTimeout expires a session after this long without requests.
	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"2h"`
	// MaxLifetime caps a session regardless of activity. It is also the cookie max age.
	MaxLifetime time.Duration `env:"SESSION_MAX_LIFETIME" envDefault:"24h"`

	// ActivityUpdateThreshold is the minimum gap between expiry extensions.
	ActivityUpdateThreshold time.Duration `env:"SESSION_ACTIVITY_UPDATE_THRESHOLD" envDefault:"1m"`

	// CleanupInterval is the sweep period for expired sessions; 0 disables sweeping.
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`

	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}

// DefaultConfig returns the values the env defaults above produce.
func DefaultConfig() Config {
	return Config{
		CookieName:              "promptmix_sid",
		IdleTimeout:             2 * time.Hour,
		MaxLifetime:             24 * time.Hour,
		ActivityUpdateThreshold: time.Minute,
		CleanupInterval:         5 * time.Minute,
	}
}

// NewFromConfig creates a Manager for cfg.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}

// expiry is the idle deadline counted from lastSeen, capped by the lifetime.
func (c Config) expiry(createdAt, lastSeen time.Time) time.Time {
	idle := lastSeen.Add(c.IdleTimeout)
	if limit := createdAt.Add(c.MaxLifetime); limit.Before(idle) {
		return limit
	}
	return idle
}
