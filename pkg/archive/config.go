package archive

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Drivers accepted by Config.Driver.
const (
	DriverNone  = "none"
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Config selects and configures the archive backend.
type Config struct {
	Driver string `env:"ARCHIVE_DRIVER" envDefault:"none"`
	Prefix string `env:"ARCHIVE_PREFIX" envDefault:"exports"`

	LocalDir     string `env:"ARCHIVE_LOCAL_DIR" envDefault:"./data/archive"`
	LocalBaseURL string `env:"ARCHIVE_LOCAL_BASE_URL"`

	S3Bucket         string        `env:"ARCHIVE_S3_BUCKET"`
	S3Region         string        `env:"ARCHIVE_S3_REGION" envDefault:"us-east-1"`
	S3AccessKeyID    string        `env:"ARCHIVE_S3_ACCESS_KEY_ID"`
	S3SecretKey      string        `env:"ARCHIVE_S3_SECRET_KEY"`
	S3Endpoint       string        `env:"ARCHIVE_S3_ENDPOINT"`
	S3BaseURL        string        `env:"ARCHIVE_S3_BASE_URL"`
	S3ForcePathStyle bool          `env:"ARCHIVE_S3_FORCE_PATH_STYLE" envDefault:"false"`
	S3UploadTimeout  time.Duration `env:"ARCHIVE_S3_UPLOAD_TIMEOUT" envDefault:"30s"`
}

// NewStorage builds the backend selected by cfg.Driver. It returns
// ErrDisabled for the "none" driver and ErrInvalidConfig for unknown ones.
func NewStorage(ctx context.Context, cfg Config, opts ...S3Option) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverNone:
		return nil, ErrDisabled
	case DriverLocal:
		s, err := NewLocalStorage(cfg.LocalDir, cfg.LocalBaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverS3:
		if cfg.S3UploadTimeout > 0 {
			opts = append([]S3Option{WithS3UploadTimeout(cfg.S3UploadTimeout)}, opts...)
		}
		s, err := NewS3Storage(ctx, S3Config{
			Bucket:         cfg.S3Bucket,
			Region:         cfg.S3Region,
			AccessKeyID:    cfg.S3AccessKeyID,
			SecretKey:      cfg.S3SecretKey,
			Endpoint:       cfg.S3Endpoint,
			BaseURL:        cfg.S3BaseURL,
			ForcePathStyle: cfg.S3ForcePathStyle,
		}, opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: unknown archive driver %q", ErrInvalidConfig, cfg.Driver)
	}
}
