package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/promptmix/internal/api"
	"github.com/dmitrymomot/promptmix/pkg/archive"
	"github.com/dmitrymomot/promptmix/pkg/clientip"
	"github.com/dmitrymomot/promptmix/pkg/config"
	"github.com/dmitrymomot/promptmix/pkg/httpserver"
	"github.com/dmitrymomot/promptmix/pkg/logger"
	"github.com/dmitrymomot/promptmix/pkg/metrics"
	"github.com/dmitrymomot/promptmix/pkg/mixer"
	"github.com/dmitrymomot/promptmix/pkg/ratelimiter"
	"github.com/dmitrymomot/promptmix/pkg/requestid"
	"github.com/dmitrymomot/promptmix/pkg/sampler"
	"github.com/dmitrymomot/promptmix/pkg/session"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides HTTP_ADDR")
	return cmd
}

func serve(ctx context.Context, cfg config.App) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := newLogger(cfg)
	logger.SetAsDefault(log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	rec := metrics.New(reg)

	sessions := session.NewFromConfig(cfg.Session,
		session.WithLogger(log),
		session.WithFactory(mixerFactory(cfg.Sampler, log, rec)),
	)
	defer func() {
		if err := sessions.Close(); err != nil {
			log.Error("close session manager", logger.Error(err))
		}
	}()

	opts := []api.Option{
		api.WithLogger(log),
		api.WithGatherer(reg),
		api.WithMaxUploadBytes(cfg.Upload.MaxBytes),
		api.WithTrustedIPHeaders(cfg.TrustedIPHeaders...),
	}

	if cfg.RateLimit.Enabled {
		store := ratelimiter.NewMemoryStore()
		defer store.Close()

		bucket, err := ratelimiter.NewBucket(store, cfg.RateLimit)
		if err != nil {
			return err
		}
		opts = append(opts, api.WithRateLimiter(bucket))
	}

	storage, err := archive.NewStorage(ctx, cfg.Archive)
	switch {
	case errors.Is(err, archive.ErrDisabled):
		log.Info("history archive disabled")
	case err != nil:
		return err
	default:
		log.Info("history archive enabled", slog.String("driver", cfg.Archive.Driver))
		opts = append(opts, api.WithArchiver(archive.NewArchiver(storage,
			archive.WithPrefix(cfg.Archive.Prefix),
			archive.WithLogger(log),
			archive.WithRecorder(rec),
		)))
	}

	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, api.New(sessions, opts...).Router())
}

func newLogger(cfg config.App) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithOutput(os.Stderr),
		logger.WithContextExtractors(requestid.LogExtractor, clientip.LogExtractor, session.LogExtractor),
	}
	if level, ok := cfg.Level(); ok {
		opts = append(opts, logger.WithLevel(level))
	}
	return logger.New(opts...)
}

// mixerFactory builds the mixer for a new HTTP session. Each session owns its
// sampler, so random state is never shared between users.
func mixerFactory(cfg config.SamplerConfig, log *slog.Logger, rec metrics.Recorder) session.Factory {
	return func(id uuid.UUID) *mixer.Session {
		opts := []mixer.Option{
			mixer.WithSampler(sampler.New(sampler.WithAttempts(cfg.MaxAttempts))),
			mixer.WithLogger(log.With(logger.SessionID(id))),
			mixer.WithRecorder(rec),
		}
		if cfg.ExhaustiveFallback {
			opts = append(opts, mixer.WithExhaustiveFallback(cfg.ScanLimit))
		}
		return mixer.New(opts...)
	}
}
