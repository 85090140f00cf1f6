package mixer

import (
	"log/slog"

	"github.com/dmitrymomot/promptmix/pkg/dataset"
	"github.com/dmitrymomot/promptmix/pkg/metrics"
	"github.com/dmitrymomot/promptmix/pkg/prompt"
	"github.com/dmitrymomot/promptmix/pkg/sampler"
)

// DefaultTemplate is the template a new session starts with.
const DefaultTemplate = "A frame-filling composition.\nAppearance: Wearing [上衣顏色] [上衣類型]"

// DefaultScanLimit caps the space size for which the exhaustive fallback runs.
const DefaultScanLimit = 1 << 20

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithSampler replaces the default sampler. Nil is ignored.
func WithSampler(smp *sampler.Sampler) Option {
	return func(s *Session) {
		if smp != nil {
			s.sampler = smp
		}
	}
}

// WithRecorder reports session events to r. Nil is ignored.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Session) {
		if r != nil {
			s.metrics = r
		}
	}
}

// WithTemplate sets the initial template text without detecting tags.
func WithTemplate(text string) Option {
	return func(s *Session) { s.template = prompt.NormalizeNewlines(text) }
}

// WithExhaustiveFallback makes Generate scan the space deterministically when
// random draws fail but unused selections remain. Spaces larger than limit
// are not scanned; a limit below one uses DefaultScanLimit.
func WithExhaustiveFallback(limit int) Option {
	return func(s *Session) {
		if limit < 1 {
			limit = DefaultScanLimit
		}
		s.scanLimit = limit
	}
}

// WithReadOptions passes options to the dataset decoder used by LoadData.
func WithReadOptions(opts ...dataset.Option) Option {
	return func(s *Session) {
		s.readOpts = append(s.readOpts, opts...)
	}
}
