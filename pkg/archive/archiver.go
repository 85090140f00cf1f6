package archive

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/promptmix/pkg/history"
	"github.com/dmitrymomot/promptmix/pkg/logger"
	"github.com/dmitrymomot/promptmix/pkg/metrics"
)

// ContentType of archived exports.
const ContentType = "text/csv; charset=utf-8"

const timestampLayout = "20060102T150405.000Z"

// Archiver writes history exports to a Storage.
type Archiver struct {
	storage Storage
	prefix  string
	now     func() time.Time
	log     *slog.Logger
	metrics metrics.Recorder
}

// ArchiverOption configures an Archiver.
type ArchiverOption func(*Archiver)

// WithPrefix sets the key prefix. Empty writes at the storage root.
func WithPrefix(prefix string) ArchiverOption {
	return func(a *Archiver) { a.prefix = prefix }
}

// WithClock overrides the time source used for key timestamps.
func WithClock(now func() time.Time) ArchiverOption {
	return func(a *Archiver) {
		if now != nil {
			a.now = now
		}
	}
}

// WithLogger sets the archiver logger.
func WithLogger(l *slog.Logger) ArchiverOption {
	return func(a *Archiver) {
		if l != nil {
			a.log = l
		}
	}
}

// WithRecorder reports archive results to r.
func WithRecorder(r metrics.Recorder) ArchiverOption {
	return func(a *Archiver) {
		if r != nil {
			a.metrics = r
		}
	}
}

// NewArchiver creates an Archiver writing to storage.
func NewArchiver(storage Storage, opts ...ArchiverOption) *Archiver {
	a := &Archiver{
		storage: storage,
		prefix:  "exports",
		now:     time.Now,
		log:     logger.Discard(),
		metrics: metrics.Noop{},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.With(logger.Component("archive"))
	return a
}

// Key returns the object key for a session export made at t.
func (a *Archiver) Key(sessionID uuid.UUID, t time.Time) string {
	name := t.UTC().Format(timestampLayout) + "-history.csv"
	return path.Join(a.prefix, sessionID.String(), name)
}

// Archive writes entries as a CSV export and returns the stored object.
func (a *Archiver) Archive(ctx context.Context, sessionID uuid.UUID, entries []history.Entry) (*Object, error) {
	if a == nil || a.storage == nil {
		return nil, ErrDisabled
	}

	var buf bytes.Buffer
	if err := history.WriteCSV(&buf, entries); err != nil {
		a.metrics.Archived(metrics.ResultError)
		return nil, fmt.Errorf("encode export: %w", err)
	}

	key := a.Key(sessionID, a.now())
	obj, err := a.storage.Put(ctx, key, &buf, int64(buf.Len()), ContentType)
	if err != nil {
		a.metrics.Archived(metrics.ResultError)
		a.log.ErrorContext(ctx, "archive failed", logger.SessionID(sessionID.String()), logger.Error(err))
		return nil, err
	}

	a.metrics.Archived(metrics.ResultOK)
	a.log.InfoContext(ctx, "history archived",
		logger.SessionID(sessionID.String()),
		logger.Count(len(entries)),
		slog.String("key", obj.Key),
	)
	return obj, nil
}
