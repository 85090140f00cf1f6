package mixer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/promptmix/pkg/dataset"
	"github.com/dmitrymomot/promptmix/pkg/history"
	"github.com/dmitrymomot/promptmix/pkg/logger"
	"github.com/dmitrymomot/promptmix/pkg/metrics"
	"github.com/dmitrymomot/promptmix/pkg/pool"
	"github.com/dmitrymomot/promptmix/pkg/prompt"
	"github.com/dmitrymomot/promptmix/pkg/sampler"
)

// noneValue is shown in summaries for a tag without candidates.
const noneValue = "(none)"

// Session is the state of one user's template-filling session.
type Session struct {
	mu sync.Mutex

	template string
	tags     []string
	table    *dataset.Table
	source   string
	pool     *pool.Pool
	poolErr  error
	last     string

	history   *history.Store
	sampler   *sampler.Sampler
	scanLimit int
	readOpts  []dataset.Option
	log       *slog.Logger
	metrics   metrics.Recorder
}

// New returns a session with empty history, no tags and no data.
func New(opts ...Option) *Session {
	s := &Session{
		template: DefaultTemplate,
		tags:     []string{},
		history:  history.NewStore(),
		log:      logger.Discard(),
		metrics:  metrics.Noop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sampler == nil {
		s.sampler = sampler.New()
	}
	s.log = s.log.With(logger.Component("mixer"))
	return s
}

// SetTemplate stores the template, detects its tags and rebuilds the pool
// against the current data. With no tags it returns prompt.ErrNoTagsDetected
// and generation is disabled. A *pool.MissingColumnsError is returned when
// the loaded data lacks a column for some tag.
func (s *Session) SetTemplate(text string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text = prompt.NormalizeNewlines(text)
	tags, err := prompt.Detect(text)
	s.template = text
	s.tags = tags
	if err != nil {
		s.pool = nil
		s.poolErr = err
		s.log.Warn("template has no tags")
		return append([]string(nil), tags...), err
	}

	s.log.Debug("tags detected", logger.Tags(tags))
	return append([]string(nil), tags...), s.rebuildLocked()
}

// LoadData decodes r by the extension of filename and installs the result
// as the current data. Decoding failures are *dataset.ReadError and leave
// the session unchanged.
func (s *Session) LoadData(r io.Reader, filename string) ([]pool.Count, error) {
	tbl, err := dataset.Read(r, filename, s.readOpts...)
	if err != nil {
		s.metrics.DataLoad(metrics.ResultError)
		s.log.Warn("data source rejected", logger.Source(filename), logger.Error(err))
		return nil, err
	}
	return s.LoadTable(tbl, filename)
}

// LoadTable installs tbl as the current data and rebuilds the pool. Counts
// are nil while no tags are detected.
func (s *Session) LoadTable(tbl *dataset.Table, source string) ([]pool.Count, error) {
	if tbl == nil {
		return nil, &dataset.ReadError{Source: source, Err: dataset.ErrEmptySource}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.table = tbl
	s.source = source
	s.log.Info("data loaded", logger.Source(source), logger.Count(tbl.Len()))

	if len(s.tags) == 0 {
		s.metrics.DataLoad(metrics.ResultOK)
		return nil, nil
	}
	if err := s.rebuildLocked(); err != nil {
		s.metrics.DataLoad(metrics.ResultMissingColumns)
		return nil, err
	}
	s.metrics.DataLoad(metrics.ResultOK)
	return s.pool.Counts(), nil
}

func (s *Session) rebuildLocked() error {
	s.pool = nil
	s.poolErr = nil
	if s.table == nil || len(s.tags) == 0 {
		return nil
	}

	p, err := pool.Build(s.table, s.tags)
	if err != nil {
		s.poolErr = err
		var missing *pool.MissingColumnsError
		if errors.As(err, &missing) {
			s.log.Warn("data source is missing columns", logger.Tags(missing.Tags))
		}
		return err
	}
	s.pool = p
	return nil
}

// Generate picks an unused selection, renders it and records it. It returns
// ErrNotReady without a valid pool, sampler.ErrExhausted when random draws
// found nothing new, and ErrSpaceExhausted when nothing new exists.
func (s *Session) Generate(ctx context.Context) (history.Record, error) {
	if err := ctx.Err(); err != nil {
		return history.Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pool == nil {
		s.metrics.Generation(metrics.ResultNotReady)
		return history.Record{}, ErrNotReady
	}

	sizes := s.pool.Sizes()
	used := s.history.Used()

	sel, err := s.sampler.Sample(sizes, used)
	if errors.Is(err, sampler.ErrExhausted) {
		sel, err = s.recoverLocked(ctx, sizes, used)
	}
	if err != nil {
		return history.Record{}, err
	}

	seq := s.history.NextSequence()
	fills := s.fillsLocked(sel)
	rec := history.Record{
		Sequence:  seq,
		Selection: sel,
		Summary:   summary(seq, sel, fills),
		Text:      prompt.Render(s.template, fills, seq),
		CreatedAt: time.Now(),
	}
	if err := s.history.Append(rec); err != nil {
		s.metrics.Generation(metrics.ResultError)
		return history.Record{}, fmt.Errorf("record generation: %w", err)
	}
	s.last = rec.Text

	s.metrics.Generation(metrics.ResultOK)
	s.log.InfoContext(ctx, "combination generated", logger.Sequence(seq), slog.String("selection", sel.Key()))
	return rec, nil
}

// recoverLocked runs after random draws failed. It separates true
// exhaustion from bad luck and, when enabled, scans for a free selection.
func (s *Session) recoverLocked(ctx context.Context, sizes []int, used sampler.Set) (sampler.Selection, error) {
	if s.remainingLocked() == 0 {
		s.metrics.Generation(metrics.ResultSpaceExhausted)
		s.log.InfoContext(ctx, "all combinations used", logger.Count(s.history.Len()))
		return nil, ErrSpaceExhausted
	}

	if s.scanLimit > 0 && s.pool.Capacity() <= s.scanLimit {
		sel, err := s.sampler.Scan(sizes, used)
		if err == nil {
			return sel, nil
		}
	}

	s.metrics.Generation(metrics.ResultExhausted)
	s.log.WarnContext(ctx, "no unused combination found", logger.Attempts(s.sampler.Attempts()))
	return nil, sampler.ErrExhausted
}

func (s *Session) fillsLocked(sel sampler.Selection) []prompt.Fill {
	fills := make([]prompt.Fill, len(s.tags))
	for i, tag := range s.tags {
		v, ok := s.pool.Value(tag, sel[i])
		fills[i] = prompt.Fill{Tag: tag, Value: v, Missing: !ok}
	}
	return fills
}

// summary formats "No.<n> | [<i1>-<i2>] | tag:value, ..." with 1-based indices.
func summary(seq int, sel sampler.Selection, fills []prompt.Fill) string {
	idx := make([]string, len(sel))
	desc := make([]string, len(fills))
	for i, f := range fills {
		if f.Missing {
			idx[i] = "-"
			desc[i] = f.Tag + ":" + noneValue
			continue
		}
		idx[i] = strconv.Itoa(sel[i] + 1)
		desc[i] = f.Tag + ":" + f.Value
	}
	return fmt.Sprintf("No.%d | [%s] | %s", seq, strings.Join(idx, "-"), strings.Join(desc, ", "))
}

// remainingLocked counts selections of the current pool not yet in history.
// Records made against an earlier pool count only if they fit this one.
func (s *Session) remainingLocked() int {
	if s.pool == nil {
		return 0
	}
	sizes := s.pool.Sizes()
	taken := 0
	for _, rec := range s.history.Records() {
		if fits(rec.Selection, sizes) {
			taken++
		}
	}
	return max(s.pool.Capacity()-taken, 0)
}

func fits(sel sampler.Selection, sizes []int) bool {
	if len(sel) != len(sizes) {
		return false
	}
	for i, v := range sel {
		if sizes[i] == 0 {
			if v != sampler.NoCandidate {
				return false
			}
			continue
		}
		if v < 0 || v >= sizes[i] {
			return false
		}
	}
	return true
}

// History returns all records, newest first.
func (s *Session) History() []history.Record {
	return s.history.Records()
}

// Find returns the record with the given summary.
func (s *Session) Find(summary string) (history.Record, error) {
	return s.history.FindBySummary(summary)
}

// Export returns the history as Summary/Full_Prompt entries, newest first.
func (s *Session) Export() []history.Entry {
	return s.history.Export()
}

// WriteExport writes the history export as CSV.
func (s *Session) WriteExport(w io.Writer) error {
	return history.WriteCSV(w, s.history.Export())
}

// ClearHistory removes all records and resets numbering. The last rendered
// text is kept, as it is display state only.
func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.history.Len()
	s.history.Clear()
	s.metrics.HistoryCleared()
	s.log.Info("history cleared", logger.Count(n))
}

// Last returns the most recently rendered text.
func (s *Session) Last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Ready reports whether Generate can run.
func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool != nil
}

// State is a snapshot of the session for display.
type State struct {
	Template     string              `json:"template"`
	Tags         []string            `json:"tags"`
	Source       string              `json:"source,omitempty"`
	Columns      []string            `json:"columns,omitempty"`
	Rows         int                 `json:"rows"`
	Preview      []map[string]string `json:"preview,omitempty"`
	Counts       []pool.Count        `json:"counts,omitempty"`
	Ready        bool                `json:"ready"`
	Problem      string              `json:"problem,omitempty"`
	HistorySize  int                 `json:"history_size"`
	NextSequence int                 `json:"next_sequence"`
	Capacity     int                 `json:"capacity"`
	Remaining    int                 `json:"remaining"`
	Last         string              `json:"last,omitempty"`
}

// PreviewRows is the number of data rows included in State.
const PreviewRows = 5

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Template:     s.template,
		Tags:         append([]string{}, s.tags...),
		Source:       s.source,
		Ready:        s.pool != nil,
		HistorySize:  s.history.Len(),
		NextSequence: s.history.NextSequence(),
		Last:         s.last,
	}
	if s.table != nil {
		st.Columns = s.table.Columns()
		st.Rows = s.table.Len()
		st.Preview = s.table.Head(PreviewRows)
	}
	if s.poolErr != nil {
		st.Problem = s.poolErr.Error()
	}
	if s.pool != nil {
		st.Counts = s.pool.Counts()
		st.Capacity = s.pool.Capacity()
		st.Remaining = s.remainingLocked()
	}
	return st
}
