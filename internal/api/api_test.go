package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/promptmix/internal/api"
	"github.com/dmitrymomot/promptmix/pkg/archive"
	"github.com/dmitrymomot/promptmix/pkg/history"
	"github.com/dmitrymomot/promptmix/pkg/metrics"
	"github.com/dmitrymomot/promptmix/pkg/mixer"
	"github.com/dmitrymomot/promptmix/pkg/ratelimiter"
	"github.com/dmitrymomot/promptmix/pkg/sampler"
	"github.com/dmitrymomot/promptmix/pkg/session"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error *api.ErrorDetail `json:"error"`
}

type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func newServer(t *testing.T, opts ...api.Option) *httptest.Server {
	t.Helper()
	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)

	mgr := session.New(session.WithFactory(func(uuid.UUID) *mixer.Session {
		return mixer.New(
			mixer.WithSampler(sampler.New(sampler.WithSeed(1))),
			mixer.WithRecorder(rec),
		)
	}))
	t.Cleanup(func() { _ = mgr.Close() })

	opts = append([]api.Option{api.WithGatherer(reg)}, opts...)
	srv := httptest.NewServer(api.New(mgr, opts...).Router())
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, srv *httptest.Server) *client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{t: t, base: srv.URL, http: &http.Client{Jar: jar}}
}

func (c *client) do(method, path string, body io.Reader, contentType string) *http.Response {
	c.t.Helper()
	req, err := http.NewRequest(method, c.base+path, body)
	require.NoError(c.t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	c.t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (c *client) json(method, path string, body any) (int, envelope) {
	c.t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = bytes.NewReader(raw)
	}
	resp := c.do(method, path, r, "application/json")
	return resp.StatusCode, decode(c.t, resp)
}

func (c *client) upload(filename, content string) (int, envelope) {
	c.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(c.t, err)
	_, err = io.WriteString(fw, content)
	require.NoError(c.t, err)
	require.NoError(c.t, mw.Close())

	resp := c.do(http.MethodPost, "/api/data", &buf, mw.FormDataContentType())
	return resp.StatusCode, decode(c.t, resp)
}

func (c *client) setTemplate(text string) (int, envelope) {
	c.t.Helper()
	return c.json(http.MethodPut, "/api/template", map[string]string{"template": text})
}

func decode(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func state(t *testing.T, env envelope) mixer.State {
	t.Helper()
	var st mixer.State
	require.NoError(t, json.Unmarshal(env.Data, &st))
	return st
}

func TestStateCreatesSession(t *testing.T) {
	srv := newServer(t)
	c := newClient(t, srv)

	resp := c.do(http.MethodGet, "/api/state", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Cookies())
	assert.Equal(t, session.DefaultConfig().CookieName, resp.Cookies()[0].Name)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	st := state(t, decode(t, resp))
	assert.Equal(t, mixer.DefaultTemplate, st.Template)
	assert.False(t, st.Ready)
	assert.Equal(t, 1, st.NextSequence)
}

func TestGenerateFlow(t *testing.T) {
	srv := newServer(t)
	c := newClient(t, srv)

	code, env := c.setTemplate("Wearing [color] [item]")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{"color", "item"}, env.Meta["tags"])
	assert.Equal(t, false, env.Meta["ready"])

	code, env = c.upload("clothes.csv", "color,item\nred,hat\nblue,\n")
	require.Equal(t, http.StatusOK, code, "%+v", env.Error)
	st := state(t, env)
	assert.True(t, st.Ready)
	assert.Equal(t, "clothes.csv", st.Source)
	assert.Equal(t, 2, st.Capacity)

	var summaries []string
	for seq := 1; seq <= 2; seq++ {
		code, env = c.json(http.MethodPost, "/api/generate", nil)
		require.Equal(t, http.StatusCreated, code)

		var rec history.Record
		require.NoError(t, json.Unmarshal(env.Data, &rec))
		assert.Equal(t, seq, rec.Sequence)
		assert.True(t, strings.HasPrefix(rec.Text, "No.00"))
		assert.EqualValues(t, 2-seq, env.Meta["remaining"])
		summaries = append(summaries, rec.Summary)
	}

	code, env = c.json(http.MethodPost, "/api/generate", nil)
	assert.Equal(t, http.StatusConflict, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "exhausted", env.Error.Code)
	assert.Equal(t, true, env.Error.Details["all_used"])

	code, env = c.json(http.MethodGet, "/api/history", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 2, env.Meta["count"])
	var records []history.Record
	require.NoError(t, json.Unmarshal(env.Data, &records))
	require.Len(t, records, 2)
	assert.Equal(t, 2, records[0].Sequence)

	code, env = c.json(http.MethodGet, "/api/history/lookup?summary="+url.QueryEscape(summaries[0]), nil)
	require.Equal(t, http.StatusOK, code)
	var found history.Record
	require.NoError(t, json.Unmarshal(env.Data, &found))
	assert.Equal(t, 1, found.Sequence)

	code, env = c.json(http.MethodGet, "/api/history/lookup?summary=nope", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "not_found", env.Error.Code)

	code, env = c.json(http.MethodGet, "/api/history/lookup", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "bad_request", env.Error.Code)

	resp := c.do(http.MethodGet, "/api/history/export", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), api.ExportFilename)
	entries, err := history.ReadCSV(resp.Body)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, summaries[1], entries[0].Summary)

	code, env = c.json(http.MethodDelete, "/api/history", nil)
	require.Equal(t, http.StatusOK, code)
	st = state(t, env)
	assert.Equal(t, 0, st.HistorySize)
	assert.Equal(t, 1, st.NextSequence)
	assert.Equal(t, 2, st.Remaining)
}

func TestErrors(t *testing.T) {
	srv := newServer(t)

	t.Run("no tags detected", func(t *testing.T) {
		c := newClient(t, srv)
		code, env := c.setTemplate("plain text")
		assert.Equal(t, http.StatusUnprocessableEntity, code)
		assert.Equal(t, "no_tags_detected", env.Error.Code)
		assert.Equal(t, false, env.Meta["ready"])
	})

	t.Run("template body is required", func(t *testing.T) {
		c := newClient(t, srv)
		code, env := c.json(http.MethodPut, "/api/template", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "bad_request", env.Error.Code)

		resp := c.do(http.MethodPut, "/api/template", strings.NewReader("{"), "application/json")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("not ready", func(t *testing.T) {
		c := newClient(t, srv)
		code, env := c.json(http.MethodPost, "/api/generate", nil)
		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, "not_ready", env.Error.Code)
	})

	t.Run("missing columns", func(t *testing.T) {
		c := newClient(t, srv)
		_, _ = c.setTemplate("[color] [size]")
		code, env := c.upload("data.csv", "color\nred\n")
		assert.Equal(t, http.StatusUnprocessableEntity, code)
		assert.Equal(t, "missing_columns", env.Error.Code)
		assert.Equal(t, []any{"size"}, env.Error.Details["missing"])
	})

	t.Run("unreadable data source", func(t *testing.T) {
		c := newClient(t, srv)
		code, env := c.upload("data.xlsx", "binary")
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "data_source_read_error", env.Error.Code)
		assert.Equal(t, "data.xlsx", env.Error.Details["source"])
	})

	t.Run("upload without file", func(t *testing.T) {
		c := newClient(t, srv)
		code, env := c.json(http.MethodPost, "/api/data", nil)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "bad_request", env.Error.Code)
	})

	t.Run("archive disabled", func(t *testing.T) {
		c := newClient(t, srv)
		code, env := c.json(http.MethodPost, "/api/history/archive", nil)
		assert.Equal(t, http.StatusNotImplemented, code)
		assert.Equal(t, "archive_disabled", env.Error.Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		c := newClient(t, srv)
		code, env := c.json(http.MethodGet, "/api/nope", nil)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "not_found", env.Error.Code)
	})
}

func TestRawUpload(t *testing.T) {
	srv := newServer(t)
	c := newClient(t, srv)
	_, _ = c.setTemplate("[a]")

	resp := c.do(http.MethodPost, "/api/data?filename=values.yaml", strings.NewReader("a: [x, y]\n"), "application/yaml")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	st := state(t, decode(t, resp))
	assert.True(t, st.Ready)
	assert.Equal(t, 2, st.Capacity)
}

func TestUploadLimit(t *testing.T) {
	srv := newServer(t, api.WithMaxUploadBytes(16))
	c := newClient(t, srv)

	resp := c.do(http.MethodPost, "/api/data?filename=big.csv", strings.NewReader(strings.Repeat("a\n", 64)), "text/csv")
	env := decode(t, resp)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Equal(t, "payload_too_large", env.Error.Code)
}

func TestSessionsAreIsolated(t *testing.T) {
	srv := newServer(t)
	alice := newClient(t, srv)
	bob := newClient(t, srv)

	_, _ = alice.setTemplate("[a]")
	_, _ = alice.upload("a.csv", "a\nx\n")
	code, _ := alice.json(http.MethodPost, "/api/generate", nil)
	require.Equal(t, http.StatusCreated, code)

	_, env := bob.json(http.MethodGet, "/api/state", nil)
	st := state(t, env)
	assert.False(t, st.Ready)
	assert.Equal(t, 0, st.HistorySize)

	resp := alice.do(http.MethodDelete, "/api/session", nil, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, env = alice.json(http.MethodGet, "/api/state", nil)
	assert.Equal(t, 0, state(t, env).HistorySize)
}

func TestArchive(t *testing.T) {
	dir := t.TempDir()
	storage, err := archive.NewLocalStorage(dir, "/files")
	require.NoError(t, err)

	srv := newServer(t, api.WithArchiver(archive.NewArchiver(storage)))
	c := newClient(t, srv)
	_, _ = c.setTemplate("[a]")
	_, _ = c.upload("a.csv", "a\nx\n")
	_, _ = c.json(http.MethodPost, "/api/generate", nil)

	code, env := c.json(http.MethodPost, "/api/history/archive", nil)
	require.Equal(t, http.StatusCreated, code, "%+v", env.Error)

	var obj archive.Object
	require.NoError(t, json.Unmarshal(env.Data, &obj))
	assert.True(t, strings.HasPrefix(obj.Key, "exports/"))
	assert.Equal(t, "/files/"+obj.Key, obj.URL)

	raw, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(obj.Key)))
	require.NoError(t, err)
	entries, err := history.ReadCSV(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "No.001 x", entries[0].FullPrompt)
}

func TestOperationalRoutes(t *testing.T) {
	srv := newServer(t)
	c := newClient(t, srv)

	resp := c.do(http.MethodGet, "/healthz", nil, "")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ALIVE", string(body))

	_, _ = c.setTemplate("[a]")
	_, _ = c.upload("a.csv", "a\nx\n")
	_, _ = c.json(http.MethodPost, "/api/generate", nil)

	resp = c.do(http.MethodGet, "/metrics", nil, "")
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `promptmix_generations_total{result="ok"} 1`)
	assert.Contains(t, string(body), `promptmix_data_loads_total{result="ok"} 1`)
}

func TestRateLimit(t *testing.T) {
	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	t.Cleanup(store.Close)
	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Hour})
	require.NoError(t, err)

	srv := newServer(t, api.WithRateLimiter(bucket))
	c := newClient(t, srv)
	_, _ = c.setTemplate("[a]")

	code, _ := c.upload("a.csv", "a\nx\ny\nz\n")
	require.Equal(t, http.StatusOK, code)
	code, _ = c.json(http.MethodPost, "/api/generate", nil)
	require.Equal(t, http.StatusCreated, code)

	resp := c.do(http.MethodPost, "/api/generate", nil, "")
	env := decode(t, resp)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "rate_limited", env.Error.Code)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	code, _ = c.json(http.MethodGet, "/api/state", nil)
	assert.Equal(t, http.StatusOK, code, "reads are not limited")

	other := newClient(t, srv)
	_, _ = other.setTemplate("[a]")
	code, _ = other.upload("a.csv", "a\nx\n")
	assert.Equal(t, http.StatusOK, code, "limits are per session")
}
