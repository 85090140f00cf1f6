package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/promptmix/pkg/archive"
	"github.com/dmitrymomot/promptmix/pkg/clientip"
	"github.com/dmitrymomot/promptmix/pkg/httpserver"
	"github.com/dmitrymomot/promptmix/pkg/logger"
	"github.com/dmitrymomot/promptmix/pkg/metrics"
	"github.com/dmitrymomot/promptmix/pkg/ratelimiter"
	"github.com/dmitrymomot/promptmix/pkg/requestid"
	"github.com/dmitrymomot/promptmix/pkg/session"
)

// DefaultMaxUploadBytes limits data uploads when no limit is configured.
const DefaultMaxUploadBytes int64 = 10 << 20

// maxTemplateBytes limits template bodies.
const maxTemplateBytes int64 = 1 << 20

// API serves mixer sessions.
type API struct {
	sessions  *session.Manager
	archiver  *archive.Archiver
	gatherer  prometheus.Gatherer
	limiter   *ratelimiter.Bucket
	ipHeaders []string
	log       *slog.Logger
	maxUpload int64
}

// Option configures an API.
type Option func(*API)

// WithArchiver enables POST /api/history/archive.
func WithArchiver(a *archive.Archiver) Option {
	return func(api *API) {
		api.archiver = a
	}
}

// WithGatherer serves g on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(api *API) {
		api.gatherer = g
	}
}

// WithRateLimiter limits data uploads and generation per session.
func WithRateLimiter(b *ratelimiter.Bucket) Option {
	return func(api *API) {
		api.limiter = b
	}
}

// WithTrustedIPHeaders names proxy headers that carry the client address.
func WithTrustedIPHeaders(headers ...string) Option {
	return func(api *API) {
		api.ipHeaders = append(api.ipHeaders, headers...)
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(api *API) {
		if l != nil {
			api.log = l
		}
	}
}

// WithMaxUploadBytes limits the size of a data upload.
func WithMaxUploadBytes(n int64) Option {
	return func(api *API) {
		if n > 0 {
			api.maxUpload = n
		}
	}
}

// New creates an API backed by the session manager.
func New(sessions *session.Manager, opts ...Option) *API {
	a := &API{
		sessions:  sessions,
		log:       logger.Discard(),
		maxUpload: DefaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.With(logger.Component("api"))
	return a
}

// Router returns the HTTP handler with every route mounted.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(clientip.New(a.ipHeaders...))
	r.Use(a.logRequests)

	r.NotFound(a.render(func(*http.Request) Response { return JSONError(ErrNotFound) }))
	r.MethodNotAllowed(a.render(func(*http.Request) Response { return JSONError(ErrMethodNotAllowed) }))

	r.Get("/healthz", httpserver.HealthCheckHandler(a.log))
	if a.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(a.gatherer))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(a.sessions.Middleware)
		limit := a.rateLimit()

		r.Get("/state", a.handle(a.state))
		r.With(middleware.RequestSize(maxTemplateBytes)).Put("/template", a.handle(a.setTemplate))
		r.With(limit, middleware.RequestSize(a.maxUpload)).Post("/data", a.handle(a.loadData))
		r.With(limit).Post("/generate", a.handle(a.generate))

		r.Get("/history", a.handle(a.history))
		r.Get("/history/lookup", a.handle(a.lookup))
		r.Get("/history/export", a.handle(a.export))
		r.Post("/history/archive", a.handle(a.archive))
		r.Delete("/history", a.handle(a.clearHistory))

		r.Delete("/session", a.endSession)
	})

	return r
}

func (a *API) rateLimit() func(http.Handler) http.Handler {
	if a.limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	denied := a.render(func(*http.Request) Response { return JSONError(ErrTooManyRequests) })
	return ratelimiter.Middleware(a.limiter, sessionKey, denied)
}

func sessionKey(r *http.Request) string {
	if s, ok := session.FromContext(r.Context()); ok {
		return s.ID.String()
	}
	return ""
}

// handlerFunc is a route bound to the request's session.
type handlerFunc func(r *http.Request, s *session.Session) Response

func (a *API) handle(fn handlerFunc) http.HandlerFunc {
	return a.render(func(r *http.Request) Response {
		s, ok := session.FromContext(r.Context())
		if !ok {
			return a.fail(r, ErrNoSession)
		}
		return fn(r, s)
	})
}

func (a *API) render(fn func(r *http.Request) Response) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := fn(r)
		if resp == nil {
			resp = a.fail(r, ErrNilResponse)
		}
		if err := resp.Render(w, r); err != nil {
			a.log.ErrorContext(r.Context(), "render response", logger.Error(err))
		}
	}
}

// fail maps err to an error response. Server-side failures are logged,
// client errors are not.
func (a *API) fail(r *http.Request, err error) Response {
	resp := newErrorResponse(err)
	if resp.status >= http.StatusInternalServerError && resp.status != http.StatusNotImplemented {
		a.log.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			logger.Error(err),
		)
	}
	return resp
}

func (a *API) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		a.log.DebugContext(r.Context(), "http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("duration", time.Since(start)),
		)
	})
}
