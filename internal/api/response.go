package api

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrNilResponse is returned when a handler produces no response.
var ErrNilResponse = errors.New("handler returned nil response")

// Response renders itself to an http.ResponseWriter.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Envelope is the body of every JSON response.
type Envelope struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

type jsonResponse struct {
	status int
	body   Envelope
}

func (j *jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures a JSON response.
type JSONOption func(*jsonResponse)

// WithStatus overrides the HTTP status code.
func WithStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// WithMeta attaches metadata to the envelope.
func WithMeta(meta map[string]any) JSONOption {
	return func(r *jsonResponse) {
		r.body.Meta = meta
	}
}

// JSON wraps v as envelope data.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: Envelope{Data: v}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError renders err as an envelope error with its mapped status.
func JSONError(err error, opts ...JSONOption) Response {
	return newErrorResponse(err, opts...)
}

func newErrorResponse(err error, opts ...JSONOption) *jsonResponse {
	status, detail := errorToDetail(err)
	r := &jsonResponse{status: status, body: Envelope{Error: detail}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type csvResponse struct {
	filename string
	write    func(w http.ResponseWriter) error
}

func (c csvResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+c.filename+`"`)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	return c.write(w)
}

// CSV streams a file download produced by write.
func CSV(filename string, write func(w http.ResponseWriter) error) Response {
	return csvResponse{filename: filename, write: write}
}
