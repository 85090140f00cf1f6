package api

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/promptmix/pkg/archive"
	"github.com/dmitrymomot/promptmix/pkg/dataset"
	"github.com/dmitrymomot/promptmix/pkg/history"
	"github.com/dmitrymomot/promptmix/pkg/mixer"
	"github.com/dmitrymomot/promptmix/pkg/pool"
	"github.com/dmitrymomot/promptmix/pkg/prompt"
	"github.com/dmitrymomot/promptmix/pkg/sampler"
)

// HTTPError is an error with a fixed status and code.
type HTTPError struct {
	Code    int
	Key     string
	Message string
}

func (e HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Key
}

// Predefined request errors.
var (
	ErrBadRequest       = HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	ErrNotFound         = HTTPError{Code: http.StatusNotFound, Key: "not_found", Message: "route not found"}
	ErrMethodNotAllowed = HTTPError{Code: http.StatusMethodNotAllowed, Key: "method_not_allowed", Message: "method not allowed"}
	ErrPayloadTooLarge  = HTTPError{Code: http.StatusRequestEntityTooLarge, Key: "payload_too_large", Message: "request body is too large"}
	ErrTooManyRequests  = HTTPError{Code: http.StatusTooManyRequests, Key: "rate_limited", Message: "too many requests, retry later"}
	ErrNoSession        = HTTPError{Code: http.StatusInternalServerError, Key: "internal_error", Message: "session is not available"}
)

func badRequest(msg string) HTTPError {
	e := ErrBadRequest
	e.Message = msg
	return e
}

func errorToDetail(err error) (int, *ErrorDetail) {
	var (
		httpErr    HTTPError
		missingErr *pool.MissingColumnsError
		readErr    *dataset.ReadError
		maxErr     *http.MaxBytesError
	)

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code, &ErrorDetail{Code: httpErr.Key, Message: httpErr.Error()}
	case errors.As(err, &maxErr):
		return ErrPayloadTooLarge.Code, &ErrorDetail{
			Code:    ErrPayloadTooLarge.Key,
			Message: ErrPayloadTooLarge.Message,
			Details: map[string]any{"limit": maxErr.Limit},
		}
	case errors.Is(err, prompt.ErrNoTagsDetected):
		return http.StatusUnprocessableEntity, &ErrorDetail{Code: "no_tags_detected", Message: err.Error()}
	case errors.As(err, &missingErr):
		return http.StatusUnprocessableEntity, &ErrorDetail{
			Code:    "missing_columns",
			Message: err.Error(),
			Details: map[string]any{"missing": missingErr.Tags},
		}
	case errors.As(err, &readErr):
		return http.StatusBadRequest, &ErrorDetail{
			Code:    "data_source_read_error",
			Message: err.Error(),
			Details: map[string]any{"source": readErr.Source},
		}
	case errors.Is(err, mixer.ErrNotReady):
		return http.StatusConflict, &ErrorDetail{Code: "not_ready", Message: err.Error()}
	case errors.Is(err, sampler.ErrExhausted):
		return http.StatusConflict, &ErrorDetail{
			Code:    "exhausted",
			Message: err.Error(),
			Details: map[string]any{"all_used": errors.Is(err, mixer.ErrSpaceExhausted)},
		}
	case errors.Is(err, history.ErrNotFound):
		return http.StatusNotFound, &ErrorDetail{Code: "not_found", Message: err.Error()}
	case errors.Is(err, archive.ErrDisabled):
		return http.StatusNotImplemented, &ErrorDetail{Code: "archive_disabled", Message: err.Error()}
	}

	return http.StatusInternalServerError, &ErrorDetail{
		Code:    "internal_error",
		Message: http.StatusText(http.StatusInternalServerError),
	}
}
