package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySource         = errors.New("data source is empty")
	ErrUnsupportedEncoding = errors.New("unsupported text encoding")
	ErrUnsupportedFormat   = errors.New("unsupported data source format")
	ErrMalformedRow        = errors.New("malformed row")
	ErrInvalidDocument     = errors.New("invalid document structure")
)

// ReadError wraps any failure to decode or parse a tabular source.
type ReadError struct {
	Source string
	Err    error
}

func (e *ReadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("read data source: %v", e.Err)
	}
	return fmt.Sprintf("read data source %q: %v", e.Source, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

func readError(source string, err error) error {
	return &ReadError{Source: source, Err: err}
}
