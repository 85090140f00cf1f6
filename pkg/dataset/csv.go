package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Option configures CSV decoding.
type Option func(*csvConfig)

type csvConfig struct {
	source    string
	delimiter rune
	fallbacks []encoding.Encoding
}

func defaultCSVConfig() *csvConfig {
	return &csvConfig{
		delimiter: ',',
		fallbacks: []encoding.Encoding{traditionalchinese.Big5},
	}
}

// WithDelimiter sets the field separator. Zero is ignored.
func WithDelimiter(r rune) Option {
	return func(c *csvConfig) {
		if r != 0 {
			c.delimiter = r
		}
	}
}

// WithFallbackEncodings replaces the encodings tried when input is not UTF-8.
// Passing none disables the fallback so non-UTF-8 input fails.
func WithFallbackEncodings(encs ...encoding.Encoding) Option {
	return func(c *csvConfig) {
		c.fallbacks = encs
	}
}

// WithSource names the source in returned errors.
func WithSource(name string) Option {
	return func(c *csvConfig) { c.source = name }
}

// ReadCSV decodes a delimited text table whose first record is the header.
func ReadCSV(r io.Reader, opts ...Option) (*Table, error) {
	cfg := defaultCSVConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, readError(cfg.source, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, readError(cfg.source, ErrEmptySource)
	}

	text, err := decodeText(raw, cfg.fallbacks)
	if err != nil {
		return nil, readError(cfg.source, err)
	}

	tbl, err := parseDelimited(text, cfg.delimiter)
	if err != nil {
		return nil, readError(cfg.source, err)
	}
	return tbl, nil
}

// decodeText honours UTF-8 and UTF-16 byte order marks, accepts valid UTF-8,
// and otherwise tries each fallback encoding strictly.
func decodeText(raw []byte, fallbacks []encoding.Encoding) (string, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(encoding.Nop.NewDecoder()), raw)
	if err == nil && utf8.Valid(out) {
		return string(out), nil
	}

	for _, enc := range fallbacks {
		decoded, err := enc.NewDecoder().Bytes(raw)
		if err != nil {
			continue
		}
		// x/text decoders substitute U+FFFD for undecodable input instead of failing.
		if bytes.ContainsRune(decoded, utf8.RuneError) {
			continue
		}
		return string(decoded), nil
	}
	return "", ErrUnsupportedEncoding
}

func parseDelimited(text string, delimiter rune) (*Table, error) {
	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptySource
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
	}
	for i, name := range header {
		if strings.TrimSpace(name) == "" {
			header[i] = fmt.Sprintf("Unnamed: %d", i)
		}
	}

	var rows [][]Cell
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
		}
		if len(rec) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d", ErrMalformedRow, line, len(rec), len(header))
		}
		row := make([]Cell, len(rec))
		for i, v := range rec {
			row[i] = Text(v)
		}
		rows = append(rows, row)
	}

	return NewTable(header, rows), nil
}
