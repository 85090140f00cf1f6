package dataset

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Read decodes r according to the extension of filename.
func Read(r io.Reader, filename string, opts ...Option) (*Table, error) {
	opts = append([]Option{WithSource(filename)}, opts...)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return ReadCSV(r, opts...)
	case ".tsv", ".tab":
		return ReadCSV(r, append(opts, WithDelimiter('\t'))...)
	case ".yaml", ".yml":
		return ReadYAML(r, opts...)
	default:
		return nil, readError(filename, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename)))
	}
}
