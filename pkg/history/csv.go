package history

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
)

// Export column names.
const (
	ColumnSummary    = "Summary"
	ColumnFullPrompt = "Full_Prompt"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes entries as UTF-8 CSV with a byte order mark and a header row.
// Fields round-trip through ReadCSV unchanged as long as they hold no CRLF
// pair; a CRLF inside a quoted field reads back as LF. Sessions store text
// through prompt.NormalizeNewlines, which guarantees that.
func WriteCSV(w io.Writer, entries []Entry) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{ColumnSummary, ColumnFullPrompt}); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.Summary, e.FullPrompt}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a file produced by WriteCSV. The byte order mark is optional.
func ReadCSV(r io.Reader) ([]Entry, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = 2

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header", ErrInvalidExport)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidExport, err)
	}
	if !slices.Equal(header, []string{ColumnSummary, ColumnFullPrompt}) {
		return nil, fmt.Errorf("%w: unexpected header %q", ErrInvalidExport, header)
	}

	var entries []Entry
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidExport, err)
		}
		entries = append(entries, Entry{Summary: rec[0], FullPrompt: rec[1]})
	}
	return entries, nil
}
