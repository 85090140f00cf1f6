// Package dataset decodes uploaded tabular files into a Table of named
// columns whose cells are either present strings or missing.
//
// CSV input is decoded as UTF-8 (a leading byte order mark is dropped) and,
// when the bytes are not valid UTF-8, with each configured fallback encoding
// in turn. The default fallback is Big5 (Windows code page 950), matching the
// spreadsheets exported by Traditional Chinese editions of Excel.
//
//	tbl, err := dataset.ReadCSV(r)
//	if err != nil {
//	    var rerr *dataset.ReadError
//	    if errors.As(err, &rerr) { ... }
//	}
//	for _, cell := range tbl.Values("color") {
//	    if cell.Valid {
//	        fmt.Println(cell.Value)
//	    }
//	}
//
// Cells that are empty or contain only whitespace are treated as missing,
// as are cells padded onto rows shorter than the header. YAML input is a
// column-oriented mapping where null entries are missing:
//
//	color: [red, blue, ~]
//	item:  [hat]
//
// Read picks the decoder from the file extension. Every failure is returned
// as a *ReadError carrying the source name and the underlying cause.
package dataset
