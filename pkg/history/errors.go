package history

import "errors"

var (
	ErrNotFound           = errors.New("history record not found")
	ErrSequenceMismatch   = errors.New("record sequence does not follow the last record")
	ErrDuplicateSelection = errors.New("selection already present in history")
	ErrInvalidExport      = errors.New("invalid history export")
)
