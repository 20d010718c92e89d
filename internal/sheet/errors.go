package sheet

import (
	"errors"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for input files that are neither
	// spreadsheets nor CSV.
	ErrUnsupportedFormat = errors.New("unsupported input format")
	// ErrMissingColumns is wrapped by MissingColumnsError.
	ErrMissingColumns = errors.New("missing required columns")
	// ErrSheetNotFound is returned when the requested worksheet does not exist.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrNoHeader is returned for an input without a header row.
	ErrNoHeader = errors.New("input has no header row")
)

// MissingColumnsError lists every required column absent from the header.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	quoted := make([]string, len(e.Columns))
	for i, c := range e.Columns {
		quoted[i] = "'" + c + "'"
	}
	return ErrMissingColumns.Error() + ": " + strings.Join(quoted, ", ")
}

func (e *MissingColumnsError) Unwrap() error { return ErrMissingColumns }
