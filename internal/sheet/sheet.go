// Package sheet reads tabular input (xlsx or csv) into header-keyed rows.
package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Options controls how an input file is read.
type Options struct {
	// Sheet selects the worksheet of a spreadsheet; empty means the first one.
	Sheet string
	// Comma overrides the CSV delimiter; zero means detect from the header line.
	Comma rune
}

// Record is one data row keyed by header name.
type Record struct {
	// Line is the 1-based line (or sheet row) the record starts on.
	Line  int
	Cells map[string]string
}

// Table is the header plus the non-blank data rows of an input file.
type Table struct {
	Header []string
	Rows   []Record
}

// Has reports whether the header contains column.
func (t *Table) Has(column string) bool {
	for _, h := range t.Header {
		if h == column {
			return true
		}
	}
	return false
}

// Require checks that every column is present. All absent columns are
// reported in one *MissingColumnsError.
func (t *Table) Require(columns ...string) error {
	var missing []string
	for _, c := range columns {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// Cells returns the cell maps of all rows, in order.
func (t *Table) Cells() []map[string]string {
	out := make([]map[string]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Cells
	}
	return out
}

// Lines returns the source line of every row, in order.
func (t *Table) Lines() []int {
	out := make([]int, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Line
	}
	return out
}

// Read opens path and reads it according to its extension.
func Read(path string, opts Options) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return readWorkbook(path, opts)
	case ".csv", ".txt":
		return readCSV(path, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func readWorkbook(path string, opts Options) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer f.Close()

	name := opts.Sheet
	sheets := f.GetSheetList()
	if name == "" {
		if len(sheets) == 0 {
			return nil, ErrNoHeader
		}
		name = sheets[0]
	} else if !contains(sheets, name) {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrSheetNotFound, name, strings.Join(sheets, ", "))
	}

	// Raw values keep dates and times as serial numbers instead of whatever
	// number format the author picked.
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %w", name, err)
	}

	lines := make([]int, len(rows))
	for i := range rows {
		lines[i] = i + 1
	}
	return buildTable(rows, lines)
}

func readCSV(path string, opts Options) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.Comma = opts.Comma
	if reader.Comma == 0 {
		reader.Comma = sniffDelimiter(data)
	}

	var records [][]string
	var lines []int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)
		records = append(records, record)
		lines = append(lines, line)
	}
	return buildTable(records, lines)
}

// sniffDelimiter picks the most frequent of comma, semicolon and tab on the
// header line. Spreadsheet exports in comma-decimal locales use semicolons.
func sniffDelimiter(data []byte) rune {
	header := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		header = data[:i]
	}
	best, bestCount := ',', bytes.Count(header, []byte{','})
	for _, d := range []rune{';', '\t'} {
		if n := bytes.Count(header, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

// buildTable turns raw records into a Table. The first non-blank record is
// the header; duplicate header names keep their first column.
func buildTable(records [][]string, lines []int) (*Table, error) {
	start := -1
	for i, r := range records {
		if !blank(r) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, ErrNoHeader
	}

	t := &Table{}
	index := make(map[string]int)
	for i, h := range records[start] {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, dup := index[h]; dup {
			continue
		}
		index[h] = i
		t.Header = append(t.Header, h)
	}
	if len(t.Header) == 0 {
		return nil, ErrNoHeader
	}

	for i := start + 1; i < len(records); i++ {
		r := records[i]
		if blank(r) {
			continue
		}
		cells := make(map[string]string, len(t.Header))
		for name, col := range index {
			if col < len(r) {
				cells[name] = r[col]
			}
		}
		t.Rows = append(t.Rows, Record{Line: lines[i], Cells: cells})
	}
	return t, nil
}

func blank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// IsMissingColumns reports whether err is (or wraps) a missing-column error
// and returns the absent names.
func IsMissingColumns(err error) ([]string, bool) {
	var mc *MissingColumnsError
	if errors.As(err, &mc) {
		return mc.Columns, true
	}
	return nil, false
}
