// Package sheet reads an uploaded spreadsheet into header-keyed rows.
// Only the first worksheet is considered and its first row is the header.
package sheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Canonical column keys after header normalization. "Component Name",
// "ComponentName" and "component_name" all map to ColComponentName.
const (
	ColComponentName = "componentname"
	ColQuantity      = "quantity"
	ColFloorNumber   = "floornumber"
	ColPositionX     = "positionx"
	ColPositionY     = "positiony"
	ColPositionZ     = "positionz"
	ColSerial        = "serial"
	ColHealthScore   = "healthscore"
	ColNotes         = "notes"
)

// Row is one data row of the uploaded plan.
type Row struct {
	Index int // zero-based position among data rows
	cells map[string]string
}

// NewRow builds a row from canonical keys. Intended for tests and callers
// that bypass spreadsheet parsing.
func NewRow(index int, cells map[string]string) Row {
	copied := make(map[string]string, len(cells))
	for k, v := range cells {
		copied[normalizeHeader(k)] = strings.TrimSpace(v)
	}
	return Row{Index: index, cells: copied}
}

// Number is the 1-based spreadsheet row number as the uploader sees it:
// data rows start at 2 because row 1 is the header.
func (r Row) Number() int {
	return r.Index + 2
}

// String returns the trimmed cell value for a canonical column key,
// or "" when the column is absent or blank.
func (r Row) String(col string) string {
	return r.cells[col]
}

// Int parses the cell as an integer, returning def for an absent or blank
// cell. Fractional numerics are truncated.
func (r Row) Int(col string, def int) (int, error) {
	raw := r.cells[col]
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err == nil {
		return n, nil
	}
	if f, ferr := strconv.ParseFloat(raw, 64); ferr == nil {
		return int(f), nil
	}
	return 0, err
}

// Float parses the cell as a float. An absent or blank cell is unset (nil),
// not zero.
func (r Row) Float(col string) (*float64, error) {
	raw := r.cells[col]
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// normalizeHeader lowercases a header cell and strips whitespace and
// underscores so the recognized aliases collapse onto one key.
func normalizeHeader(h string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(h) {
		switch c {
		case ' ', '\t', '_', ' ':
			continue
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// Parse reads an xlsx workbook and returns its first sheet as rows.
// A reader that is not a valid workbook is a hard error; the caller treats
// it as malformed input and aborts before any row processing.
func Parse(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("unable to read sheet %q: %w", sheets[0], err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	header := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		header[i] = normalizeHeader(h)
	}

	rows := make([]Row, 0, len(raw)-1)
	for i, cells := range raw[1:] {
		row := Row{Index: i, cells: make(map[string]string, len(header))}
		for j, cell := range cells {
			if j >= len(header) || header[j] == "" {
				continue
			}
			row.cells[header[j]] = strings.TrimSpace(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
