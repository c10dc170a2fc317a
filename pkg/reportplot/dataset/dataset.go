// Package dataset loads series tables from spreadsheet files so report
// scripts can plot externally produced measurements.
package dataset

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Table is one sheet's worth of plottable data: a key column, one value
// row per key, and the series titles taken from the header row.
type Table struct {
	// Keys holds the first column; numeric keys are parsed, anything
	// else stays a label.
	Keys []Key
	// Rows holds one value per series, aligned to Keys.
	Rows [][]float64
	// Titles are the series names from the header row.
	Titles []string
}

// Key is a single key-column cell: a number or a plain label.
type Key struct {
	Num     float64
	Label   string
	Numeric bool
}

// Load reads the named sheet from the spreadsheet at path. The first
// row is the header: its first cell names the key column and the rest
// name the series. Each following row supplies one key and one value
// per series; blank rows are skipped, short or non-numeric rows are an
// error.
func Load(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}
	header := rows[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("sheet %q: header needs a key column and at least one series column", sheet)
	}

	t := &Table{Titles: append([]string(nil), header[1:]...)}
	nseries := len(header) - 1

	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		rowNum := i + 2 // 1-based, after the header
		if len(row) != nseries+1 {
			return nil, fmt.Errorf("sheet %q row %d: expected %d cells, got %d", sheet, rowNum, nseries+1, len(row))
		}
		values := make([]float64, nseries)
		for j, cell := range row[1:] {
			v, err := parseNumber(cell)
			if err != nil {
				return nil, fmt.Errorf("sheet %q row %d: %w", sheet, rowNum, err)
			}
			values[j] = v
		}
		t.Keys = append(t.Keys, parseKey(row[0]))
		t.Rows = append(t.Rows, values)
	}
	return t, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

// parseKey attempts the integer-then-float parse used for cell values,
// keeping the cell text as a label when neither applies.
func parseKey(s string) Key {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Key{Num: float64(i), Numeric: true}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Key{Num: f, Numeric: true}
	}
	return Key{Label: s}
}

func parseNumber(s string) (float64, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return float64(i), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}
	return 0, fmt.Errorf("cell %q is not numeric", s)
}
