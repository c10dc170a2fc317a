package plot

import (
	"io"
	"strconv"
)

// Value is one entry of a script-supplied value column: either a single
// scalar or one row of per-series scalars. The variant is fixed when the
// script arguments are converted and never re-inspected afterwards.
type Value struct {
	scalar float64
	row    []float64
	isRow  bool
}

// Scalar returns a single-series value entry.
func Scalar(v float64) Value {
	return Value{scalar: v}
}

// Row returns a multi-series value entry holding one scalar per series.
func Row(vs []float64) Value {
	return Value{row: vs, isRow: true}
}

// normalizeRows resolves a value column into uniform rows and the series
// count. Scalar entries form single-series rows; nested entries must all
// share one width.
func normalizeRows(values []Value) (nseries int, rows [][]float64, err error) {
	rows = make([][]float64, 0, len(values))
	for _, v := range values {
		var row []float64
		if v.isRow {
			row = v.row
		} else {
			row = []float64{v.scalar}
		}
		if nseries == 0 {
			nseries = len(row)
		} else if nseries != len(row) {
			return 0, nil, Errorf("inconsistent number of series (%d != %d)", len(row), nseries)
		}
		rows = append(rows, row)
	}
	return nseries, rows, nil
}

// formatNum renders a data-file number with the shortest exact form.
func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// writeNumericRows writes "key v1 ... vN" lines for numerically keyed
// series data.
func writeNumericRows(w io.Writer, keys []float64, rows [][]float64) error {
	for i, key := range keys {
		if err := writeRow(w, formatNum(key), rows[i]); err != nil {
			return err
		}
	}
	return nil
}

// writeLabeledRows writes rows keyed by quoted labels, as consumed by
// histogram xtic selectors.
func writeLabeledRows(w io.Writer, labels []string, rows [][]float64) error {
	for i, label := range labels {
		if err := writeRow(w, "\""+label+"\"", rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(w io.Writer, key string, row []float64) error {
	if _, err := io.WriteString(w, key); err != nil {
		return err
	}
	for _, v := range row {
		if _, err := io.WriteString(w, " "+formatNum(v)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// checkCounts verifies that a value column lines up with its key column.
func checkCounts(nvalues, nkeys int) error {
	if nvalues != nkeys {
		return Errorf("number of keys and values doesn't match (%d != %d)", nvalues, nkeys)
	}
	return nil
}
