package plot

import "math"

// gnuplotEpochOffset is the number of seconds between the Unix epoch and
// gnuplot's year-2000 reference epoch.
const gnuplotEpochOffset = 946684800

// Range is a padded axis interval.
type Range struct {
	Low  float64
	High float64
}

// PaddedRange widens [start, end] by 5% of its span on each side.
// The low bound is floored and the high bound is ceiled to three
// decimals, so repeated calls on nearby inputs stay stable.
func PaddedRange(start, end float64) Range {
	d := end - start
	return Range{
		Low:  math.Floor(1000*(start-0.05*d)) / 1000,
		High: math.Ceil(1000*(end+0.05*d)) / 1000,
	}
}

// TimeRange applies the same padding to Unix timestamps, then shifts
// both bounds to gnuplot's reference epoch and truncates them to whole
// seconds.
func TimeRange(start, end int64) (low, high int64) {
	r := PaddedRange(float64(start), float64(end))
	return int64(r.Low) - gnuplotEpochOffset, int64(r.High) - gnuplotEpochOffset
}
