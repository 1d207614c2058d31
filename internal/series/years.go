package series

// Default year sequence bounds. The last year is exclusive of DefaultEndYear
// when the step does not land on it (1950..2020 for step 5).
const (
	DefaultFirstYear = 1950
	DefaultEndYear   = 2023
	DefaultYearStep  = 5
)

// Years returns first, first+step, ... up to and including last.
// A non-positive step or last < first yields nil.
func Years(first, last, step int) []int {
	if step <= 0 || last < first {
		return nil
	}
	out := make([]int, 0, (last-first)/step+1)
	for y := first; y <= last; y += step {
		out = append(out, y)
	}
	return out
}

// DefaultYears returns 1950, 1955, ..., 2020.
func DefaultYears() []int {
	return Years(DefaultFirstYear, DefaultEndYear, DefaultYearStep)
}
