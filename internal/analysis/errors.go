package analysis

import "errors"

// ErrInvalidYear indicates a year outside the series' year sequence.
var ErrInvalidYear = errors.New("year not in series")
