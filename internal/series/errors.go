package series

import "errors"

var (
	// ErrEmptyYears indicates a series or generator without any years.
	ErrEmptyYears = errors.New("empty year sequence")
	// ErrYearOutOfSequence indicates an observation whose year is not in the sequence.
	ErrYearOutOfSequence = errors.New("year not in sequence")
	// ErrNonPositivePopulation indicates an observation with population <= 0.
	ErrNonPositivePopulation = errors.New("population must be positive")
	// ErrDuplicateObservation indicates two observations for the same country and year.
	ErrDuplicateObservation = errors.New("duplicate observation")
	// ErrIncompleteSeries indicates a country missing an observation for some year.
	ErrIncompleteSeries = errors.New("incomplete series")
	// ErrInvalidOptions indicates unusable generator options.
	ErrInvalidOptions = errors.New("invalid generator options")
)
