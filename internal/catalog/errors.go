package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingBasePopulation indicates a country without a positive base population.
	ErrMissingBasePopulation = errors.New("missing base population")
	// ErrDuplicateCountry indicates the same country name was registered twice.
	ErrDuplicateCountry = errors.New("duplicate country")
	// ErrConflictingRegion indicates a country listed under more than one region.
	ErrConflictingRegion = errors.New("country assigned to multiple regions")
	// ErrUnknownRegion indicates a region name outside the fixed set.
	ErrUnknownRegion = errors.New("unknown region")
	// ErrInvalidGrowthRate indicates a preassigned growth rate outside [MinGrowthRate, MaxGrowthRate].
	ErrInvalidGrowthRate = errors.New("growth rate out of range")
)

// ProfileError ties a catalog load failure to the offending country.
type ProfileError struct {
	Country string
	Err     error
}

func (e *ProfileError) Error() string {
	if e == nil {
		return "catalog error"
	}
	return fmt.Sprintf("catalog: %s: %v", e.Country, e.Err)
}

func (e *ProfileError) Unwrap() error { return e.Err }
