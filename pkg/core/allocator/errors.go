package allocator

import "errors"

var (
	// ErrEmptyRoster is returned when no nurses are supplied
	ErrEmptyRoster = errors.New("roster is empty")

	// ErrInvalidPeriod is returned when the year or month is out of range
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrInvalidPolicy is returned for an unknown tie-break or a negative cap
	ErrInvalidPolicy = errors.New("invalid allocation policy")
)
