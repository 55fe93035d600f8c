package telemetry

import "errors"

var (
	// ErrEmptySeries is returned when a sample is requested from a series without samples
	ErrEmptySeries = errors.New("empty telemetry series")

	// ErrInvalidSeries is returned when samples do not form an evenly spaced sequence starting at zero
	ErrInvalidSeries = errors.New("invalid telemetry series")

	// ErrInvalidFlightID is returned when a flight id is empty or not present in the catalog
	ErrInvalidFlightID = errors.New("invalid flight id")
)
