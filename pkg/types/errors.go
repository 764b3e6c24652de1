package types

import "errors"

// Validation errors for table specs and scan ranges
var (
	// ErrInvalidTTL is returned when a table spec carries a negative TTL
	ErrInvalidTTL = errors.New("invalid ttl")

	// ErrInvalidTableSpec is returned for any other malformed table spec
	ErrInvalidTableSpec = errors.New("invalid table spec")

	// ErrInvalidScanRange is returned when a scan range is ascending or has no key
	ErrInvalidScanRange = errors.New("invalid scan range")
)
