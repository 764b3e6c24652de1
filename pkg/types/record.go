package types

import "fmt"

// Record is one version of a value stored under a primary key.
type Record struct {
	TID       uint32
	PID       uint32
	Key       string
	Timestamp int64
	Value     []byte
}

// ScanRange selects the versions of Key with End <= timestamp <= Start, newest first.
type ScanRange struct {
	Key   string
	Start int64
	End   int64

	// Limit caps the number of returned versions; 0 means no client-side cap
	Limit uint32
}

// Validate rejects ranges the tablet cannot answer. An ascending range
// (Start < End) is a usage error rather than an empty result.
func (r ScanRange) Validate() error {
	if r.Key == "" {
		return fmt.Errorf("%w: key is required", ErrInvalidScanRange)
	}
	if r.Start < r.End {
		return fmt.Errorf("%w: start %d is before end %d", ErrInvalidScanRange, r.Start, r.End)
	}
	return nil
}

// Contains reports whether ts falls inside the range.
func (r ScanRange) Contains(ts int64) bool {
	return ts <= r.Start && ts >= r.End
}
