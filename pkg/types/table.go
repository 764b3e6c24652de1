// Package types provides the core data types shared by the tabletkv client and tablet.
package types

import (
	"fmt"
	"math"
)

const (
	// DefaultSegCnt is the schema width used when a caller does not pick one.
	DefaultSegCnt = 8

	// MaxTTL is the largest TTL, in minutes, whose millisecond form fits in
	// an int64.
	MaxTTL int64 = math.MaxInt64 / (60 * 1000)
)

// TableKey identifies a table on a tablet. A table id is unique within a partition.
type TableKey struct {
	TID uint32 `json:"tid"`
	PID uint32 `json:"pid"`
}

// String returns the canonical "<tid>_<pid>" form used in paths and logs.
func (k TableKey) String() string {
	return fmt.Sprintf("%d_%d", k.TID, k.PID)
}

// TableSpec describes a table to create on a tablet.
type TableSpec struct {
	// Name is the human readable table name
	Name string `json:"name" yaml:"name"`

	// TID is the numeric table id
	TID uint32 `json:"tid" yaml:"tid"`

	// PID is the partition id the table lives in
	PID uint32 `json:"pid" yaml:"pid"`

	// TTL is the record time-to-live in minutes. 0 disables expiry.
	TTL int64 `json:"ttl" yaml:"ttl"`

	// SegCnt is the schema width (number of segments/columns)
	SegCnt uint32 `json:"seg_cnt" yaml:"seg_cnt"`
}

// Key returns the (tid, pid) pair the table is addressed by.
func (s TableSpec) Key() TableKey {
	return TableKey{TID: s.TID, PID: s.PID}
}

// Validate checks the table definition without contacting a tablet.
func (s TableSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: table name is required", ErrInvalidTableSpec)
	}
	if s.TTL < 0 {
		return fmt.Errorf("%w: ttl must be >= 0, got %d", ErrInvalidTTL, s.TTL)
	}
	if s.TTL > MaxTTL {
		return fmt.Errorf("%w: ttl must be <= %d minutes, got %d", ErrInvalidTTL, MaxTTL, s.TTL)
	}
	if s.SegCnt == 0 {
		return fmt.Errorf("%w: seg_cnt must be > 0", ErrInvalidTableSpec)
	}
	return nil
}

// TTLMillis returns the TTL in milliseconds, the unit record timestamps use.
// It does not overflow for a spec that passes Validate.
func (s TableSpec) TTLMillis() int64 {
	return s.TTL * 60 * 1000
}

// TableStatus is the tablet's view of a live table.
type TableStatus struct {
	TableSpec
	RecordCount int64  `json:"record_count"`
	Engine      string `json:"engine"`
	CreatedAt   int64  `json:"created_at"`
}
