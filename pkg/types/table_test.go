package types

import (
	"errors"
	"math"
	"testing"
)

func TestTableSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		spec    TableSpec
		wantErr error
	}{
		{"valid no ttl", TableSpec{Name: "tj0", TID: 1, TTL: 0, SegCnt: 8}, nil},
		{"valid ttl", TableSpec{Name: "tj0", TID: 1, TTL: 144000, SegCnt: 8}, nil},
		{"negative ttl", TableSpec{Name: "tj0", TID: 1, TTL: -1, SegCnt: 8}, ErrInvalidTTL},
		{"largest ttl", TableSpec{Name: "tj0", TID: 1, TTL: MaxTTL, SegCnt: 8}, nil},
		{"ttl overflows millis", TableSpec{Name: "tj0", TID: 1, TTL: MaxTTL + 1, SegCnt: 8}, ErrInvalidTTL},
		{"max int64 ttl", TableSpec{Name: "tj0", TID: 1, TTL: math.MaxInt64, SegCnt: 8}, ErrInvalidTTL},
		{"missing name", TableSpec{TID: 1, SegCnt: 8}, ErrInvalidTableSpec},
		{"zero seg_cnt", TableSpec{Name: "tj0", TID: 1}, ErrInvalidTableSpec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTableSpec_TTLMillis(t *testing.T) {
	spec := TableSpec{TTL: 2}
	if got := spec.TTLMillis(); got != 120000 {
		t.Errorf("TTLMillis() = %d, want 120000", got)
	}
}

func TestTableSpec_TTLMillisAtMax(t *testing.T) {
	spec := TableSpec{TTL: MaxTTL}
	if got := spec.TTLMillis(); got <= 0 {
		t.Errorf("TTLMillis() = %d for MaxTTL, want a positive value", got)
	}
}

func TestTableKey_String(t *testing.T) {
	if got := (TableKey{TID: 6001, PID: 3}).String(); got != "6001_3" {
		t.Errorf("String() = %q, want %q", got, "6001_3")
	}
}

func TestScanRange_Validate(t *testing.T) {
	if err := (ScanRange{Key: "pk", Start: 9527, End: 9526}).Validate(); err != nil {
		t.Fatalf("descending range rejected: %v", err)
	}
	if err := (ScanRange{Key: "pk", Start: 9527, End: 9527}).Validate(); err != nil {
		t.Fatalf("point range rejected: %v", err)
	}
	if err := (ScanRange{Key: "pk", Start: 1, End: 2}).Validate(); !errors.Is(err, ErrInvalidScanRange) {
		t.Fatalf("ascending range: got %v, want ErrInvalidScanRange", err)
	}
	if err := (ScanRange{Start: 2, End: 1}).Validate(); !errors.Is(err, ErrInvalidScanRange) {
		t.Fatalf("missing key: got %v, want ErrInvalidScanRange", err)
	}
}

func TestScanRange_Contains(t *testing.T) {
	r := ScanRange{Key: "pk", Start: 100, End: 50}
	for ts, want := range map[int64]bool{100: true, 50: true, 75: true, 101: false, 49: false} {
		if got := r.Contains(ts); got != want {
			t.Errorf("Contains(%d) = %v, want %v", ts, got, want)
		}
	}
}
