package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestTabletError_Error(t *testing.T) {
	err := New(ErrCategoryConflict, CodeTableExists, "table 1_0 exists")
	expected := "[CONFLICT:TABLE_EXISTS] table 1_0 exists"
	if err.Error() != expected {
		t.Errorf("got %q, want %q", err.Error(), expected)
	}
}

func TestTabletError_ErrorWithCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := NewTransportError(CodeUnavailable, "dial tablet", cause)
	expected := "[TRANSPORT:UNAVAILABLE] dial tablet: connection refused"
	if err.Error() != expected {
		t.Errorf("got %q, want %q", err.Error(), expected)
	}
}

func TestTabletError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := NewTimeoutError("put", cause)
	if !errors.Is(err, cause) {
		t.Error("Unwrap should allow errors.Is to find the cause")
	}
}

func TestTabletError_Is(t *testing.T) {
	err1 := New(ErrCategoryNotFound, CodeTableNotFound, "first")
	err2 := New(ErrCategoryNotFound, CodeTableNotFound, "second")
	err3 := New(ErrCategoryNotFound, CodeSnapshotNotFound, "different code")

	if !errors.Is(err1, err2) {
		t.Error("errors with same category+code should match via Is")
	}
	if errors.Is(err1, err3) {
		t.Error("errors with different codes should not match via Is")
	}

	categoryOnly := &TabletError{Category: ErrCategoryNotFound}
	if !errors.Is(err3, categoryOnly) {
		t.Error("a code-less target should match any error of its category")
	}
}

func TestTabletError_IsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("scan: %w", NewDecodeError(CodeCorruptBuffer, "short frame", nil))
	if !errors.Is(err, New(ErrCategoryDecode, CodeCorruptBuffer, "")) {
		t.Error("errors.Is should see through fmt.Errorf wrapping")
	}
	if !IsDecode(err) {
		t.Error("IsDecode should see through fmt.Errorf wrapping")
	}
	if IsTimeout(err) {
		t.Error("decode error must not be reported as timeout")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		category  ErrorCategory
		code      string
		retryable bool
	}{
		{ErrCategoryTimeout, CodeDeadlineExceeded, true},
		{ErrCategoryTransport, CodeUnavailable, true},
		{ErrCategoryTransport, CodeCanceled, false},
		{ErrCategoryStorage, CodeUploadFailed, true},
		{ErrCategoryStorage, CodeDownloadFailed, true},
		{ErrCategoryConflict, CodeTableExists, false},
		{ErrCategoryNotFound, CodeTableNotFound, false},
		{ErrCategoryDecode, CodeCorruptBuffer, false},
		{ErrCategoryValidation, CodeInvalidTTL, false},
		{ErrCategoryInternal, CodeUnexpected, false},
	}

	for _, tt := range tests {
		err := New(tt.category, tt.code, "test")
		if IsRetryable(err) != tt.retryable {
			t.Errorf("%s:%s retryable=%v, want %v", tt.category, tt.code, IsRetryable(err), tt.retryable)
		}
	}
}

func TestGetCategory(t *testing.T) {
	err := New(ErrCategoryDecode, CodeCorruptBuffer, "bad frame")
	if GetCategory(err) != ErrCategoryDecode {
		t.Errorf("got %q, want %q", GetCategory(err), ErrCategoryDecode)
	}
	if GetCategory(fmt.Errorf("plain error")) != "" {
		t.Error("non-TabletError should return empty category")
	}
}

func TestGetCode(t *testing.T) {
	err := New(ErrCategoryValidation, CodeInvalidTTL, "ttl -1")
	if GetCode(err) != CodeInvalidTTL {
		t.Errorf("got %q, want %q", GetCode(err), CodeInvalidTTL)
	}
	if GetCode(fmt.Errorf("plain error")) != "" {
		t.Error("non-TabletError should return empty code")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(ErrCategoryNotFound, CodeTableNotFound, "no table")
	detailed := err.WithDetails(map[string]interface{}{"tid": 6001})

	if detailed.Details["tid"] != 6001 {
		t.Error("WithDetails should set details")
	}
	if err.Details != nil {
		t.Error("WithDetails should not modify original")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	cause := fmt.Errorf("io error")

	v := NewValidationError(CodeInvalidScanRange, "ascending")
	if v.Category != ErrCategoryValidation || v.Code != CodeInvalidScanRange {
		t.Error("NewValidationError mismatch")
	}

	tm := NewTimeoutError("get", cause)
	if tm.Category != ErrCategoryTimeout || !tm.Retryable || !errors.Is(tm, cause) {
		t.Error("NewTimeoutError mismatch")
	}

	d := NewDecodeError(CodeBadResponse, "truncated", cause)
	if d.Category != ErrCategoryDecode || d.Retryable {
		t.Error("NewDecodeError mismatch")
	}

	s := NewStorageError(CodeUploadFailed, "s3 down", cause)
	if s.Category != ErrCategoryStorage || !errors.Is(s, cause) {
		t.Error("NewStorageError mismatch")
	}

	i := NewInternalError("unexpected", cause)
	if i.Category != ErrCategoryInternal || i.Code != CodeUnexpected {
		t.Error("NewInternalError mismatch")
	}
}
