package client

import (
	tkerrors "github.com/tabletkv/tabletkv/internal/errors"
	"github.com/tabletkv/tabletkv/internal/transport"
	"github.com/tabletkv/tabletkv/pkg/types"
)

// Errors a caller can match with errors.Is. A timeout means the outcome is
// unknown: the tablet may or may not have applied the call.
var (
	ErrTimeout          error = tkerrors.New(tkerrors.ErrCategoryTimeout, "", "call timed out")
	ErrDecode           error = tkerrors.New(tkerrors.ErrCategoryDecode, "", "malformed response")
	ErrTransport        error = tkerrors.New(tkerrors.ErrCategoryTransport, "", "transport failure")
	ErrTableNotFound    error = tkerrors.New(tkerrors.ErrCategoryNotFound, tkerrors.CodeTableNotFound, "table is not exist")
	ErrSnapshotNotFound error = tkerrors.New(tkerrors.ErrCategoryNotFound, tkerrors.CodeSnapshotNotFound, "snapshot not found")
	ErrInvalidArgument  error = tkerrors.New(tkerrors.ErrCategoryValidation, tkerrors.CodeInvalidArgument, "invalid argument")
	ErrInternal         error = tkerrors.New(tkerrors.ErrCategoryInternal, "", "tablet internal error")
	ErrClosed                 = transport.ErrClosed

	// ErrInvalidScanRange is returned by Scan for an ascending range or an
	// empty key, before any network call.
	ErrInvalidScanRange = types.ErrInvalidScanRange
)

// IsTimeout reports whether err is a call that ran out of time.
func IsTimeout(err error) bool {
	return tkerrors.IsTimeout(err)
}

// IsDecode reports whether err is a malformed tablet response.
func IsDecode(err error) bool {
	return tkerrors.IsDecode(err)
}

// remoteError converts a non-OK response code into an error.
func remoteError(method string, code int32, msg string) error {
	var base *tkerrors.TabletError
	switch code {
	case codeTableNotFound:
		base = tkerrors.New(tkerrors.ErrCategoryNotFound, tkerrors.CodeTableNotFound, msg)
	case codeSnapshotNotFound:
		base = tkerrors.New(tkerrors.ErrCategoryNotFound, tkerrors.CodeSnapshotNotFound, msg)
	case codeInvalidParameter:
		base = tkerrors.New(tkerrors.ErrCategoryValidation, tkerrors.CodeInvalidArgument, msg)
	case codeTableExists:
		base = tkerrors.New(tkerrors.ErrCategoryConflict, tkerrors.CodeTableExists, msg)
	case codeInternal:
		base = tkerrors.New(tkerrors.ErrCategoryInternal, tkerrors.CodeUnexpected, msg)
	default:
		base = tkerrors.New(tkerrors.ErrCategoryDecode, tkerrors.CodeBadResponse, msg)
	}
	return base.WithDetails(map[string]interface{}{"method": method, "code": code})
}
