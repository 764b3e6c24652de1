package tablet

import (
	tkerrors "github.com/tabletkv/tabletkv/internal/errors"
)

// Tablet outcomes. Each matches with errors.Is and carries a category the
// gRPC layer maps to a response code.
var (
	ErrTableNotFound    error = tkerrors.New(tkerrors.ErrCategoryNotFound, tkerrors.CodeTableNotFound, "table not found")
	ErrTableExists      error = tkerrors.New(tkerrors.ErrCategoryConflict, tkerrors.CodeTableExists, "table already exists")
	ErrKeyNotFound      error = tkerrors.New(tkerrors.ErrCategoryNotFound, tkerrors.CodeKeyNotFound, "key not found")
	ErrSnapshotNotFound error = tkerrors.New(tkerrors.ErrCategoryNotFound, tkerrors.CodeSnapshotNotFound, "snapshot not found")
)

func invalidArgument(msg string, cause error) error {
	return tkerrors.Wrap(tkerrors.ErrCategoryValidation, tkerrors.CodeInvalidArgument, msg, cause)
}
