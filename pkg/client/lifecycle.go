package client

import (
	"context"
	"errors"

	"github.com/tabletkv/tabletkv/api/tabletpb"
	"github.com/tabletkv/tabletkv/pkg/types"
)

// CreateTable creates a table on its tablet. It returns false with a nil
// error when the spec is invalid (nothing is sent) or when (tid, pid)
// already exists; the existing table is left untouched in that case.
func (c *Client) CreateTable(ctx context.Context, spec types.TableSpec) (bool, error) {
	if err := spec.Validate(); err != nil {
		return false, nil
	}

	resp, err := c.stub.CreateTable(ctx, &tabletpb.CreateTableRequest{
		Name:   spec.Name,
		Tid:    spec.TID,
		Pid:    spec.PID,
		Ttl:    spec.TTL,
		SegCnt: spec.SegCnt,
	})
	if err != nil {
		return false, err
	}
	return status("CreateTable", resp, codeTableExists, codeInvalidParameter)
}

// DropTable removes a table and all its versions. It returns false with a
// nil error when the table does not exist.
func (c *Client) DropTable(ctx context.Context, tid, pid uint32) (bool, error) {
	resp, err := c.stub.DropTable(ctx, &tabletpb.DropTableRequest{Tid: tid, Pid: pid})
	if err != nil {
		return false, err
	}
	return status("DropTable", resp, codeTableNotFound)
}

// TableStatus returns the tablet's view of a table, or ErrTableNotFound.
func (c *Client) TableStatus(ctx context.Context, tid, pid uint32) (types.TableStatus, error) {
	resp, err := c.stub.GetTableStatus(ctx, &tabletpb.GetTableStatusRequest{Tid: tid, Pid: pid})
	if err != nil {
		return types.TableStatus{}, err
	}
	if resp.Code != codeOK {
		return types.TableStatus{}, remoteError("GetTableStatus", resp.Code, resp.Msg)
	}
	return types.TableStatus{
		TableSpec: types.TableSpec{
			Name:   resp.Name,
			TID:    resp.Tid,
			PID:    resp.Pid,
			TTL:    resp.Ttl,
			SegCnt: resp.SegCnt,
		},
		RecordCount: resp.RecordCount,
		Engine:      resp.Engine,
		CreatedAt:   resp.CreatedAt,
	}, nil
}

// MakeSnapshot asks the tablet to persist a table to its object storage.
// It returns false with a nil error when the table does not exist.
func (c *Client) MakeSnapshot(ctx context.Context, tid, pid uint32) (bool, error) {
	resp, err := c.stub.MakeSnapshot(ctx, &tabletpb.MakeSnapshotRequest{Tid: tid, Pid: pid})
	if err != nil {
		return false, err
	}
	return status("MakeSnapshot", resp, codeTableNotFound)
}

// LoadTable recreates a table from its latest snapshot. It returns false
// with a nil error when the table is already live or no snapshot exists.
func (c *Client) LoadTable(ctx context.Context, tid, pid uint32) (bool, error) {
	resp, err := c.stub.LoadTable(ctx, &tabletpb.LoadTableRequest{Tid: tid, Pid: pid})
	if err != nil {
		return false, err
	}
	return status("LoadTable", resp, codeTableExists, codeSnapshotNotFound)
}

// status turns a general response into the (ok, err) shape. Codes listed in
// negative are definite refusals and yield false with a nil error.
func status(method string, resp *tabletpb.GeneralResponse, negative ...int32) (bool, error) {
	if resp.Code == codeOK {
		return true, nil
	}
	for _, code := range negative {
		if resp.Code == code {
			return false, nil
		}
	}
	return false, remoteError(method, resp.Code, resp.Msg)
}

// isDefiniteNegative reports whether err is the tablet refusing a call
// rather than the call failing.
func isDefiniteNegative(err error) bool {
	return errors.Is(err, ErrTableNotFound) || errors.Is(err, ErrInvalidArgument)
}
