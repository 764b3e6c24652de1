package client

import (
	"context"

	"github.com/golang/snappy"

	"github.com/tabletkv/tabletkv/api/tabletpb"
	tkerrors "github.com/tabletkv/tabletkv/internal/errors"
	"github.com/tabletkv/tabletkv/pkg/scanbuf"
	"github.com/tabletkv/tabletkv/pkg/types"
)

// Get returns the newest live version of key. A missing key is
// (nil, false, nil); a missing table is ErrTableNotFound.
func (c *Client) Get(ctx context.Context, tid, pid uint32, key string) ([]byte, bool, error) {
	return c.get(ctx, &tabletpb.GetRequest{Tid: tid, Pid: pid, Key: key})
}

// GetAt returns the version of key stored at exactly ts. Every timestamp,
// 0 included, names a version; it never falls back to the newest one.
func (c *Client) GetAt(ctx context.Context, tid, pid uint32, key string, ts int64) ([]byte, bool, error) {
	return c.get(ctx, &tabletpb.GetRequest{Tid: tid, Pid: pid, Key: key, Ts: ts, HasTs: true})
}

func (c *Client) get(ctx context.Context, req *tabletpb.GetRequest) ([]byte, bool, error) {
	resp, err := c.stub.Get(ctx, req)
	if err != nil {
		return nil, false, err
	}
	switch resp.Code {
	case codeOK:
		return resp.Value, true, nil
	case codeKeyNotFound:
		return nil, false, nil
	default:
		return nil, false, remoteError("Get", resp.Code, resp.Msg)
	}
}

// Scan returns the versions of key with end <= ts <= start, newest first.
// start < end is rejected with ErrInvalidScanRange before any call is made.
// No match is a valid iterator that is immediately exhausted; a malformed
// buffer is an error matching ErrDecode. When the tablet's own entry cap
// cut the result short the iterator's Truncated reports true.
func (c *Client) Scan(ctx context.Context, tid, pid uint32, key string, start, end int64, opts ...ScanOption) (*scanbuf.Iterator, error) {
	var so scanOptions
	for _, opt := range opts {
		opt(&so)
	}

	rng := types.ScanRange{Key: key, Start: start, End: end, Limit: so.limit}
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	resp, err := c.stub.Scan(ctx, &tabletpb.ScanRequest{Tid: tid, Pid: pid, Pk: key, St: start, Et: end, Limit: so.limit})
	if err != nil {
		return nil, err
	}
	if resp.Code != codeOK {
		return nil, remoteError("Scan", resp.Code, resp.Msg)
	}

	buf := resp.Pairs
	if resp.Compressed {
		if buf, err = snappy.Decode(nil, resp.Pairs); err != nil {
			return nil, tkerrors.NewDecodeError(tkerrors.CodeCorruptBuffer, "scan buffer does not decompress", err)
		}
	}
	var it *scanbuf.Iterator
	if len(buf) == 0 && resp.Count == 0 {
		it = scanbuf.Empty()
	} else if it, err = scanbuf.NewIterator(buf, int(resp.Count)); err != nil {
		return nil, err
	}
	it.SetTruncated(resp.Truncated)
	return it, nil
}
