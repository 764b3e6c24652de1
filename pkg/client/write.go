package client

import (
	"context"

	"github.com/tabletkv/tabletkv/api/tabletpb"
)

// Put appends a version of key at ts. Versions are never overwritten: a
// second Put with the same key and ts adds another version.
//
// It returns false with a nil error when the tablet refuses the write
// (missing table or empty key). On a timeout the write may or may not have
// been applied; Put does not retry.
func (c *Client) Put(ctx context.Context, tid, pid uint32, key string, ts int64, value []byte) (bool, error) {
	if key == "" {
		return false, nil
	}
	resp, err := c.stub.Put(ctx, &tabletpb.PutRequest{Tid: tid, Pid: pid, Pk: key, Time: ts, Value: value})
	if err != nil {
		return false, err
	}
	if resp.Code == codeOK {
		return true, nil
	}
	if err := remoteError("Put", resp.Code, resp.Msg); !isDefiniteNegative(err) {
		return false, err
	}
	return false, nil
}
