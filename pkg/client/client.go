// Package client is the caller-facing API of a tabletkv tablet: table
// lifecycle, multi-version writes, point reads and time-range scans.
//
// Every call is synchronous and bounded by the client's timeout. Results
// keep three outcomes apart: success, a definite negative answer (false or
// not found, with a nil error) and an error. A timeout error means the
// outcome is unknown; the client never retries.
package client

import (
	"github.com/tabletkv/tabletkv/api/tabletpb"
	"github.com/tabletkv/tabletkv/internal/transport"
	"github.com/tabletkv/tabletkv/pkg/resolver"
)

const (
	codeOK               = tabletpb.CodeOK
	codeTableNotFound    = tabletpb.CodeTableNotFound
	codeTableExists      = tabletpb.CodeTableExists
	codeInvalidParameter = tabletpb.CodeInvalidParameter
	codeKeyNotFound      = tabletpb.CodeKeyNotFound
	codeSnapshotNotFound = tabletpb.CodeSnapshotNotFound
	codeInternal         = tabletpb.CodeInternal
)

// Client talks to tablets. It is safe for concurrent use; the connection
// pool is the only state shared between calls.
type Client struct {
	stub *transport.Stub
}

// New creates a client. Either WithEndpoints or WithResolver is required.
func New(opts ...Option) (*Client, error) {
	o := options{
		timeout:  DefaultTimeout,
		cacheTTL: DefaultResolverCacheTTL,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var r resolver.Resolver
	switch {
	case o.resolver != nil && o.cacheTTL >= 0:
		r = resolver.NewCached(o.resolver, resolver.DefaultCacheSize, o.cacheTTL)
	case o.resolver != nil:
		r = o.resolver
	default:
		var err error
		if r, err = resolver.New(o.endpoints); err != nil {
			return nil, err
		}
	}

	stub := transport.New(r, transport.Options{
		Timeout:     o.timeout,
		DialOptions: o.dialOpts,
		Stats:       o.stats,
	})
	return &Client{stub: stub}, nil
}

// Close releases every pooled connection.
func (c *Client) Close() error {
	return c.stub.Close()
}
