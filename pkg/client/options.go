package client

import (
	"time"

	"google.golang.org/grpc"

	"github.com/tabletkv/tabletkv/pkg/observability"
	"github.com/tabletkv/tabletkv/pkg/resolver"
)

const (
	// DefaultTimeout bounds every call when WithTimeout is not given.
	DefaultTimeout = 5 * time.Second

	// DefaultResolverCacheTTL is how long a resolved endpoint is reused.
	DefaultResolverCacheTTL = time.Minute
)

type options struct {
	timeout   time.Duration
	endpoints []string
	resolver  resolver.Resolver
	cacheTTL  time.Duration
	dialOpts  []grpc.DialOption
	stats     *observability.CallStats
}

// Option configures a Client.
type Option func(*options)

// WithTimeout sets the per-call deadline.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithEndpoints sets the tablet addresses. One address serves every table;
// several are picked by hashing (tid, pid).
func WithEndpoints(endpoints ...string) Option {
	return func(o *options) {
		o.endpoints = append(o.endpoints, endpoints...)
	}
}

// WithResolver replaces endpoint resolution entirely. It takes precedence
// over WithEndpoints.
func WithResolver(r resolver.Resolver) Option {
	return func(o *options) {
		o.resolver = r
	}
}

// WithResolverCacheTTL sets how long endpoints returned by a WithResolver
// resolver are cached. 0 caches until evicted; a negative value disables the
// cache.
func WithResolverCacheTTL(d time.Duration) Option {
	return func(o *options) {
		o.cacheTTL = d
	}
}

// WithDialOptions appends gRPC dial options.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(o *options) {
		o.dialOpts = append(o.dialOpts, opts...)
	}
}

// WithStats records every call in stats.
func WithStats(stats *observability.CallStats) Option {
	return func(o *options) {
		o.stats = stats
	}
}

// ScanOption configures a single Scan call.
type ScanOption func(*scanOptions)

type scanOptions struct {
	limit uint32
}

// WithLimit caps the number of versions a scan returns. 0 leaves only the
// tablet's own cap.
func WithLimit(n uint32) ScanOption {
	return func(o *scanOptions) {
		o.limit = n
	}
}
