// Package transport sends typed tablet calls over gRPC with a per-call
// deadline. Connections are pooled per tablet address.
package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/tabletkv/tabletkv/api/tabletpb"
	tkerrors "github.com/tabletkv/tabletkv/internal/errors"
	"github.com/tabletkv/tabletkv/pkg/observability"
	"github.com/tabletkv/tabletkv/pkg/resolver"
)

// RequestIDHeader is the metadata key carrying the per-call request id.
const RequestIDHeader = "x-request-id"

// DefaultTimeout bounds a call when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// ErrClosed is returned for calls made after Close.
var ErrClosed = errors.New("transport: stub is closed")

// Options configures a Stub.
type Options struct {
	// Timeout is the deadline applied to every call on top of the caller's context
	Timeout time.Duration

	// DialOptions are appended to the defaults (insecure credentials)
	DialOptions []grpc.DialOption

	// Stats receives one record per call; nil disables tracking
	Stats *observability.CallStats
}

// Stub issues tablet RPCs to the endpoint a resolver picks for each table.
// It is safe for concurrent use.
type Stub struct {
	resolver resolver.Resolver
	timeout  time.Duration
	dialOpts []grpc.DialOption
	stats    *observability.CallStats

	mu     sync.Mutex
	conns  map[string]*grpc.ClientConn
	closed bool
}

// New creates a stub. Connections are opened lazily on first use.
func New(r resolver.Resolver, opts Options) *Stub {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	dialOpts := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	dialOpts = append(dialOpts, opts.DialOptions...)

	return &Stub{
		resolver: r,
		timeout:  opts.Timeout,
		dialOpts: dialOpts,
		stats:    opts.Stats,
		conns:    make(map[string]*grpc.ClientConn),
	}
}

// Timeout returns the per-call deadline.
func (s *Stub) Timeout() time.Duration {
	return s.timeout
}

func (s *Stub) CreateTable(ctx context.Context, req *tabletpb.CreateTableRequest) (*tabletpb.GeneralResponse, error) {
	return call(ctx, s, "CreateTable", req.Tid, req.Pid, req, tabletpb.TabletServiceClient.CreateTable)
}

func (s *Stub) DropTable(ctx context.Context, req *tabletpb.DropTableRequest) (*tabletpb.GeneralResponse, error) {
	return call(ctx, s, "DropTable", req.Tid, req.Pid, req, tabletpb.TabletServiceClient.DropTable)
}

func (s *Stub) Put(ctx context.Context, req *tabletpb.PutRequest) (*tabletpb.GeneralResponse, error) {
	return call(ctx, s, "Put", req.Tid, req.Pid, req, tabletpb.TabletServiceClient.Put)
}

func (s *Stub) Get(ctx context.Context, req *tabletpb.GetRequest) (*tabletpb.GetResponse, error) {
	return call(ctx, s, "Get", req.Tid, req.Pid, req, tabletpb.TabletServiceClient.Get)
}

func (s *Stub) Scan(ctx context.Context, req *tabletpb.ScanRequest) (*tabletpb.ScanResponse, error) {
	return call(ctx, s, "Scan", req.Tid, req.Pid, req, tabletpb.TabletServiceClient.Scan)
}

func (s *Stub) GetTableStatus(ctx context.Context, req *tabletpb.GetTableStatusRequest) (*tabletpb.TableStatusResponse, error) {
	return call(ctx, s, "GetTableStatus", req.Tid, req.Pid, req, tabletpb.TabletServiceClient.GetTableStatus)
}

func (s *Stub) MakeSnapshot(ctx context.Context, req *tabletpb.MakeSnapshotRequest) (*tabletpb.GeneralResponse, error) {
	return call(ctx, s, "MakeSnapshot", req.Tid, req.Pid, req, tabletpb.TabletServiceClient.MakeSnapshot)
}

func (s *Stub) LoadTable(ctx context.Context, req *tabletpb.LoadTableRequest) (*tabletpb.GeneralResponse, error) {
	return call(ctx, s, "LoadTable", req.Tid, req.Pid, req, tabletpb.TabletServiceClient.LoadTable)
}

// call applies the per-call deadline, resolves the tablet for (tid, pid)
// within it, attaches a request id and classifies the failure.
func call[Req, Resp any](ctx context.Context, s *Stub, method string, tid, pid uint32, req *Req,
	fn func(tabletpb.TabletServiceClient, context.Context, *Req, ...grpc.CallOption) (*Resp, error)) (*Resp, error) {
	start := time.Now()
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var resp *Resp
	client, err := s.client(callCtx, tid, pid)
	if err != nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		err = tkerrors.NewTimeoutError(fmt.Sprintf("%s: resolving table %d_%d did not complete within %s", method, tid, pid, s.timeout), err)
	}
	if err == nil {
		callCtx = metadata.AppendToOutgoingContext(callCtx, RequestIDHeader, uuid.New().String())
		resp, err = fn(client, callCtx, req)
		if err != nil {
			err = classify(callCtx, method, s.timeout, err)
		}
	}

	if s.stats != nil {
		outcome := observability.OutcomeOK
		switch {
		case tkerrors.IsTimeout(err):
			outcome = observability.OutcomeTimeout
		case err != nil:
			outcome = observability.OutcomeError
		}
		s.stats.Record(method, outcome, time.Since(start))
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *Stub) client(ctx context.Context, tid, pid uint32) (tabletpb.TabletServiceClient, error) {
	addr, err := s.resolver.Resolve(ctx, tid, pid)
	if err != nil {
		return nil, tkerrors.NewTransportError(tkerrors.CodeUnavailable,
			fmt.Sprintf("no endpoint for table %d_%d", tid, pid), err)
	}
	conn, err := s.conn(addr)
	if err != nil {
		return nil, err
	}
	return tabletpb.NewTabletServiceClient(conn), nil
}

// conn returns the pooled connection for addr, creating it on first use.
func (s *Stub) conn(addr string) (*grpc.ClientConn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, tkerrors.NewTransportError(tkerrors.CodeUnavailable, "stub is closed", ErrClosed)
	}
	if cc, ok := s.conns[addr]; ok {
		return cc, nil
	}
	cc, err := grpc.NewClient(addr, s.dialOpts...)
	if err != nil {
		return nil, tkerrors.NewTransportError(tkerrors.CodeUnavailable,
			fmt.Sprintf("failed to create client for %s", addr), err)
	}
	s.conns[addr] = cc
	return cc, nil
}

// classify maps a gRPC failure to the error taxonomy. A call that ran into
// its deadline is a timeout whatever status the transport reported.
func classify(ctx context.Context, method string, timeout time.Duration, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return tkerrors.NewTimeoutError(fmt.Sprintf("%s did not complete within %s", method, timeout), err)
	}

	st, ok := status.FromError(err)
	if !ok {
		return tkerrors.NewTransportError(tkerrors.CodeRemote, method+" failed", err)
	}
	switch st.Code() {
	case codes.DeadlineExceeded:
		return tkerrors.NewTimeoutError(method+" deadline exceeded", err)
	case codes.Canceled:
		return tkerrors.NewTransportError(tkerrors.CodeCanceled, method+" canceled", err)
	case codes.Unavailable:
		return tkerrors.NewTransportError(tkerrors.CodeUnavailable, method+" tablet unavailable", err)
	default:
		return tkerrors.NewTransportError(tkerrors.CodeRemote,
			fmt.Sprintf("%s failed: %s", method, st.Message()), err)
	}
}

// Close closes every pooled connection. Later calls fail with ErrClosed.
func (s *Stub) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var result *multierror.Error
	for addr, cc := range s.conns {
		if err := cc.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("close %s: %w", addr, err))
		}
		delete(s.conns, addr)
	}
	return result.ErrorOrNil()
}

// ConnCount returns the number of pooled connections.
func (s *Stub) ConnCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}
