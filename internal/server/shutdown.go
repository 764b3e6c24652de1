// Package server coordinates graceful shutdown of the tablet server.
package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"google.golang.org/grpc"
)

// ShutdownConfig holds configuration for the shutdown manager.
type ShutdownConfig struct {
	// ShutdownTimeout bounds the whole shutdown. Default: 30 seconds
	ShutdownTimeout time.Duration

	// DrainTimeout bounds the wait for in-flight requests. Default: 15 seconds
	DrainTimeout time.Duration
}

// DefaultShutdownConfig returns the default shutdown configuration.
func DefaultShutdownConfig() ShutdownConfig {
	return ShutdownConfig{
		ShutdownTimeout: 30 * time.Second,
		DrainTimeout:    15 * time.Second,
	}
}

type resource struct {
	name   string
	closer io.Closer
}

// ShutdownManager gates new requests, waits for in-flight ones and then
// closes registered resources, last registered first.
type ShutdownManager struct {
	cfg ShutdownConfig

	mu        sync.Mutex
	resources []resource
	hooks     []func()
	inFlight  int64
	idle      chan struct{} // closed when inFlight reaches zero during shutdown

	stopping atomic.Bool
	done     chan struct{}
	once     sync.Once
}

// NewShutdownManager creates a manager. Zero timeouts take the defaults.
func NewShutdownManager(cfg ShutdownConfig) *ShutdownManager {
	def := DefaultShutdownConfig()
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = def.ShutdownTimeout
	}
	if cfg.DrainTimeout <= 0 {
		cfg.DrainTimeout = def.DrainTimeout
	}
	return &ShutdownManager{cfg: cfg, done: make(chan struct{})}
}

// Register adds a resource closed during shutdown. name shows up in logs
// and close errors.
func (sm *ShutdownManager) Register(name string, c io.Closer) {
	sm.mu.Lock()
	sm.resources = append(sm.resources, resource{name: name, closer: c})
	sm.mu.Unlock()
}

// OnShutdown registers fn to run as soon as shutdown begins, before draining.
func (sm *ShutdownManager) OnShutdown(fn func()) {
	sm.mu.Lock()
	sm.hooks = append(sm.hooks, fn)
	sm.mu.Unlock()
}

// ListenForSignals blocks until SIGTERM or SIGINT arrives, ctx is done or
// Shutdown is called elsewhere, then shuts down.
func (sm *ShutdownManager) ListenForSignals(ctx context.Context) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		return sm.Shutdown(context.Background(), "signal "+sig.String())
	case <-ctx.Done():
		return sm.Shutdown(context.Background(), "context done")
	case <-sm.done:
		return nil
	}
}

// Shutdown runs once: it rejects new requests, waits for in-flight ones and
// closes every resource. Drain and close failures are returned together.
// Later calls return nil immediately.
func (sm *ShutdownManager) Shutdown(ctx context.Context, reason string) error {
	var errs *multierror.Error
	sm.once.Do(func() {
		log.Printf("server: shutting down (%s)", reason)

		sm.mu.Lock()
		sm.stopping.Store(true)
		close(sm.done)
		hooks := sm.hooks
		var idle chan struct{}
		if sm.inFlight > 0 {
			sm.idle = make(chan struct{})
			idle = sm.idle
		}
		sm.mu.Unlock()

		for _, fn := range hooks {
			fn()
		}

		ctx, cancel := context.WithTimeout(ctx, sm.cfg.ShutdownTimeout)
		defer cancel()

		if idle != nil {
			if err := sm.drain(ctx, idle); err != nil {
				errs = multierror.Append(errs, err)
			}
		}

		sm.mu.Lock()
		resources := sm.resources
		sm.mu.Unlock()
		for i := len(resources) - 1; i >= 0; i-- {
			r := resources[i]
			if err := r.closer.Close(); err != nil {
				log.Printf("server: failed to close %s: %v", r.name, err)
				errs = multierror.Append(errs, fmt.Errorf("close %s: %w", r.name, err))
			}
		}
		log.Printf("server: shutdown complete")
	})
	return errs.ErrorOrNil()
}

func (sm *ShutdownManager) drain(ctx context.Context, idle <-chan struct{}) error {
	timer := time.NewTimer(sm.cfg.DrainTimeout)
	defer timer.Stop()

	select {
	case <-idle:
		return nil
	case <-timer.C:
	case <-ctx.Done():
	}
	if n := sm.InFlightCount(); n > 0 {
		return fmt.Errorf("timeout waiting for %d in-flight requests", n)
	}
	return nil
}

// TrackRequest counts a request as in flight. It returns false once
// shutdown has begun; the caller must then reject the request.
func (sm *ShutdownManager) TrackRequest() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.stopping.Load() {
		return false
	}
	sm.inFlight++
	return true
}

// UntrackRequest ends a request admitted by TrackRequest.
func (sm *ShutdownManager) UntrackRequest() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.inFlight--
	if sm.inFlight == 0 && sm.idle != nil {
		close(sm.idle)
		sm.idle = nil
	}
}

func (sm *ShutdownManager) IsShuttingDown() bool {
	return sm.stopping.Load()
}

func (sm *ShutdownManager) InFlightCount() int64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.inFlight
}

// Done is closed when shutdown begins.
func (sm *ShutdownManager) Done() <-chan struct{} {
	return sm.done
}

// HTTPServerCloser shuts an http.Server down, waiting up to timeout for
// open connections.
func HTTPServerCloser(srv *http.Server, timeout time.Duration) io.Closer {
	return CloserFunc(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return srv.Shutdown(ctx)
	})
}

// GRPCServerCloser stops a gRPC server, waiting up to timeout for running
// calls before forcing it.
func GRPCServerCloser(srv *grpc.Server, timeout time.Duration) io.Closer {
	return CloserFunc(func() error {
		done := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(timeout):
			log.Printf("server: grpc graceful stop exceeded %v, forcing", timeout)
			srv.Stop()
		}
		return nil
	})
}

// CloserFunc adapts a function to io.Closer.
type CloserFunc func() error

func (f CloserFunc) Close() error {
	return f()
}
