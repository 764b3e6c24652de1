// Package app wires the tablet server: catalog, tablet, expirer, gRPC
// service and admin HTTP server.
package app

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"google.golang.org/grpc"

	"github.com/tabletkv/tabletkv/api/tabletpb"
	grpcapi "github.com/tabletkv/tabletkv/internal/api/grpc"
	httpapi "github.com/tabletkv/tabletkv/internal/api/http"
	"github.com/tabletkv/tabletkv/internal/config"
	"github.com/tabletkv/tabletkv/internal/server"
	"github.com/tabletkv/tabletkv/internal/storage"
	"github.com/tabletkv/tabletkv/internal/tablet"
	"github.com/tabletkv/tabletkv/internal/wal"
	"github.com/tabletkv/tabletkv/pkg/observability"
)

// App manages the tablet server lifecycle.
type App struct {
	cfg *config.Config

	// Shared resources
	storage  storage.ObjectStorage
	catalog  *tablet.Catalog
	binlog   *wal.WAL
	tablet   *tablet.Tablet
	shutdown *server.ShutdownManager
	stats    *observability.CallStats

	// Service components
	grpcServer   *grpc.Server
	grpcListener net.Listener
	adminServer  *http.Server
	adminAddr    string
	expirer      *tablet.Expirer

	// Lifecycle
	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a new App with the given configuration.
func New(cfg *config.Config) (*App, error) {
	cfg.Resolve()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}
	return &App{cfg: cfg}, nil
}

// Start opens the tablet and starts serving.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return fmt.Errorf("app is already running")
	}
	a.running = true
	a.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	if err := a.initSharedResources(ctx); err != nil {
		a.cleanup()
		return fmt.Errorf("failed to initialize shared resources: %w", err)
	}
	if err := a.startGRPC(); err != nil {
		a.cleanup()
		return fmt.Errorf("failed to start gRPC service: %w", err)
	}
	if a.cfg.HTTP.AdminAddr != "" {
		if err := a.startAdmin(); err != nil {
			a.cleanup()
			return fmt.Errorf("failed to start admin service: %w", err)
		}
	}

	a.expirer = tablet.NewExpirer(a.tablet, a.cfg.Tablet.ExpiryInterval, a.cfg.Tablet.ExpiryConcurrency)
	if err := a.expirer.Start(ctx); err != nil {
		a.cleanup()
		return fmt.Errorf("failed to start expirer: %w", err)
	}
	a.shutdown.Register("expirer", server.CloserFunc(a.expirer.Stop))

	log.Printf("tabletkv started: engine=%s grpc=%s", a.cfg.Tablet.Engine, a.GRPCAddr())
	return nil
}

// initSharedResources opens storage, the catalog and the tablet. Closers
// are registered first so they run last.
func (a *App) initSharedResources(ctx context.Context) error {
	var err error

	a.shutdown = server.NewShutdownManager(server.DefaultShutdownConfig())
	a.stats = observability.NewCallStats("server", 10*time.Minute)

	a.storage, err = storage.Open(ctx, a.cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Printf("Storage initialized: type=%s", a.cfg.Storage.Type)
	if a.cfg.Storage.Type == "s3" {
		log.Printf("S3 Config: Bucket=%s, Region=%s, Endpoint=%s",
			a.cfg.Storage.S3.Bucket, a.cfg.Storage.S3.Region, a.cfg.Storage.S3.Endpoint)
	}

	a.catalog, err = tablet.OpenCatalog(a.cfg.CatalogPath())
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	a.shutdown.Register("catalog", a.catalog)
	log.Printf("Table catalog initialized: %s", a.cfg.CatalogPath())

	if a.cfg.Tablet.Binlog {
		a.binlog, err = wal.NewWAL(a.cfg.BinlogDir(), int64(a.cfg.Tablet.BinlogSegmentSizeMB)*1024*1024)
		if err != nil {
			return fmt.Errorf("failed to open binlog: %w", err)
		}
		a.shutdown.Register("binlog", a.binlog)
		log.Printf("Binlog initialized: %s lsn=%d", a.cfg.BinlogDir(), a.binlog.CurrentLSN())
	}

	a.tablet, err = tablet.New(ctx, a.catalog, tablet.Options{
		Engine:         a.cfg.Tablet.Engine,
		TablesDir:      a.cfg.TablesDir(),
		WorkDir:        a.cfg.WorkDir(),
		MaxScanEntries: a.cfg.Tablet.MaxScanEntries,
		Storage:        a.storage,
		Binlog:         a.binlog,
	})
	if err != nil {
		return fmt.Errorf("failed to open tablet: %w", err)
	}
	a.shutdown.Register("tablet", a.tablet)
	return nil
}

func (a *App) startGRPC() error {
	a.grpcServer = grpc.NewServer(
		grpc.UnaryInterceptor(grpcapi.UnaryInterceptor(a.shutdown, a.stats)),
		grpc.MaxRecvMsgSize(a.cfg.GRPC.MaxRecvMsgSizeMB*1024*1024),
	)
	tabletpb.RegisterTabletServiceServer(a.grpcServer, grpcapi.NewTabletServer(a.tablet, a.cfg.Tablet.CompressScan))

	var err error
	a.grpcListener, err = net.Listen("tcp", a.cfg.GRPC.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC address: %w", err)
	}
	a.shutdown.Register("grpc", server.GRPCServerCloser(a.grpcServer, 10*time.Second))

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		log.Printf("gRPC server listening on %s", a.grpcListener.Addr())
		if err := a.grpcServer.Serve(a.grpcListener); err != nil {
			log.Printf("gRPC server error: %v", err)
		}
	}()
	return nil
}

func (a *App) startAdmin() error {
	lis, err := net.Listen("tcp", a.cfg.HTTP.AdminAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on admin address: %w", err)
	}
	a.adminAddr = lis.Addr().String()

	a.adminServer = &http.Server{
		Handler:      httpapi.NewAdminHandler(a.tablet, a.shutdown, a.stats),
		ReadTimeout:  a.cfg.HTTP.ReadTimeout,
		WriteTimeout: a.cfg.HTTP.WriteTimeout,
		IdleTimeout:  a.cfg.HTTP.IdleTimeout,
	}
	a.shutdown.Register("admin", server.HTTPServerCloser(a.adminServer, 10*time.Second))

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		log.Printf("Admin HTTP server listening on %s", a.adminAddr)
		if err := a.adminServer.Serve(lis); err != nil && err != http.ErrServerClosed {
			log.Printf("Admin HTTP server error: %v", err)
		}
	}()
	return nil
}

// GRPCAddr returns the address the gRPC server is bound to.
func (a *App) GRPCAddr() string {
	if a.grpcListener == nil {
		return a.cfg.GRPC.Addr
	}
	return a.grpcListener.Addr().String()
}

// AdminAddr returns the address the admin server is bound to, or "" when
// it is disabled.
func (a *App) AdminAddr() string {
	return a.adminAddr
}

// Shutdown returns the shutdown manager, for signal handling.
func (a *App) Shutdown() *server.ShutdownManager {
	return a.shutdown
}

// Stop drains in-flight calls and closes every service.
func (a *App) Stop(ctx context.Context) error {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return nil
	}
	a.running = false
	a.mu.Unlock()

	log.Printf("Initiating graceful shutdown...")

	if a.cancel != nil {
		a.cancel()
	}

	err := a.shutdown.Shutdown(ctx, "stop requested")

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Printf("Shutdown timeout, some goroutines may not have finished")
	}

	a.cleanup()
	log.Printf("tabletkv stopped")
	return err
}

// cleanup releases whatever Start opened through the shutdown manager. It
// is a no-op after Stop.
func (a *App) cleanup() {
	a.mu.Lock()
	a.running = false
	a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
	}
	if a.shutdown == nil {
		return
	}
	if err := a.shutdown.Shutdown(context.Background(), "cleanup"); err != nil {
		log.Printf("cleanup: %v", err)
	}
}
