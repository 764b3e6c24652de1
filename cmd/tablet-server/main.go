// Package main implements the tablet server binary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/tabletkv/tabletkv/internal/app"
	"github.com/tabletkv/tabletkv/internal/config"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	var (
		configFile  string
		envFile     string
		dataDir     string
		grpcAddr    string
		adminAddr   string
		engine      string
		showVersion bool
		showHelp    bool
	)

	flag.StringVar(&configFile, "config", "", "Path to configuration file (YAML or JSON)")
	flag.StringVar(&envFile, "env-file", ".env", "Path to a .env file; missing files are ignored")
	flag.StringVar(&dataDir, "data-dir", "", "Base directory for the catalog and table files")
	flag.StringVar(&grpcAddr, "grpc-addr", "", "gRPC server address")
	flag.StringVar(&adminAddr, "admin-addr", "", "Admin HTTP address (health, metrics, tables)")
	flag.StringVar(&engine, "engine", "", "Table engine: memory or sqlite")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showHelp, "help", false, "Show help message")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "tablet-server - multi-version key-value tablet\n\n")
		fmt.Fprintf(os.Stderr, "Usage: tablet-server [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  TABLETKV_DATA_DIR         Base directory for data files\n")
		fmt.Fprintf(os.Stderr, "  TABLETKV_GRPC_ADDR        gRPC server address\n")
		fmt.Fprintf(os.Stderr, "  TABLETKV_HTTP_ADMIN_ADDR  Admin HTTP address (empty disables)\n")
		fmt.Fprintf(os.Stderr, "  TABLETKV_TABLET_ENGINE    Table engine (memory, sqlite)\n")
		fmt.Fprintf(os.Stderr, "  TABLETKV_STORAGE_TYPE     Snapshot storage type (local, s3)\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if showVersion {
		fmt.Printf("tablet-server version %s (commit: %s)\n", version, commit)
		os.Exit(0)
	}

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Failed to load %s: %v", envFile, err)
	}

	cfg, err := loadConfig(configFile, dataDir, grpcAddr, adminAddr, engine)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Configuration:")
	log.Printf("  Data Dir: %s", cfg.DataDir)
	log.Printf("  Engine:   %s", cfg.Tablet.Engine)
	log.Printf("  Storage:  %s", cfg.Storage.Type)
	log.Printf("  gRPC:     %s", cfg.GRPC.Addr)
	if cfg.HTTP.AdminAddr != "" {
		log.Printf("  Admin:    %s", cfg.HTTP.AdminAddr)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := application.Start(ctx); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	// Blocks until SIGTERM/SIGINT, then drains calls and closes services.
	if err := application.Shutdown().ListenForSignals(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	if err := application.Stop(context.Background()); err != nil {
		log.Printf("Shutdown error: %v", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration from file, environment, and command line flags.
func loadConfig(configFile, dataDir, grpcAddr, adminAddr, engine string) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if configFile != "" {
		cfg, err = config.LoadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		cfg = config.DefaultConfig()
	}

	config.LoadFromEnv(cfg)

	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if grpcAddr != "" {
		cfg.GRPC.Addr = grpcAddr
	}
	if adminAddr != "" {
		cfg.HTTP.AdminAddr = adminAddr
	}
	if engine != "" {
		cfg.Tablet.Engine = config.Engine(engine)
	}

	return cfg, nil
}
