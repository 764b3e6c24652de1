// Package config provides configuration for the tablet server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Engine names a table storage engine.
type Engine string

const (
	EngineMemory Engine = "memory"
	EngineSQLite Engine = "sqlite"
)

// Config holds the configuration for the tablet server and its clients.
type Config struct {
	// DataDir is the base directory for the catalog and table files
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// gRPC configuration
	GRPC GRPCConfig `json:"grpc" yaml:"grpc"`

	// HTTP admin configuration
	HTTP HTTPConfig `json:"http" yaml:"http"`

	// Tablet configuration
	Tablet TabletConfig `json:"tablet" yaml:"tablet"`

	// Storage configuration for snapshots
	Storage StorageConfig `json:"storage" yaml:"storage"`

	// Client configuration used by tablet-cli
	Client ClientConfig `json:"client" yaml:"client"`
}

// GRPCConfig holds gRPC server configuration.
type GRPCConfig struct {
	// Addr is the gRPC server address
	Addr string `json:"addr" yaml:"addr"`

	// MaxRecvMsgSizeMB bounds a single request message
	MaxRecvMsgSizeMB int `json:"max_recv_msg_size_mb" yaml:"max_recv_msg_size_mb"`
}

// HTTPConfig holds the admin HTTP server configuration.
type HTTPConfig struct {
	// AdminAddr serves /health, /metrics and /v1/tables. Empty disables it.
	AdminAddr string `json:"admin_addr" yaml:"admin_addr"`

	// ReadTimeout is the HTTP read timeout
	ReadTimeout time.Duration `json:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout is the HTTP write timeout
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`

	// IdleTimeout is the HTTP idle timeout
	IdleTimeout time.Duration `json:"idle_timeout" yaml:"idle_timeout"`
}

// TabletConfig holds tablet behavior.
type TabletConfig struct {
	// Engine is the table engine: memory or sqlite
	Engine Engine `json:"engine" yaml:"engine"`

	// ExpiryInterval is how often expired versions are removed
	ExpiryInterval time.Duration `json:"expiry_interval" yaml:"expiry_interval"`

	// ExpiryConcurrency bounds how many tables are swept at once
	ExpiryConcurrency int `json:"expiry_concurrency" yaml:"expiry_concurrency"`

	// CompressScan snappy-compresses scan buffers on the wire
	CompressScan bool `json:"compress_scan" yaml:"compress_scan"`

	// MaxScanEntries caps the versions returned by one scan
	MaxScanEntries int `json:"max_scan_entries" yaml:"max_scan_entries"`

	// Binlog logs writes to memory tables so they survive a restart
	Binlog bool `json:"binlog" yaml:"binlog"`

	// BinlogSegmentSizeMB is the size at which a binlog segment is rotated
	BinlogSegmentSizeMB int `json:"binlog_segment_size_mb" yaml:"binlog_segment_size_mb"`
}

// StorageConfig holds snapshot storage configuration.
type StorageConfig struct {
	// Type is the storage type: local, s3
	Type string `json:"type" yaml:"type"`

	// Path is the local storage path (for local type)
	Path string `json:"path" yaml:"path"`

	// S3 configuration (for s3 type)
	S3 S3Config `json:"s3" yaml:"s3"`
}

// S3Config holds S3 storage configuration.
type S3Config struct {
	// Bucket is the S3 bucket name
	Bucket string `json:"bucket" yaml:"bucket"`

	// Region is the AWS region
	Region string `json:"region" yaml:"region"`

	// Endpoint is the S3 endpoint (for S3-compatible storage)
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// UsePathStyle enables path-style addressing (MinIO)
	UsePathStyle bool `json:"use_path_style" yaml:"use_path_style"`
}

// ClientConfig holds client-side settings.
type ClientConfig struct {
	// Endpoints are the tablet addresses; more than one spreads tables by hash
	Endpoints []string `json:"endpoints" yaml:"endpoints"`

	// Timeout is the per-call deadline
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// ResolverCacheTTL is how long a resolved endpoint is reused
	ResolverCacheTTL time.Duration `json:"resolver_cache_ttl" yaml:"resolver_cache_ttl"`
}

// DefaultConfig returns the default configuration for local development.
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data/tabletkv",
		GRPC: GRPCConfig{
			Addr:             ":9527",
			MaxRecvMsgSizeMB: 16,
		},
		HTTP: HTTPConfig{
			AdminAddr:    ":8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Tablet: TabletConfig{
			Engine:              EngineMemory,
			ExpiryInterval:      time.Minute,
			ExpiryConcurrency:   4,
			CompressScan:        false,
			MaxScanEntries:      10000,
			Binlog:              true,
			BinlogSegmentSizeMB: 64,
		},
		Storage: StorageConfig{
			Type: "local",
			Path: "",
		},
		Client: ClientConfig{
			Endpoints:        []string{"127.0.0.1:9527"},
			Timeout:          5 * time.Second,
			ResolverCacheTTL: time.Minute,
		},
	}
}

// Resolve resolves relative paths and sets defaults based on DataDir.
func (c *Config) Resolve() {
	if c.DataDir == "" {
		c.DataDir = "./data/tabletkv"
	}
	if c.Storage.Path == "" {
		c.Storage.Path = filepath.Join(c.DataDir, "storage")
	}
}

// CatalogPath returns the path to the table catalog database.
func (c *Config) CatalogPath() string {
	return filepath.Join(c.DataDir, "catalog.db")
}

// TablesDir returns the directory holding sqlite table files.
func (c *Config) TablesDir() string {
	return filepath.Join(c.DataDir, "tables")
}

// BinlogDir returns the directory holding binlog segments.
func (c *Config) BinlogDir() string {
	return filepath.Join(c.DataDir, "binlog")
}

// WorkDir returns the scratch directory for snapshot files.
func (c *Config) WorkDir() string {
	return filepath.Join(c.DataDir, "work")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	switch c.Tablet.Engine {
	case EngineMemory, EngineSQLite:
	default:
		return fmt.Errorf("invalid tablet engine: %s (must be memory or sqlite)", c.Tablet.Engine)
	}

	if c.Tablet.ExpiryInterval <= 0 {
		return fmt.Errorf("tablet.expiry_interval must be > 0")
	}
	if c.Tablet.ExpiryConcurrency <= 0 {
		return fmt.Errorf("tablet.expiry_concurrency must be > 0, got %d", c.Tablet.ExpiryConcurrency)
	}
	if c.Tablet.MaxScanEntries <= 0 {
		return fmt.Errorf("tablet.max_scan_entries must be > 0, got %d", c.Tablet.MaxScanEntries)
	}
	if c.Tablet.Binlog && c.Tablet.BinlogSegmentSizeMB <= 0 {
		return fmt.Errorf("tablet.binlog_segment_size_mb must be > 0, got %d", c.Tablet.BinlogSegmentSizeMB)
	}

	if c.Storage.Type != "local" && c.Storage.Type != "s3" {
		return fmt.Errorf("invalid storage type: %s (must be local or s3)", c.Storage.Type)
	}
	if c.Storage.Type == "s3" && c.Storage.S3.Bucket == "" {
		return fmt.Errorf("s3.bucket is required when storage type is s3")
	}

	if c.GRPC.MaxRecvMsgSizeMB <= 0 {
		return fmt.Errorf("grpc.max_recv_msg_size_mb must be > 0, got %d", c.GRPC.MaxRecvMsgSizeMB)
	}
	if c.Client.Timeout <= 0 {
		return fmt.Errorf("client.timeout must be > 0")
	}

	return nil
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the TABLETKV_ prefix.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("TABLETKV_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}

	// gRPC configuration
	if v := os.Getenv("TABLETKV_GRPC_ADDR"); v != "" {
		cfg.GRPC.Addr = v
	}
	envInt("TABLETKV_GRPC_MAX_RECV_MSG_SIZE_MB", &cfg.GRPC.MaxRecvMsgSizeMB)

	// HTTP configuration
	if v, ok := os.LookupEnv("TABLETKV_HTTP_ADMIN_ADDR"); ok {
		cfg.HTTP.AdminAddr = v
	}

	// Tablet configuration
	if v := os.Getenv("TABLETKV_TABLET_ENGINE"); v != "" {
		cfg.Tablet.Engine = Engine(v)
	}
	envDuration("TABLETKV_TABLET_EXPIRY_INTERVAL", &cfg.Tablet.ExpiryInterval)
	envInt("TABLETKV_TABLET_EXPIRY_CONCURRENCY", &cfg.Tablet.ExpiryConcurrency)
	envInt("TABLETKV_TABLET_MAX_SCAN_ENTRIES", &cfg.Tablet.MaxScanEntries)
	if v := os.Getenv("TABLETKV_TABLET_COMPRESS_SCAN"); v != "" {
		cfg.Tablet.CompressScan = v == "true" || v == "1"
	}
	if v := os.Getenv("TABLETKV_TABLET_BINLOG"); v != "" {
		cfg.Tablet.Binlog = v == "true" || v == "1"
	}
	envInt("TABLETKV_TABLET_BINLOG_SEGMENT_SIZE_MB", &cfg.Tablet.BinlogSegmentSizeMB)

	// Storage configuration
	if v := os.Getenv("TABLETKV_STORAGE_TYPE"); v != "" {
		cfg.Storage.Type = v
	}
	if v := os.Getenv("TABLETKV_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("TABLETKV_S3_BUCKET"); v != "" {
		cfg.Storage.S3.Bucket = v
	}
	if v := os.Getenv("TABLETKV_S3_REGION"); v != "" {
		cfg.Storage.S3.Region = v
	}
	if v := os.Getenv("TABLETKV_S3_ENDPOINT"); v != "" {
		cfg.Storage.S3.Endpoint = v
	}

	// Client configuration
	if v := os.Getenv("TABLETKV_CLIENT_ENDPOINTS"); v != "" {
		cfg.Client.Endpoints = strings.Split(v, ",")
	}
	envDuration("TABLETKV_CLIENT_TIMEOUT", &cfg.Client.Timeout)
	envDuration("TABLETKV_CLIENT_RESOLVER_CACHE_TTL", &cfg.Client.ResolverCacheTTL)
}

func envInt(name string, dst *int) {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envDuration(name string, dst *time.Duration) {
	if v := os.Getenv(name); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

// EnsureDirectories creates all required directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.DataDir,
		c.TablesDir(),
		c.WorkDir(),
		c.BinlogDir(),
	}
	if c.Storage.Type == "local" {
		dirs = append(dirs, c.Storage.Path)
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
