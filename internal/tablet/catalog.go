package tablet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/tabletkv/tabletkv/internal/config"
	"github.com/tabletkv/tabletkv/pkg/types"
)

const catalogSchema = `
CREATE TABLE IF NOT EXISTS tables (
	tid        INTEGER NOT NULL,
	pid        INTEGER NOT NULL,
	name       TEXT    NOT NULL,
	ttl        INTEGER NOT NULL,
	seg_cnt    INTEGER NOT NULL,
	engine     TEXT    NOT NULL,
	created_at INTEGER NOT NULL,
	PRIMARY KEY (tid, pid)
)`

// CatalogEntry is one registered table.
type CatalogEntry struct {
	Spec      types.TableSpec
	Engine    config.Engine
	CreatedAt time.Time
}

// Catalog persists table specs in catalog.db so tables survive a restart.
type Catalog struct {
	db *sql.DB
	mu sync.Mutex // single writer
}

// OpenCatalog opens or creates the catalog database at dbPath.
func OpenCatalog(dbPath string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(catalogSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: failed to initialize schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Register inserts a table. It returns ErrTableExists when (tid, pid) is
// already registered.
func (c *Catalog) Register(ctx context.Context, e CatalogEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.ExecContext(ctx,
		"INSERT INTO tables (tid, pid, name, ttl, seg_cnt, engine, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		e.Spec.TID, e.Spec.PID, e.Spec.Name, e.Spec.TTL, e.Spec.SegCnt, string(e.Engine), e.CreatedAt.UnixMilli(),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return ErrTableExists
		}
		return fmt.Errorf("catalog: failed to register table %s: %w", e.Spec.Key(), err)
	}
	return nil
}

// Unregister removes a table and reports whether it was present.
func (c *Catalog) Unregister(ctx context.Context, key types.TableKey) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, err := c.db.ExecContext(ctx, "DELETE FROM tables WHERE tid = ? AND pid = ?", key.TID, key.PID)
	if err != nil {
		return false, fmt.Errorf("catalog: failed to unregister table %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("catalog: failed to unregister table %s: %w", key, err)
	}
	return n > 0, nil
}

// Get returns one entry or ErrTableNotFound.
func (c *Catalog) Get(ctx context.Context, key types.TableKey) (CatalogEntry, error) {
	row := c.db.QueryRowContext(ctx,
		"SELECT tid, pid, name, ttl, seg_cnt, engine, created_at FROM tables WHERE tid = ? AND pid = ?",
		key.TID, key.PID)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return CatalogEntry{}, ErrTableNotFound
	}
	return e, err
}

// List returns every registered table ordered by (tid, pid).
func (c *Catalog) List(ctx context.Context) ([]CatalogEntry, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT tid, pid, name, ttl, seg_cnt, engine, created_at FROM tables ORDER BY tid, pid")
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to list tables: %w", err)
	}
	defer rows.Close()

	var entries []CatalogEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the catalog database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(r rowScanner) (CatalogEntry, error) {
	var (
		e         CatalogEntry
		engine    string
		createdAt int64
	)
	if err := r.Scan(&e.Spec.TID, &e.Spec.PID, &e.Spec.Name, &e.Spec.TTL, &e.Spec.SegCnt, &engine, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CatalogEntry{}, err
		}
		return CatalogEntry{}, fmt.Errorf("catalog: failed to scan table row: %w", err)
	}
	e.Engine = config.Engine(engine)
	e.CreatedAt = time.UnixMilli(createdAt)
	return e, nil
}
