// Package tablet is the reference tablet: it owns tables, stores their
// versions in an Engine, expires them by TTL and snapshots them to object
// storage.
package tablet

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/tabletkv/tabletkv/internal/config"
	"github.com/tabletkv/tabletkv/internal/storage"
	"github.com/tabletkv/tabletkv/internal/wal"
	"github.com/tabletkv/tabletkv/pkg/scanbuf"
	"github.com/tabletkv/tabletkv/pkg/types"
)

// Options configures a Tablet.
type Options struct {
	// Engine selects the table engine for new tables
	Engine config.Engine

	// TablesDir holds one SQLite file per table for the sqlite engine
	TablesDir string

	// WorkDir is scratch space for snapshot files
	WorkDir string

	// MaxScanEntries caps the versions returned by one scan
	MaxScanEntries int

	// Storage receives snapshots; nil disables MakeSnapshot and LoadTable
	Storage storage.ObjectStorage

	// Binlog, when set, logs every mutation of memory tables and is
	// replayed when the tablet opens. The caller closes it.
	Binlog *wal.WAL

	// Now returns the current time; defaults to time.Now
	Now func() time.Time
}

type table struct {
	spec      types.TableSpec
	engine    Engine
	kind      config.Engine
	createdAt time.Time
}

// Tablet serves the tables registered in its catalog.
type Tablet struct {
	opts    Options
	catalog *Catalog

	mu      sync.RWMutex
	tables  map[types.TableKey]*table
	pending map[types.TableKey]struct{} // keys being created, not yet visible
}

// New opens every table registered in catalog and returns the tablet.
func New(ctx context.Context, catalog *Catalog, opts Options) (*Tablet, error) {
	if opts.Engine == "" {
		opts.Engine = config.EngineMemory
	}
	if opts.MaxScanEntries <= 0 {
		opts.MaxScanEntries = 10000
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	t := &Tablet{
		opts:    opts,
		catalog: catalog,
		tables:  make(map[types.TableKey]*table),
		pending: make(map[types.TableKey]struct{}),
	}

	entries, err := catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		engine, err := t.openEngine(e.Spec.Key(), e.Engine)
		if err != nil {
			t.Close()
			return nil, err
		}
		t.tables[e.Spec.Key()] = &table{spec: e.Spec, engine: engine, kind: e.Engine, createdAt: e.CreatedAt}
	}
	if len(entries) > 0 {
		log.Printf("tablet: reopened %d tables", len(entries))
	}

	if t.opts.Binlog != nil {
		if _, err := t.replayBinlog(); err != nil {
			t.Close()
			return nil, err
		}
		for key, tbl := range t.tables {
			tbl.engine = t.logged(key, tbl.kind, tbl.engine)
		}
	}
	return t, nil
}

func (t *Tablet) openEngine(key types.TableKey, kind config.Engine) (Engine, error) {
	switch kind {
	case config.EngineMemory:
		return NewMemoryEngine(), nil
	case config.EngineSQLite:
		if err := os.MkdirAll(t.opts.TablesDir, 0755); err != nil {
			return nil, fmt.Errorf("tablet: failed to create tables dir: %w", err)
		}
		return OpenSQLiteEngine(filepath.Join(t.opts.TablesDir, key.String()+".db"))
	default:
		return nil, fmt.Errorf("tablet: unknown engine %q", kind)
	}
}

// CreateTable registers a table. It fails with a validation error for a bad
// spec and with ErrTableExists when (tid, pid) is taken; neither changes state.
func (t *Tablet) CreateTable(ctx context.Context, spec types.TableSpec) error {
	if err := spec.Validate(); err != nil {
		return invalidArgument("invalid table spec", err)
	}
	return t.createTable(ctx, spec, t.opts.Now(), nil)
}

// createTable opens an engine for spec, runs fill on it when set and then
// registers the table. Only the key reservation and the final publish hold
// the tablet lock, so a slow fill does not stall other tables. The table is
// invisible until it is published; a second create of the same key fails
// with ErrTableExists meanwhile.
func (t *Tablet) createTable(ctx context.Context, spec types.TableSpec, createdAt time.Time, fill func(Engine) error) error {
	key := spec.Key()
	if err := t.reserve(key); err != nil {
		return err
	}
	defer t.release(key)

	kind := t.opts.Engine
	engine, err := t.openEngine(key, kind)
	if err != nil {
		return err
	}
	if err := t.logCreate(key, kind); err != nil {
		_ = engine.Destroy()
		return err
	}
	engine = t.logged(key, kind, engine)
	if fill != nil {
		if err := fill(engine); err != nil {
			_ = engine.Destroy()
			return err
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.catalog.Register(ctx, CatalogEntry{Spec: spec, Engine: kind, CreatedAt: createdAt}); err != nil {
		_ = engine.Destroy()
		return err
	}
	t.tables[key] = &table{spec: spec, engine: engine, kind: kind, createdAt: createdAt}
	log.Printf("tablet: created table %s name=%s ttl=%d seg_cnt=%d", key, spec.Name, spec.TTL, spec.SegCnt)
	return nil
}

// reserve claims key for a create in progress.
func (t *Tablet) reserve(key types.TableKey) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.tables[key]; ok {
		return ErrTableExists
	}
	if _, ok := t.pending[key]; ok {
		return ErrTableExists
	}
	t.pending[key] = struct{}{}
	return nil
}

func (t *Tablet) release(key types.TableKey) {
	t.mu.Lock()
	delete(t.pending, key)
	t.mu.Unlock()
}

// DropTable removes a table and its data, or returns ErrTableNotFound.
func (t *Tablet) DropTable(ctx context.Context, key types.TableKey) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	tbl, ok := t.tables[key]
	if !ok {
		return ErrTableNotFound
	}
	if _, err := t.catalog.Unregister(ctx, key); err != nil {
		return err
	}
	delete(t.tables, key)

	if err := tbl.engine.Destroy(); err != nil {
		log.Printf("tablet: failed to remove data of table %s: %v", key, err)
	}
	log.Printf("tablet: dropped table %s", key)
	return nil
}

// Put appends a version to a table.
func (t *Tablet) Put(_ context.Context, rec types.Record) error {
	if rec.Key == "" {
		return invalidArgument("key is required", nil)
	}
	tbl, err := t.table(types.TableKey{TID: rec.TID, PID: rec.PID})
	if err != nil {
		return err
	}
	return tbl.engine.Put(rec.Key, rec.Timestamp, rec.Value)
}

// Get returns the newest live version of key, or ErrKeyNotFound.
func (t *Tablet) Get(_ context.Context, key types.TableKey, pk string) (types.Record, error) {
	tbl, err := t.table(key)
	if err != nil {
		return types.Record{}, err
	}
	v, found, err := tbl.engine.Latest(pk, t.cutoff(tbl.spec))
	return tbl.record(key, pk, v, found, err)
}

// GetAt returns the version of key stored at exactly ts. Any timestamp is
// valid, 0 included. A version older than the table's TTL is not found.
func (t *Tablet) GetAt(_ context.Context, key types.TableKey, pk string, ts int64) (types.Record, error) {
	tbl, err := t.table(key)
	if err != nil {
		return types.Record{}, err
	}
	var (
		v     Version
		found bool
	)
	if ts >= t.cutoff(tbl.spec) {
		v, found, err = tbl.engine.At(pk, ts)
	}
	return tbl.record(key, pk, v, found, err)
}

func (tbl *table) record(key types.TableKey, pk string, v Version, found bool, err error) (types.Record, error) {
	if err != nil {
		return types.Record{}, err
	}
	if !found {
		return types.Record{}, ErrKeyNotFound
	}
	return types.Record{TID: key.TID, PID: key.PID, Key: pk, Timestamp: v.Timestamp, Value: v.Value}, nil
}

// Scan encodes the live versions of rng.Key within [rng.End, rng.Start],
// newest first, into a scan buffer. At most MaxScanEntries versions are
// returned, fewer when rng.Limit is smaller. truncated is set when the cap
// cut off versions the caller's limit would have allowed.
func (t *Tablet) Scan(_ context.Context, key types.TableKey, rng types.ScanRange) (enc *scanbuf.Encoder, truncated bool, err error) {
	if err := rng.Validate(); err != nil {
		return nil, false, invalidArgument("invalid scan range", err)
	}
	tbl, err := t.table(key)
	if err != nil {
		return nil, false, err
	}

	limit := t.opts.MaxScanEntries
	capped := rng.Limit == 0 || int64(rng.Limit) > int64(limit)
	if !capped {
		limit = int(rng.Limit)
	}
	fetch := limit
	if capped {
		// one extra version tells a full page from a clipped one
		fetch++
	}
	end := rng.End
	if cutoff := t.cutoff(tbl.spec); cutoff > end {
		end = cutoff
	}

	enc = scanbuf.NewEncoder(0)
	if end > rng.Start {
		return enc, false, nil
	}
	err = tbl.engine.Scan(rng.Key, rng.Start, end, fetch, func(ts int64, value []byte) bool {
		if enc.Count() == limit {
			truncated = true
			return false
		}
		enc.Append(ts, value)
		return true
	})
	if err != nil {
		return nil, false, err
	}
	return enc, truncated, nil
}

// Status returns the tablet's view of a table.
func (t *Tablet) Status(_ context.Context, key types.TableKey) (types.TableStatus, error) {
	tbl, err := t.table(key)
	if err != nil {
		return types.TableStatus{}, err
	}
	return tbl.status()
}

// Tables returns the status of every table ordered by (tid, pid).
func (t *Tablet) Tables(_ context.Context) ([]types.TableStatus, error) {
	t.mu.RLock()
	tables := make([]*table, 0, len(t.tables))
	for _, tbl := range t.tables {
		tables = append(tables, tbl)
	}
	t.mu.RUnlock()

	sort.Slice(tables, func(i, j int) bool {
		a, b := tables[i].spec, tables[j].spec
		if a.TID != b.TID {
			return a.TID < b.TID
		}
		return a.PID < b.PID
	})

	out := make([]types.TableStatus, 0, len(tables))
	for _, tbl := range tables {
		st, err := tbl.status()
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

// Close closes every engine and the catalog.
func (t *Tablet) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var firstErr error
	for key, tbl := range t.tables {
		if err := tbl.engine.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("tablet: failed to close table %s: %w", key, err)
		}
	}
	t.tables = make(map[types.TableKey]*table)
	if err := t.catalog.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func (t *Tablet) table(key types.TableKey) (*table, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	tbl, ok := t.tables[key]
	if !ok {
		return nil, ErrTableNotFound
	}
	return tbl, nil
}

// cutoff is the oldest live timestamp of a table; TTL 0 keeps everything.
func (t *Tablet) cutoff(spec types.TableSpec) int64 {
	if spec.TTL == 0 {
		return math.MinInt64
	}
	return t.opts.Now().UnixMilli() - spec.TTLMillis()
}

func (tbl *table) status() (types.TableStatus, error) {
	n, err := tbl.engine.Count()
	if err != nil {
		return types.TableStatus{}, err
	}
	return types.TableStatus{
		TableSpec:   tbl.spec,
		RecordCount: n,
		Engine:      string(tbl.kind),
		CreatedAt:   tbl.createdAt.UnixMilli(),
	}, nil
}

// ExpireTable deletes the versions of a table that are older than its TTL.
// Tables without a TTL are left alone.
func (t *Tablet) ExpireTable(_ context.Context, key types.TableKey) (int, error) {
	tbl, err := t.table(key)
	if err != nil {
		return 0, err
	}
	if tbl.spec.TTL == 0 {
		return 0, nil
	}
	return tbl.engine.Expire(t.cutoff(tbl.spec))
}

// expiringTables returns the keys of tables with a TTL.
func (t *Tablet) expiringTables() []types.TableKey {
	t.mu.RLock()
	defer t.mu.RUnlock()

	keys := make([]types.TableKey, 0, len(t.tables))
	for key, tbl := range t.tables {
		if tbl.spec.TTL > 0 {
			keys = append(keys, key)
		}
	}
	return keys
}
