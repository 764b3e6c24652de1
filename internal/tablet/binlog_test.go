package tablet

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabletkv/tabletkv/internal/config"
	"github.com/tabletkv/tabletkv/internal/wal"
	"github.com/tabletkv/tabletkv/pkg/types"
)

// openLogged opens a memory tablet with a binlog in dir. shutdown closes both
// down so the same dir can be opened again.
func openLogged(t *testing.T, dir string, now time.Time) (tb *Tablet, shutdown func()) {
	t.Helper()

	binlog, err := wal.NewWAL(filepath.Join(dir, "binlog"), 0)
	require.NoError(t, err)
	catalog, err := OpenCatalog(filepath.Join(dir, "catalog.db"))
	require.NoError(t, err)

	tb, err = New(context.Background(), catalog, Options{
		Engine: config.EngineMemory,
		Binlog: binlog,
		Now:    func() time.Time { return now },
	})
	require.NoError(t, err)

	closed := false
	shutdown = func() {
		if closed {
			return
		}
		closed = true
		assert.NoError(t, tb.Close())
		assert.NoError(t, binlog.Close())
	}
	t.Cleanup(shutdown)
	return tb, shutdown
}

func TestBinlog_RebuildsMemoryTables(t *testing.T) {
	dir := t.TempDir()
	now := time.UnixMilli(1_700_000_000_000)
	ctx := context.Background()

	tb, closeTablet := openLogged(t, dir, now)
	require.NoError(t, tb.CreateTable(ctx, spec(1, 0)))
	require.NoError(t, tb.Put(ctx, record(1, "test1", 9527, "test0")))
	require.NoError(t, tb.Put(ctx, record(1, "test1", 9528, "test1")))

	// Table 2 is dropped and recreated; only the second life survives.
	require.NoError(t, tb.CreateTable(ctx, spec(2, 0)))
	require.NoError(t, tb.Put(ctx, record(2, "old", 1, "gone")))
	require.NoError(t, tb.DropTable(ctx, types.TableKey{TID: 2}))
	require.NoError(t, tb.CreateTable(ctx, spec(2, 0)))
	require.NoError(t, tb.Put(ctx, record(2, "new", 2, "kept")))

	// Table 3 is dropped for good.
	require.NoError(t, tb.CreateTable(ctx, spec(3, 0)))
	require.NoError(t, tb.Put(ctx, record(3, "k", 1, "v")))
	require.NoError(t, tb.DropTable(ctx, types.TableKey{TID: 3}))
	closeTablet()

	tb, _ = openLogged(t, dir, now)

	rec, err := tb.Get(ctx, types.TableKey{TID: 1}, "test1")
	require.NoError(t, err)
	assert.Equal(t, int64(9528), rec.Timestamp)
	assert.Equal(t, "test1", string(rec.Value))

	st, err := tb.Status(ctx, types.TableKey{TID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.RecordCount)

	_, err = tb.Get(ctx, types.TableKey{TID: 2}, "old")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	rec, err = tb.Get(ctx, types.TableKey{TID: 2}, "new")
	require.NoError(t, err)
	assert.Equal(t, "kept", string(rec.Value))

	_, err = tb.Status(ctx, types.TableKey{TID: 3})
	assert.ErrorIs(t, err, ErrTableNotFound)

	// Writes after a replay keep going to the binlog.
	require.NoError(t, tb.Put(ctx, record(1, "test1", 9529, "test2")))
	st, err = tb.Status(ctx, types.TableKey{TID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), st.RecordCount)
}

func TestBinlog_ReplaysExpiry(t *testing.T) {
	dir := t.TempDir()
	now := time.UnixMilli(1_700_000_000_000)
	ctx := context.Background()
	key := types.TableKey{TID: 1}

	tb, closeTablet := openLogged(t, dir, now)
	require.NoError(t, tb.CreateTable(ctx, spec(1, 1)))
	require.NoError(t, tb.Put(ctx, record(1, "test1", now.UnixMilli()-120_000, "expired")))
	require.NoError(t, tb.Put(ctx, record(1, "test1", now.UnixMilli(), "live")))

	n, err := tb.ExpireTable(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	closeTablet()

	tb, _ = openLogged(t, dir, now)
	st, err := tb.Status(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.RecordCount)
}

func TestBinlog_LoadTableIsLogged(t *testing.T) {
	dir := t.TempDir()
	now := time.UnixMilli(1_700_000_000_000)
	ctx := context.Background()
	key := types.TableKey{TID: 1}

	tt := newTestTablet(t, config.EngineMemory)
	require.NoError(t, tt.CreateTable(ctx, spec(1, 0)))
	require.NoError(t, tt.Put(ctx, record(1, "test1", 9527, "test0")))
	_, err := tt.MakeSnapshot(ctx, key)
	require.NoError(t, err)

	binlog, err := wal.NewWAL(filepath.Join(dir, "binlog"), 0)
	require.NoError(t, err)
	catalog, err := OpenCatalog(filepath.Join(dir, "catalog.db"))
	require.NoError(t, err)
	tb, err := New(ctx, catalog, Options{
		Engine:  config.EngineMemory,
		WorkDir: filepath.Join(dir, "work"),
		Storage: tt.store,
		Binlog:  binlog,
		Now:     func() time.Time { return now },
	})
	require.NoError(t, err)
	require.NoError(t, tb.LoadTable(ctx, key))
	require.NoError(t, tb.Close())
	require.NoError(t, binlog.Close())

	tb, _ = openLogged(t, dir, now)
	rec, err := tb.Get(ctx, key, "test1")
	require.NoError(t, err)
	assert.Equal(t, "test0", string(rec.Value))
}
