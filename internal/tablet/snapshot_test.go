package tablet

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang/snappy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabletkv/tabletkv/internal/config"
	"github.com/tabletkv/tabletkv/internal/storage"
	"github.com/tabletkv/tabletkv/pkg/types"
)

func TestSnapshot_MakeAndLoad(t *testing.T) {
	for _, engine := range []config.Engine{config.EngineMemory, config.EngineSQLite} {
		t.Run(string(engine), func(t *testing.T) {
			tb := newTestTablet(t, engine)
			ctx := context.Background()
			key := types.TableKey{TID: 1}

			require.NoError(t, tb.CreateTable(ctx, spec(1, 0)))
			require.NoError(t, tb.Put(ctx, record(1, "test1", 9527, "test0")))
			require.NoError(t, tb.Put(ctx, record(1, "test1", 9528, "test1")))
			require.NoError(t, tb.Put(ctx, record(1, "test2", 1, "")))

			meta, err := tb.MakeSnapshot(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, int64(3), meta.RecordCount)
			assert.NotEmpty(t, meta.DataETag)

			objects, err := tb.store.List(ctx, "snapshots/1_0")
			require.NoError(t, err)
			assert.Len(t, objects, 2)

			assert.ErrorIs(t, tb.LoadTable(ctx, key), ErrTableExists)

			require.NoError(t, tb.DropTable(ctx, key))
			require.NoError(t, tb.LoadTable(ctx, key))

			st, err := tb.Status(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, int64(3), st.RecordCount)
			assert.Equal(t, "tj0", st.Name)

			got := decode(t, mustScan(t, tb, key, types.ScanRange{Key: "test1", Start: 9528, End: 9527}))
			require.Len(t, got, 2)
			assert.Equal(t, []byte("test1"), got[0].Value)
			assert.Equal(t, []byte("test0"), got[1].Value)
		})
	}
}

func TestSnapshot_LoadWithoutSnapshot(t *testing.T) {
	tb := newTestTablet(t, config.EngineMemory)
	assert.ErrorIs(t, tb.LoadTable(context.Background(), types.TableKey{TID: 7}), ErrSnapshotNotFound)

	_, err := tb.Status(context.Background(), types.TableKey{TID: 7})
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestSnapshot_MissingTable(t *testing.T) {
	tb := newTestTablet(t, config.EngineMemory)
	_, err := tb.MakeSnapshot(context.Background(), types.TableKey{TID: 7})
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestSnapshot_PreservesDuplicateOrder(t *testing.T) {
	tb := newTestTablet(t, config.EngineMemory)
	ctx := context.Background()
	key := types.TableKey{TID: 1}

	require.NoError(t, tb.CreateTable(ctx, spec(1, 0)))
	require.NoError(t, tb.Put(ctx, record(1, "k", 5, "first")))
	require.NoError(t, tb.Put(ctx, record(1, "k", 5, "second")))

	_, err := tb.MakeSnapshot(ctx, key)
	require.NoError(t, err)
	require.NoError(t, tb.DropTable(ctx, key))
	require.NoError(t, tb.LoadTable(ctx, key))

	rec, err := tb.Get(ctx, key, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), rec.Value)
}

// gatedStorage holds every snapshot data download until release is closed.
type gatedStorage struct {
	storage.ObjectStorage
	entered chan struct{}
	release chan struct{}
}

func (s *gatedStorage) Get(ctx context.Context, objectPath string) (io.ReadCloser, error) {
	if strings.HasSuffix(objectPath, "data.snappy") {
		close(s.entered)
		<-s.release
	}
	return s.ObjectStorage.Get(ctx, objectPath)
}

func TestSnapshot_LoadDoesNotBlockOtherTables(t *testing.T) {
	ctx := context.Background()
	key := types.TableKey{TID: 1}

	src := newTestTablet(t, config.EngineMemory)
	require.NoError(t, src.CreateTable(ctx, spec(1, 0)))
	require.NoError(t, src.Put(ctx, record(1, "test1", 9527, "test0")))
	_, err := src.MakeSnapshot(ctx, key)
	require.NoError(t, err)

	dir := t.TempDir()
	catalog, err := OpenCatalog(filepath.Join(dir, "catalog.db"))
	require.NoError(t, err)
	gated := &gatedStorage{ObjectStorage: src.store, entered: make(chan struct{}), release: make(chan struct{})}
	var once sync.Once
	unblock := func() { once.Do(func() { close(gated.release) }) }
	t.Cleanup(unblock)

	tb, err := New(ctx, catalog, Options{
		Engine:         config.EngineMemory,
		WorkDir:        filepath.Join(dir, "work"),
		MaxScanEntries: 100,
		Storage:        gated,
		Now:            func() time.Time { return time.UnixMilli(1_700_000_000_000) },
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = tb.Close() })

	require.NoError(t, tb.CreateTable(ctx, spec(2, 0)))

	done := make(chan error, 1)
	go func() { done <- tb.LoadTable(ctx, key) }()

	select {
	case <-gated.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("load never reached the snapshot download")
	}

	// The load is parked inside its fill; other tables stay usable.
	require.NoError(t, tb.Put(ctx, record(2, "test2", 1, "v")))
	rec, err := tb.Get(ctx, types.TableKey{TID: 2}, "test2")
	require.NoError(t, err)
	assert.Equal(t, "v", string(rec.Value))
	require.NoError(t, tb.CreateTable(ctx, spec(3, 0)))

	assert.ErrorIs(t, tb.CreateTable(ctx, spec(1, 0)), ErrTableExists)
	_, err = tb.Status(ctx, key)
	assert.ErrorIs(t, err, ErrTableNotFound)

	unblock()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("load did not finish")
	}

	rec, err = tb.Get(ctx, key, "test1")
	require.NoError(t, err)
	assert.Equal(t, "test0", string(rec.Value))
	assert.ErrorIs(t, tb.CreateTable(ctx, spec(1, 0)), ErrTableExists)
}

func TestSnapshot_ReadRejectsOversizedField(t *testing.T) {
	var buf bytes.Buffer
	w := snappy.NewBufferedWriter(&buf)
	_, err := w.Write(binary.AppendUvarint(nil, 1<<40))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	n, err := readSnapshot(&buf, NewMemoryEngine())
	assert.ErrorIs(t, err, errSnapshotField)
	assert.Zero(t, n)
}

func TestSnapshot_LoadRejectsCorruptLength(t *testing.T) {
	tb := newTestTablet(t, config.EngineMemory)
	ctx := context.Background()
	key := types.TableKey{TID: 1}

	require.NoError(t, tb.CreateTable(ctx, spec(1, 0)))
	require.NoError(t, tb.Put(ctx, record(1, "test1", 9527, "test0")))
	_, err := tb.MakeSnapshot(ctx, key)
	require.NoError(t, err)
	require.NoError(t, tb.DropTable(ctx, key))

	var buf bytes.Buffer
	w := snappy.NewBufferedWriter(&buf)
	_, err = w.Write(binary.AppendUvarint(nil, 1<<62))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	_, err = tb.store.Put(ctx, snapshotDataPath(key), bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	assert.ErrorIs(t, tb.LoadTable(ctx, key), errSnapshotField)
	_, err = tb.Status(ctx, key)
	assert.ErrorIs(t, err, ErrTableNotFound)
}
