package wal

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func putEntry(key string, ts int64, value string) *Entry {
	return &Entry{Op: OpPut, TID: 1, Key: key, Timestamp: ts, Value: []byte(value)}
}

func TestWAL_AppendSingleEntry(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWAL(dir, 0)
	require.NoError(t, err)
	defer w.Close()

	lsn, err := w.Append(putEntry("test1", 9527, "test0"))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), lsn)

	entries, err := ReadEntries(filepath.Join(dir, "wal_0000000000000000.log"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, uint64(1), entries[0].LSN)
	assert.Equal(t, OpPut, entries[0].Op)
	assert.Equal(t, "test1", entries[0].Key)
	assert.Equal(t, int64(9527), entries[0].Timestamp)
	assert.Equal(t, []byte("test0"), entries[0].Value)
}

func TestWAL_ConcurrentAppendsGetUniqueLSNs(t *testing.T) {
	w, err := NewWAL(t.TempDir(), 0)
	require.NoError(t, err)
	defer w.Close()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[uint64]bool)
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				lsn, err := w.Append(putEntry("k", int64(j), "v"))
				assert.NoError(t, err)
				mu.Lock()
				seen[lsn] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 200)
	assert.Equal(t, uint64(200), w.CurrentLSN())
}

func TestWAL_RotatesAndReplaysInOrder(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWAL(dir, 256)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		_, err := w.Append(putEntry("test1", int64(i), "value-of-some-length"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	segments, err := listSegments(dir)
	require.NoError(t, err)
	assert.Greater(t, len(segments), 1)

	var stamps []int64
	n, err := Replay(dir, func(e *Entry) error {
		stamps = append(stamps, e.Timestamp)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 20, n)
	for i, ts := range stamps {
		assert.Equal(t, int64(i), ts)
	}
}

func TestWAL_ReopenContinuesLSN(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWAL(dir, 0)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := w.Append(putEntry("k", int64(i), "v"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	w, err = NewWAL(dir, 0)
	require.NoError(t, err)
	defer w.Close()
	assert.Equal(t, uint64(3), w.CurrentLSN())

	lsn, err := w.Append(&Entry{Op: OpDrop, TID: 1})
	require.NoError(t, err)
	assert.Equal(t, uint64(4), lsn)
}

func TestReadEntries_TornTailAndBadChecksum(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWAL(dir, 0)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := w.Append(putEntry("k", int64(i), "v"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	path := filepath.Join(dir, segmentName(0))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// Flip a payload byte of the first entry, then cut the last one short.
	data[10] ^= 0xff
	data = data[:len(data)-3]
	require.NoError(t, os.WriteFile(path, data, 0644))

	entries, err := ReadEntries(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, uint64(2), entries[0].LSN)
}

func TestReplay_MissingDirAndCallbackError(t *testing.T) {
	n, err := Replay(filepath.Join(t.TempDir(), "absent"), func(*Entry) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	dir := t.TempDir()
	w, err := NewWAL(dir, 0)
	require.NoError(t, err)
	_, err = w.Append(putEntry("k", 1, "v"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = Replay(dir, func(*Entry) error { return os.ErrInvalid })
	assert.ErrorIs(t, err, os.ErrInvalid)
}

func TestWAL_AppendAfterClose(t *testing.T) {
	w, err := NewWAL(t.TempDir(), 0)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = w.Append(putEntry("k", 1, "v"))
	assert.Error(t, err)
}
