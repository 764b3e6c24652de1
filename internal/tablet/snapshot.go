package tablet

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"time"

	"github.com/golang/snappy"

	tkerrors "github.com/tabletkv/tabletkv/internal/errors"
	"github.com/tabletkv/tabletkv/internal/storage"
	"github.com/tabletkv/tabletkv/pkg/types"
)

const snapshotFormat = 1

// maxSnapshotField bounds the key and value lengths a snapshot record may
// declare. It sits well above the gRPC message limit that caps what Put
// can store.
const maxSnapshotField = 64 << 20

// errSnapshotField is returned for a record whose key or value exceeds
// maxSnapshotField.
var errSnapshotField = errors.New("snapshot field exceeds size limit")

// SnapshotMeta describes a stored snapshot. It is written next to the data
// object as meta.json.
type SnapshotMeta struct {
	Format      int             `json:"format"`
	Spec        types.TableSpec `json:"spec"`
	RecordCount int64           `json:"record_count"`
	CreatedAt   int64           `json:"created_at"`
	SnapshotAt  int64           `json:"snapshot_at"`
	DataETag    string          `json:"data_etag"`
}

func snapshotPrefix(key types.TableKey) string {
	return path.Join("snapshots", key.String())
}

func snapshotDataPath(key types.TableKey) string {
	return path.Join(snapshotPrefix(key), "data.snappy")
}

func snapshotMetaPath(key types.TableKey) string {
	return path.Join(snapshotPrefix(key), "meta.json")
}

// MakeSnapshot writes every version of a table to object storage. A newer
// snapshot replaces the previous one.
func (t *Tablet) MakeSnapshot(ctx context.Context, key types.TableKey) (SnapshotMeta, error) {
	if t.opts.Storage == nil {
		return SnapshotMeta{}, tkerrors.NewInternalError("snapshot storage is not configured", nil)
	}
	tbl, err := t.table(key)
	if err != nil {
		return SnapshotMeta{}, err
	}

	if err := os.MkdirAll(t.opts.WorkDir, 0755); err != nil {
		return SnapshotMeta{}, fmt.Errorf("tablet: failed to create work dir: %w", err)
	}
	dataFile, err := os.CreateTemp(t.opts.WorkDir, key.String()+"-*.snappy")
	if err != nil {
		return SnapshotMeta{}, fmt.Errorf("tablet: failed to create snapshot file: %w", err)
	}
	defer os.Remove(dataFile.Name())

	count, err := writeSnapshot(dataFile, tbl.engine)
	if err != nil {
		dataFile.Close()
		return SnapshotMeta{}, fmt.Errorf("tablet: failed to write snapshot of %s: %w", key, err)
	}
	size, err := dataFile.Seek(0, io.SeekCurrent)
	if err != nil {
		dataFile.Close()
		return SnapshotMeta{}, fmt.Errorf("tablet: failed to size snapshot of %s: %w", key, err)
	}

	etag, err := t.opts.Storage.Put(ctx, snapshotDataPath(key), dataFile, size)
	dataFile.Close()
	if err != nil {
		return SnapshotMeta{}, tkerrors.NewStorageError(tkerrors.CodeUploadFailed, "failed to upload snapshot data", err)
	}

	meta := SnapshotMeta{
		Format:      snapshotFormat,
		Spec:        tbl.spec,
		RecordCount: count,
		CreatedAt:   tbl.createdAt.UnixMilli(),
		SnapshotAt:  t.opts.Now().UnixMilli(),
		DataETag:    etag,
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return SnapshotMeta{}, fmt.Errorf("tablet: failed to encode snapshot meta: %w", err)
	}
	// meta.json goes last: a snapshot without it is invisible to LoadTable.
	if _, err := t.opts.Storage.Put(ctx, snapshotMetaPath(key), bytes.NewReader(data), int64(len(data))); err != nil {
		return SnapshotMeta{}, tkerrors.NewStorageError(tkerrors.CodeUploadFailed, "failed to upload snapshot meta", err)
	}

	log.Printf("tablet: snapshot of table %s written with %d versions", key, count)
	return meta, nil
}

// LoadTable recreates a table from its latest snapshot. It fails with
// ErrTableExists when the table is live and ErrSnapshotNotFound when no
// snapshot was made.
func (t *Tablet) LoadTable(ctx context.Context, key types.TableKey) error {
	if t.opts.Storage == nil {
		return tkerrors.NewInternalError("snapshot storage is not configured", nil)
	}
	if _, err := t.table(key); err == nil {
		return ErrTableExists
	}

	meta, err := t.readMeta(ctx, key)
	if err != nil {
		return err
	}

	fill := func(engine Engine) error {
		rc, err := t.open(ctx, snapshotDataPath(key))
		if err != nil {
			return err
		}
		defer rc.Close()

		n, err := readSnapshot(rc, engine)
		if err != nil {
			return fmt.Errorf("tablet: snapshot of %s is unreadable: %w", key, err)
		}
		if n != meta.RecordCount {
			return fmt.Errorf("tablet: snapshot of %s holds %d versions, meta says %d", key, n, meta.RecordCount)
		}
		return nil
	}

	if err := t.createTable(ctx, meta.Spec, time.UnixMilli(meta.CreatedAt), fill); err != nil {
		return err
	}
	log.Printf("tablet: loaded table %s from snapshot with %d versions", key, meta.RecordCount)
	return nil
}

func (t *Tablet) readMeta(ctx context.Context, key types.TableKey) (SnapshotMeta, error) {
	rc, err := t.open(ctx, snapshotMetaPath(key))
	if err != nil {
		return SnapshotMeta{}, err
	}
	defer rc.Close()

	var meta SnapshotMeta
	if err := json.NewDecoder(rc).Decode(&meta); err != nil {
		return SnapshotMeta{}, fmt.Errorf("tablet: failed to decode snapshot meta: %w", err)
	}
	if meta.Format != snapshotFormat {
		return SnapshotMeta{}, fmt.Errorf("tablet: unsupported snapshot format %d", meta.Format)
	}
	if meta.Spec.Key() != key {
		return SnapshotMeta{}, fmt.Errorf("tablet: snapshot under %s describes table %s", key, meta.Spec.Key())
	}
	return meta, nil
}

func (t *Tablet) open(ctx context.Context, objectPath string) (io.ReadCloser, error) {
	rc, err := t.opts.Storage.Get(ctx, objectPath)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, tkerrors.NewStorageError(tkerrors.CodeDownloadFailed, "failed to download "+objectPath, err)
	}
	return rc, nil
}

// writeSnapshot streams every version of engine to w as snappy-framed
// records: uvarint key length, key, varint timestamp, uvarint value length,
// value.
func writeSnapshot(w io.Writer, engine Engine) (int64, error) {
	sw := snappy.NewBufferedWriter(w)
	var (
		n   int64
		hdr [3 * binary.MaxVarintLen64]byte
	)
	err := engine.ForEach(func(v Version) error {
		if len(v.Key) > maxSnapshotField || len(v.Value) > maxSnapshotField {
			return fmt.Errorf("%w: key %q", errSnapshotField, v.Key)
		}
		off := binary.PutUvarint(hdr[:], uint64(len(v.Key)))
		if _, err := sw.Write(hdr[:off]); err != nil {
			return err
		}
		if _, err := io.WriteString(sw, v.Key); err != nil {
			return err
		}
		off = binary.PutVarint(hdr[:], v.Timestamp)
		off += binary.PutUvarint(hdr[off:], uint64(len(v.Value)))
		if _, err := sw.Write(hdr[:off]); err != nil {
			return err
		}
		if _, err := sw.Write(v.Value); err != nil {
			return err
		}
		n++
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, sw.Close()
}

// readSnapshot replays a stream written by writeSnapshot into engine.
func readSnapshot(r io.Reader, engine Engine) (int64, error) {
	br := bufio.NewReader(snappy.NewReader(r))
	var n int64
	for {
		key, err := readField(br, "key")
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		ts, err := binary.ReadVarint(br)
		if err != nil {
			return n, unexpected(err)
		}
		value, err := readField(br, "value")
		if err != nil {
			return n, unexpected(err)
		}
		if err := engine.Put(string(key), ts, value); err != nil {
			return n, err
		}
		n++
	}
}

// readField reads a uvarint length and that many bytes. It returns io.EOF
// only when the stream ends before the length.
func readField(br *bufio.Reader, what string) ([]byte, error) {
	size, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, err
	}
	if size > maxSnapshotField {
		return nil, fmt.Errorf("%w: %s of %d bytes", errSnapshotField, what, size)
	}
	b := make([]byte, size)
	if _, err := io.ReadFull(br, b); err != nil {
		return nil, unexpected(err)
	}
	return b, nil
}

func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
