package tablet

import (
	"fmt"
	"sync"

	"github.com/tabletkv/tabletkv/internal/config"
	"github.com/tabletkv/tabletkv/internal/wal"
	"github.com/tabletkv/tabletkv/pkg/types"
)

// loggedEngine writes every mutation to the binlog before applying it, so
// a memory table can be rebuilt after a restart.
type loggedEngine struct {
	Engine
	binlog *wal.WAL
	key    types.TableKey

	// keeps log order and apply order identical
	mu sync.Mutex
}

func (e *loggedEngine) Put(key string, ts int64, value []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.binlog.Append(&wal.Entry{Op: wal.OpPut, TID: e.key.TID, PID: e.key.PID, Key: key, Timestamp: ts, Value: value}); err != nil {
		return fmt.Errorf("tablet: binlog append failed: %w", err)
	}
	return e.Engine.Put(key, ts, value)
}

func (e *loggedEngine) Expire(cutoff int64) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.binlog.Append(&wal.Entry{Op: wal.OpExpire, TID: e.key.TID, PID: e.key.PID, Cutoff: cutoff}); err != nil {
		return 0, fmt.Errorf("tablet: binlog append failed: %w", err)
	}
	return e.Engine.Expire(cutoff)
}

func (e *loggedEngine) Destroy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.binlog.Append(&wal.Entry{Op: wal.OpDrop, TID: e.key.TID, PID: e.key.PID}); err != nil {
		return fmt.Errorf("tablet: binlog append failed: %w", err)
	}
	return e.Engine.Destroy()
}

// logged wraps a memory engine when a binlog is configured. Other engines
// are durable on their own and are returned unchanged.
func (t *Tablet) logged(key types.TableKey, kind config.Engine, engine Engine) Engine {
	if t.opts.Binlog == nil || kind != config.EngineMemory {
		return engine
	}
	return &loggedEngine{Engine: engine, binlog: t.opts.Binlog, key: key}
}

// logCreate records the start of a memory table so replay discards the
// versions of an earlier table with the same key.
func (t *Tablet) logCreate(key types.TableKey, kind config.Engine) error {
	if t.opts.Binlog == nil || kind != config.EngineMemory {
		return nil
	}
	if _, err := t.opts.Binlog.Append(&wal.Entry{Op: wal.OpCreate, TID: key.TID, PID: key.PID}); err != nil {
		return fmt.Errorf("tablet: binlog append failed: %w", err)
	}
	return nil
}

// replayBinlog rebuilds the memory tables listed in the catalog. Entries
// for tables that are gone or use another engine are skipped.
func (t *Tablet) replayBinlog() (int, error) {
	return wal.Replay(t.opts.Binlog.Dir(), func(e *wal.Entry) error {
		tbl, ok := t.tables[types.TableKey{TID: e.TID, PID: e.PID}]
		if !ok || tbl.kind != config.EngineMemory {
			return nil
		}
		switch e.Op {
		case wal.OpCreate, wal.OpDrop:
			return tbl.engine.Destroy()
		case wal.OpPut:
			return tbl.engine.Put(e.Key, e.Timestamp, e.Value)
		case wal.OpExpire:
			_, err := tbl.engine.Expire(e.Cutoff)
			return err
		default:
			return fmt.Errorf("unknown binlog op %q", e.Op)
		}
	})
}
