package tablet

import (
	"math"
	"sync"

	"github.com/tidwall/btree"
)

type memItem struct {
	key   string
	ts    int64
	seq   uint64
	value []byte
}

// (key asc, ts desc, seq desc)
func memLess(a, b memItem) bool {
	if a.key != b.key {
		return a.key < b.key
	}
	if a.ts != b.ts {
		return a.ts > b.ts
	}
	return a.seq > b.seq
}

// MemoryEngine keeps a table in an ordered B-tree. Data does not survive a
// restart.
type MemoryEngine struct {
	mu   sync.RWMutex
	tree *btree.BTreeG[memItem]
	seq  uint64
}

// NewMemoryEngine creates an empty in-memory engine.
func NewMemoryEngine() *MemoryEngine {
	return &MemoryEngine{
		tree: btree.NewBTreeGOptions(memLess, btree.Options{NoLocks: true}),
	}
}

func (m *MemoryEngine) Put(key string, ts int64, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	m.tree.Set(memItem{
		key:   key,
		ts:    ts,
		seq:   m.seq,
		value: append([]byte(nil), value...),
	})
	return nil
}

func (m *MemoryEngine) Latest(key string, cutoff int64) (Version, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var (
		out   Version
		found bool
	)
	m.tree.Ascend(memItem{key: key, ts: math.MaxInt64, seq: math.MaxUint64}, func(it memItem) bool {
		if it.key == key && it.ts >= cutoff {
			out = Version{Key: it.key, Timestamp: it.ts, Value: it.value}
			found = true
		}
		return false
	})
	return out, found, nil
}

func (m *MemoryEngine) At(key string, ts int64) (Version, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var (
		out   Version
		found bool
	)
	m.tree.Ascend(memItem{key: key, ts: ts, seq: math.MaxUint64}, func(it memItem) bool {
		if it.key == key && it.ts == ts {
			out = Version{Key: it.key, Timestamp: it.ts, Value: it.value}
			found = true
		}
		return false
	})
	return out, found, nil
}

func (m *MemoryEngine) Scan(key string, start, end int64, limit int, fn func(ts int64, value []byte) bool) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	m.tree.Ascend(memItem{key: key, ts: start, seq: math.MaxUint64}, func(it memItem) bool {
		if it.key != key || it.ts < end {
			return false
		}
		if !fn(it.ts, it.value) {
			return false
		}
		n++
		return limit <= 0 || n < limit
	})
	return nil
}

func (m *MemoryEngine) Expire(cutoff int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expired []memItem
	m.tree.Scan(func(it memItem) bool {
		if it.ts < cutoff {
			expired = append(expired, it)
		}
		return true
	})
	for _, it := range expired {
		m.tree.Delete(it)
	}
	return len(expired), nil
}

func (m *MemoryEngine) ForEach(fn func(v Version) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// The tree holds a key's versions newest first; emit them oldest first.
	var (
		group []memItem
		err   error
	)
	flush := func() error {
		for i := len(group) - 1; i >= 0; i-- {
			it := group[i]
			if err := fn(Version{Key: it.key, Timestamp: it.ts, Value: it.value}); err != nil {
				return err
			}
		}
		group = group[:0]
		return nil
	}
	m.tree.Scan(func(it memItem) bool {
		if len(group) > 0 && group[0].key != it.key {
			if err = flush(); err != nil {
				return false
			}
		}
		group = append(group, it)
		return true
	})
	if err != nil {
		return err
	}
	return flush()
}

func (m *MemoryEngine) Count() (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(m.tree.Len()), nil
}

func (m *MemoryEngine) Close() error {
	return nil
}

func (m *MemoryEngine) Destroy() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tree = btree.NewBTreeGOptions(memLess, btree.Options{NoLocks: true})
	return nil
}
