package scanbuf

import (
	"encoding/binary"
	"fmt"

	tkerrors "github.com/tabletkv/tabletkv/internal/errors"
)

// ErrCorrupt matches every error returned for a malformed scan buffer.
var ErrCorrupt error = tkerrors.New(tkerrors.ErrCategoryDecode, tkerrors.CodeCorruptBuffer, "corrupt scan buffer")

// Iterator is a forward-only cursor over a validated scan buffer.
//
// The iterator borrows the buffer it was built from; the caller must not
// modify the buffer while the iterator is in use. Slices returned by Value
// are views into that buffer and are only meaningful until the next call to
// Next. An Iterator is not safe for concurrent use.
type Iterator struct {
	buf   []byte
	count int

	pos   int // offset of the current frame
	end   int // offset one past the current frame
	ts    int64
	valid bool

	truncated bool
}

// NewIterator validates buf and returns an iterator positioned at the first
// frame. count is the number of frames the producer reported; pass a
// negative count to skip that check.
func NewIterator(buf []byte, count int) (*Iterator, error) {
	n, err := Validate(buf)
	if err != nil {
		return nil, err
	}
	if count >= 0 && n != count {
		return nil, corrupt(fmt.Sprintf("buffer holds %d entries, producer reported %d", n, count))
	}

	it := &Iterator{buf: buf, count: n}
	it.seek(0)
	return it, nil
}

// Empty returns an iterator that is immediately exhausted.
func Empty() *Iterator {
	return &Iterator{}
}

// Validate walks every frame of buf and returns the number of frames.
// It fails on a truncated header or value, a size smaller than the timestamp,
// or a timestamp greater than the one before it.
func Validate(buf []byte) (int, error) {
	var (
		n    int
		off  int
		prev int64
	)
	for off < len(buf) {
		if len(buf)-off < HeaderLen {
			return 0, corrupt(fmt.Sprintf("frame %d: %d bytes left, header needs %d", n, len(buf)-off, HeaderLen))
		}
		size := int64(binary.LittleEndian.Uint32(buf[off:]))
		if size < tsLen {
			return 0, corrupt(fmt.Sprintf("frame %d: size %d is smaller than the timestamp", n, size))
		}
		if size > int64(len(buf)-off-sizeLen) {
			return 0, corrupt(fmt.Sprintf("frame %d: size %d overruns buffer of %d bytes", n, size, len(buf)))
		}
		ts := int64(binary.LittleEndian.Uint64(buf[off+sizeLen:]))
		if n > 0 && ts > prev {
			return 0, corrupt(fmt.Sprintf("frame %d: timestamp %d follows %d", n, ts, prev))
		}
		prev = ts
		off += sizeLen + int(size)
		n++
	}
	return n, nil
}

// Valid reports whether the iterator is positioned at an unread entry.
func (it *Iterator) Valid() bool {
	return it.valid
}

// Key returns the timestamp of the current entry, or 0 when not Valid.
func (it *Iterator) Key() int64 {
	if !it.valid {
		return 0
	}
	return it.ts
}

// Value returns a view of the current entry's value, or nil when not Valid.
// The view's capacity is clipped so appends cannot clobber the next frame.
func (it *Iterator) Value() []byte {
	if !it.valid {
		return nil
	}
	start := it.pos + HeaderLen
	return it.buf[start:it.end:it.end]
}

// Next advances to the following entry. Calling Next on an exhausted
// iterator is a no-op.
func (it *Iterator) Next() {
	if !it.valid {
		return
	}
	it.seek(it.end)
}

// Count returns the total number of entries in the buffer.
func (it *Iterator) Count() int {
	return it.count
}

// Truncated reports that the producer cut the result at its own entry cap,
// so older entries in the requested range were left out.
func (it *Iterator) Truncated() bool {
	return it.truncated
}

// SetTruncated records whether the producer cut the result short.
func (it *Iterator) SetTruncated(v bool) {
	it.truncated = v
}

// seek positions the cursor at off. The buffer was validated up front, so
// every in-range offset starts a complete frame.
func (it *Iterator) seek(off int) {
	if off >= len(it.buf) {
		it.pos = len(it.buf)
		it.end = it.pos
		it.ts = 0
		it.valid = false
		return
	}
	size := int(binary.LittleEndian.Uint32(it.buf[off:]))
	it.pos = off
	it.end = off + sizeLen + size
	it.ts = int64(binary.LittleEndian.Uint64(it.buf[off+sizeLen:]))
	it.valid = true
}

func corrupt(msg string) error {
	return tkerrors.NewDecodeError(tkerrors.CodeCorruptBuffer, msg, nil)
}
