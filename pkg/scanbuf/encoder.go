// Package scanbuf implements the scan result buffer exchanged between a tablet
// and its clients, and the forward-only iterator that reads it.
//
// A buffer is a sequence of frames, newest version first:
//
//	+----------------+-----------------+----------------+
//	| size (u32, LE) | timestamp (i64) | value          |
//	+----------------+-----------------+----------------+
//
// size counts the timestamp and value bytes, so a frame occupies 4+size bytes.
package scanbuf

import "encoding/binary"

const (
	sizeLen = 4
	tsLen   = 8

	// HeaderLen is the fixed per-frame overhead.
	HeaderLen = sizeLen + tsLen
)

// FrameLen returns the encoded length of a frame carrying valueLen bytes.
func FrameLen(valueLen int) int {
	return HeaderLen + valueLen
}

// Encoder appends frames to a growing buffer. Callers append in
// non-increasing timestamp order; the iterator rejects anything else.
type Encoder struct {
	buf   []byte
	count int
}

// NewEncoder creates an encoder with capacity for sizeHint bytes.
func NewEncoder(sizeHint int) *Encoder {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Encoder{buf: make([]byte, 0, sizeHint)}
}

// Append encodes one (timestamp, value) frame.
func (e *Encoder) Append(ts int64, value []byte) {
	var hdr [HeaderLen]byte
	binary.LittleEndian.PutUint32(hdr[:sizeLen], uint32(tsLen+len(value)))
	binary.LittleEndian.PutUint64(hdr[sizeLen:], uint64(ts))
	e.buf = append(e.buf, hdr[:]...)
	e.buf = append(e.buf, value...)
	e.count++
}

// Count returns the number of frames appended.
func (e *Encoder) Count() int {
	return e.count
}

// Len returns the encoded size in bytes.
func (e *Encoder) Len() int {
	return len(e.buf)
}

// Bytes returns the encoded buffer. The encoder must not be reused afterwards
// unless Reset is called.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Reset clears the encoder for reuse.
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
	e.count = 0
}
