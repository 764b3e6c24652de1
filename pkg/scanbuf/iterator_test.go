package scanbuf

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tkerrors "github.com/tabletkv/tabletkv/internal/errors"
)

func TestIterator_SingleEntry(t *testing.T) {
	enc := NewEncoder(0)
	enc.Append(9527, []byte("test0"))

	it, err := NewIterator(enc.Bytes(), enc.Count())
	require.NoError(t, err)

	require.True(t, it.Valid())
	assert.Equal(t, int64(9527), it.Key())
	assert.Equal(t, 5, len(it.Value()))
	assert.Equal(t, "test0", string(it.Value()))

	it.Next()
	assert.False(t, it.Valid())
	assert.Equal(t, int64(0), it.Key())
	assert.Nil(t, it.Value())
}

func TestIterator_NextWhenExhaustedIsNoop(t *testing.T) {
	enc := NewEncoder(0)
	enc.Append(2, []byte("b"))
	enc.Append(1, []byte("a"))

	it, err := NewIterator(enc.Bytes(), 2)
	require.NoError(t, err)

	it.Next()
	it.Next()
	assert.False(t, it.Valid())
	it.Next()
	it.Next()
	assert.False(t, it.Valid())
	assert.Equal(t, 2, it.Count())
}

func TestIterator_EmptyBuffer(t *testing.T) {
	it, err := NewIterator(nil, 0)
	require.NoError(t, err)
	assert.False(t, it.Valid())
	assert.Equal(t, 0, it.Count())

	assert.False(t, Empty().Valid())
	Empty().Next()
}

func TestIterator_EmptyValue(t *testing.T) {
	enc := NewEncoder(0)
	enc.Append(5, nil)

	it, err := NewIterator(enc.Bytes(), 1)
	require.NoError(t, err)
	require.True(t, it.Valid())
	assert.Equal(t, int64(5), it.Key())
	assert.Len(t, it.Value(), 0)
}

func TestIterator_ValueCapacityIsClipped(t *testing.T) {
	enc := NewEncoder(0)
	enc.Append(2, []byte("ab"))
	enc.Append(1, []byte("cd"))

	it, err := NewIterator(enc.Bytes(), 2)
	require.NoError(t, err)

	v := it.Value()
	assert.Equal(t, len(v), cap(v))
	_ = append(v, 'X', 'X', 'X', 'X', 'X', 'X', 'X', 'X', 'X', 'X', 'X', 'X', 'X', 'X')

	it.Next()
	require.True(t, it.Valid())
	assert.Equal(t, int64(1), it.Key())
	assert.Equal(t, "cd", string(it.Value()))
}

func TestIterator_OrderPreserved(t *testing.T) {
	enc := NewEncoder(0)
	stamps := []int64{300, 200, 200, 100, -5}
	for _, ts := range stamps {
		enc.Append(ts, []byte{byte(ts)})
	}

	it, err := NewIterator(enc.Bytes(), len(stamps))
	require.NoError(t, err)

	var got []int64
	for ; it.Valid(); it.Next() {
		got = append(got, it.Key())
	}
	assert.Equal(t, stamps, got)
}

func TestIterator_CorruptBuffers(t *testing.T) {
	enc := NewEncoder(0)
	enc.Append(10, []byte("hello"))
	good := enc.Bytes()

	shortSize := make([]byte, HeaderLen)
	binary.LittleEndian.PutUint32(shortSize, 4)

	ascending := NewEncoder(0)
	ascending.Append(1, []byte("a"))
	ascending.Append(2, []byte("b"))

	tests := []struct {
		name  string
		buf   []byte
		count int
	}{
		{"truncated header", good[:HeaderLen-1], -1},
		{"truncated value", good[:len(good)-1], -1},
		{"trailing garbage", append(append([]byte{}, good...), 0x01), -1},
		{"size smaller than timestamp", shortSize, -1},
		{"count mismatch", good, 2},
		{"ascending timestamps", ascending.Bytes(), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, err := NewIterator(tt.buf, tt.count)
			require.Error(t, err)
			assert.Nil(t, it)
			assert.True(t, errors.Is(err, ErrCorrupt))
			assert.True(t, tkerrors.IsDecode(err))
		})
	}
}

func TestEncoder_Reset(t *testing.T) {
	enc := NewEncoder(64)
	enc.Append(1, []byte("x"))
	assert.Equal(t, FrameLen(1), enc.Len())
	enc.Reset()
	assert.Equal(t, 0, enc.Len())
	assert.Equal(t, 0, enc.Count())
}
