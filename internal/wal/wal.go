// Package wal is the tablet binlog: an append-only, checksummed log of
// mutations to in-memory tables that is replayed on restart.
package wal

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// DefaultSegmentSize is the size at which a segment is rotated.
const DefaultSegmentSize = 64 * 1024 * 1024

// Op is the kind of mutation an entry records.
type Op string

const (
	// OpCreate starts a table with no versions.
	OpCreate Op = "create"
	// OpPut appends one version.
	OpPut Op = "put"
	// OpExpire deletes versions older than Cutoff.
	OpExpire Op = "expire"
	// OpDrop removes a table.
	OpDrop Op = "drop"
)

// Entry represents a single binlog entry.
type Entry struct {
	LSN       uint64 `json:"lsn"`
	Op        Op     `json:"op"`
	TID       uint32 `json:"tid"`
	PID       uint32 `json:"pid"`
	Key       string `json:"key,omitempty"`
	Timestamp int64  `json:"ts,omitempty"`
	Value     []byte `json:"value,omitempty"`
	Cutoff    int64  `json:"cutoff,omitempty"`
}

// WAL appends entries to numbered segment files. Every append is fsynced
// before it returns.
type WAL struct {
	dir        string
	segment    *os.File
	segmentID  uint64
	offset     int64
	maxSegSize int64
	currentLSN uint64
	mu         sync.Mutex
}

// NewWAL opens the log in dir, creating the directory if it doesn't exist,
// and continues numbering after the last entry found there.
func NewWAL(dir string, maxSegSize int64) (*WAL, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create WAL directory: %w", err)
	}
	if maxSegSize <= 0 {
		maxSegSize = DefaultSegmentSize
	}

	w := &WAL{
		dir:        dir,
		maxSegSize: maxSegSize,
	}

	if err := w.findLastSegment(); err != nil {
		return nil, err
	}
	if err := w.openSegment(); err != nil {
		return nil, err
	}
	return w, nil
}

// findLastSegment picks up the highest segment id and the last LSN written.
func (w *WAL) findLastSegment() error {
	segments, err := listSegments(w.dir)
	if err != nil {
		return err
	}
	if len(segments) == 0 {
		return nil
	}

	last := segments[len(segments)-1]
	if _, err := fmt.Sscanf(filepath.Base(last), "wal_%016x.log", &w.segmentID); err != nil {
		return fmt.Errorf("failed to parse segment name %s: %w", last, err)
	}

	for i := len(segments) - 1; i >= 0; i-- {
		entries, err := ReadEntries(segments[i])
		if err != nil {
			return err
		}
		if len(entries) > 0 {
			w.currentLSN = entries[len(entries)-1].LSN
			break
		}
	}
	return nil
}

// openSegment opens the current segment file for writing.
func (w *WAL) openSegment() error {
	segmentPath := filepath.Join(w.dir, segmentName(w.segmentID))

	file, err := os.OpenFile(segmentPath, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open segment file: %w", err)
	}

	offset, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to seek segment: %w", err)
	}

	w.segment = file
	w.offset = offset
	return nil
}

// Append assigns the next LSN to entry, writes it and returns the LSN.
func (w *WAL) Append(entry *Entry) (uint64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.segment == nil {
		return 0, fmt.Errorf("wal: closed")
	}

	w.currentLSN++
	entry.LSN = w.currentLSN

	payload, err := json.Marshal(entry)
	if err != nil {
		w.currentLSN--
		return 0, fmt.Errorf("failed to serialize entry: %w", err)
	}

	if err := w.writeEntry(payload); err != nil {
		w.currentLSN--
		return 0, err
	}
	return entry.LSN, nil
}

// writeEntry writes [length:4][crc32:4][payload] and fsyncs.
func (w *WAL) writeEntry(payload []byte) error {
	frame := make([]byte, 8+len(payload))
	binary.LittleEndian.PutUint32(frame[0:], uint32(len(payload)))
	binary.LittleEndian.PutUint32(frame[4:], crc32.ChecksumIEEE(payload))
	copy(frame[8:], payload)

	if _, err := w.segment.Write(frame); err != nil {
		return fmt.Errorf("failed to write entry: %w", err)
	}
	if err := w.segment.Sync(); err != nil {
		return fmt.Errorf("failed to fsync: %w", err)
	}

	w.offset += int64(len(frame))
	if w.offset >= w.maxSegSize {
		return w.rotateSegment()
	}
	return nil
}

// rotateSegment closes the current segment and opens a new one.
func (w *WAL) rotateSegment() error {
	if w.segment != nil {
		if err := w.segment.Close(); err != nil {
			return fmt.Errorf("failed to close segment: %w", err)
		}
	}
	w.segmentID++
	return w.openSegment()
}

// CurrentLSN returns the LSN of the last appended entry.
func (w *WAL) CurrentLSN() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.currentLSN
}

// Dir returns the directory holding the segments.
func (w *WAL) Dir() string {
	return w.dir
}

// Close fsyncs and closes the current segment.
func (w *WAL) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.segment != nil {
		if err := w.segment.Sync(); err != nil {
			return fmt.Errorf("failed to fsync on close: %w", err)
		}
		if err := w.segment.Close(); err != nil {
			return fmt.Errorf("failed to close segment: %w", err)
		}
		w.segment = nil
	}
	return nil
}

func segmentName(id uint64) string {
	return fmt.Sprintf("wal_%016x.log", id)
}

// ReadEntries reads every intact entry of a segment file. Reading stops at
// a torn tail; entries whose checksum does not match are skipped.
func ReadEntries(segmentPath string) ([]*Entry, error) {
	file, err := os.Open(segmentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open segment: %w", err)
	}
	defer file.Close()

	var (
		entries []*Entry
		header  [8]byte
		offset  int64
	)
	for {
		if _, err := io.ReadFull(file, header[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return nil, fmt.Errorf("failed to read header: %w", err)
		}
		length := binary.LittleEndian.Uint32(header[0:])
		crc := binary.LittleEndian.Uint32(header[4:])

		payload := make([]byte, length)
		if _, err := io.ReadFull(file, payload); err != nil {
			// Torn write at the tail.
			break
		}

		if crc32.ChecksumIEEE(payload) != crc {
			log.Printf("wal: CRC mismatch at offset %d in %s, skipping entry", offset, segmentPath)
			offset += int64(8 + length)
			continue
		}
		offset += int64(8 + length)

		var entry Entry
		if err := json.Unmarshal(payload, &entry); err != nil {
			log.Printf("wal: undecodable entry at offset %d in %s: %v", offset, segmentPath, err)
			continue
		}
		entries = append(entries, &entry)
	}
	return entries, nil
}
