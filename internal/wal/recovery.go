package wal

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Replay reads every segment in dir in LSN order and calls fn for each
// entry. It stops at the first error fn returns and reports how many
// entries were applied.
func Replay(dir string, fn func(*Entry) error) (int, error) {
	startTime := time.Now()

	segments, err := listSegments(dir)
	if err != nil {
		return 0, fmt.Errorf("replay: failed to list segment files: %w", err)
	}

	var (
		applied int
		lastLSN uint64
	)
	for _, segmentPath := range segments {
		entries, err := ReadEntries(segmentPath)
		if err != nil {
			return applied, fmt.Errorf("replay: %w", err)
		}
		for _, entry := range entries {
			if entry.LSN <= lastLSN {
				continue
			}
			if err := fn(entry); err != nil {
				return applied, fmt.Errorf("replay: entry %d: %w", entry.LSN, err)
			}
			lastLSN = entry.LSN
			applied++
		}
	}

	if applied > 0 {
		log.Printf("wal: replayed %d entries in %v", applied, time.Since(startTime))
	}
	return applied, nil
}

// listSegments lists the segment files of dir sorted by segment id. A
// missing directory has no segments.
func listSegments(dir string) ([]string, error) {
	files, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read WAL directory: %w", err)
	}

	var segments []string
	for _, file := range files {
		name := file.Name()
		if file.IsDir() || !strings.HasPrefix(name, "wal_") || !strings.HasSuffix(name, ".log") {
			continue
		}
		segments = append(segments, filepath.Join(dir, name))
	}

	// Fixed-width hex ids sort chronologically.
	sort.Strings(segments)
	return segments, nil
}
