package tablet

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

const engineSchema = `
CREATE TABLE IF NOT EXISTS versions (
	seq   INTEGER PRIMARY KEY AUTOINCREMENT,
	pk    TEXT    NOT NULL,
	ts    INTEGER NOT NULL,
	value BLOB    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_versions_pk_ts ON versions (pk, ts DESC, seq DESC);
CREATE INDEX IF NOT EXISTS idx_versions_ts ON versions (ts);
`

// SQLiteEngine keeps a table in its own SQLite file.
type SQLiteEngine struct {
	db   *sql.DB
	path string
}

// OpenSQLiteEngine opens or creates the table file at path.
func OpenSQLiteEngine(path string) (*SQLiteEngine, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite engine: failed to open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(engineSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite engine: failed to initialize schema: %w", err)
	}
	return &SQLiteEngine{db: db, path: path}, nil
}

func (e *SQLiteEngine) Put(key string, ts int64, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	if _, err := e.db.Exec("INSERT INTO versions (pk, ts, value) VALUES (?, ?, ?)", key, ts, value); err != nil {
		return fmt.Errorf("sqlite engine: put failed: %w", err)
	}
	return nil
}

func (e *SQLiteEngine) Latest(key string, cutoff int64) (Version, bool, error) {
	return e.one("SELECT ts, value FROM versions WHERE pk = ? AND ts >= ? ORDER BY ts DESC, seq DESC LIMIT 1", key, cutoff)
}

func (e *SQLiteEngine) At(key string, ts int64) (Version, bool, error) {
	return e.one("SELECT ts, value FROM versions WHERE pk = ? AND ts = ? ORDER BY seq DESC LIMIT 1", key, ts)
}

func (e *SQLiteEngine) one(query string, key string, arg int64) (Version, bool, error) {
	v := Version{Key: key}
	err := e.db.QueryRow(query, key, arg).Scan(&v.Timestamp, &v.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return Version{}, false, nil
	}
	if err != nil {
		return Version{}, false, fmt.Errorf("sqlite engine: get failed: %w", err)
	}
	return v, true, nil
}

func (e *SQLiteEngine) Scan(key string, start, end int64, limit int, fn func(ts int64, value []byte) bool) error {
	query := "SELECT ts, value FROM versions WHERE pk = ? AND ts <= ? AND ts >= ? ORDER BY ts DESC, seq DESC"
	args := []any{key, start, end}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := e.db.Query(query, args...)
	if err != nil {
		return fmt.Errorf("sqlite engine: scan failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ts    int64
			value []byte
		)
		if err := rows.Scan(&ts, &value); err != nil {
			return fmt.Errorf("sqlite engine: scan failed: %w", err)
		}
		if !fn(ts, value) {
			break
		}
	}
	return rows.Err()
}

func (e *SQLiteEngine) Expire(cutoff int64) (int, error) {
	res, err := e.db.Exec("DELETE FROM versions WHERE ts < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("sqlite engine: expire failed: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (e *SQLiteEngine) ForEach(fn func(v Version) error) error {
	rows, err := e.db.Query("SELECT pk, ts, value FROM versions ORDER BY pk, ts, seq")
	if err != nil {
		return fmt.Errorf("sqlite engine: iterate failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v Version
		if err := rows.Scan(&v.Key, &v.Timestamp, &v.Value); err != nil {
			return fmt.Errorf("sqlite engine: iterate failed: %w", err)
		}
		if err := fn(v); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (e *SQLiteEngine) Count() (int64, error) {
	var n int64
	if err := e.db.QueryRow("SELECT COUNT(*) FROM versions").Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite engine: count failed: %w", err)
	}
	return n, nil
}

func (e *SQLiteEngine) Close() error {
	return e.db.Close()
}

func (e *SQLiteEngine) Destroy() error {
	if err := e.db.Close(); err != nil {
		return err
	}
	for _, suffix := range []string{"", "-wal", "-shm"} {
		if err := os.Remove(e.path + suffix); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("sqlite engine: failed to remove %s: %w", e.path+suffix, err)
		}
	}
	return nil
}
