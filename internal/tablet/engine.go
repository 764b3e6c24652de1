package tablet

// Version is one stored (key, timestamp, value) triple.
type Version struct {
	Key       string
	Timestamp int64
	Value     []byte
}

// Engine stores the versions of one table. Implementations order the
// versions of a key newest first; versions written with the same timestamp
// come back most recent write first.
type Engine interface {
	// Put appends a version. It never replaces an existing one.
	Put(key string, ts int64, value []byte) error

	// Latest returns the newest version of key with a timestamp >= cutoff.
	Latest(key string, cutoff int64) (Version, bool, error)

	// At returns the version of key stored at exactly ts.
	At(key string, ts int64) (Version, bool, error)

	// Scan calls fn for versions of key with end <= ts <= start, newest
	// first, stopping after limit versions (0 means no limit) or when fn
	// returns false.
	Scan(key string, start, end int64, limit int, fn func(ts int64, value []byte) bool) error

	// Expire deletes every version older than cutoff and returns the count.
	Expire(cutoff int64) (int, error)

	// ForEach visits every version in key order, each key's versions
	// oldest first, so replaying them through Put rebuilds the table.
	ForEach(fn func(v Version) error) error

	// Count returns the number of stored versions.
	Count() (int64, error)

	// Close releases the engine. Destroy also removes its data.
	Close() error
	Destroy() error
}
