package database

// SynchronousMode represents the available synchronous settings for SQLite
type SynchronousMode string

const (
	SynchronousOff    SynchronousMode = "OFF"
	SynchronousNormal SynchronousMode = "NORMAL"
	SynchronousFull   SynchronousMode = "FULL"
	SynchronousExtra  SynchronousMode = "EXTRA"
)

// JournalMode represents the available journal modes for SQLite
type JournalMode string

const (
	JournalDelete   JournalMode = "DELETE"
	JournalTruncate JournalMode = "TRUNCATE"
	JournalPersist  JournalMode = "PERSIST"
	JournalMemory   JournalMode = "MEMORY"
	JournalWAL      JournalMode = "WAL"
	JournalOff      JournalMode = "OFF"
)

// LockingMode represents the available locking modes for SQLite
type LockingMode string

const (
	LockingNormal    LockingMode = "NORMAL"
	LockingExclusive LockingMode = "EXCLUSIVE"
)

// CacheMode represents the available cache modes for SQLite
type CacheMode string

const (
	CacheShared  CacheMode = "shared"
	CachePrivate CacheMode = "private"
)

// TxLockMode is the BEGIN flavour the driver uses for transactions
type TxLockMode string

const (
	TxLockDeferred  TxLockMode = "deferred"
	TxLockImmediate TxLockMode = "immediate"
	TxLockExclusive TxLockMode = "exclusive"
)

// SQLiteOptions contains configuration options for SQLite connection.
//
// URI options (Mode, Cache, Immutable) and the driver's TxLock go into the
// DSN. Per-connection PRAGMAs are sent as _pragma parameters so every pooled
// connection gets them. Journal and AutoVacuum are database-wide and applied
// once after opening.
type SQLiteOptions struct {
	// Path to the SQLite database file
	Path string

	// URI options
	Mode      string    // ro, rw, rwc, memory
	Cache     CacheMode // shared, private
	Immutable bool      // immutable=1

	// Driver options
	TxLock TxLockMode // _txlock: deferred, immediate, exclusive

	// Per-connection PRAGMAs
	ForeignKeys       bool            // foreign_keys
	BusyTimeout       int             // busy_timeout (milliseconds)
	CacheSize         int             // cache_size (pages if positive, KiB if negative)
	Synchronous       SynchronousMode // synchronous: OFF, NORMAL, FULL, EXTRA
	LockingMode       LockingMode     // locking_mode: NORMAL, EXCLUSIVE
	CaseSensitiveLike bool            // case_sensitive_like
	DeferForeignKeys  bool            // defer_foreign_keys
	QueryOnly         bool            // query_only
	RecursiveTriggers bool            // recursive_triggers
	SecureDelete      string          // secure_delete: boolean or "FAST"

	// Database-wide PRAGMAs
	Journal    JournalMode // journal_mode: DELETE, TRUNCATE, PERSIST, MEMORY, WAL, OFF
	AutoVacuum string      // auto_vacuum: none, full, incremental
}

// NewDefaultOptions creates SQLiteOptions with recommended defaults
func NewDefaultOptions(path string) SQLiteOptions {
	return SQLiteOptions{
		Path:        path,
		Mode:        "rwc",
		Journal:     JournalWAL, // WAL is recommended for better concurrency
		ForeignKeys: true,
		BusyTimeout: 5000,
		CacheSize:   2000,
		Synchronous: SynchronousNormal,
		Cache:       CachePrivate,
		TxLock:      TxLockImmediate,
	}
}
