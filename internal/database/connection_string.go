package database

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// buildConnectionString generates a modernc.org/sqlite DSN from options
func (opts *SQLiteOptions) buildConnectionString() string {
	params := url.Values{}

	// URI options understood by SQLite itself
	if opts.Mode != "" {
		params.Set("mode", opts.Mode)
	}
	if opts.Cache != "" {
		params.Set("cache", string(opts.Cache))
	}
	if opts.Immutable {
		params.Set("immutable", "1")
	}

	// Driver options
	if opts.TxLock != "" {
		params.Set("_txlock", string(opts.TxLock))
	}

	for _, pragma := range opts.connectionPragmas() {
		params.Add("_pragma", pragma)
	}

	connStr := opts.Path
	if !strings.HasPrefix(connStr, "file:") {
		connStr = "file:" + connStr
	}
	if encoded := params.Encode(); encoded != "" {
		connStr += "?" + encoded
	}
	return connStr
}

// connectionPragmas lists the PRAGMAs the driver runs on every new connection,
// in the form name(value)
func (opts *SQLiteOptions) connectionPragmas() []string {
	var pragmas []string

	// Always set so a pooled connection never falls back to driver defaults
	pragmas = append(pragmas, fmt.Sprintf("busy_timeout(%d)", opts.BusyTimeout))
	pragmas = append(pragmas, fmt.Sprintf("foreign_keys(%s)", boolPragma(opts.ForeignKeys)))

	if opts.CacheSize != 0 {
		pragmas = append(pragmas, "cache_size("+strconv.Itoa(opts.CacheSize)+")")
	}
	if opts.Synchronous != "" {
		pragmas = append(pragmas, "synchronous("+string(opts.Synchronous)+")")
	}
	if opts.LockingMode != "" {
		pragmas = append(pragmas, "locking_mode("+string(opts.LockingMode)+")")
	}
	if opts.CaseSensitiveLike {
		pragmas = append(pragmas, "case_sensitive_like(1)")
	}
	if opts.DeferForeignKeys {
		pragmas = append(pragmas, "defer_foreign_keys(1)")
	}
	if opts.QueryOnly {
		pragmas = append(pragmas, "query_only(1)")
	}
	if opts.RecursiveTriggers {
		pragmas = append(pragmas, "recursive_triggers(1)")
	}
	if opts.SecureDelete != "" {
		pragmas = append(pragmas, "secure_delete("+opts.SecureDelete+")")
	}
	return pragmas
}

func boolPragma(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
