// Package env reads the process environment into typed configuration
// values, leaving precedence between env and CLI flags to the caller
// (cmd/alexdb-server applies flag overrides on top of whatever this
// package returns).
package env

import (
	"os"
	"strconv"
	"strings"
)

// DataDir reads ALEXDB_DATA_DIR. An unset or empty value disables
// persistence (store.Config.DataDir stays nil).
func DataDir() *string {
	v, ok := os.LookupEnv("ALEXDB_DATA_DIR")
	if !ok || v == "" {
		return nil
	}
	return &v
}

// Port reads ALEXDB_PORT, defaulting to def when unset or malformed.
func Port(def uint16) uint16 {
	v, ok := os.LookupEnv("ALEXDB_PORT")
	if !ok {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 16)
	if err != nil {
		return def
	}
	return uint16(n)
}

// SavedWritesSleepMs reads ALEXDB_SAVED_WRITES_SLEEP (milliseconds
// between persistence-loop ticks), defaulting to def when unset or
// malformed.
func SavedWritesSleepMs(def uint64) uint64 {
	v, ok := os.LookupEnv("ALEXDB_SAVED_WRITES_SLEEP")
	if !ok {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

// SavedWritesThreshold reads ALEXDB_SAVED_WRITES_THRESHOLD, defaulting
// to def when unset or malformed.
func SavedWritesThreshold(def uint16) uint16 {
	v, ok := os.LookupEnv("ALEXDB_SAVED_WRITES_THRESHOLD")
	if !ok {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 16)
	if err != nil {
		return def
	}
	return uint16(n)
}

// SecurityAPIKeysEnabled reads ALEXDB_SECURITY_API_KEYS as a boolean,
// defaulting to def when unset or malformed.
func SecurityAPIKeysEnabled(def bool) bool {
	v, ok := os.LookupEnv("ALEXDB_SECURITY_API_KEYS")
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// IsDev reports whether ALEXDB_ENV is "dev", gating the CORS
// middleware.
func IsDev() bool {
	return strings.EqualFold(os.Getenv("ALEXDB_ENV"), "dev")
}

// ServerAddr reads ALEXDB_SERVER_ADDR, defaulting to def when unset or
// empty. cmd/alexdb-cli does not call it: its --server flag has a
// fixed default.
func ServerAddr(def string) string {
	if v, ok := os.LookupEnv("ALEXDB_SERVER_ADDR"); ok && v != "" {
		return v
	}
	return def
}

// AuthToken reads ALEXDB_AUTH_TOKEN, the dbclient CLI's bearer
// credential.
func AuthToken() string {
	return os.Getenv("ALEXDB_AUTH_TOKEN")
}
