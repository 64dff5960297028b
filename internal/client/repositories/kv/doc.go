// Package kv provides the local key-value store that holds the client's
// credential entries. The SQLite implementation persists across process
// runs; the in-memory one backs tests and ephemeral sessions.
package kv
