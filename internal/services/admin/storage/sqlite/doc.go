// Package sqlite provides the SQLite-backed admin store.
package sqlite
