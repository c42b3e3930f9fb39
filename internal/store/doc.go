// Package store keeps a history of comparison runs in SQLite so experiments
// stay queryable after the console output scrolls away.
package store
