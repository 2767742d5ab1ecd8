// Package database provides the document store abstraction for TesfaFund.
//
// The Database interface abstracts SurrealDB so that repositories only
// deal in SurrealQL strings and generic result maps. It exposes three query
// methods:
//   - Query: returns the per-statement results of a query
//   - QueryOne: returns the first record of the first statement
//   - Execute: runs a mutation and discards the results
//
// # Atomic writes
//
// Multi-statement writes are BATCH-BASED. TxBuilder and AtomicBatch collect
// statements in memory and send them as a single BEGIN/COMMIT TRANSACTION
// query, so they either all apply or none do. There is no isolation between
// separate calls.
//
// # Error Handling
//
// Standard errors are defined for common failure cases:
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: Unique constraint violation
//   - ErrConnection: Database connection issues
//   - ErrQuery: Query execution failures
//   - ErrMissingReference: A guarded write found its referenced record absent
//
// Use errors.Is() to check error types:
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // Handle missing record
//	}
package database

import (
	"context"
	"errors"
)

// Standard errors for database operations.
// Use errors.Is() to check these error types in calling code.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint violation (e.g., duplicate email).
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection indicates a failure to connect to or communicate with the database.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure (syntax error, invalid reference, etc.).
	ErrQuery = errors.New("query error")

	// ErrMissingReference indicates a guarded write was cancelled because the
	// record it points at no longer exists.
	ErrMissingReference = errors.New("referenced record missing")
)

// MissingReferenceMarker is the message thrown by guarded writes when their
// referenced record is absent. The driver surfaces it as ErrMissingReference.
const MissingReferenceMarker = "missing reference"

// Database defines the interface for database operations
type Database interface {
	// Connection management
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query executes a query and returns results
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)

	// QueryOne executes a query and returns a single result
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)

	// Execute runs a query without returning results (for mutations)
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
}

// Config holds database configuration
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}
