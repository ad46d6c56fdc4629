// Package store scopes database resource acquisition to a single unit of
// work. Every repository call in the service runs inside WithTx; it is the
// only place commit and rollback decisions are made.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrUnavailable means a connection could not be acquired at all. Handlers
// map it to 503 rather than 500 so clients can tell "store down" apart from
// "query failed".
var ErrUnavailable = errors.New("database unavailable")

// Code classifies a store-level failure for response mapping.
type Code string

const (
	CodeDuplicateKey        Code = "duplicate_key"
	CodeForeignKeyViolation Code = "foreign_key_violation"
	CodeGeneric             Code = "store_error"
)

// StoreError wraps a driver error with its classification. The underlying
// error text is surfaced in responses as a diagnostic, not a stable contract.
type StoreError struct {
	Code Code
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error (%s): %v", e.Code, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// WithTx acquires a dedicated connection and a transaction on it, runs fn,
// commits if fn returns nil and rolls back otherwise. The transaction is
// always finalized before the connection is released; the connection is
// exclusive to this call for its whole duration. fn is never invoked when
// acquisition fails.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	// No-op once Commit has succeeded; guarantees rollback on every other
	// exit path, and runs before the connection is closed.
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return classify(err)
	}
	if err := tx.Commit(); err != nil {
		return classify(err)
	}
	return nil
}

// classify maps Postgres SQLSTATEs onto the error taxonomy: 23505
// (unique_violation) and 23503 (foreign_key_violation) get their own codes,
// every other driver error is generic, and non-driver errors pass through
// untouched so sentinel values from units of work keep working with
// errors.Is.
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return &StoreError{Code: CodeDuplicateKey, Err: err}
		case "23503":
			return &StoreError{Code: CodeForeignKeyViolation, Err: err}
		}
		return &StoreError{Code: CodeGeneric, Err: err}
	}
	return err
}

func IsDuplicate(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Code == CodeDuplicateKey
}

func IsForeignKey(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Code == CodeForeignKeyViolation
}

func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
