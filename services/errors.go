package services

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// The services distinguish primary-invariant failures, which abort an
// operation, from best-effort side effects whose failures are reported as
// warnings on the result. Controllers map these types onto HTTP statuses.

// ValidationError reports missing or malformed caller input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found." }

// InvalidStateError reports an operation attempted against an entity that is
// not in the state the operation requires.
type InvalidStateError struct {
	Msg string
}

func (e *InvalidStateError) Error() string { return e.Msg }

// ConflictError reports a uniqueness violation that the caller should treat
// as a clean conflict rather than an internal failure.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// DependencyError reports a failure of the persistence layer, the blob store
// or the payment gateway. The underlying cause is logged server-side; callers
// only see the operation description.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string { return "Failed to " + e.Op + "." }

func (e *DependencyError) Unwrap() error { return e.Err }

func dependencyErr(op string, err error) error {
	return &DependencyError{Op: op, Err: err}
}

// Warnings collects non-fatal side-effect failures so the primary result can
// still be returned to the caller.
type Warnings []string

func (w *Warnings) addf(format string, args ...interface{}) {
	*w = append(*w, fmt.Sprintf(format, args...))
}

const mysqlDuplicateEntry = 1062

// isDuplicateKey reports whether err is a MySQL unique-constraint violation.
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
