// Package repository implements MySQL persistence for identities, roles and
// the catalog hierarchy.  Repositories return the typed sentinel errors
// below instead of leaking driver errors, so handlers can map failures to
// HTTP statuses without inspecting error strings.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert or update violates a unique
// constraint, e.g. registering an email twice.
var ErrDuplicate = errors.New("duplicate")

// ErrConflict is returned when an operation is blocked by dependent rows,
// e.g. deleting a country that still has states.
var ErrConflict = errors.New("conflict")

// ErrUnavailable is returned when the store cannot be reached or the
// caller's deadline expired.  Transient; never retried here.
var ErrUnavailable = errors.New("store unavailable")

// classify maps a raw database error onto the sentinel taxonomy.  MySQL
// error numbers are matched by text because database/sql does not expose
// them in a driver-neutral way: 1062 duplicate key, 1451 row referenced by
// children, 1452 missing parent row.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrUnavailable
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "1062"):
		return ErrDuplicate
	case strings.Contains(msg, "1451"):
		return ErrConflict
	case strings.Contains(msg, "1452"):
		return ErrNotFound // parent row absent
	}
	return err
}
