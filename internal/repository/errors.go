// Package repository implements the data access layer over MySQL.
// This file defines error values shared across repositories and the
// translation from raw driver errors into them. Handlers never see
// MySQL error numbers; they match on these sentinels and map them to
// HTTP statuses.
package repository

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a requested row does not exist, or when
// an ownership-scoped lookup filters it out. The two cases are
// deliberately collapsed so responses do not reveal whether a foreign
// resource exists.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a unique key, such
// as adding the same card to the same deck section twice. Handlers
// should translate this into an HTTP 409 response.
var ErrDuplicate = errors.New("duplicate")

// ErrInvalidReference is returned when a foreign key check fails,
// e.g. adding a deck card that points at a card id that does not
// exist.
var ErrInvalidReference = errors.New("invalid reference")

// ErrMissingField is returned when a NOT NULL constraint rejects an
// insert or update.
var ErrMissingField = errors.New("missing required field")

// ErrConflict is returned when a delete cannot proceed because other
// rows still reference the target, such as removing a card that is
// still part of a deck. Handlers should translate this into an HTTP
// 409 response.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned by user creation when the email address
// is already registered.
var ErrEmailExists = errors.New("email already exists")

// MySQL server error numbers that the repositories care about.
const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrRowIsReferenced = 1451
	mysqlErrNoReferencedRow = 1452
	mysqlErrBadNull         = 1048
)

// translate maps a raw database error onto one of the sentinel values
// above. Unrecognized errors pass through unchanged so they surface as
// internal errors with full context in the logs.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlErrDuplicateEntry:
			return ErrDuplicate
		case mysqlErrRowIsReferenced:
			return ErrConflict
		case mysqlErrNoReferencedRow:
			return ErrInvalidReference
		case mysqlErrBadNull:
			return ErrMissingField
		}
	}
	return err
}
