// Package repository holds the MySQL data access layer. Lookups that find
// nothing return one of the sentinel errors below rather than sql.ErrNoRows,
// so handlers can map them to HTTP statuses without importing database/sql.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrDirectorNotFound   = errors.New("director not found")
	ErrGenreNotFound      = errors.New("genre not found")
	ErrMovieNotFound      = errors.New("movie not found")
	ErrCinemaNotFound     = errors.New("cinema not found")
	ErrAuditoriumNotFound = errors.New("auditorium not found")
	ErrFunctionNotFound   = errors.New("function not found")
	ErrUserNotFound       = errors.New("user not found")
)

// ErrNameTaken is returned when a unique name (director, genre) already exists.
var ErrNameTaken = errors.New("name already exists")

// ErrEmailExists is returned when registering an email that is already used.
var ErrEmailExists = errors.New("email already exists")

// ErrDuplicateFunction is returned when an insert collides with another
// function starting at the same instant in the same auditorium. It signals a
// lost race; callers retry the whole admission.
var ErrDuplicateFunction = errors.New("function slot already taken")

// ErrConflict is returned when a delete cannot be performed because other
// rows still reference the record (e.g. a movie with scheduled functions).
var ErrConflict = errors.New("conflict")

// MySQL server error numbers we branch on.
const (
	mysqlDuplicateEntry  = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
	mysqlCheckViolated   = 3819
)

func mysqlErrNumber(err error) uint16 {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number
	}
	return 0
}

func isDuplicate(err error) bool { return mysqlErrNumber(err) == mysqlDuplicateEntry }
func isReferenced(err error) bool { return mysqlErrNumber(err) == mysqlRowIsReferenced }
func isMissingParent(err error) bool { return mysqlErrNumber(err) == mysqlNoReferencedRow }
func isCheckViolated(err error) bool { return mysqlErrNumber(err) == mysqlCheckViolated }
