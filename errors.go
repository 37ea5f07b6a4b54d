package onedb

import (
	"errors"
	"fmt"

	mysql "github.com/go-sql-driver/mysql"
)

// ConnectionError reports a failure to establish or keep the connection:
// host unreachable, authentication failure, bad charset.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string { return "connection: " + e.Err.Error() }
func (e *ConnectionError) Unwrap() error { return e.Err }

// PrepareError reports a statement that the server refused to prepare.
type PrepareError struct {
	Query string
	Err   error
}

func (e *PrepareError) Error() string { return "prepare: " + e.Err.Error() }
func (e *PrepareError) Unwrap() error { return e.Err }

// BindError reports a placeholder/parameter count mismatch detected before
// execution.
type BindError struct {
	Query string
	Want  int // placeholders in the statement
	Got   int // parameters supplied
}

func (e *BindError) Error() string {
	return fmt.Sprintf("bind: statement has %d placeholders, got %d parameters", e.Want, e.Got)
}

// ExecuteError reports a failure while executing a prepared statement or a
// transaction control: constraint violation, connection loss, server-side
// failure.
type ExecuteError struct {
	Query string
	Err   error
}

func (e *ExecuteError) Error() string { return "execute: " + e.Err.Error() }
func (e *ExecuteError) Unwrap() error { return e.Err }

// ErrorNumber returns the MySQL server error number carried by err, or 0
// when err does not wrap a *mysql.MySQLError.
func ErrorNumber(err error) uint16 {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number
	}
	return 0
}
