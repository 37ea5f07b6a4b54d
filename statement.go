package onedb

import "database/sql"

// Statement is the transient handle returned by Query: a prepared statement
// that has already been executed once. Either Rows or Result is populated,
// depending on whether the statement produces a result set.
type Statement struct {
	query  string
	types  string
	stmt   *sql.Stmt
	cached bool
	rows   *sql.Rows
	result sql.Result
}

// Rows returns the result set, or nil for statements executed through the
// exec path (INSERT, UPDATE, DDL, ...).
func (s *Statement) Rows() *sql.Rows { return s.rows }

// Result returns the exec result, or nil for result-set statements.
func (s *Statement) Result() sql.Result { return s.result }

// TypeString returns the concatenated bind-parameter type tags, e.g. "isd".
func (s *Statement) TypeString() string { return s.types }

// SQL returns the statement text as prepared.
func (s *Statement) SQL() string { return s.query }

// Close releases the result set and, unless the prepared statement lives in
// the manager's statement cache, the statement itself.
func (s *Statement) Close() error {
	if s == nil {
		return nil
	}
	var first error
	if s.rows != nil {
		first = s.rows.Close()
		s.rows = nil
	}
	if s.stmt != nil && !s.cached {
		if err := s.stmt.Close(); err != nil && first == nil {
			first = err
		}
		s.stmt = nil
	}
	return first
}
