package onedb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Query prepares the statement, infers a kind tag per argument, binds the
// arguments positionally, executes once and returns the handle. Failures
// come back as PrepareError, BindError or ExecuteError.
func (m *Manager) Query(ctx context.Context, query string, args ...any) (*Statement, error) {
	return m.QueryParams(ctx, query, inferParams(args))
}

// QueryParams is Query with caller-supplied tagged parameters, for callers
// that want to pick the kinds themselves instead of relying on inference.
func (m *Manager) QueryParams(ctx context.Context, query string, params []Param) (*Statement, error) {
	if m == nil || m.db == nil {
		return nil, &ConnectionError{Err: sql.ErrConnDone}
	}
	start := time.Now()
	st, err := m.queryParams(ctx, query, params)
	m.logQuery(ctx, query, len(params), time.Since(start), err)
	return st, err
}

func (m *Manager) queryParams(ctx context.Context, query string, params []Param) (*Statement, error) {
	stmt, cached, err := m.prepare(ctx, query)
	if err != nil {
		return nil, &PrepareError{Query: query, Err: err}
	}
	s := &Statement{query: query, types: typeString(params), stmt: stmt, cached: cached}
	bound := bindArgs(params)
	if returnsRows(query) {
		rows, err := stmt.QueryContext(ctx, bound...)
		if err != nil {
			_ = s.Close()
			return nil, execStageError(query, err)
		}
		s.rows = rows
		return s, nil
	}
	res, err := stmt.ExecContext(ctx, bound...)
	if err != nil {
		_ = s.Close()
		return nil, execStageError(query, err)
	}
	if id, err := res.LastInsertId(); err == nil && id > 0 {
		m.lastInsertID.Store(id)
	}
	s.result = res
	return s, nil
}

// prepare routes through the open transaction when there is one, otherwise
// through the statement cache if enabled, otherwise straight to the handle.
func (m *Manager) prepare(ctx context.Context, query string) (*sql.Stmt, bool, error) {
	m.mu.Lock()
	tx := m.tx
	m.mu.Unlock()
	if tx != nil {
		st, err := tx.PrepareContext(ctx, query)
		return st, false, err
	}
	if m.cache != nil {
		return m.cache.getOrPrepare(ctx, m.db, query)
	}
	st, err := m.db.PrepareContext(ctx, query)
	return st, false, err
}

// execStageError classifies an execution failure. database/sql enforces the
// driver's placeholder count itself and reports a mismatch as
// "sql: expected N arguments, got M"; that becomes BindError, everything
// else ExecuteError. Counting placeholders in the statement text would
// misread a literal ? inside a string, so the statement is never parsed.
func execStageError(query string, err error) error {
	var want, got int
	if n, _ := fmt.Sscanf(err.Error(), "sql: expected %d arguments, got %d", &want, &got); n == 2 {
		return &BindError{Query: query, Want: want, Got: got}
	}
	return &ExecuteError{Query: query, Err: err}
}

// returnsRows reports whether the statement's leading keyword produces a
// result set.
func returnsRows(query string) bool {
	q := strings.TrimSpace(query)
	if i := strings.IndexFunc(q, unicode.IsSpace); i > 0 {
		q = q[:i]
	}
	switch strings.ToUpper(q) {
	case "SELECT", "SHOW", "DESCRIBE", "DESC", "EXPLAIN", "WITH":
		return true
	}
	return false
}
