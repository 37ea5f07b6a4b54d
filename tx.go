package onedb

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ErrTransactionOpen is returned by BeginTransaction while a transaction is
// already in progress. There is no nesting and no savepoint support.
var ErrTransactionOpen = errors.New("transaction already open")

// ErrNoTransaction is returned by Commit and Rollback without an open
// transaction.
var ErrNoTransaction = errors.New("no open transaction")

// BeginTransaction starts a transaction on the connection. Until Commit or
// Rollback, all statements on the manager run inside it. The caller owns
// the rollback: nothing is rolled back automatically on statement errors.
func (m *Manager) BeginTransaction(ctx context.Context) error {
	if m == nil || m.db == nil {
		return &ConnectionError{Err: sql.ErrConnDone}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tx != nil {
		return ErrTransactionOpen
	}
	start := time.Now()
	tx, err := m.db.BeginTx(ctx, nil)
	m.logTransaction(ctx, "begin", time.Since(start), err)
	if err != nil {
		return &ExecuteError{Query: "BEGIN", Err: err}
	}
	m.tx = tx
	return nil
}

// Commit commits the open transaction.
func (m *Manager) Commit() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tx == nil {
		return ErrNoTransaction
	}
	start := time.Now()
	err := m.tx.Commit()
	m.tx = nil
	m.logTransaction(context.Background(), "commit", time.Since(start), err)
	if err != nil {
		return &ExecuteError{Query: "COMMIT", Err: err}
	}
	return nil
}

// Rollback discards the open transaction.
func (m *Manager) Rollback() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tx == nil {
		return ErrNoTransaction
	}
	start := time.Now()
	err := m.tx.Rollback()
	m.tx = nil
	m.logTransaction(context.Background(), "rollback", time.Since(start), err)
	if err != nil {
		return &ExecuteError{Query: "ROLLBACK", Err: err}
	}
	return nil
}

// WithinTx runs fn inside a transaction: commit when fn returns nil,
// rollback when it returns an error. The fn error wins over the rollback
// error.
func (m *Manager) WithinTx(ctx context.Context, fn func(*Manager) error) error {
	if err := m.BeginTransaction(ctx); err != nil {
		return err
	}
	if err := fn(m); err != nil {
		_ = m.Rollback()
		return err
	}
	return m.Commit()
}
