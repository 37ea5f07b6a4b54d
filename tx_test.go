package onedb

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_CommitPersistsInsert(t *testing.T) {
	m, mock := newMockManager(t)
	ctx := context.Background()

	const ins = "INSERT INTO accounts(name) VALUES(?)"
	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(ins))
	prep.ExpectExec().WithArgs("alice").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	require.NoError(t, m.BeginTransaction(ctx))
	st, err := m.Query(ctx, ins, "alice")
	require.NoError(t, err)
	require.NoError(t, st.Close())
	require.NoError(t, m.Commit())
	assert.EqualValues(t, 7, m.LastInsertId())

	// After commit, statements route back to the plain handle.
	const sel = "SELECT id, name FROM accounts"
	prep2 := mock.ExpectPrepare(regexp.QuoteMeta(sel))
	prep2.ExpectQuery().WillReturnRows(
		sqlmock.NewRows([]string{"id", "name"}).AddRow(7, "alice"))

	rows, err := m.FetchAll(ctx, sel)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransaction_RollbackDiscardsInsert(t *testing.T) {
	m, mock := newMockManager(t)
	ctx := context.Background()

	const ins = "INSERT INTO accounts(name) VALUES(?)"
	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(ins))
	prep.ExpectExec().WithArgs("bob").WillReturnResult(sqlmock.NewResult(8, 1))
	mock.ExpectRollback()

	require.NoError(t, m.BeginTransaction(ctx))
	st, err := m.Query(ctx, ins, "bob")
	require.NoError(t, err)
	require.NoError(t, st.Close())
	require.NoError(t, m.Rollback())

	// The table is unchanged.
	const sel = "SELECT id FROM accounts"
	prep2 := mock.ExpectPrepare(regexp.QuoteMeta(sel))
	prep2.ExpectQuery().WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rows, err := m.FetchAll(ctx, sel)
	require.NoError(t, err)
	assert.Len(t, rows, 0)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBeginTransaction_NoNesting(t *testing.T) {
	m, mock := newMockManager(t)
	ctx := context.Background()

	mock.ExpectBegin()
	require.NoError(t, m.BeginTransaction(ctx))

	err := m.BeginTransaction(ctx)
	require.ErrorIs(t, err, ErrTransactionOpen)

	mock.ExpectRollback()
	require.NoError(t, m.Rollback())
}

func TestCommitRollback_WithoutTransaction(t *testing.T) {
	m, _ := newMockManager(t)
	require.ErrorIs(t, m.Commit(), ErrNoTransaction)
	require.ErrorIs(t, m.Rollback(), ErrNoTransaction)
}

func TestWithinTx_CommitsOnNil(t *testing.T) {
	m, mock := newMockManager(t)

	const ins = "INSERT INTO t(a) VALUES(?)"
	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(ins))
	prep.ExpectExec().WithArgs(1).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := m.WithinTx(context.Background(), func(m *Manager) error {
		st, err := m.Query(context.Background(), ins, 1)
		if err != nil {
			return err
		}
		return st.Close()
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	m, mock := newMockManager(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	sentinel := errors.New("boom")
	err := m.WithinTx(context.Background(), func(*Manager) error { return sentinel })
	require.ErrorIs(t, err, sentinel)
	require.NoError(t, mock.ExpectationsWereMet())
}
