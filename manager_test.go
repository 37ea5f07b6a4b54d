package onedb

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire_SecondCallReturnsSameInstance(t *testing.T) {
	m1, _ := newMockManager(t)

	// No driver work happens here: the slot is occupied, the arguments are
	// silently ignored.
	m2, err := Acquire("other-host", "other-user", "other-pass", "other-db", "latin1")
	require.NoError(t, err)
	assert.Same(t, m1, m2)
	assert.Empty(t, m2.Config().Host)
	assert.Empty(t, m2.Config().Username)
}

func TestAcquire_AfterCloseBuildsFreshInstance(t *testing.T) {
	m1, mock := newMockManager(t)
	mock.ExpectClose()
	require.NoError(t, m1.Close())
	require.NoError(t, mock.ExpectationsWereMet())

	dsn := "sqlmock_dsn_reacquire"
	_, mock2, err := sqlmock.NewWithDSN(dsn, sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock2.ExpectPing()

	m2, err := AcquireConfig(context.Background(), Config{
		Driver:   "sqlmock",
		DSN:      dsn,
		Host:     "db2.internal",
		Username: "user2",
		Password: "pass2",
		Database: "app2",
		Charset:  "utf8",
	})
	require.NoError(t, err)
	assert.NotSame(t, m1, m2)

	// Credentials match the second call, not any prior one.
	cfg := m2.Config()
	assert.Equal(t, "db2.internal", cfg.Host)
	assert.Equal(t, "user2", cfg.Username)
	assert.Equal(t, "pass2", cfg.Password)
	assert.Equal(t, "app2", cfg.Database)
	assert.Equal(t, "utf8", cfg.Charset)
}

func TestAcquireConfig_ConnectFailureLeavesSlotEmpty(t *testing.T) {
	resetSingleton()
	t.Cleanup(resetSingleton)

	dsn := "sqlmock_dsn_connfail"
	_, mock, err := sqlmock.NewWithDSN(dsn, sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing().WillReturnError(errors.New("access denied for user"))

	_, err = AcquireConfig(context.Background(), Config{Driver: "sqlmock", DSN: dsn})
	require.Error(t, err)
	var ce *ConnectionError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, err.Error(), "connection:")

	// The failed attempt must not occupy the slot.
	m, _ := newMockManager(t)
	assert.NotNil(t, m)
}

func TestPing(t *testing.T) {
	m, mock := newMockManager(t)
	mock.ExpectPing()
	require.NoError(t, m.Ping(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLastInsertId_ZeroBeforeAnyInsert(t *testing.T) {
	m, _ := newMockManager(t)
	assert.Zero(t, m.LastInsertId())
}
