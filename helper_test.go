package onedb

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// resetSingleton empties the process-wide slot so every test builds its own
// manager. Tests share the slot, so they must not run in parallel.
func resetSingleton() {
	instanceMu.Lock()
	m := instance
	instance = nil
	instanceMu.Unlock()
	if m != nil {
		_ = m.db.Close()
	}
}

// newMockManager acquires a fresh singleton backed by go-sqlmock. The DSN
// embeds the test name because sqlmock keys registered instances by DSN.
func newMockManager(t *testing.T) (*Manager, sqlmock.Sqlmock) {
	t.Helper()
	resetSingleton()
	dsn := fmt.Sprintf("sqlmock_dsn_%s", t.Name())
	_, mock, err := sqlmock.NewWithDSN(dsn, sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing()
	m, err := AcquireConfig(context.Background(), Config{Driver: "sqlmock", DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(resetSingleton)
	return m, mock
}
