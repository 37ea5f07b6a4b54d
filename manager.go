package onedb

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// The process-wide singleton slot. Acquire fills it lazily, Close empties
// it. Guarded so concurrent Acquire/Close cannot race on the slot itself.
var (
	instanceMu sync.Mutex
	instance   *Manager
)

// Manager owns the single live connection handle. Per-statement use is
// still single-caller: the manager does not serialize query execution.
type Manager struct {
	cfg Config
	db  *sql.DB

	mu sync.Mutex // guards tx
	tx *sql.Tx

	lastInsertID atomic.Int64

	cache *stmtCache

	loggingEnabled     bool
	logger             *slog.Logger
	slowQueryThreshold time.Duration
}

// Acquire returns the process-wide manager, building it on first call.
// Connection establishment is synchronous: the handle is open and the
// charset applied before Acquire returns. If an instance already exists it
// is returned unchanged and the arguments are ignored; that matches the
// historical behavior and is kept deliberately.
func Acquire(host, username, password, database, charset string) (*Manager, error) {
	return AcquireConfig(context.Background(), Config{
		Host:     host,
		Username: username,
		Password: password,
		Database: database,
		Charset:  charset,
	})
}

// AcquireConfig is the general entry point behind Acquire.
func AcquireConfig(ctx context.Context, cfg Config) (*Manager, error) {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	if instance != nil {
		return instance, nil
	}
	m, err := open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	instance = m
	return m, nil
}

// AcquireEnv acquires the manager from ONEDB_MYSQL_* environment variables.
func AcquireEnv(ctx context.Context) (*Manager, error) {
	cfg := Config{}
	applyEnv(&cfg)
	return AcquireConfig(ctx, cfg)
}

func open(ctx context.Context, cfg Config) (*Manager, error) {
	if cfg.Driver == "" {
		cfg.Driver = "mysql"
	}
	dsn, err := dsnFromConfig(cfg)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	start := time.Now()
	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	// One owned handle, not a pool.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	m := &Manager{cfg: cfg, db: db}
	m.configureLogging(cfg.Logging)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		m.logConnection(ctx, "connect", time.Since(start), err)
		return nil, &ConnectionError{Err: err}
	}
	m.logConnection(ctx, "connect", time.Since(start), nil)
	return m, nil
}

// Config returns the settings the manager was built with.
func (m *Manager) Config() Config { return m.cfg }

// Ping verifies the connection is still alive.
func (m *Manager) Ping(ctx context.Context) error {
	if m == nil || m.db == nil {
		return &ConnectionError{Err: sql.ErrConnDone}
	}
	if err := m.db.PingContext(ctx); err != nil {
		return &ConnectionError{Err: err}
	}
	return nil
}

// LastInsertId returns the auto-generated id recorded by the most recent
// insert on this manager. Zero before any insert; repeated calls without an
// intervening insert return the same value.
func (m *Manager) LastInsertId() int64 {
	if m == nil {
		return 0
	}
	return m.lastInsertID.Load()
}

// Close closes the connection handle and clears the singleton slot, so a
// later Acquire builds a fresh instance with its own credentials.
func (m *Manager) Close() error {
	if m == nil || m.db == nil {
		return nil
	}
	instanceMu.Lock()
	if instance == m {
		instance = nil
	}
	instanceMu.Unlock()

	m.mu.Lock()
	if m.tx != nil {
		// an abandoned transaction would pin the connection
		_ = m.tx.Rollback()
		m.tx = nil
	}
	m.mu.Unlock()

	if m.cache != nil {
		m.cache.closeAll()
	}
	start := time.Now()
	err := m.db.Close()
	m.logConnection(context.Background(), "close", time.Since(start), err)
	return err
}
