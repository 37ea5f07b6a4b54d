// Package onedb manages a single MySQL connection per process.
//
// # Overview
//
// onedb wraps database/sql and the go-sql-driver/mysql driver behind a
// lazily created, process-wide singleton that owns exactly one connection.
// It offers:
//   - Prepared-statement query helpers with positional parameter binding
//   - Bind-parameter kind inference (integer, float, text, blob)
//   - Fetch utilities returning rows as column-name-to-value maps
//   - Transaction pass-throughs on the same single connection
//   - Typed, stage-classified errors instead of process termination
//   - Structured logging with slow statement detection
//
// # Quick Start
//
//	import "github.com/onedb-go/onedb"
//
//	db, err := onedb.Acquire("localhost", "root", "secret", "appdb", "utf8mb4")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Close()
//
//	ctx := context.Background()
//	rows, err := db.FetchAll(ctx, "SELECT id, name FROM users WHERE status = ?", "active")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, row := range rows {
//		fmt.Println(row["id"], row["name"])
//	}
//
// A second Acquire before Close returns the existing instance unchanged;
// credentials passed to it are ignored. After Close the slot is empty and
// the next Acquire builds a fresh instance from its own arguments.
//
// # Transactions
//
// BeginTransaction, Commit and Rollback are direct pass-throughs. While a
// transaction is open every statement on the manager runs inside it, since
// there is only the one connection:
//
//	if err := db.BeginTransaction(ctx); err != nil { ... }
//	if _, err := db.Query(ctx, "INSERT INTO t(a) VALUES(?)", 1); err != nil {
//		_ = db.Rollback()
//		return err
//	}
//	return db.Commit()
//
// WithinTx wraps the same flow with commit-on-nil and rollback-on-error.
//
// # Errors
//
// Every failure is returned as one of four stage errors: ConnectionError,
// PrepareError, BindError or ExecuteError. The underlying driver error
// stays reachable through errors.As, including *mysql.MySQLError.
//
// # Configuration
//
// Besides the five-argument Acquire, AcquireConfig takes a full Config and
// AcquireEnv reads ONEDB_MYSQL_* environment variables.
package onedb

// Version returns the current library version.
func Version() string { return "v0.1.0" }
