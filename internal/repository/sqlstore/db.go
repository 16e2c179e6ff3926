package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// DB owns a connection pool and the schema for one dialect
type DB struct {
	db      *sql.DB
	dialect Dialect
}

// Open opens the database for the given driver name ("sqlite" or "pgx")
// and migrates the schema
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	dialect, err := ParseDialect(driver)
	if err != nil {
		return nil, err
	}

	if dialect == DialectSQLite {
		dsn = sqliteDSN(dsn)
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; an in-memory database also lives
	// only as long as its one connection.
	if dialect == DialectSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &DB{db: db, dialect: dialect}
	if err := store.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// sqliteDSN appends the pragmas the schema relies on unless the caller
// already set pragmas explicitly
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

func (d *DB) migrate(ctx context.Context) error {
	_, err := d.db.ExecContext(ctx, d.dialect.schema())
	return err
}

// Conn returns the underlying pool
func (d *DB) Conn() *sql.DB {
	return d.db
}

// Dialect returns the SQL dialect of the open database
func (d *DB) Dialect() Dialect {
	return d.dialect
}

// Sellers returns a seller repository running on the pool
func (d *DB) Sellers() *SellerRepository {
	return NewSellerRepository(d.db, d.dialect)
}

// Departments returns a department repository running on the pool
func (d *DB) Departments() *DepartmentRepository {
	return NewDepartmentRepository(d.db, d.dialect)
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}
