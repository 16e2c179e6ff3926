package sqlstore

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect selects driver registration, placeholder style and schema
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "pgx"
)

// ParseDialect maps a configured driver name to a dialect
func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "pgx", "postgres", "postgresql":
		return DialectPostgres, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// DriverName is the database/sql driver registered for the dialect
func (d Dialect) DriverName() string {
	return string(d)
}

// Rebind rewrites positional ? placeholders into the dialect's form.
// Queries in this package never contain a literal question mark.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// returningID reports whether inserts read the generated key through
// RETURNING instead of sql.Result.LastInsertId
func (d Dialect) returningID() bool {
	return d == DialectPostgres
}

func (d Dialect) schema() string {
	if d == DialectPostgres {
		return postgresSchema
	}
	return sqliteSchema
}

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS department (
		Id INTEGER PRIMARY KEY,
		Name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS seller (
		Id INTEGER PRIMARY KEY AUTOINCREMENT,
		Name TEXT NOT NULL,
		Email TEXT NOT NULL,
		BirthDate DATE NOT NULL,
		BaseSalary DECIMAL NOT NULL,
		DepartmentId INTEGER NOT NULL REFERENCES department(Id)
	);

	CREATE INDEX IF NOT EXISTS idx_seller_department ON seller(DepartmentId);
	CREATE INDEX IF NOT EXISTS idx_seller_name ON seller(Name);
	`

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS department (
		Id SERIAL PRIMARY KEY,
		Name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS seller (
		Id SERIAL PRIMARY KEY,
		Name TEXT NOT NULL,
		Email TEXT NOT NULL,
		BirthDate DATE NOT NULL,
		BaseSalary NUMERIC(12,2) NOT NULL,
		DepartmentId INTEGER NOT NULL REFERENCES department(Id)
	);

	CREATE INDEX IF NOT EXISTS idx_seller_department ON seller(DepartmentId);
	CREATE INDEX IF NOT EXISTS idx_seller_name ON seller(Name);
	`
