package sqlstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"sellerstore/internal/domain"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// ============================================================================
// Date Column
// ============================================================================

// dateColumn scans a DATE column. Drivers disagree on the Go type: pgx and
// modernc return time.Time when they recognise the declared type, otherwise
// the stored text comes back as string or []byte.
type dateColumn struct {
	Time  time.Time
	Valid bool
}

// Scan implements sql.Scanner
func (d *dateColumn) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = dateColumn{}
		return nil
	case time.Time:
		d.Time, d.Valid = domain.DateOf(v), true
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into date", src)
	}
}

func (d *dateColumn) parse(s string) error {
	if len(s) < len(domain.DateLayout) {
		return fmt.Errorf("invalid date %q", s)
	}
	t, err := time.Parse(domain.DateLayout, s[:len(domain.DateLayout)])
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time, d.Valid = t, true
	return nil
}

// dateToArg formats a birth date for binding. Text is accepted for DATE by
// both SQLite and PostgreSQL and round-trips without a timezone.
func dateToArg(t time.Time) string {
	return domain.DateOf(t).Format(domain.DateLayout)
}

// ============================================================================
// Seller Row Scanner
// ============================================================================

// sellerColumns returns the SELECT column list for joined seller queries
const sellerColumns = `seller.Id, seller.Name, seller.Email, seller.BirthDate,
	seller.BaseSalary, seller.DepartmentId, department.Name AS DepName`

// sellerJoin is the shared SELECT ... FROM ... INNER JOIN prefix
const sellerJoin = `SELECT ` + sellerColumns + `
	FROM seller INNER JOIN department
	ON seller.DepartmentId = department.Id`

// sellerRow holds all columns from a joined seller query for scanning
type sellerRow struct {
	ID             int
	Name           string
	Email          string
	BirthDate      dateColumn
	BaseSalary     decimal.Decimal
	DepartmentID   int
	DepartmentName sql.NullString
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match sellerColumns order exactly:
// Id, Name, Email, BirthDate, BaseSalary, DepartmentId, DepName
func (r *sellerRow) scanArgs() []any {
	return []any{
		&r.ID,             // 1
		&r.Name,           // 2
		&r.Email,          // 3
		&r.BirthDate,      // 4
		&r.BaseSalary,     // 5
		&r.DepartmentID,   // 6
		&r.DepartmentName, // 7
	}
}

// department builds the Department carried by the row
func (r *sellerRow) department() *domain.Department {
	return &domain.Department{
		ID:   r.DepartmentID,
		Name: nullToString(r.DepartmentName),
	}
}

// toDomain converts the scanned row to a domain.Seller owned by dep
func (r *sellerRow) toDomain(dep *domain.Department) *domain.Seller {
	return &domain.Seller{
		ID:         r.ID,
		Name:       r.Name,
		Email:      r.Email,
		BirthDate:  r.BirthDate.Time,
		BaseSalary: r.BaseSalary,
		Department: dep,
	}
}

// ============================================================================
// Department Row Scanner
// ============================================================================

const departmentColumns = `Id, Name`

type departmentRow struct {
	ID   int
	Name sql.NullString
}

// scanArgs MUST match departmentColumns order: Id, Name
func (r *departmentRow) scanArgs() []any {
	return []any{&r.ID, &r.Name}
}

func (r *departmentRow) toDomain() *domain.Department {
	return &domain.Department{ID: r.ID, Name: nullToString(r.Name)}
}

// ============================================================================
// Seller Write Helpers
// ============================================================================

// sellerWriteArgs prepares the mutable columns in statement order:
// Name, Email, BirthDate, BaseSalary, DepartmentId
func sellerWriteArgs(s *domain.Seller) []any {
	return []any{
		s.Name,
		s.Email,
		dateToArg(s.BirthDate),
		s.BaseSalary,
		s.DepartmentID(),
	}
}
