package repository

import (
	"context"
	"database/sql"

	"sellerstore/internal/domain"
)

// DBTX is the connection contract the repositories run their statements on.
// It is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type DBTX interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
	_ DBTX = (*sql.Conn)(nil)
)

// SellerRepository defines data access for sellers joined with their department
type SellerRepository interface {
	// Write operations
	Insert(ctx context.Context, seller *domain.Seller) error
	Update(ctx context.Context, seller *domain.Seller) error
	DeleteByID(ctx context.Context, id int) error

	// Read operations. FindByID returns nil, nil when no seller matches.
	FindByID(ctx context.Context, id int) (*domain.Seller, error)
	FindAll(ctx context.Context) ([]*domain.Seller, error)
	FindByDepartment(ctx context.Context, dep *domain.Department) ([]*domain.Seller, error)
}

// DepartmentRepository defines data access for department reference data
type DepartmentRepository interface {
	Insert(ctx context.Context, dep *domain.Department) error
	FindByID(ctx context.Context, id int) (*domain.Department, error)
	FindAll(ctx context.Context) ([]*domain.Department, error)
}
