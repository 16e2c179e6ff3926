package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"sellerstore/internal/domain"
	"sellerstore/internal/repository"
)

const (
	sellerInsertSQL = `INSERT INTO seller (Name, Email, BirthDate, BaseSalary, DepartmentId)
		VALUES (?, ?, ?, ?, ?)`

	sellerUpdateSQL = `UPDATE seller
		SET Name = ?, Email = ?, BirthDate = ?, BaseSalary = ?, DepartmentId = ?
		WHERE Id = ?`

	sellerDeleteSQL = `DELETE FROM seller WHERE Id = ?`

	sellerByIDSQL = sellerJoin + `
		WHERE seller.Id = ?`

	sellerAllSQL = sellerJoin + `
		ORDER BY seller.Name`

	sellerByDepartmentSQL = sellerJoin + `
		WHERE seller.DepartmentId = ?
		ORDER BY seller.Name`
)

var (
	errNilSeller     = errors.New("seller is nil")
	errNilDepartment = errors.New("department is nil")
)

// SellerRepository implements repository.SellerRepository over a DBTX
type SellerRepository struct {
	db      repository.DBTX
	dialect Dialect
}

var _ repository.SellerRepository = (*SellerRepository)(nil)

// NewSellerRepository creates a seller repository on an open connection.
// The repository never closes db.
func NewSellerRepository(db repository.DBTX, dialect Dialect) *SellerRepository {
	return &SellerRepository{db: db, dialect: dialect}
}

func (r *SellerRepository) prepare(ctx context.Context, query string) (*sql.Stmt, error) {
	return r.db.PrepareContext(ctx, r.dialect.Rebind(query))
}

// Insert stores a new seller and assigns the generated id to seller.ID
func (r *SellerRepository) Insert(ctx context.Context, seller *domain.Seller) error {
	const op = "insert seller"
	if seller == nil {
		return repository.NewStoreError(op, errNilSeller)
	}

	if r.dialect.returningID() {
		return r.insertReturning(ctx, seller)
	}

	stmt, err := r.prepare(ctx, sellerInsertSQL)
	if err != nil {
		return repository.NewStoreError(op, err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, sellerWriteArgs(seller)...)
	if err != nil {
		return repository.NewStoreError(op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return repository.NewStoreError(op, err)
	}
	if n == 0 {
		return repository.NewStoreError(op, repository.ErrNoRowsAffected)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return repository.NewStoreError(op, err)
	}
	seller.ID = int(id)
	return nil
}

// insertReturning reads the generated key in the same round trip.
// No returned row means no row was written.
func (r *SellerRepository) insertReturning(ctx context.Context, seller *domain.Seller) error {
	const op = "insert seller"

	stmt, err := r.prepare(ctx, sellerInsertSQL+" RETURNING Id")
	if err != nil {
		return repository.NewStoreError(op, err)
	}
	defer stmt.Close()

	var id int
	err = stmt.QueryRowContext(ctx, sellerWriteArgs(seller)...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return repository.NewStoreError(op, repository.ErrNoRowsAffected)
	}
	if err != nil {
		return repository.NewStoreError(op, err)
	}
	seller.ID = id
	return nil
}

// Update overwrites all mutable columns of the seller with seller.ID.
// Matching no row is not an error.
func (r *SellerRepository) Update(ctx context.Context, seller *domain.Seller) error {
	const op = "update seller"
	if seller == nil {
		return repository.NewStoreError(op, errNilSeller)
	}

	stmt, err := r.prepare(ctx, sellerUpdateSQL)
	if err != nil {
		return repository.NewStoreError(op, err)
	}
	defer stmt.Close()

	args := append(sellerWriteArgs(seller), seller.ID)
	if _, err := stmt.ExecContext(ctx, args...); err != nil {
		return repository.NewStoreError(op, err)
	}
	return nil
}

// DeleteByID removes a seller. Deleting a missing id is a no-op.
func (r *SellerRepository) DeleteByID(ctx context.Context, id int) error {
	const op = "delete seller"

	stmt, err := r.prepare(ctx, sellerDeleteSQL)
	if err != nil {
		return repository.NewStoreError(op, err)
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, id); err != nil {
		return repository.NewStoreError(op, err)
	}
	return nil
}

// FindByID retrieves a single seller with its department, or nil if absent
func (r *SellerRepository) FindByID(ctx context.Context, id int) (*domain.Seller, error) {
	const op = "find seller"

	stmt, err := r.prepare(ctx, sellerByIDSQL)
	if err != nil {
		return nil, repository.NewStoreError(op, err)
	}
	defer stmt.Close()

	var row sellerRow
	err = stmt.QueryRowContext(ctx, id).Scan(row.scanArgs()...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, repository.NewStoreError(op, err)
	}

	return row.toDomain(row.department()), nil
}

// FindAll returns every seller ordered by name
func (r *SellerRepository) FindAll(ctx context.Context) ([]*domain.Seller, error) {
	return r.query(ctx, "find all sellers", sellerAllSQL)
}

// FindByDepartment returns the sellers of dep ordered by name.
// Only dep.ID is read.
func (r *SellerRepository) FindByDepartment(ctx context.Context, dep *domain.Department) ([]*domain.Seller, error) {
	const op = "find sellers by department"
	if dep == nil {
		return nil, repository.NewStoreError(op, errNilDepartment)
	}
	return r.query(ctx, op, sellerByDepartmentSQL, dep.ID)
}

// query runs a joined seller select and hydrates the result set. Sellers
// sharing a DepartmentId get the same *domain.Department; the first row
// seen for an id builds it. The lookup lives only for this call.
func (r *SellerRepository) query(ctx context.Context, op, query string, args ...any) ([]*domain.Seller, error) {
	stmt, err := r.prepare(ctx, query)
	if err != nil {
		return nil, repository.NewStoreError(op, err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, repository.NewStoreError(op, err)
	}
	defer rows.Close()

	sellers := make([]*domain.Seller, 0)
	departments := make(map[int]*domain.Department)

	for rows.Next() {
		var row sellerRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, repository.NewStoreError(op, err)
		}

		dep, ok := departments[row.DepartmentID]
		if !ok {
			dep = row.department()
			departments[row.DepartmentID] = dep
		}

		sellers = append(sellers, row.toDomain(dep))
	}

	if err := rows.Err(); err != nil {
		return nil, repository.NewStoreError(op, err)
	}

	return sellers, nil
}
