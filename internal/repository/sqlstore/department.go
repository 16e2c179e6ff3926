package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"sellerstore/internal/domain"
	"sellerstore/internal/repository"
)

// DepartmentRepository implements repository.DepartmentRepository over a DBTX
type DepartmentRepository struct {
	db      repository.DBTX
	dialect Dialect
}

var _ repository.DepartmentRepository = (*DepartmentRepository)(nil)

// NewDepartmentRepository creates a department repository on an open connection
func NewDepartmentRepository(db repository.DBTX, dialect Dialect) *DepartmentRepository {
	return &DepartmentRepository{db: db, dialect: dialect}
}

// Insert stores a department. A positive dep.ID is kept as the key,
// otherwise the generated id is assigned to dep.ID.
func (r *DepartmentRepository) Insert(ctx context.Context, dep *domain.Department) error {
	const op = "insert department"
	if dep == nil {
		return repository.NewStoreError(op, errNilDepartment)
	}

	if dep.ID > 0 {
		if _, err := r.db.ExecContext(ctx,
			r.dialect.Rebind(`INSERT INTO department (Id, Name) VALUES (?, ?)`), dep.ID, dep.Name); err != nil {
			return repository.NewStoreError(op, err)
		}
		if r.dialect == DialectPostgres {
			// explicit keys bypass the SERIAL sequence
			_, err := r.db.ExecContext(ctx,
				`SELECT setval(pg_get_serial_sequence('department', 'id'), (SELECT MAX(Id) FROM department))`)
			return repository.NewStoreError(op, err)
		}
		return nil
	}

	if r.dialect.returningID() {
		err := r.db.QueryRowContext(ctx,
			r.dialect.Rebind(`INSERT INTO department (Name) VALUES (?) RETURNING Id`), dep.Name).Scan(&dep.ID)
		if errors.Is(err, sql.ErrNoRows) {
			return repository.NewStoreError(op, repository.ErrNoRowsAffected)
		}
		return repository.NewStoreError(op, err)
	}

	res, err := r.db.ExecContext(ctx, `INSERT INTO department (Name) VALUES (?)`, dep.Name)
	if err != nil {
		return repository.NewStoreError(op, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return repository.NewStoreError(op, err)
	}
	dep.ID = int(id)
	return nil
}

// FindByID retrieves a department, or nil if absent
func (r *DepartmentRepository) FindByID(ctx context.Context, id int) (*domain.Department, error) {
	var row departmentRow
	err := r.db.QueryRowContext(ctx,
		r.dialect.Rebind(`SELECT `+departmentColumns+` FROM department WHERE Id = ?`), id).Scan(row.scanArgs()...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, repository.NewStoreError("find department", err)
	}
	return row.toDomain(), nil
}

// FindAll returns every department ordered by name
func (r *DepartmentRepository) FindAll(ctx context.Context) ([]*domain.Department, error) {
	const op = "find all departments"

	rows, err := r.db.QueryContext(ctx, `SELECT `+departmentColumns+` FROM department ORDER BY Name`)
	if err != nil {
		return nil, repository.NewStoreError(op, err)
	}
	defer rows.Close()

	deps := make([]*domain.Department, 0)
	for rows.Next() {
		var row departmentRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, repository.NewStoreError(op, err)
		}
		deps = append(deps, row.toDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, repository.NewStoreError(op, err)
	}
	return deps, nil
}
