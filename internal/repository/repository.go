package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"pharmacy/m/domain"
	"pharmacy/m/internal/database"
)

// Repository executes one parameterized statement per call against the
// Employees, Medicines and Suppliers relations.
type Repository struct {
	db      *sqlx.DB
	dialect database.Dialect
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db, dialect: database.DialectOf(db)}
}

// Ping reports whether the store is reachable right now.
func (r *Repository) Ping(ctx context.Context) error {
	return database.Probe(ctx, r.db)
}

// insert runs an INSERT ... RETURNING statement and reports the assigned id.
func (r *Repository) insert(ctx context.Context, op, query string, args ...any) (int64, domain.Result, error) {
	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(query), args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ResultNotFound, nil
	}
	if err != nil {
		return 0, domain.ResultFault, database.Classify(op, err)
	}
	return id, domain.ResultSuccess, nil
}

// exec runs an UPDATE or DELETE and maps zero affected rows to NotFound.
func (r *Repository) exec(ctx context.Context, op, query string, args ...any) (domain.Result, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return domain.ResultFault, database.Classify(op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.ResultFault, database.Classify(op, err)
	}
	if affected == 0 {
		return domain.ResultNotFound, nil
	}
	return domain.ResultSuccess, nil
}

func (r *Repository) selectRows(ctx context.Context, op string, dest any, query string, args ...any) error {
	if err := r.db.SelectContext(ctx, dest, r.db.Rebind(query), args...); err != nil {
		return database.Classify(op, err)
	}
	return nil
}
