package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes surfaced to callers as constraint failures
const (
	pgUniqueViolation  = "23505"
	pgCheckViolation   = "23514"
	pgNotNullViolation = "23502"
)

var (
	// ErrDuplicate is returned when a unique constraint rejects a write
	ErrDuplicate = errors.New("record already exists")
	// ErrConstraint is returned when a check or not-null constraint rejects a write
	ErrConstraint = errors.New("record violates a constraint")
)

// DBTX is the subset of *pgxpool.Pool used by the repositories.
// pgxmock's pool satisfies it too.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// ConstraintError carries the database message of a rejected write
type ConstraintError struct {
	kind   error
	detail string
}

func (e *ConstraintError) Error() string { return e.detail }

func (e *ConstraintError) Unwrap() error { return e.kind }

// translate maps constraint violations to ConstraintError and leaves every other error untouched
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return &ConstraintError{kind: ErrDuplicate, detail: pgErr.Message}
	case pgCheckViolation, pgNotNullViolation:
		return &ConstraintError{kind: ErrConstraint, detail: pgErr.Message}
	}
	return err
}
