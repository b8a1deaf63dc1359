// Package postgres is the durable storage backend. Repositories follow the
// same caller-visible semantics as the in-memory backend; review cleanup on
// place deletion additionally rides the schema's ON DELETE CASCADE.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/stayhub/stayhub/internal/domain/entity"
)

// DB is the subset of pgxpool.Pool the repositories use. pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const uniqueViolation = "23505"

// translate maps driver errors onto the domain taxonomy. The unique-email
// index is a second line of defense behind the reservation registry.
func translate(err error, attr, value string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return &entity.ConflictError{Attribute: attr, Value: value}
	}
	return err
}
