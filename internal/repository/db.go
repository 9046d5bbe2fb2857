package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode = "23505"
	// dataExceptionClass covers value too long, out of range and invalid encoding
	dataExceptionClass = "22"
)

var (
	// ErrNotFound is returned when no row matches the id and owner
	ErrNotFound = errors.New("record not found")
	// ErrUniqueViolation is returned when an insert or update hits a unique constraint
	ErrUniqueViolation = errors.New("unique constraint violation")
	// ErrInvalidValue is returned when the database rejects a value the caller supplied
	ErrInvalidValue = errors.New("invalid value")
)

// DBTX is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock pools
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// translate maps driver errors onto the repository sentinels
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == uniqueViolationCode:
			return fmt.Errorf("%s: %w (%s)", op, ErrUniqueViolation, pgErr.ConstraintName)
		case strings.HasPrefix(pgErr.Code, dataExceptionClass):
			return fmt.Errorf("%s: %w (%s)", op, ErrInvalidValue, pgErr.Code)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
