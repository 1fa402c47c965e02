package repo

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/internal/domain"
)

// Postgres error codes translated at the repo boundary so raw SQLSTATE values
// never leak past this package.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// translateErr maps low-level pgx errors onto the domain error taxonomy.
// Unique violations become ErrConflict; foreign-key, not-null, and check
// violations become ErrValidation (the service layer usually catches these
// earlier with a friendlier message — this is the backstop). Anything
// unrecognized passes through unchanged.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: invalid reference (%s)", domain.ErrValidation, pgErr.ConstraintName)
		case pgNotNullViolation:
			return fmt.Errorf("%w: %s is required", domain.ErrValidation, pgErr.ColumnName)
		case pgCheckViolation:
			return fmt.Errorf("%w: %s", domain.ErrValidation, pgErr.ConstraintName)
		}
	}
	return err
}
