package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tripwallet/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes surfaced as distinct ledger errors.
const (
	codeLockNotAvailable    = "55P03"
	codeSerializationFail   = "40001"
	codeDeadlockDetected    = "40P01"
	codeCheckViolation      = "23514"
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// wrapError translates a pgx failure into the ledger error taxonomy.
// Lock timeouts, serialization failures and deadlocks become retryable
// contention errors; the non-negative-balance CHECK becomes insufficient
// funds; everything else is a persistence failure.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeLockNotAvailable, codeSerializationFail, codeDeadlockDetected:
			return apperror.ErrContention(fmt.Errorf("%s: %w", op, err))
		case codeCheckViolation:
			if strings.Contains(pgErr.ConstraintName, "balance") {
				return apperror.ErrInsufficientFunds()
			}
		}
		return apperror.ErrPersistence(fmt.Errorf("%s: %w", op, err))
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.ErrContention(fmt.Errorf("%s: %w", op, err))
	}

	return fmt.Errorf("%s: %w", op, err)
}

// isUniqueViolation reports whether err is a unique-constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}
