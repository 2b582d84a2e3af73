package postgres

import (
	"context"
	"errors"
	"fmt"

	"wallet-core/internal/core/ports"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE classes the services need to distinguish.
const (
	codeUniqueViolation  = "23505"
	codeSerialization    = "40001"
	codeDeadlockDetected = "40P01"
	codeLockNotAvailable = "55P03"
)

// classify maps low-level store errors onto the port sentinels where
// callers must distinguish outcomes: uniqueness conflicts and retryable
// faults. Anything else is wrapped unchanged.
func classify(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%s: %w: %s", op, ports.ErrConflict, pgErr.ConstraintName)
		case codeSerialization, codeDeadlockDetected, codeLockNotAvailable:
			return fmt.Errorf("%s: %w: %s", op, ports.ErrSerialization, pgErr.Message)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %v", op, ports.ErrSerialization, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
