package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Kardex-api/internal/domain"
)

// SQLSTATE relevantes.
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeCheckViolation       = "23514"
)

// isSerializationFailure verifica si PostgreSQL abortó la transacción por concurrencia.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeSerializationFailure || pgErr.Code == codeDeadlockDetected
	}
	return false
}

// isCheckViolation verifica si se violó un CHECK (ej. quantity >= 0).
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeCheckViolation
	}
	return false
}

// mapTxError traduce errores del motor a errores de dominio; el resto pasa intacto.
func mapTxError(err error) error {
	switch {
	case err == nil:
		return nil
	case isSerializationFailure(err):
		return domain.ErrTransactionConflict
	case isCheckViolation(err):
		return domain.ErrInsufficientStock
	}
	return err
}
