package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound indica que la fila pedida no existe.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate indica violación de una restricción UNIQUE.
	ErrDuplicate = errors.New("duplicate record")
	// ErrParentNotFound indica que la fila padre referenciada no existe.
	ErrParentNotFound = errors.New("parent record not found")
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// translateError mapea errores de pgx a los sentinelas del paquete.
// Las restricciones FK y UNIQUE las aplica la base, no chequeos previos.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return ErrParentNotFound
		case pgUniqueViolation:
			return ErrDuplicate
		}
	}
	return err
}
