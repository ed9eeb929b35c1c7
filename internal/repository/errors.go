package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgUniqueViolation is the SQLSTATE Postgres returns for unique constraint violations.
const pgUniqueViolation = "23505"

// EsDuplicado reports whether err comes from a unique constraint.
func EsDuplicado(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func EsNoEncontrado(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func paginar(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return page, limit
}

// pgForeignKeyViolation is raised when a delete would orphan referencing rows.
const pgForeignKeyViolation = "23503"

// EsReferenciado reports whether err comes from a foreign key constraint.
func EsReferenciado(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
