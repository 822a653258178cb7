package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes used by the repositories
const (
	CodeUndefinedColumn     = "42703"
	CodeUndefinedTable      = "42P01"
	CodeForeignKeyViolation = "23503"
	CodeUniqueViolation     = "23505"
)

// IsUndefinedColumn reports whether err is a PostgreSQL "column does not exist" error
// for the given column. Both the SQLSTATE and the column name must match.
func IsUndefinedColumn(err error, column string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != CodeUndefinedColumn {
		return false
	}
	return pgErr.ColumnName == column || strings.Contains(pgErr.Message, column)
}

// IsForeignKeyViolation reports a 23503 error, e.g. a junction insert that
// references an id which no longer exists.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == CodeForeignKeyViolation
}
