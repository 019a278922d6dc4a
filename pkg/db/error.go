package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUndefinedTable = "42P01"

// IsUndefinedTable reports whether err means the queried table does not exist.
func IsUndefinedTable(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedTable
	}

	msg := err.Error()
	// SQLite
	if strings.Contains(msg, "no such table") {
		return true
	}
	// MySQL (error code 1146)
	return strings.Contains(msg, "Error 1146")
}
