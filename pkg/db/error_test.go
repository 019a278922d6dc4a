package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUndefinedTable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"postgres", fmt.Errorf("scan: %w", &pgconn.PgError{Code: "42P01"}), true},
		{"postgres other code", &pgconn.PgError{Code: "23505"}, false},
		{"sqlite", errors.New("no such table: customer_offers"), true},
		{"mysql", errors.New("Error 1146 (42S02): Table 'rooms.customer_offers' doesn't exist"), true},
		{"unrelated", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUndefinedTable(tt.err))
		})
	}
}

func TestDialect(t *testing.T) {
	for _, typ := range []string{"postgres", "mysql", "sqlite"} {
		d, err := Dialect(Config{Type: typ, Host: "localhost", Port: "5432", Name: "rooms"})
		assert.NoError(t, err, typ)
		assert.NotNil(t, d, typ)
	}

	_, err := Dialect(Config{Type: "oracle"})
	assert.Error(t, err)
}
