package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyErr(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "gorm translated", err: gorm.ErrDuplicatedKey, want: true},
		{name: "pgconn", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), want: true},
		{name: "pgconn other code", err: &pgconn.PgError{Code: "23503"}, want: false},
		{name: "lib/pq", err: &pq.Error{Code: "23505"}, want: true},
		{name: "sqlite", err: errors.New("constraint failed: UNIQUE constraint failed: products.slug (2067)"), want: true},
		{name: "mysql", err: errors.New("Error 1062 (23000): Duplicate entry 'loaf'"), want: true},
		{name: "other", err: errors.New("boom"), want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsDuplicateKeyErr(tc.err))
		})
	}
}

func TestClassify(t *testing.T) {
	assert.Nil(t, Classify(nil))

	plain := errors.New("syntax error")
	assert.Same(t, plain, Classify(plain))

	for _, err := range []error{
		driver.ErrBadConn,
		context.DeadlineExceeded,
		&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")},
	} {
		classified := Classify(err)
		assert.ErrorIs(t, classified, ErrUnavailable)
	}

	already := fmt.Errorf("%w: down", ErrUnavailable)
	assert.Same(t, already, Classify(already))
}

func TestPostgresDSN(t *testing.T) {
	assert.Equal(t, "postgres://u:p@db/app", Config{URL: "postgres://u:p@db/app"}.PostgresDSN())
	assert.Equal(t, "", Config{Type: "postgres"}.PostgresDSN())
	assert.Equal(t, "", Config{Type: "mysql", Host: "db"}.PostgresDSN())
	assert.Contains(t, Config{Type: "postgres", Host: "db", Port: "5432", Name: "app", User: "u", SSLMode: "disable"}.PostgresDSN(), "host=db")

	assert.True(t, Config{Type: "sqlite"}.Configured())
	assert.False(t, Config{Type: "postgres"}.Configured())
}

func TestDialectName(t *testing.T) {
	assert.Equal(t, "postgres", DialectName(Config{Type: "mysql", URL: "postgres://x"}))
	assert.Equal(t, "sqlite", DialectName(Config{Type: "sqlite"}))

	_, err := Dialect(Config{Type: "oracle"})
	assert.Error(t, err)
}
