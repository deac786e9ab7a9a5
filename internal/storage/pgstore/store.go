// Package pgstore implements the store with hand-written SQL over a pgx
// connection pool.
package pgstore

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	storagedomain "github.com/smallbiznis/storefront/internal/storage/domain"
	"github.com/smallbiznis/storefront/pkg/db"
)

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	pool  *pgxpool.Pool
	genID *snowflake.Node
	now   func() time.Time
}

func New(pool *pgxpool.Pool, genID *snowflake.Node) *Store {
	return &Store{
		pool:  pool,
		genID: genID,
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

func (s *Store) Backend() string { return storagedomain.BackendPgx }

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Pool exposes the pool for migrations.
func (s *Store) Pool() *pgxpool.Pool { return s.pool }

func (s *Store) nextID() int64 {
	return s.genID.Generate().Int64()
}

// getOne runs a single-row query and maps "no rows" to a nil result.
func getOne[T any](ctx context.Context, q querier, scan func(pgx.Row) (*T, error), sql string, args ...any) (*T, error) {
	out, err := scan(q.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, db.Classify(err)
	}
	return out, nil
}

func getMany[T any](ctx context.Context, q querier, scan func(pgx.Row) (*T, error), sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, db.Classify(err)
		}
		out = append(out, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Classify(err)
	}
	return out, nil
}

var _ storagedomain.Storage = (*Store)(nil)
