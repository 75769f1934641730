// Package repository holds the Postgres access layer: pool construction,
// embedded migrations, and hand-written queries over pgx.
package repository

import "github.com/jackc/pgx/v5/pgxpool"

// Store wraps the connection pool with typed query methods.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}
