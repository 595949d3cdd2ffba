package db

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
)

// New abre a conexão via database/sql (usada pelo visualizador de schema).
func New(url string) (*sql.DB, error) {
	return sql.Open("postgres", url)
}

// NewPool cria o pool pgx e valida a conexão com um ping.
func NewPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
