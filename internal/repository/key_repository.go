package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type KeyRepository struct {
	DB *pgxpool.Pool
}

// GetAPIKey busca a credencial do provedor na tabela modelkeys.
// Ausência devolve "" (o chamador decide o fallback).
func (r *KeyRepository) GetAPIKey(ctx context.Context, modelName string) (string, error) {
	var key string
	err := r.DB.QueryRow(ctx, `
		SELECT api_key FROM modelkeys WHERE model = $1 LIMIT 1
	`, modelName).Scan(&key)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return key, nil
}
