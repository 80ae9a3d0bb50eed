package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/wajih79/kia-python-game/internal/domain"
)

// CatalogLoader loads game content as JSONB from Postgres, one row per
// catalog ("standard", "prompt").
type CatalogLoader struct {
	pool *pgxpool.Pool
}

func NewCatalogLoader(pool *pgxpool.Pool) *CatalogLoader {
	return &CatalogLoader{pool: pool}
}

func (l *CatalogLoader) LoadRounds(ctx context.Context, catalogID string) ([]domain.Round, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM catalogs WHERE id=$1`, catalogID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCatalogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	var rounds []domain.Round
	if err := json.Unmarshal(raw, &rounds); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return rounds, nil
}
