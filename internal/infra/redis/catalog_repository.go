package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wajih79/kia-python-game/internal/catalog"
	"github.com/wajih79/kia-python-game/internal/domain"
	"golang.org/x/sync/singleflight"
)

// CatalogRepository caches round content in Redis as a JSON blob per
// catalog and falls back to a loader on cache miss. It lets a restarted
// process rebuild its catalog without hitting Postgres, which matters
// during a live session.
type CatalogRepository struct {
	client *redis.Client
	loader catalog.Loader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCatalogRepository(client *redis.Client, loader catalog.Loader, ttl time.Duration) *CatalogRepository {
	return &CatalogRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CatalogRepository) LoadRounds(ctx context.Context, catalogID string) ([]domain.Round, error) {
	key := r.key(catalogID)

	if raw, err := r.client.Get(ctx, key).Bytes(); err == nil {
		var rounds []domain.Round
		if err := json.Unmarshal(raw, &rounds); err == nil {
			return rounds, nil
		}
		// Corrupt cache entry: fall through and refill from the loader.
	}

	result, err, _ := r.sf.Do(catalogID, func() (interface{}, error) {
		// Re-check in case another goroutine filled the cache.
		if raw, err := r.client.Get(ctx, key).Bytes(); err == nil {
			var rounds []domain.Round
			if err := json.Unmarshal(raw, &rounds); err == nil {
				return rounds, nil
			}
		}

		rounds, err := r.loader.LoadRounds(ctx, catalogID)
		if err != nil {
			return nil, err
		}

		if raw, err := json.Marshal(rounds); err == nil {
			_ = r.client.Set(ctx, key, raw, r.ttlWithJitter()).Err()
		}
		return rounds, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Round), nil
}

func (r *CatalogRepository) key(catalogID string) string {
	return "game:catalog:" + catalogID
}

func (r *CatalogRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
