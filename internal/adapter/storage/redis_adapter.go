package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/domain"
)

const activeProductsKey = "catalog:active"

type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (r *RedisAdapter) GetActiveProducts(ctx context.Context) ([]domain.Product, bool, error) {
	raw, err := r.client.Get(ctx, activeProductsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		// A corrupt entry behaves like a miss; the caller repopulates it.
		return nil, false, nil
	}

	return products, true, nil
}

func (r *RedisAdapter) SetActiveProducts(ctx context.Context, products []domain.Product, ttl time.Duration) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, activeProductsKey, raw, ttl).Err()
}

func (r *RedisAdapter) InvalidateActiveProducts(ctx context.Context) error {
	return r.client.Del(ctx, activeProductsKey).Err()
}
