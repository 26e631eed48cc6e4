package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/example/joyashop/pkg/config"
	"github.com/example/joyashop/pkg/models"
)

const productCacheTTL = 30 * time.Minute

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(cfg *config.RedisConfig) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		}),
	}
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

func (r *RedisCache) setJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, expiration).Err()
}

func (r *RedisCache) getJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

func productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

func (r *RedisCache) CacheProduct(ctx context.Context, p *models.Product) error {
	return r.setJSON(ctx, productKey(p.ID.Hex()), p, productCacheTTL)
}

func (r *RedisCache) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := r.getJSON(ctx, productKey(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *RedisCache) InvalidateProduct(ctx context.Context, id string) error {
	return r.client.Del(ctx, productKey(id)).Err()
}
