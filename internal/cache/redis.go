package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/okravchuk/airport-service/config"
	"github.com/okravchuk/airport-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache holds admin-managed reference lists only. Seat availability is
// never cached here: availability is always counted live against committed
// tickets so a stale window cannot undercut the storage constraint.
type RedisCache struct {
	client     *redis.Client
	catalogTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, catalogTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		catalogTTL: catalogTTL,
	}
}

func (c *RedisCache) GetAirports(ctx context.Context) ([]domain.Airport, error) {
	data, err := c.client.Get(ctx, airportsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var airports []domain.Airport
	if err := json.Unmarshal(data, &airports); err != nil {
		return nil, err
	}
	return airports, nil
}

func (c *RedisCache) SetAirports(ctx context.Context, airports []domain.Airport) error {
	payload, err := json.Marshal(airports)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, airportsKey(), payload, c.catalogTTL).Err()
}

func (c *RedisCache) GetRoutes(ctx context.Context) ([]domain.Route, error) {
	data, err := c.client.Get(ctx, routesKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var routes []domain.Route
	if err := json.Unmarshal(data, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

func (c *RedisCache) SetRoutes(ctx context.Context, routes []domain.Route) error {
	payload, err := json.Marshal(routes)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, routesKey(), payload, c.catalogTTL).Err()
}

// InvalidateCatalog drops the cached reference lists. Called after every
// catalog write.
func (c *RedisCache) InvalidateCatalog(ctx context.Context) error {
	return c.client.Del(ctx, airportsKey(), routesKey()).Err()
}

func airportsKey() string {
	return "cache:airports"
}

func routesKey() string {
	return "cache:routes"
}
