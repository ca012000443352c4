package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ValkeyClient caches rendered listing responses. The availability
// views are advisory and stale-tolerant by contract, so a short TTL
// read cache never changes their semantics.
type ValkeyClient struct {
	client *redis.Client
	ttl    time.Duration
}

type Config struct {
	Addr     string
	Password string
	TTL      time.Duration
}

func NewValkeyClient(cfg Config) (*ValkeyClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	return &ValkeyClient{client: rdb, ttl: cfg.TTL}, nil
}

func AirportsKey() string {
	return "aviacao:airports"
}

func DeparturesKey(code string) string {
	return "aviacao:voos:" + code
}

func RouteKey(origin, dest string) string {
	return "aviacao:voos:" + origin + ":" + dest
}

// GetRaw returns a cached rendered response, redis.Nil error on miss
func (v *ValkeyClient) GetRaw(ctx context.Context, key string) ([]byte, error) {
	return v.client.Get(ctx, key).Bytes()
}

// SetRaw stores a rendered response under the configured TTL
func (v *ValkeyClient) SetRaw(ctx context.Context, key string, payload []byte) error {
	return v.client.Set(ctx, key, payload, v.ttl).Err()
}

func (v *ValkeyClient) Close() error {
	return v.client.Close()
}
