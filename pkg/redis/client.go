package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init connects the package-level client. The URL carries host, db and
// credentials; a non-empty password overrides the one in the URL.
func Init(url, password string) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return err
	}

	if password != "" {
		opts.Password = password
	}

	client = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return client.Ping(ctx).Err()
}

// setClient swaps the client in tests
func setClient(c *redis.Client) {
	client = c
}

func set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return client.Set(ctx, key, value, expiration).Err()
}

func get(ctx context.Context, key string) (string, error) {
	return client.Get(ctx, key).Result()
}

func del(ctx context.Context, key string) error {
	return client.Del(ctx, key).Err()
}

func setNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return client.SetNX(ctx, key, value, expiration).Result()
}
