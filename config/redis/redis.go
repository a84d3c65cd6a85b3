package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	Rdb *goredis.Client
	TTL = 10 * time.Minute
)

// ErrCacheDisabled is returned by every helper while no client is set.
// Callers treat the cache as optional and fall back to mongo.
var ErrCacheDisabled = errors.New("cache is disabled")

type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func Connect(ctx context.Context, opts Options) error {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("redis ping: %w", err)
	}

	Use(client)
	if opts.TTL > 0 {
		TTL = opts.TTL
	}
	zap.L().Info("connected to redis", zap.String("addr", opts.Addr))
	return nil
}

func Use(client *goredis.Client) {
	Rdb = client
}

func Close() error {
	if Rdb == nil {
		return nil
	}
	return Rdb.Close()
}

func Ping(ctx context.Context) error {
	if Rdb == nil {
		return ErrCacheDisabled
	}
	return Rdb.Ping(ctx).Err()
}

/*
* Marshal the value and store it under key for the default TTL
 */
func SetCache(ctx context.Context, key string, value interface{}) error {
	return SetCacheWithTTL(ctx, key, value, TTL)
}

func SetCacheWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if Rdb == nil {
		return ErrCacheDisabled
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return Rdb.Set(ctx, key, payload, ttl).Err()
}

/*
* Load key into dest. exists is false on a cache miss, which is not
* reported as an error
 */
func GetCache(ctx context.Context, key string, dest interface{}) (bool, error) {
	if Rdb == nil {
		return false, ErrCacheDisabled
	}
	payload, err := Rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}

func DeleteCache(ctx context.Context, key string) error {
	if Rdb == nil {
		return ErrCacheDisabled
	}
	return Rdb.Del(ctx, key).Err()
}
