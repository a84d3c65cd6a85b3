package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	redis "GuardTrack/config/redis"

	goredis "github.com/redis/go-redis/v9"
)

// RedisAddrEnv names the variable holding the test redis address.
const RedisAddrEnv = "GUARDTRACK_TEST_REDIS_ADDR"

// testRedisDB keeps test keys away from the default database.
const testRedisDB = 15

// SetupTestRedis points config/redis at the test server and empties the
// test database before and after the test. The test is skipped when no
// redis server is configured or reachable.
func SetupTestRedis(t *testing.T) *goredis.Client {
	t.Helper()

	addr := os.Getenv(RedisAddrEnv)
	if addr == "" {
		t.Skipf("%s not set, skipping redis test", RedisAddrEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := goredis.NewClient(&goredis.Options{Addr: addr, DB: testRedisDB})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("redis not reachable: %v", err)
	}
	if err := client.FlushDB(ctx).Err(); err != nil {
		_ = client.Close()
		t.Fatalf("flush redis: %v", err)
	}

	prev := redis.Rdb
	redis.Use(client)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.FlushDB(ctx).Err()
		_ = client.Close()
		redis.Use(prev)
	})
	return client
}
