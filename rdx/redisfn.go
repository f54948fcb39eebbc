package rdx

import (
	"log"
	"time"

	"gatherly/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Init opens the Redis connection used for sessions, locks and idempotency.
func Init() {
	Conn = redis.NewClient(&redis.Options{
		Addr:     globals.Getenv("REDIS_ADDR", "localhost:6379"),
		Password: globals.Getenv("REDIS_PASSWORD", ""),
	})
	if err := Conn.Ping(globals.Ctx).Err(); err != nil {
		log.Fatalf("Redis ping failed: %v", err)
	}
	log.Println("Connected to Redis")
}

func RdxSet(key, value string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxDel(key string) error {
	return Conn.Del(globals.Ctx, key).Err()
}

// RdxSetNX acquires key only if absent; used as a cheap per-user lock.
func RdxSetNX(key, value string, ttl time.Duration) (bool, error) {
	return Conn.SetNX(globals.Ctx, key, value, ttl).Result()
}
