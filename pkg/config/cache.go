package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to Redis when REDIS_ADDR is set. Returns nil when
// Redis is not configured or unreachable; response caching is then skipped.
func InitRedis(addr, password string) *redis.Client {
	if addr == "" {
		log.Println("REDIS_ADDR not set, response caching disabled.")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unreachable (%v), response caching disabled.", err)
		return nil
	}

	log.Println("Successfully connected to Redis!")
	return rdb
}
