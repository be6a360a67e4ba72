package database

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// InitRedis returns nil when redisURI is empty; callers treat a nil client as "no cache".
func InitRedis(ctx context.Context, redisURI string) *redis.Client {
	if redisURI == "" {
		log.Println("⚠️ REDIS_URI not set. Redis cache disabled.")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisURI, // เช่น localhost:6379
		Password: "",
		DB:       0,
	})
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Println("⚠️ Failed to connect Redis, cache disabled:", err)
		_ = client.Close()
		return nil
	}
	log.Println("✅ Redis connected successfully")
	return client
}
