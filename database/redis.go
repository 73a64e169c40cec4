package database

import (
	"context"
	"log"

	"recipebook-backend/config"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil when redis is unreachable; callers treat a nil
// client as "no cache".
func ConnectRedis(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisURL,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Println("⚠️  Redis not available, running without cache:", err)
		return nil
	}

	log.Println("✅ Redis connected successfully")
	return client
}
