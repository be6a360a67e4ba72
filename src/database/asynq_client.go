package database

import (
	"log"

	"github.com/hibiken/asynq"
)

// InitAsynq initializes Asynq client only if Redis is available
func InitAsynq(redisURI string) *asynq.Client {
	if redisURI == "" {
		log.Println("⚠️ Redis not available. Asynq client will not be initialized.")
		return nil
	}

	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisURI})
	log.Println("✅ Asynq Client initialized successfully")
	return client
}
