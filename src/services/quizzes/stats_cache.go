package quizzes

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Quiznator-Backend/src/models"
)

// StatsCache keeps computed quiz stats in Redis. A nil *StatsCache caches nothing.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	if client == nil || ttl <= 0 {
		return nil
	}
	return &StatsCache{client: client, ttl: ttl}
}

func statsKey(quizID primitive.ObjectID) string {
	return "quiz:stats:" + quizID.Hex()
}

func (c *StatsCache) Get(ctx context.Context, quizID primitive.ObjectID) (*models.QuizStats, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, statsKey(quizID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("⚠️ stats cache read %s: %v", quizID.Hex(), err)
		}
		return nil, false
	}
	var stats models.QuizStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false
	}
	return &stats, true
}

func (c *StatsCache) Set(ctx context.Context, quizID primitive.ObjectID, stats *models.QuizStats) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, statsKey(quizID), raw, c.ttl).Err(); err != nil {
		log.Printf("⚠️ stats cache write %s: %v", quizID.Hex(), err)
	}
}

func (c *StatsCache) Invalidate(ctx context.Context, quizIDs ...primitive.ObjectID) {
	if c == nil || len(quizIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(quizIDs))
	for _, id := range quizIDs {
		keys = append(keys, statsKey(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("⚠️ stats cache invalidate: %v", err)
	}
}
