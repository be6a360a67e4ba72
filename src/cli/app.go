package cli

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"Quiznator-Backend/src/config"
	"Quiznator-Backend/src/database"
	"Quiznator-Backend/src/jobs"
	"Quiznator-Backend/src/services/answers"
	"Quiznator-Backend/src/services/quizzes"
	"Quiznator-Backend/src/store"
)

// resumeDelay is how long a failed rewrite waits before its resume task runs.
const resumeDelay = 30 * time.Second

// app holds the connections and services every command works with.
type app struct {
	cfg     config.Config
	redis   *redis.Client
	tasks   *asynq.Client
	quizzes *quizzes.Service
	answers *answers.Service
}

func bootstrap(ctx context.Context, cfg config.Config) (*app, error) {
	client, err := database.ConnectMongoDB(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.MongoDB)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Println("⚠️ Failed to ensure indexes:", err)
	}

	a := &app{cfg: cfg}
	a.redis = database.InitRedis(ctx, cfg.RedisURI)
	if a.redis != nil {
		a.tasks = database.InitAsynq(cfg.RedisURI)
	}

	answerColl := store.NewMongoCollection(db.Collection(database.QuizAnswersCollection))
	a.quizzes = quizzes.NewService(
		store.NewMongoCollection(db.Collection(database.QuizzesCollection)),
		answerColl,
		store.NewMongoCollection(db.Collection(database.PeerReviewsCollection)),
		quizzes.WithFanOut(cfg.CloneFanOut),
		quizzes.WithBatchJournal(store.NewMongoCollection(db.Collection(database.CloneBatchesCollection))),
		quizzes.WithStatsCache(quizzes.NewStatsCache(a.redis, cfg.StatsCacheTTL)),
		quizzes.WithRewriteFailureHandler(jobs.ScheduleResume(a.enqueuer(), resumeDelay)),
	)
	a.answers = answers.NewService(answerColl, a.quizzes)
	return a, nil
}

// enqueuer keeps a missing client a nil interface.
func (a *app) enqueuer() jobs.Enqueuer {
	if a.tasks == nil {
		return nil
	}
	return a.tasks
}

func (a *app) close() {
	if a.tasks != nil {
		_ = a.tasks.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	database.Disconnect(ctx)
}
