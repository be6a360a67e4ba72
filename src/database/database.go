package database

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	QuizzesCollection      = "quizzes"
	QuizAnswersCollection  = "quizanswers"
	PeerReviewsCollection  = "peerreviews"
	CloneBatchesCollection = "clonebatches"
)

var (
	client     *mongo.Client
	once       sync.Once // ✅ ป้องกันการรัน ConnectMongoDB() ซ้ำ
	connectErr error
)

// ConnectMongoDB เชื่อมต่อกับ MongoDB แค่ครั้งเดียว
func ConnectMongoDB(ctx context.Context, mongoURI string) (*mongo.Client, error) {
	if mongoURI == "" {
		return nil, errors.New("MONGO_URI environment variable not set")
	}

	once.Do(func() {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		client, connectErr = mongo.Connect(connectCtx, options.Client().ApplyURI(mongoURI))
		if connectErr != nil {
			log.Println("❌ Failed to connect to MongoDB:", connectErr)
			return
		}

		// ตรวจสอบการเชื่อมต่อ
		connectErr = client.Ping(connectCtx, readpref.Primary())
		if connectErr != nil {
			log.Println("❌ MongoDB ping failed:", connectErr)
			return
		}

		log.Println("✅ MongoDB connected successfully")
	})

	return client, connectErr
}

// Disconnect ปิดการเชื่อมต่อ MongoDB
func Disconnect(ctx context.Context) {
	if client == nil {
		return
	}
	if err := client.Disconnect(ctx); err != nil {
		log.Println("⚠️ MongoDB disconnect failed:", err)
	}
}

// EnsureIndexes creates the indexes the clone and statistics queries rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		QuizzesCollection: {
			{Keys: bson.D{{Key: "tags", Value: 1}}},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
		QuizAnswersCollection: {
			{Keys: bson.D{{Key: "quizId", Value: 1}, {Key: "answererId", Value: 1}}},
		},
		PeerReviewsCollection: {
			{Keys: bson.D{{Key: "sourceQuizId", Value: 1}, {Key: "giverAnswererId", Value: 1}}},
		},
		CloneBatchesCollection: {
			{Keys: bson.D{{Key: "batchId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "state", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	log.Println("✅ MongoDB indexes ensured")
	return nil
}
