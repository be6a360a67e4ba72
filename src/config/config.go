package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI string
	MongoDB  string
	AppURI   string // port
	RedisURI string

	JWTSecret      string
	AllowedOrigins string

	CloneFanOut   int
	StatsCacheTTL time.Duration
}

// Load อ่าน .env (ถ้ามี) แล้วสร้าง Config จาก environment
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Warning: No .env file found")
	}
	return FromEnv()
}

func FromEnv() Config {
	return Config{
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDB:        envOr("MONGO_DB", "quiznator"),
		AppURI:         envOr("APP_URI", "8888"),
		RedisURI:       os.Getenv("REDIS_URI"),
		JWTSecret:      envOr("JWT_SECRET", "your_secret_key"),
		AllowedOrigins: envOr("ALLOWED_ORIGINS", "*"),
		CloneFanOut:    envInt("CLONE_FAN_OUT", 20),
		StatsCacheTTL:  envDuration("STATS_CACHE_TTL", 30*time.Second),
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("⚠️ invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}
