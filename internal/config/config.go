package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr      string
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	RedisPoolSize int
	JWTSecret     string
	TokenTTL      time.Duration
	UploadDir     string
	LogLevel      string
}

// Load reads configuration from the environment, with a .env file as an
// optional local override. Only the token secret is mandatory.
func Load() (*Config, error) {
	godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	cfg := &Config{
		HTTPAddr:      envOr("HTTP_ADDR", ":8080"),
		MongoURI:      envOr("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: envOr("MONGO_DATABASE", "flipone"),
		RedisAddr:     envOr("REDIS_ADDR", "localhost:6379"),
		RedisPoolSize: envIntOr("REDIS_POOL_SIZE", 50),
		JWTSecret:     secret,
		TokenTTL:      envDurationOr("TOKEN_TTL", 0),
		UploadDir:     envOr("UPLOAD_DIR", "uploads"),
		LogLevel:      envOr("LOG_LEVEL", "info"),
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
