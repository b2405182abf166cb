package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devJWTSecret = "supersecretjwtkey"

type Config struct {
	Port                    string
	Env                     string
	FirebaseCredentialsPath string
	PostgresConnStr         string
	MongoURI                string
	MongoDatabase           string
	RedisURL                string
	KafkaBrokers            []string
	KafkaTopic              string
	JWTSecret               string
	JWTTTL                  time.Duration
	UnreadCacheTTL          time.Duration
	MetricsPort             string
	RateLimitRPS            float64
	CORSOrigins             []string
}

// Load reads configuration from the environment, after loading a .env file
// when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "socialfeed"),
		RedisURL:                getEnv("REDIS_URL", ""),
		KafkaBrokers:            splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:              getEnv("KAFKA_TOPIC", "socialfeed.events"),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		MetricsPort:             getEnv("METRICS_PORT", "9090"),
		CORSOrigins:             splitList(getEnv("CORS_ORIGINS", "*")),
	}

	var err error
	if cfg.JWTTTL, err = time.ParseDuration(getEnv("JWT_TTL", "72h")); err != nil {
		return nil, fmt.Errorf("JWT_TTL: %w", err)
	}
	if cfg.UnreadCacheTTL, err = time.ParseDuration(getEnv("UNREAD_CACHE_TTL", "5m")); err != nil {
		return nil, fmt.Errorf("UNREAD_CACHE_TTL: %w", err)
	}
	if cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "20"), 64); err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET environment variable not set")
		}
		cfg.JWTSecret = devJWTSecret
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
