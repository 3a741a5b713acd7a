package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DatabaseURL  string
	RedisURL     string
	SnapshotPath string
	KafkaBrokers []string
	ResultTopic  string
	Environment  string
	ShareBaseURL string
}

// Load reads configuration from the environment, with a .env file when
// present. Missing keys fall back to development defaults.
func Load() (*Config, error) {
	// A missing .env file is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	return &Config{
		Port:         getEnv("PORT", "8080"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		RedisURL:     getEnv("REDIS_URL", ""),
		SnapshotPath: getEnv("SNAPSHOT_PATH", "data/attempts.json"),
		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "")),
		ResultTopic:  getEnv("RESULT_TOPIC", "assessment.results"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		ShareBaseURL: getEnv("SHARE_BASE_URL", "https://musicraftacademy.com/musicraft/assessment/result"),
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
