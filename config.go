package main

import (
	"os"
	"strings"
)

// Default configuration values
const (
	DefaultPort     = "8080"
	DefaultDBPath   = "namecheck.db"
	DefaultModelDir = "models"
	DefaultS3Prefix = "models"
)

// AppConfig holds runtime configuration resolved from the environment.
type AppConfig struct {
	Port     string
	DBPath   string
	ModelDir string

	S3Bucket       string
	S3Region       string
	S3Profile      string
	S3Prefix       string
	S3UsePathStyle bool

	RedisAddr string

	KafkaEnabled bool
}

// LoadConfig resolves configuration from environment variables, applying
// defaults where unset.
func LoadConfig() AppConfig {
	return AppConfig{
		Port:     getEnvOrDefault("PORT", DefaultPort),
		DBPath:   getEnvOrDefault("DB_PATH", DefaultDBPath),
		ModelDir: getEnvOrDefault("MODEL_DIR", DefaultModelDir),

		S3Bucket:       strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
		S3Prefix:       getEnvOrDefault("S3_PREFIX", DefaultS3Prefix),
		S3UsePathStyle: os.Getenv("S3_USE_PATH_STYLE") == "true",

		RedisAddr: strings.TrimSpace(os.Getenv("REDIS_ADDR")),

		KafkaEnabled: os.Getenv("KAFKA_FEEDBACK_ENABLED") == "true",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
