// Package config loads application configuration from environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/datadrop/service/internal/auth"
)

// Config holds all runtime configuration for the service. It is built once
// by Load and passed into each component; nothing reads the environment
// after startup.
type Config struct {
	Host   string
	Port   string
	AppEnv string

	// DropDirectory is the root of the per-x-system file tree (local backend).
	DropDirectory string

	// UserDatabase maps API keys to the x-systems they may act as.
	UserDatabase auth.UserDatabase

	// StorageBackend selects where dropped files land: "local" or "s3".
	StorageBackend string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	S3Bucket       string
	S3UseSSL       bool

	// SyncWrites makes the sink synchronous: the client only gets a success
	// status after the write committed, at the cost of added latency.
	SyncWrites bool
	// WriteWorkers is the size of the background write pool (async mode).
	WriteWorkers int
	// MaxUploadBytes caps request body size for upload endpoints.
	MaxUploadBytes int64
	// UploadConcurrency caps simultaneous in-flight uploads.
	UploadConcurrency int
}

// Load reads configuration from a .env file (if present) and environment
// variables. The user database comes from DROP_USER_DATABASE (inline JSON,
// {"key": ["xsystem", ...]}) or DROP_USER_DATABASE_FILE (YAML file with the
// same shape); the file wins when both are set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading from environment")
	}

	cfg := &Config{
		Host:   getEnv("DROP_HOST", "localhost"),
		Port:   getEnv("DROP_PORT", "8080"),
		AppEnv: getEnv("APP_ENV", "development"),

		DropDirectory: getEnv("DROP_DIRECTORY", "data"),

		StorageBackend: getEnv("DROP_STORAGE_BACKEND", "local"),
		S3Endpoint:     getEnv("DROP_S3_ENDPOINT", "localhost:9000"),
		S3AccessKey:    getEnv("DROP_S3_ACCESS_KEY", "minioadmin"),
		S3SecretKey:    getEnv("DROP_S3_SECRET_KEY", "minioadmin"),
		S3Bucket:       getEnv("DROP_S3_BUCKET", "drop"),
		S3UseSSL:       getEnv("DROP_S3_USE_SSL", "false") == "true",

		SyncWrites:        getEnv("DROP_SYNC_WRITES", "false") == "true",
		WriteWorkers:      getEnvInt("DROP_WRITE_WORKERS", 4),
		MaxUploadBytes:    int64(getEnvInt("DROP_MAX_UPLOAD_BYTES", 100<<20)),
		UploadConcurrency: getEnvInt("DROP_UPLOAD_CONCURRENCY", 10),
	}

	db, err := loadUserDatabase()
	if err != nil {
		return nil, err
	}
	cfg.UserDatabase = db

	if cfg.StorageBackend != "local" && cfg.StorageBackend != "s3" {
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	return cfg, nil
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func loadUserDatabase() (auth.UserDatabase, error) {
	raw := map[string][]string{}

	if file := os.Getenv("DROP_USER_DATABASE_FILE"); file != "" {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read user database file: %w", err)
		}
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf("parse user database file: %w", err)
		}
	} else if inline := os.Getenv("DROP_USER_DATABASE"); inline != "" {
		if err := json.Unmarshal([]byte(inline), &raw); err != nil {
			return nil, fmt.Errorf("parse DROP_USER_DATABASE: %w", err)
		}
	}

	db := make(auth.UserDatabase, len(raw))
	for key, xSystems := range raw {
		db[auth.APIKey(key)] = xSystems
	}
	return db, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("invalid value for %s, using default %d", key, fallback)
	}
	return fallback
}
