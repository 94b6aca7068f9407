package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"godrive/internal/blobstore"
)

const (
	defaultPort        = "8080"
	defaultDatabaseURL = "godrive.db"
	defaultJWTTTL      = "24h"
	defaultQuotaBytes  = 2 * 1024 * 1024 * 1024 // 2 GiB
	defaultMaxUpload   = 50 * 1024 * 1024       // 50 MB
)

// Config is the process configuration, read from the environment. Secrets
// have no defaults; startup fails without them.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration
	QuotaBytes  int64
	MaxUpload   int64
	Blob        blobstore.Config
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:        getenv("PORT", defaultPort),
		DatabaseURL: getenv("DATABASE_URL", defaultDatabaseURL),
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}

	ttl, err := time.ParseDuration(getenv("JWT_TTL", defaultJWTTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.JWTTTL = ttl

	cfg.QuotaBytes, err = getenvInt64("STORAGE_QUOTA_BYTES", defaultQuotaBytes)
	if err != nil {
		return nil, err
	}
	cfg.MaxUpload, err = getenvInt64("MAX_UPLOAD_BYTES", defaultMaxUpload)
	if err != nil {
		return nil, err
	}

	cfg.Blob = blobstore.Config{
		Endpoint:  getenv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("MINIO_SECRET_KEY"),
		Bucket:    getenv("MINIO_BUCKET", "godrive"),
		UseSSL:    getenv("MINIO_USE_SSL", "false") == "true",
	}
	if cfg.Blob.AccessKey == "" || cfg.Blob.SecretKey == "" {
		return nil, fmt.Errorf("MINIO_ACCESS_KEY / MINIO_SECRET_KEY are empty")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getenvInt64(key string, fallback int64) (int64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
