package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageLocal = "local"
	StorageMinIO = "minio"
)

type MinIOConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
}

type RateLimitConfig struct {
	UploadLimit int
	TimeWindow  time.Duration
}

type Config struct {
	Env             string
	Port            string
	StorageBackend  string
	UploadDir       string
	MinIO           MinIOConfig
	DatabaseURL     string
	MaxUploadBytes  int64
	MultipartMemory int64
	AllowedOrigins  []string
	RateLimit       RateLimitConfig
	ShutdownTimeout time.Duration
	// UploadRetention of zero keeps uploads forever.
	UploadRetention time.Duration
	CleanupInterval time.Duration
}

// Load reads configuration from the environment. Call godotenv.Load first if
// a .env file should be honoured; real environment variables take precedence.
func Load() *Config {
	return &Config{
		Env:             getEnv("APP_ENV", "development"),
		Port:            getEnv("SERVER_PORT", "8000"),
		StorageBackend:  strings.ToLower(getEnv("STORAGE_BACKEND", StorageLocal)),
		UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
		DatabaseURL:     getEnv("DB_URL", ""),
		MaxUploadBytes:  getEnvInt64("MAX_UPLOAD_BYTES", 10<<20),
		MultipartMemory: getEnvInt64("MULTIPART_MEMORY_BYTES", 8<<20),
		AllowedOrigins:  getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		MinIO: MinIOConfig{
			Endpoint:   getEnv("MINIO_ENDPOINT", ""),
			AccessKey:  getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:  getEnv("MINIO_SECRET_KEY", ""),
			BucketName: getEnv("MINIO_BUCKET_NAME", "mimedemo-uploads"),
			UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		},
		RateLimit: RateLimitConfig{
			UploadLimit: getEnvInt("RATE_LIMIT_UPLOAD", 30),
			TimeWindow:  time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
		},
		ShutdownTimeout: time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
		UploadRetention: time.Duration(getEnvInt("UPLOAD_RETENTION_HOURS", 0)) * time.Hour,
		CleanupInterval: time.Duration(getEnvInt("CLEANUP_INTERVAL_MINUTES", 5)) * time.Minute,
	}
}

func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageLocal:
		if c.UploadDir == "" {
			return fmt.Errorf("UPLOAD_DIR is required for local storage")
		}
	case StorageMinIO:
		if c.MinIO.Endpoint == "" {
			return fmt.Errorf("MINIO_ENDPOINT is required for minio storage")
		}
		if c.MinIO.AccessKey == "" || c.MinIO.SecretKey == "" {
			return fmt.Errorf("MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required for minio storage")
		}
		if c.MinIO.BucketName == "" {
			return fmt.Errorf("MINIO_BUCKET_NAME is required for minio storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}

	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if c.MultipartMemory <= 0 {
		return fmt.Errorf("MULTIPART_MEMORY_BYTES must be positive")
	}
	if c.RateLimit.UploadLimit <= 0 || c.RateLimit.TimeWindow <= 0 {
		return fmt.Errorf("rate limit and window must be positive")
	}
	if c.UploadRetention < 0 {
		return fmt.Errorf("UPLOAD_RETENTION_HOURS must not be negative")
	}
	if c.UploadRetention > 0 && c.CleanupInterval <= 0 {
		return fmt.Errorf("CLEANUP_INTERVAL_MINUTES must be positive when retention is enabled")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
