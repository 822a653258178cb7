package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App    AppConfig
	Redis  RedisConfig
	MinIO  MinIOConfig
	Image  ImageConfig
	Schema SchemaConfig
	Cache  CacheConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
	CORSOrigins []string // rỗng = cho phép mọi origin
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string // minioadmin
	SecretKey string // minioadmin
	Bucket    string // wrestler-images
	UseSSL    bool   // false for local
	// PublicBaseURL overrides the scheme://host used when building public object URLs,
	// e.g. a CDN in front of the bucket. Empty means derive it from the endpoint.
	PublicBaseURL string
}

// ImageConfig giới hạn upload ảnh
type ImageConfig struct {
	MaxBytes     int64    // 10MB
	AllowedTypes []string // image/png, image/jpeg, image/gif, image/webp
	MaxDimension int      // px, ảnh lớn hơn sẽ được thu nhỏ
}

// SchemaConfig controls the capability descriptor seeded at startup.
type SchemaConfig struct {
	Probe        bool // query information_schema once for image_url columns
	ImageUploads bool // initial state of the image upload capability
}

type CacheConfig struct {
	TTL time.Duration
}

const (
	defaultMinIOSecret   = "minioadmin"
	DefaultMaxImageBytes = 10 * 1024 * 1024
)

// DefaultAllowedImageTypes mirrors the bucket constraints of the storage service.
var DefaultAllowedImageTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Wrestling Admin API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			CORSOrigins: getEnvList("CORS_ALLOWED_ORIGINS", nil),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		MinIO: MinIOConfig{
			Endpoint:      getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey:     getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey:     getEnv("MINIO_SECRET_KEY", defaultMinIOSecret),
			Bucket:        getEnv("MINIO_BUCKET", "wrestler-images"),
			UseSSL:        getEnvBool("MINIO_USE_SSL", false),
			PublicBaseURL: strings.TrimRight(getEnv("MINIO_PUBLIC_URL", ""), "/"),
		},
		Image: ImageConfig{
			MaxBytes:     int64(getEnvInt("IMAGE_MAX_BYTES", DefaultMaxImageBytes)),
			AllowedTypes: getEnvList("IMAGE_ALLOWED_TYPES", DefaultAllowedImageTypes),
			MaxDimension: getEnvInt("IMAGE_MAX_DIMENSION", 2048),
		},
		Schema: SchemaConfig{
			Probe:        getEnvBool("SCHEMA_PROBE", true),
			ImageUploads: getEnvBool("IMAGE_UPLOADS_ENABLED", true),
		},
		Cache: CacheConfig{
			TTL: getEnvDuration("CACHE_TTL", 5*time.Minute),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.Image.MaxBytes <= 0 {
		return fmt.Errorf("IMAGE_MAX_BYTES must be positive")
	}
	if len(c.Image.AllowedTypes) == 0 {
		return fmt.Errorf("IMAGE_ALLOWED_TYPES must not be empty")
	}

	// Production environment phải có credentials thật
	if c.App.Environment == "production" {
		if c.MinIO.SecretKey == defaultMinIOSecret {
			return fmt.Errorf("MINIO_SECRET_KEY must be set in production")
		}
		if os.Getenv("DB_PASSWORD") == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvList đọc danh sách phân tách bởi dấu phẩy
func getEnvList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return append([]string(nil), defaultValue...)
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
