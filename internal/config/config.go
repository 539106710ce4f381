package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/stemracing/regulations/backend/go-services/internal/storage"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	MinIO    storage.MinIOConfig
	Lookup   LookupConfig
	Ingest   IngestConfig
	LogLevel string
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig names the document store. Both URL and Name must be set for
// the persistence gateway to attempt a connection.
type DatabaseConfig struct {
	URL     string
	Name    string
	Timeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type LookupConfig struct {
	SearchURL  string
	SummaryURL string
	Timeout    time.Duration
	UserAgent  string
}

type IngestConfig struct {
	FetchTimeout time.Duration
	MaxPDFBytes  int64
}

const (
	DefaultSearchURL  = "https://en.wikipedia.org/w/api.php"
	DefaultSummaryURL = "https://en.wikipedia.org/api/rest_v1/page/summary/"
)

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("DATABASE_TIMEOUT", 10)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOOKUP_CACHE_TTL", 1440)
	v.SetDefault("MINIO_BUCKET", "regulations")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("ARCHIVE_URL_TTL", 15)
	v.SetDefault("LOOKUP_SEARCH_URL", DefaultSearchURL)
	v.SetDefault("LOOKUP_SUMMARY_URL", DefaultSummaryURL)
	v.SetDefault("LOOKUP_TIMEOUT", 15)
	v.SetDefault("LOOKUP_USER_AGENT", "regulations-api/0.1 (https://github.com/stemracing/regulations)")
	v.SetDefault("INGEST_FETCH_TIMEOUT", 20)
	v.SetDefault("INGEST_MAX_PDF_BYTES", 50<<20)
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("PORT"),
			Host:         v.GetString("SERVER_HOST"),
			Environment:  v.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		Database: DatabaseConfig{
			URL:     v.GetString("DATABASE_URL"),
			Name:    v.GetString("DATABASE_NAME"),
			Timeout: time.Duration(v.GetInt("DATABASE_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			CacheTTL: time.Duration(v.GetInt("LOOKUP_CACHE_TTL")) * time.Minute,
		},
		MinIO: storage.MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("MINIO_BUCKET"),
			URLTTL:    time.Duration(v.GetInt("ARCHIVE_URL_TTL")) * time.Minute,
		},
		Lookup: LookupConfig{
			SearchURL:  v.GetString("LOOKUP_SEARCH_URL"),
			SummaryURL: v.GetString("LOOKUP_SUMMARY_URL"),
			Timeout:    time.Duration(v.GetInt("LOOKUP_TIMEOUT")) * time.Second,
			UserAgent:  v.GetString("LOOKUP_USER_AGENT"),
		},
		Ingest: IngestConfig{
			FetchTimeout: time.Duration(v.GetInt("INGEST_FETCH_TIMEOUT")) * time.Second,
			MaxPDFBytes:  v.GetInt64("INGEST_MAX_PDF_BYTES"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	return cfg, nil
}

// DatabaseConfigured reports whether both connection parameters are present.
func (c *Config) DatabaseConfigured() bool {
	return c.Database.URL != "" && c.Database.Name != ""
}

func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
