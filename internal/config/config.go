package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverLocal = "local"
	StorageDriverS3    = "s3"
)

type Config struct {
	// Application
	AppName        string
	AppEnv         string
	AppURL         string
	Port           string
	AllowedOrigins []string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret string
	JWTExpiry time.Duration

	// Filesystem
	UploadDir    string
	GeneratedDir string
	TemplatesDir string
	MaxFileSize  int64

	// Email
	EmailFrom    string
	ResendAPIKey string

	// Observability (optional)
	SentryDSN string

	// Generation lock (optional, falls back to an in-process lock)
	RedisURL string

	// Storage for uploads: "local" writes to UploadDir, "s3" uses any S3-compatible bucket
	StorageDriver string
	S3Region      string
	S3Bucket      string
	S3AccessKey   string
	S3SecretKey   string
	S3Endpoint    string // Optional: for S3-compatible services (MinIO, DO Spaces, R2, etc.)
	S3PublicURL   string // Optional: public base URL (CDN) for uploaded images
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:        envString("APP_NAME", "Folio"),
		AppEnv:         envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:         envString("APP_URL", "http://localhost:3000"),
		Port:           envString("PORT", "3000"),
		AllowedOrigins: envList("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3001"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/folio.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret: envRequired("JWT_SECRET"),
		JWTExpiry: envDuration("JWT_EXPIRY", 168*time.Hour), // 7 days

		// Filesystem
		UploadDir:    envString("UPLOAD_DIR", "./uploads"),
		GeneratedDir: envString("GENERATED_DIR", "./generated"),
		TemplatesDir: envString("TEMPLATES_DIR", "./templates"),
		MaxFileSize:  envInt64("MAX_FILE_SIZE", 5<<20), // 5MB

		// Email (RESEND_API_KEY optional in development)
		EmailFrom:    envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		RedisURL: envString("REDIS_URL", ""),

		// Storage
		StorageDriver: envString("STORAGE_DRIVER", StorageDriverLocal),
		S3Region:      envString("S3_REGION", ""),
		S3Bucket:      envString("S3_BUCKET", ""),
		S3AccessKey:   envString("S3_ACCESS_KEY", ""),
		S3SecretKey:   envString("S3_SECRET_KEY", ""),
		S3Endpoint:    envString("S3_ENDPOINT", ""),
		S3PublicURL:   envString("S3_PUBLIC_URL", ""),
	}

	if cfg.StorageDriver == StorageDriverS3 {
		validateS3(cfg)
	}

	return cfg
}

// validateS3 exits when the S3 driver is selected without a bucket to talk to.
func validateS3(cfg *Config) {
	if cfg.S3Region == "" || cfg.S3Bucket == "" {
		slog.Error("STORAGE_DRIVER=s3 requires S3_REGION and S3_BUCKET",
			"hint", "unset STORAGE_DRIVER to store uploads on local disk")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envList(key, def string) []string {
	var out []string
	for _, item := range strings.Split(envString(key, def), ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func envInt64(key string, def int64) int64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("config invalid integer, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy of the config without secrets or credentials.
// Safe to log at startup.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:        c.AppName,
		AppEnv:         c.AppEnv,
		AppURL:         c.AppURL,
		Port:           c.Port,
		AllowedOrigins: c.AllowedOrigins,
		DBDriver:       c.DBDriver,
		JWTExpiry:      c.JWTExpiry,
		UploadDir:      c.UploadDir,
		GeneratedDir:   c.GeneratedDir,
		TemplatesDir:   c.TemplatesDir,
		MaxFileSize:    c.MaxFileSize,
		EmailFrom:      c.EmailFrom,
		StorageDriver:  c.StorageDriver,
		S3Region:       c.S3Region,
		S3Bucket:       c.S3Bucket,
		S3Endpoint:     c.S3Endpoint,
		S3PublicURL:    c.S3PublicURL,
	}
}
