// File: /config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string
	SiteURL  string
	SiteName string

	// Database
	DBDriver          string
	DatabaseURL       string
	DBTLSCA           string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	// Admin panel
	AdminPath         string
	AdminPasswordHash string
	JWTSecret         string
	AdminSessionTTL   time.Duration

	DefaultWhatsAppNumber string
	AnalyticsID           string

	// Blue dollar feed
	RateFeedURL         string
	RateRefreshInterval time.Duration
	RateFeedTimeout     time.Duration

	RedisAddr     string
	RedisPassword string

	// Image storage
	StorageDriver    string
	StorageLocalRoot string
	StoragePublicURL string
	S3Bucket         string
	S3Region         string
	S3Key            string
	S3Secret         string
	S3Endpoint       string
	S3URL            string
	CloudinaryURL    string
	UploadMaxBytes   int64

	// Email Configuration
	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	FromEmail       string
	FromName        string
	LeadNotifyEmail string

	LeadRatePerMinute int
	LeadRateBurst     int
}

func Load() *Config {
	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Warning: could not load .env file: %v\n", err)
	}

	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		SiteURL:  strings.TrimRight(getEnv("SITE_URL", "https://kustommania.com"), "/"),
		SiteName: getEnv("SITE_NAME", "Kustom Mania"),

		DBDriver:          getEnv("DB_DRIVER", "mysql"),
		DatabaseURL:       getEnv("DATABASE_URL", "user:password@tcp(localhost:3306)/kustommania?charset=utf8mb4&parseTime=True&loc=Local"),
		DBTLSCA:           getEnv("DB_TLS_CA", ""),
		DBMaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),

		AdminPath:         normalizePath(getEnv("ADMIN_PATH", "/km-secret-panel-2025")),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		AdminSessionTTL:   getEnvAsDuration("ADMIN_SESSION_TTL", 12*time.Hour),

		DefaultWhatsAppNumber: getEnv("DEFAULT_WHATSAPP_NUMBER", "5491112345678"),
		AnalyticsID:           getEnv("GA_MEASUREMENT_ID", ""),

		RateFeedURL:         getEnv("RATE_FEED_URL", "https://dolarapi.com/v1/dolares/blue"),
		RateRefreshInterval: getEnvAsDuration("RATE_REFRESH_INTERVAL", 5*time.Minute),
		RateFeedTimeout:     getEnvAsDuration("RATE_FEED_TIMEOUT", 10*time.Second),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		StorageDriver:    getEnv("STORAGE_DRIVER", "local"),
		StorageLocalRoot: getEnv("STORAGE_LOCAL_ROOT", "storage/uploads"),
		StoragePublicURL: strings.TrimRight(getEnv("STORAGE_PUBLIC_URL", "/uploads"), "/"),
		S3Bucket:         getEnv("S3_BUCKET", ""),
		S3Region:         getEnv("S3_REGION", "us-east-1"),
		S3Key:            getEnv("S3_KEY", ""),
		S3Secret:         getEnv("S3_SECRET", ""),
		S3Endpoint:       getEnv("S3_ENDPOINT", ""),
		S3URL:            getEnv("S3_URL", ""),
		CloudinaryURL:    getEnv("CLOUDINARY_URL", ""),
		UploadMaxBytes:   int64(getEnvAsInt("UPLOAD_MAX_BYTES", 10<<20)),

		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        getEnvAsInt("SMTP_PORT", 587),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		FromEmail:       getEnv("FROM_EMAIL", "noreply@kustommania.com"),
		FromName:        getEnv("FROM_NAME", "Kustom Mania"),
		LeadNotifyEmail: getEnv("LEAD_NOTIFY_EMAIL", ""),

		LeadRatePerMinute: getEnvAsInt("LEAD_RATE_PER_MINUTE", 10),
		LeadRateBurst:     getEnvAsInt("LEAD_RATE_BURST", 5),
	}
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AdminAuthEnabled reports whether the admin panel requires a password.
func (c *Config) AdminAuthEnabled() bool {
	return c.AdminPasswordHash != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func normalizePath(p string) string {
	p = "/" + strings.Trim(p, "/")
	if p == "/" {
		return "/admin"
	}
	return p
}
