// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// AuthServiceConfig provides settings needed by the auth service.
type AuthServiceConfig interface {
	JWTConfig
	GetJWTRefreshSecret() string
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
}

// CookieConfig provides settings for refresh token cookies.
type CookieConfig interface {
	GetRefreshCookieName() string
	GetRefreshCookieDomain() string
	GetRefreshCookiePath() string
	GetRefreshCookieSecure() bool
	GetRefreshCookieSameSite() http.SameSite
	GetRefreshTokenTTL() time.Duration
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// MinIOConfig provides settings for MinIO S3-compatible storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	GetMinioBucketProductAssets() string
	GetMinioBucketBusinessLogos() string
	IsMinIOEnabled() bool
}

// SMTPConfig provides settings for transactional email delivery.
type SMTPConfig interface {
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	IsEmailEnabled() bool
}

// SchedulerConfig provides settings for the asynq job queue.
type SchedulerConfig interface {
	GetRedisURL() string
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// AssistantConfig provides settings for the AI chat assistant.
type AssistantConfig interface {
	GetGeminiAPIKey() string
	GetAssistantModel() string
	IsAssistantEnabled() bool
}

// DiscoveryConfig provides settings for the business discovery directory.
type DiscoveryConfig interface {
	GetDiscoveryDefaultRadiusKm() float64
	GetDiscoveryMaxPageSize() int
	GetDiscoveryCacheTTL() time.Duration
}

// GeocodeConfig provides settings for the address search proxy.
type GeocodeConfig interface {
	GetGeocodeCountryCode() string
}

// NotificationConfig provides settings for outbound links in emails.
type NotificationConfig interface {
	GetAppBaseURL() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                      string
	HTTPAddr                 string
	DatabaseURL              string
	JWTAccessSecret          string
	JWTRefreshSecret         string
	AccessTokenTTL           time.Duration
	RefreshTokenTTL          time.Duration
	CORSAllowAll             bool
	CORSOrigins              []string
	CORSAllowCreds           bool
	AppBaseURL               string
	RefreshCookieName        string
	RefreshCookieDomain      string
	RefreshCookiePath        string
	RefreshCookieSecure      bool
	RefreshCookieSameSite    http.SameSite
	RedisURL                 string
	AsynqQueueName           string
	AsynqConcurrency         int
	MinIOEndpoint            string
	MinIOAccessKey           string
	MinIOSecretKey           string
	MinIOUseSSL              bool
	MinIOMaxFileSize         int64
	MinioBucketProductAssets string
	MinioBucketBusinessLogos string
	SMTPHost                 string
	SMTPPort                 int
	SMTPUsername             string
	SMTPPassword             string
	EmailEnabled             bool
	EmailFromName            string
	EmailFromAddress         string
	GeminiAPIKey             string
	AssistantModel           string
	DiscoveryDefaultRadiusKm float64
	DiscoveryMaxPageSize     int
	DiscoveryCacheTTL        time.Duration
	GeocodeCountryCode       string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// AuthServiceConfig implementation
func (c *Config) GetJWTRefreshSecret() string       { return c.JWTRefreshSecret }
func (c *Config) GetAccessTokenTTL() time.Duration  { return c.AccessTokenTTL }
func (c *Config) GetRefreshTokenTTL() time.Duration { return c.RefreshTokenTTL }

// CookieConfig implementation
func (c *Config) GetRefreshCookieName() string            { return c.RefreshCookieName }
func (c *Config) GetRefreshCookieDomain() string          { return c.RefreshCookieDomain }
func (c *Config) GetRefreshCookiePath() string            { return c.RefreshCookiePath }
func (c *Config) GetRefreshCookieSecure() bool            { return c.RefreshCookieSecure }
func (c *Config) GetRefreshCookieSameSite() http.SameSite { return c.RefreshCookieSameSite }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// MinIOConfig implementation
func (c *Config) GetMinIOEndpoint() string   { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string  { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string  { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool       { return c.MinIOUseSSL }
func (c *Config) GetMinIOMaxFileSize() int64 { return c.MinIOMaxFileSize }
func (c *Config) GetMinioBucketProductAssets() string {
	return c.MinioBucketProductAssets
}
func (c *Config) GetMinioBucketBusinessLogos() string {
	return c.MinioBucketBusinessLogos
}
func (c *Config) IsMinIOEnabled() bool { return c.MinIOEndpoint != "" }

// SMTPConfig implementation
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }
func (c *Config) IsEmailEnabled() bool        { return c.EmailEnabled && c.SMTPHost != "" }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// AssistantConfig implementation
func (c *Config) GetGeminiAPIKey() string   { return c.GeminiAPIKey }
func (c *Config) GetAssistantModel() string { return c.AssistantModel }
func (c *Config) IsAssistantEnabled() bool  { return c.GeminiAPIKey != "" }

// DiscoveryConfig implementation
func (c *Config) GetDiscoveryDefaultRadiusKm() float64 { return c.DiscoveryDefaultRadiusKm }
func (c *Config) GetDiscoveryMaxPageSize() int         { return c.DiscoveryMaxPageSize }
func (c *Config) GetDiscoveryCacheTTL() time.Duration  { return c.DiscoveryCacheTTL }

// GeocodeConfig implementation
func (c *Config) GetGeocodeCountryCode() string { return c.GeocodeCountryCode }

// NotificationConfig implementation
func (c *Config) GetAppBaseURL() string { return c.AppBaseURL }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	refreshCookieSecure := strings.EqualFold(getEnv("REFRESH_COOKIE_SECURE", ""), "true")
	if getEnv("REFRESH_COOKIE_SECURE", "") == "" {
		refreshCookieSecure = strings.EqualFold(getEnv("APP_ENV", "development"), "production")
	}

	cfg := &Config{
		Env:                      getEnv("APP_ENV", "development"),
		HTTPAddr:                 getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:              getEnv("DATABASE_URL", ""),
		JWTAccessSecret:          getEnv("JWT_ACCESS_SECRET", ""),
		JWTRefreshSecret:         getEnv("JWT_REFRESH_SECRET", ""),
		AccessTokenTTL:           mustDuration(getEnv("JWT_ACCESS_TTL", "15m")),
		RefreshTokenTTL:          mustDuration(getEnv("JWT_REFRESH_TTL", "720h")),
		CORSAllowAll:             corsAllowAll,
		CORSOrigins:              corsOrigins,
		CORSAllowCreds:           strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		AppBaseURL:               getEnv("APP_BASE_URL", "http://localhost:5173"),
		RefreshCookieName:        getEnv("REFRESH_COOKIE_NAME", "shopwise_refresh"),
		RefreshCookieDomain:      getEnv("REFRESH_COOKIE_DOMAIN", ""),
		RefreshCookiePath:        getEnv("REFRESH_COOKIE_PATH", "/api/v1/auth"),
		RefreshCookieSecure:      refreshCookieSecure,
		RefreshCookieSameSite:    parseSameSite(getEnv("REFRESH_COOKIE_SAMESITE", "Lax")),
		RedisURL:                 getEnv("REDIS_URL", ""),
		AsynqQueueName:           getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:         int(mustInt64(getEnv("ASYNQ_CONCURRENCY", "10"))),
		MinIOEndpoint:            getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:           getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:           getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:              strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinIOMaxFileSize:         mustInt64(getEnv("MINIO_MAX_FILE_SIZE", "20971520")),
		MinioBucketProductAssets: getEnv("MINIO_BUCKET_PRODUCT_ASSETS", "product-assets"),
		MinioBucketBusinessLogos: getEnv("MINIO_BUCKET_BUSINESS_LOGOS", "business-logos"),
		SMTPHost:                 getEnv("SMTP_HOST", ""),
		SMTPPort:                 int(mustInt64(getEnv("SMTP_PORT", "587"))),
		SMTPUsername:             getEnv("SMTP_USERNAME", ""),
		SMTPPassword:             getEnv("SMTP_PASSWORD", ""),
		EmailEnabled:             strings.EqualFold(getEnv("EMAIL_ENABLED", "false"), "true"),
		EmailFromName:            getEnv("EMAIL_FROM_NAME", "ShopWise"),
		EmailFromAddress:         getEnv("EMAIL_FROM_ADDRESS", ""),
		GeminiAPIKey:             getEnv("GEMINI_API_KEY", ""),
		AssistantModel:           getEnv("ASSISTANT_MODEL", "gemini-2.0-flash"),
		DiscoveryDefaultRadiusKm: mustFloat(getEnv("DISCOVERY_DEFAULT_RADIUS_KM", "10")),
		DiscoveryMaxPageSize:     int(mustInt64(getEnv("DISCOVERY_MAX_PAGE_SIZE", "50"))),
		DiscoveryCacheTTL:        mustDuration(getEnv("DISCOVERY_CACHE_TTL", "30s")),
		GeocodeCountryCode:       getEnv("GEOCODE_COUNTRY_CODE", "rw"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" || cfg.JWTRefreshSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required")
	}
	if cfg.EmailEnabled && cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP_HOST is required when EMAIL_ENABLED is true")
	}
	if cfg.EmailEnabled && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when email is enabled")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}

func parseSameSite(value string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "none":
		return http.SameSiteNoneMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteLaxMode
	}
}
