// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
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

// AdminConfig provides settings for the admin sign-in flow.
type AdminConfig interface {
	JWTConfig
	GetAccessTokenTTL() time.Duration
	GetAdminEmail() string
	GetAdminPasswordHash() string
}

// SessionConfig provides settings for visitor session tokens.
type SessionConfig interface {
	GetSessionSecret() string
	GetSessionTTL() time.Duration
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// GeminiConfig provides settings for the hosted language model.
type GeminiConfig interface {
	GetGeminiAPIKey() string
	GetGeminiSearchModel() string
	GetGeminiThinkingModel() string
	GetGeminiThinkingBudget() int32
}

// SchedulerConfig provides settings for background job processing.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueue() string
	GetAsynqConcurrency() int
	GetDedupeCron() string
	IsSchedulerEnabled() bool
}

// EmailConfig provides settings for outgoing email.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetLeadNotifyEmail() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                  string
	HTTPAddr             string
	DatabaseURL          string
	JWTAccessSecret      string
	AccessTokenTTL       time.Duration
	SessionSecret        string
	SessionTTL           time.Duration
	AdminEmail           string
	AdminPasswordHash    string
	CORSAllowAll         bool
	CORSOrigins          []string
	CORSAllowCreds       bool
	GeminiAPIKey         string
	GeminiSearchModel    string
	GeminiThinkingModel  string
	GeminiThinkingBudget int32
	RedisURL             string
	RedisTLSInsecure     bool
	AsynqQueue           string
	AsynqConcurrency     int
	DedupeCron           string
	SMTPHost             string
	SMTPPort             int
	SMTPUsername         string
	SMTPPassword         string
	EmailFromName        string
	EmailFromAddress     string
	LeadNotifyEmail      string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// AdminConfig implementation
func (c *Config) GetAccessTokenTTL() time.Duration { return c.AccessTokenTTL }
func (c *Config) GetAdminEmail() string            { return c.AdminEmail }
func (c *Config) GetAdminPasswordHash() string     { return c.AdminPasswordHash }

// SessionConfig implementation
func (c *Config) GetSessionSecret() string     { return c.SessionSecret }
func (c *Config) GetSessionTTL() time.Duration { return c.SessionTTL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// GeminiConfig implementation
func (c *Config) GetGeminiAPIKey() string        { return c.GeminiAPIKey }
func (c *Config) GetGeminiSearchModel() string   { return c.GeminiSearchModel }
func (c *Config) GetGeminiThinkingModel() string { return c.GeminiThinkingModel }
func (c *Config) GetGeminiThinkingBudget() int32 { return c.GeminiThinkingBudget }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueue() string     { return c.AsynqQueue }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }
func (c *Config) GetDedupeCron() string     { return c.DedupeCron }
func (c *Config) IsSchedulerEnabled() bool  { return c.RedisURL != "" }

// EmailConfig implementation
func (c *Config) GetEmailEnabled() bool       { return c.SMTPHost != "" && c.EmailFromAddress != "" }
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }
func (c *Config) GetLeadNotifyEmail() string  { return c.LeadNotifyEmail }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	accessSecret := getEnv("JWT_ACCESS_SECRET", "")

	cfg := &Config{
		Env:                  getEnv("APP_ENV", "development"),
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		JWTAccessSecret:      accessSecret,
		AccessTokenTTL:       mustDuration(getEnv("JWT_ACCESS_TTL", "8h")),
		SessionSecret:        getEnv("SESSION_SECRET", accessSecret),
		SessionTTL:           mustDuration(getEnv("SESSION_TTL", "720h")),
		AdminEmail:           strings.ToLower(strings.TrimSpace(getEnv("ADMIN_EMAIL", ""))),
		AdminPasswordHash:    getEnv("ADMIN_PASSWORD_HASH", ""),
		CORSAllowAll:         corsAllowAll,
		CORSOrigins:          corsOrigins,
		CORSAllowCreds:       strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "false"), "true"),
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		GeminiSearchModel:    getEnv("GEMINI_SEARCH_MODEL", "gemini-2.5-flash"),
		GeminiThinkingModel:  getEnv("GEMINI_THINKING_MODEL", "gemini-2.5-pro"),
		GeminiThinkingBudget: int32(mustInt64(getEnv("GEMINI_THINKING_BUDGET", "32768"))),
		RedisURL:             getEnv("REDIS_URL", ""),
		RedisTLSInsecure:     strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueue:           getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:     int(mustInt64(getEnv("ASYNQ_CONCURRENCY", "2"))),
		DedupeCron:           getEnv("DEDUPE_CRON", ""),
		SMTPHost:             getEnv("SMTP_HOST", ""),
		SMTPPort:             int(mustInt64(getEnv("SMTP_PORT", "587"))),
		SMTPUsername:         getEnv("SMTP_USERNAME", ""),
		SMTPPassword:         getEnv("SMTP_PASSWORD", ""),
		EmailFromName:        getEnv("EMAIL_FROM_NAME", "CollegeSeraBot"),
		EmailFromAddress:     getEnv("EMAIL_FROM_ADDRESS", ""),
		LeadNotifyEmail:      getEnv("LEAD_NOTIFY_EMAIL", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be a positive duration")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

// LoadWorker reads the subset of configuration the background binaries need.
// The LLM key is not required there.
func LoadWorker() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		RedisURL:         getEnv("REDIS_URL", ""),
		RedisTLSInsecure: strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueue:       getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency: int(mustInt64(getEnv("ASYNQ_CONCURRENCY", "2"))),
		DedupeCron:       getEnv("DEDUPE_CRON", ""),
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         int(mustInt64(getEnv("SMTP_PORT", "587"))),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "CollegeSeraBot"),
		EmailFromAddress: getEnv("EMAIL_FROM_ADDRESS", ""),
		LeadNotifyEmail:  getEnv("LEAD_NOTIFY_EMAIL", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
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
	result, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
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
