package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application
type Config struct {
	Port                string
	LogLevel            string
	Environment         string
	AllowedOrigins      []string
	DatabaseURL         string
	RedisURL            string
	SupabaseURL         string
	SupabaseAnonKey     string
	SupabaseJWTSecret   string
	AdminEmails         []string
	AllowAnonymousVotes bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:                getEnv("PORT", "8080"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		Environment:         getEnv("ENVIRONMENT", "production"),
		AllowedOrigins:      parseList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		RedisURL:            getEnv("REDIS_URL", ""),
		SupabaseURL:         getEnv("SUPABASE_URL", ""),
		SupabaseAnonKey:     getEnv("SUPABASE_ANON_KEY", ""),
		SupabaseJWTSecret:   getEnv("SUPABASE_JWT_SECRET", ""),
		AdminEmails:         parseList(getEnv("ADMIN_EMAILS", "")),
		AllowAnonymousVotes: getBoolEnv("ALLOW_ANONYMOUS_VOTES", false),
	}, nil
}

// IsProduction reports whether the process runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

var supabaseURLPattern = regexp.MustCompile(`^https://[a-z0-9-]+\.supabase\.co$`)

// ValidatePlatform checks that the platform endpoint and credential have
// the expected shapes. The returned problems are fatal in production and
// warnings in development.
func (c *Config) ValidatePlatform() []string {
	var problems []string

	switch {
	case c.SupabaseURL == "":
		problems = append(problems, "SUPABASE_URL is not set")
	case !supabaseURLPattern.MatchString(strings.TrimRight(c.SupabaseURL, "/")):
		problems = append(problems, "SUPABASE_URL does not look like a platform project URL")
	}

	switch {
	case c.SupabaseAnonKey == "":
		problems = append(problems, "SUPABASE_ANON_KEY is not set")
	case !isThreeSegmentToken(c.SupabaseAnonKey):
		problems = append(problems, "SUPABASE_ANON_KEY does not look like a platform token")
	}

	return problems
}

// isThreeSegmentToken reports whether the value has the dot-separated
// three-segment shape of a platform key.
func isThreeSegmentToken(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts {
		if part == "" {
			return false
		}
	}
	return true
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// parseList parses a comma-separated value into a slice
func parseList(value string) []string {
	if value == "" {
		return []string{}
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// String renders non-secret settings for startup logging.
func (c *Config) String() string {
	return fmt.Sprintf("port=%s env=%s log_level=%s anonymous_votes=%t admins=%d",
		c.Port, c.Environment, c.LogLevel, c.AllowAnonymousVotes, len(c.AdminEmails))
}
