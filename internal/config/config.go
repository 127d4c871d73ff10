package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gatewise-vms/internal/pkg/password"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode string
	Port    string
	JWT     JWTConfig
	Cookie  CookieConfig
	Policy  PolicyConfig
	Admin   AdminConfig
	Seed    SeedConfig
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// PolicyConfig holds the gate policy parameters. The streak gap window
// and threshold drive the consecutive-visit detector; they are
// heuristics, not exact calendar-day differencing, and are expected to
// be tuned per deployment.
type PolicyConfig struct {
	MaxVisitHours       int // hard ceiling on a visitor pass
	DefaultVisitHours   int // applied when check-in omits a duration
	StreakMinGapHours   int // day-gap lower bound ("next day" heuristic)
	StreakMaxGapHours   int // day-gap upper bound
	StreakThresholdDays int // consecutive days before an alert fires
}

// AdminConfig holds the platform operator account. This is the one
// credential in the system that is bcrypt-hashed; portal accounts keep
// the legacy plaintext comparison.
type AdminConfig struct {
	Username     string
	PasswordHash string
}

// SeedConfig controls demo-roster seeding
type SeedConfig struct {
	DemoData bool
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	admin, err := loadAdminConfig()
	if err != nil {
		return nil, err
	}

	config := &Config{
		AppMode: appMode,
		Port:    getEnv("PORT", "3000"),
		JWT:     loadJWTConfig(appMode),
		Cookie:  loadCookieConfig(appMode),
		Policy:  loadPolicyConfig(),
		Admin:   admin,
		Seed:    SeedConfig{DemoData: getBoolEnv("SEED_DEMO_DATA", appMode == "dev")},
	}

	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "15"))
	refreshDays, _ := strconv.Atoi(getEnv("REFRESH_TOKEN_DAYS", "7"))

	return JWTConfig{
		Secret:           getEnv(prefix+"JWT_SECRET", "default_secret"),
		RefreshSecret:    getEnv(prefix+"JWT_REFRESH_SECRET", "default_refresh_secret"),
		AccessTokenMins:  accessMins,
		RefreshTokenDays: refreshDays,
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// loadPolicyConfig loads the gate policy parameters
func loadPolicyConfig() PolicyConfig {
	return PolicyConfig{
		MaxVisitHours:       getIntEnv("MAX_VISIT_HOURS", 72),
		DefaultVisitHours:   getIntEnv("DEFAULT_VISIT_HOURS", 4),
		StreakMinGapHours:   getIntEnv("STREAK_MIN_GAP_HOURS", 12),
		StreakMaxGapHours:   getIntEnv("STREAK_MAX_GAP_HOURS", 30),
		StreakThresholdDays: getIntEnv("STREAK_THRESHOLD_DAYS", 3),
	}
}

// loadAdminConfig loads the operator account. ADMIN_PASSWORD_HASH takes
// precedence; a plain ADMIN_PASSWORD is hashed at startup for dev use.
func loadAdminConfig() (AdminConfig, error) {
	username := getEnv("ADMIN_USERNAME", "gatewise-admin")

	hash := getEnv("ADMIN_PASSWORD_HASH", "")
	if hash == "" {
		plain := getEnv("ADMIN_PASSWORD", "changeme-admin")
		var err error
		hash, err = password.Hash(plain)
		if err != nil {
			return AdminConfig{}, fmt.Errorf("hashing admin password: %w", err)
		}
	}

	return AdminConfig{Username: username, PasswordHash: hash}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv gets an integer environment variable with default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getBoolEnv gets a boolean environment variable with default value
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		// Default production origins
		return "https://portal.gatewise.app"
	}
	return origins
}
