package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers understood by StoreDriver.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port                    string
	DatabaseURL             string
	StoreDriver             string
	JWTSecret               string
	JWTIssuer               string
	JWTTTL                  time.Duration
	AdminRegistrationSecret string
	FrontendURL             string
	CORSOrigins             []string
	Environment             string
	CookieDomain            string
	BcryptCost              int
	DefaultPageSize         int
	RedisAddr               string
	RedisPassword           string
	LogLevel                string
}

// MissingError lists every required key that was absent at startup.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("missing required environment variables: %s", strings.Join(e.Keys, ", "))
}

// Load reads configuration from the environment and validates required keys.
// All missing keys are reported at once through *MissingError; the caller
// decides how to react.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:                    strings.TrimSpace(getenv("PORT")),
		DatabaseURL:             strings.TrimSpace(getenv("DATABASE_URL")),
		StoreDriver:             strings.ToLower(fallback(getenv("STORE_DRIVER"), DriverPostgres)),
		JWTSecret:               strings.TrimSpace(getenv("JWT_SECRET")),
		JWTIssuer:               fallback(getenv("JWT_ISSUER"), "atithi-inn"),
		AdminRegistrationSecret: strings.TrimSpace(getenv("ADMIN_REGISTRATION_SECRET")),
		FrontendURL:             strings.TrimSpace(getenv("FRONTEND_URL")),
		Environment:             strings.ToLower(fallback(getenv("APP_ENV"), "development")),
		CookieDomain:            strings.TrimSpace(getenv("COOKIE_DOMAIN")),
		RedisAddr:               strings.TrimSpace(getenv("REDIS_ADDR")),
		RedisPassword:           getenv("REDIS_PASSWORD"),
		LogLevel:                strings.ToLower(fallback(getenv("LOG_LEVEL"), "info")),
	}

	cfg.JWTTTL = parseDuration(getenv("JWT_TTL"), 24*time.Hour)
	cfg.BcryptCost = parsePositiveInt(getenv("BCRYPT_COST"), 12)
	cfg.DefaultPageSize = parsePositiveInt(getenv("DEFAULT_PAGE_SIZE"), 20)
	cfg.CORSOrigins = parseCSV(fallback(getenv("CORS_ALLOWED_ORIGINS"), cfg.FrontendURL))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the required keys that are not set.
func (c Config) Validate() error {
	var missing []string
	if c.StoreDriver != DriverMemory && c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.Port == "" {
		missing = append(missing, "PORT")
	}
	if c.AdminRegistrationSecret == "" {
		missing = append(missing, "ADMIN_REGISTRATION_SECRET")
	}
	if c.FrontendURL == "" {
		missing = append(missing, "FRONTEND_URL")
	}
	if len(missing) > 0 {
		return &MissingError{Keys: missing}
	}
	return nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// IsDevelopment reports whether error details may be exposed to clients.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction controls secure cookie attributes.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseDuration(value string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func parsePositiveInt(value string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
