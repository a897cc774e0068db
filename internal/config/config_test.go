package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func requiredEnv() map[string]string {
	return map[string]string{
		"PORT":                      "5000",
		"DATABASE_URL":              "postgres://localhost/atithi",
		"JWT_SECRET":                "secret",
		"ADMIN_REGISTRATION_SECRET": "let-me-in",
		"FRONTEND_URL":              "http://localhost:3000",
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(envFrom(requiredEnv()))
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.HTTPAddress())
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 20, cfg.DefaultPageSize)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	env := requiredEnv()
	env["JWT_TTL"] = "90m"
	env["BCRYPT_COST"] = "4"
	env["DEFAULT_PAGE_SIZE"] = "5"
	env["APP_ENV"] = "Production"
	env["CORS_ALLOWED_ORIGINS"] = "https://a.example, https://b.example ,"

	cfg, err := load(envFrom(env))
	require.NoError(t, err)

	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.Equal(t, 4, cfg.BcryptCost)
	assert.Equal(t, 5, cfg.DefaultPageSize)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	env := requiredEnv()
	env["JWT_TTL"] = "tomorrow"
	env["BCRYPT_COST"] = "-3"

	cfg, err := load(envFrom(env))
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
}

func TestLoad_ReportsEveryMissingKey(t *testing.T) {
	_, err := load(envFrom(map[string]string{}))

	var missing *MissingError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"DATABASE_URL", "JWT_SECRET", "PORT", "ADMIN_REGISTRATION_SECRET", "FRONTEND_URL"}, missing.Keys)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_MemoryDriverDoesNotNeedDatabase(t *testing.T) {
	env := requiredEnv()
	delete(env, "DATABASE_URL")
	env["STORE_DRIVER"] = "memory"

	cfg, err := load(envFrom(env))
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
}

func TestLoadClient(t *testing.T) {
	dir := func() (string, error) { return "/home/alice/.config", nil }

	cfg := loadClient(envFrom(nil), dir)
	assert.Equal(t, "http://localhost:5000", cfg.APIBaseURL)
	assert.Equal(t, "/home/alice/.config/atithi-inn/state.json", cfg.StatePath)
	assert.Equal(t, 60*time.Second, cfg.Timeout)

	cfg = loadClient(envFrom(map[string]string{
		"ATITHI_API_URL":    "https://api.atithi.test",
		"ATITHI_STATE_FILE": "/tmp/state.json",
		"ATITHI_TIMEOUT":    "5s",
	}), dir)
	assert.Equal(t, "https://api.atithi.test", cfg.APIBaseURL)
	assert.Equal(t, "/tmp/state.json", cfg.StatePath)
	assert.Equal(t, 5*time.Second, cfg.Timeout)

	noHome := func() (string, error) { return "", errors.New("no home") }
	cfg = loadClient(envFrom(nil), noHome)
	assert.Equal(t, "atithi-inn/state.json", cfg.StatePath)
}
