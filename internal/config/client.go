package config

import (
	"os"
	"path/filepath"
	"time"
)

// ClientConfig configures the terminal client.
type ClientConfig struct {
	APIBaseURL string
	StatePath  string
	Timeout    time.Duration
}

// LoadClient reads the client settings. Nothing is required; the defaults
// target a local server.
func LoadClient() ClientConfig {
	return loadClient(os.Getenv, os.UserConfigDir)
}

func loadClient(getenv func(string) string, configDir func() (string, error)) ClientConfig {
	cfg := ClientConfig{
		APIBaseURL: fallback(getenv("ATITHI_API_URL"), "http://localhost:5000"),
		StatePath:  fallback(getenv("ATITHI_STATE_FILE"), ""),
		Timeout:    parseDuration(getenv("ATITHI_TIMEOUT"), 60*time.Second),
	}
	if cfg.StatePath == "" {
		dir, err := configDir()
		if err != nil {
			dir = "."
		}
		cfg.StatePath = filepath.Join(dir, "atithi-inn", "state.json")
	}
	return cfg
}
