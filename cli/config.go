// Package main provides configuration loading for the Verto CLI.
//
// This file resolves the API base URL and the session file location from, in
// order of precedence, environment variables, a .env file in the working
// directory, and ~/.verto/verto-config.yml.
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppConfig is the resolved CLI configuration.
type AppConfig struct {
	APIURL      string `yaml:"apiUrl"`
	SessionFile string `yaml:"sessionFile"`
}

// VertoConfigDir returns the per-user config directory (~/.verto).
func VertoConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".verto"), nil
}

// LoadAppConfig resolves the CLI configuration. Missing files are not errors;
// every field has a usable default.
func LoadAppConfig() AppConfig {
	godotenv.Load()

	var cfg AppConfig
	if dir, err := VertoConfigDir(); err == nil {
		if raw, err := os.ReadFile(filepath.Join(dir, "verto-config.yml")); err == nil {
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				logDebug("ignoring malformed verto-config.yml: %v", err)
				cfg = AppConfig{}
			}
		}
	}

	if url := strings.TrimSpace(os.Getenv("VERTO_API_URL")); url != "" {
		cfg.APIURL = url
	}
	if path := strings.TrimSpace(os.Getenv("VERTO_SESSION_FILE")); path != "" {
		cfg.SessionFile = path
	}

	if cfg.SessionFile == "" {
		if dir, err := VertoConfigDir(); err == nil {
			cfg.SessionFile = filepath.Join(dir, "session.json")
		}
	}

	return cfg
}
