// Package config loads bot configuration from an optional yaml file with
// environment variables taking precedence.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type FirebaseConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	DatabaseURL     string `yaml:"database_url"`
}

type Config struct {
	BotToken string         `yaml:"bot_token"`
	LogLevel string         `yaml:"log_level"`
	Firebase FirebaseConfig `yaml:"firebase"`
}

// Load reads the yaml file at path when it exists, then applies env
// overrides. A missing file is not an error; env-only setups are common.
func Load(path string) (*Config, error) {
	cfg := &Config{LogLevel: "info"}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env
		case err != nil:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("COMMBOT_BOT_TOKEN"); v != "" {
		c.BotToken = v
	}
	if v := os.Getenv("COMMBOT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("FIREBASE_SERVICE_ACCOUNT_KEY_PATH"); v != "" {
		c.Firebase.CredentialsFile = v
	}
	if v := os.Getenv("FIREBASE_DATABASE_URL"); v != "" {
		c.Firebase.DatabaseURL = v
	}
}

// Validate checks that everything needed to start the bot is present.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("bot token not set (COMMBOT_BOT_TOKEN)")
	}
	if c.Firebase.CredentialsFile == "" {
		return fmt.Errorf("firebase credentials file not set (FIREBASE_SERVICE_ACCOUNT_KEY_PATH)")
	}
	if c.Firebase.DatabaseURL == "" {
		return fmt.Errorf("firebase database URL not set (FIREBASE_DATABASE_URL)")
	}
	return nil
}
