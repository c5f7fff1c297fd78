package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "commbot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
bot_token: tok-from-file
log_level: debug
firebase:
  credentials_file: /etc/commbot/sa.json
  database_url: https://example.firebaseio.com
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tok-from-file", cfg.BotToken)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/etc/commbot/sa.json", cfg.Firebase.CredentialsFile)
	assert.NoError(t, cfg.Validate())
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
bot_token: tok-from-file
firebase:
  credentials_file: /etc/commbot/sa.json
  database_url: https://example.firebaseio.com
`)
	t.Setenv("COMMBOT_BOT_TOKEN", "tok-from-env")
	t.Setenv("FIREBASE_DATABASE_URL", "https://other.firebaseio.com")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tok-from-env", cfg.BotToken)
	assert.Equal(t, "https://other.firebaseio.com", cfg.Firebase.DatabaseURL)
	assert.Equal(t, "/etc/commbot/sa.json", cfg.Firebase.CredentialsFile, "unset env leaves file value")
}

func TestMissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("COMMBOT_BOT_TOKEN", "tok")
	t.Setenv("FIREBASE_SERVICE_ACCOUNT_KEY_PATH", "/tmp/sa.json")
	t.Setenv("FIREBASE_DATABASE_URL", "https://example.firebaseio.com")

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.LogLevel, "default level")
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.Validate())

	cfg.BotToken = "tok"
	assert.Error(t, cfg.Validate(), "firebase settings still missing")

	cfg.Firebase.CredentialsFile = "/tmp/sa.json"
	cfg.Firebase.DatabaseURL = "https://example.firebaseio.com"
	assert.NoError(t, cfg.Validate())
}

func TestMalformedFile(t *testing.T) {
	path := writeConfig(t, "bot_token: [unclosed")
	_, err := Load(path)
	assert.Error(t, err)
}
