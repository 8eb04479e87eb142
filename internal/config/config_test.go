package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "GIN_MODE", "METRICS_ENABLED", "NAV_API_URL", "PUBLISHER", "DRY_RUN",
	"APP_KEY", "APP_SECRET", "ACCESS_TOKEN", "ACCESS_SECRET",
	"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "HTTPS_PROXY",
	"LOG_LEVEL", "LOG_FORMAT", "LOG_FILE",
}

// isolate clears the environment keys Load reads and moves into an empty
// directory so no stray .env is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.True(t, cfg.MetricsEnabled())
	assert.Equal(t, "253425", cfg.Fund.Code)
	assert.Equal(t, "https://developer.am.mufg.jp/fund_information_latest/fund_cd/253425", cfg.Fund.APIURL)
	assert.Equal(t, 30*time.Second, cfg.Fund.Timeout)
	assert.Equal(t, PublisherX, cfg.Publisher.Kind)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := isolate(t)
	t.Setenv("PORT", "8080")
	t.Setenv("APP_KEY", "k")
	t.Setenv("APP_SECRET", "s")
	t.Setenv("ACCESS_TOKEN", "t")
	t.Setenv("ACCESS_SECRET", "as")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.MetricsEnabled())
	assert.Equal(t, "k", cfg.X.AppKey)
	assert.Equal(t, "as", cfg.X.AccessSecret)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_InvalidPort(t *testing.T) {
	dir := isolate(t)
	t.Setenv("PORT", "eighty")

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_YAMLAndDotEnv(t *testing.T) {
	dir := isolate(t)
	yml := `
server:
  port: 9000
publisher:
  kind: telegram
telegram:
  chat_id: "-100"
log:
  format: json
`
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TELEGRAM_BOT_TOKEN=from-dotenv\n"), 0o644))
	// godotenv never overrides variables that are already set, even to "".
	require.NoError(t, os.Unsetenv("TELEGRAM_BOT_TOKEN"))
	t.Cleanup(func() { _ = os.Unsetenv("TELEGRAM_BOT_TOKEN") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, PublisherTelegram, cfg.Publisher.Kind)
	assert.Equal(t, "from-dotenv", cfg.Telegram.BotToken)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_InvalidBoolEnv(t *testing.T) {
	for _, key := range []string{"DRY_RUN", "METRICS_ENABLED"} {
		t.Run(key, func(t *testing.T) {
			dir := isolate(t)
			t.Setenv(key, "sometimes")

			_, err := Load(filepath.Join(dir, "missing.yaml"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid "+key)
			assert.Contains(t, err.Error(), `"sometimes"`)
		})
	}
}

func TestLoad_DryRunFalseKeepsPublisher(t *testing.T) {
	dir := isolate(t)
	t.Setenv("PUBLISHER", "telegram")
	t.Setenv("DRY_RUN", "false")

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, PublisherTelegram, cfg.Publisher.Kind)
}

func TestLoad_DryRunSelectsLogPublisher(t *testing.T) {
	dir := isolate(t)
	t.Setenv("PUBLISHER", "x")
	t.Setenv("DRY_RUN", "true")

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, PublisherLog, cfg.Publisher.Kind)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	// missing secrets do not stop startup
	assert.NoError(t, cfg.Validate())

	cfg.Publisher.Kind = "mastodon"
	assert.Error(t, cfg.Validate())

	cfg.Publisher.Kind = PublisherLog
	cfg.Server.Port = 70000
	assert.Error(t, cfg.Validate())

	cfg.Server.Port = 3000
	cfg.Fund.APIURL = "not a url"
	assert.Error(t, cfg.Validate())
}

func TestMissingCredentials(t *testing.T) {
	dir := isolate(t)
	t.Setenv("APP_KEY", "k")
	t.Setenv("ACCESS_TOKEN", "t")

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"APP_SECRET", "ACCESS_SECRET"}, cfg.MissingCredentials())

	cfg.Publisher.Kind = PublisherTelegram
	assert.Equal(t, []string{"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID"}, cfg.MissingCredentials())

	cfg.Telegram.BotToken = "tok"
	cfg.Telegram.ChatID = "-100"
	assert.Empty(t, cfg.MissingCredentials())

	cfg.Publisher.Kind = PublisherLog
	assert.Empty(t, cfg.MissingCredentials())
}
