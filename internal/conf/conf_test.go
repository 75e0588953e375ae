package conf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskbot/whatsapp-desk/internal/biz/domain"
	"github.com/deskbot/whatsapp-desk/internal/locale"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "ADMIN_TOKEN", "HEALTHCHECK_SECONDS", "MESSAGE_LOG_LIMIT", "CORS_ORIGINS", "BOT_LOCALE"} {
		t.Setenv(k, "")
	}

	cfg := LoadFromEnv()

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 5*time.Second, cfg.WhatsApp.HealthCheck)
	assert.Equal(t, 1000, cfg.Bot.MessageLogLimit)
	assert.Equal(t, "pt-BR", cfg.Bot.Locale)
	assert.Empty(t, cfg.HTTP.CORSOrigins)

	var cfgErr *ConfigError
	require.True(t, errors.As(cfg.Validate(), &cfgErr))
	assert.Equal(t, "ADMIN_TOKEN", cfgErr.Field)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "s3cret")
	t.Setenv("HEALTHCHECK_SECONDS", "12")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://desk.example.com")
	t.Setenv("API_RATE_RPS", "2.5")
	t.Setenv("BOT_TIMEZONE", "America/Sao_Paulo")

	cfg := LoadFromEnv()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 12*time.Second, cfg.WhatsApp.HealthCheck)
	assert.Equal(t, []string{"http://localhost:3000", "https://desk.example.com"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 2.5, cfg.HTTP.RateRPS)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", loc.String())
}

func TestValidate_BadTimezone(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "x")
	t.Setenv("BOT_TIMEZONE", "Mars/Olympus")

	assert.Error(t, LoadFromEnv().Validate())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("DESK_TEST_DOTENV=loaded\n"), 0644))
	t.Setenv("DESK_TEST_DOTENV", "")
	os.Unsetenv("DESK_TEST_DOTENV")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("DESK_TEST_DOTENV"))

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestLoadBotConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bot.yaml")
	content := `
auto_reply_enabled: false
business_hours_enabled: true
start_time: "8:30"
custom_commands:
  - trigger: preço
    response: Consulte nossa tabela em nosso site.
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadBotConfig(path, domain.DefaultBotConfig(), nil)
	require.NoError(t, err)

	assert.False(t, cfg.AutoReplyEnabled)
	assert.True(t, cfg.BusinessHoursEnabled)
	assert.Equal(t, "08:30", cfg.StartTime)
	assert.Equal(t, domain.DefaultBotConfig().EndTime, cfg.EndTime)
	assert.Equal(t, domain.DefaultBotConfig().WelcomeMessage, cfg.WelcomeMessage)
	require.Len(t, cfg.CustomCommands, 1)
	assert.Equal(t, "preço", cfg.CustomCommands[0].Trigger)
}

func TestLoadBotConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`end_time: "99:99"`), 0644))

	_, err := LoadBotConfig(path, domain.DefaultBotConfig(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	_, err = LoadBotConfig(filepath.Join(dir, "missing.yaml"), domain.DefaultBotConfig(), nil)
	assert.Error(t, err)
}

func TestLoadBotConfig_LocaleWelcome(t *testing.T) {
	texts, err := locale.New("en", time.UTC)
	require.NoError(t, err)
	defaults := domain.DefaultBotConfig()
	defaults.WelcomeMessage = texts.DefaultWelcome()

	cfg, err := LoadBotConfig("", defaults, nil)
	require.NoError(t, err)
	assert.Equal(t, texts.DefaultWelcome(), cfg.WelcomeMessage)
	assert.NotEqual(t, domain.DefaultBotConfig().WelcomeMessage, cfg.WelcomeMessage)

	// A file without welcome_message keeps the localized default
	path := filepath.Join(t.TempDir(), "bot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auto_reply_enabled: true\n"), 0644))
	cfg, err = LoadBotConfig(path, defaults, nil)
	require.NoError(t, err)
	assert.Equal(t, texts.DefaultWelcome(), cfg.WelcomeMessage)
}

func TestLogLevel(t *testing.T) {
	cfg := &Config{Log: LogConfig{Level: "warn"}}
	assert.Equal(t, "warn", cfg.LogLevel())

	cfg.Debug = true
	assert.Equal(t, "debug", cfg.LogLevel())
}
