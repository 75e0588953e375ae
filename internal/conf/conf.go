package conf

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents application configuration
type Config struct {
	// HTTP admin API configuration
	HTTP HTTPConfig

	// WhatsApp session configuration
	WhatsApp WhatsAppConfig

	// Bot behavior configuration
	Bot BotSettings

	// Logging configuration
	Log LogConfig

	// Debug mode forces debug logging
	Debug bool
}

// HTTPConfig contains admin API configuration
type HTTPConfig struct {
	Addr        string
	AdminToken  string
	RateRPS     float64
	RateBurst   int
	CORSOrigins []string
}

// WhatsAppConfig contains WhatsApp session configuration
type WhatsAppConfig struct {
	StorePath   string        // SQLite file holding the paired device keys
	HealthCheck time.Duration // Connection poll interval
}

// BotSettings contains auto-reply configuration
type BotSettings struct {
	ConfigPath      string // YAML file with the initial bot configuration
	Timezone        string
	Locale          string
	MessageLogLimit int
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// LoadDotEnv loads a .env file when one exists; missing files are not an error
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	// WhatsApp device store path
	storePath := os.Getenv("WHATSAPP_STORE_PATH")
	if storePath == "" {
		homeDir, _ := os.UserHomeDir()
		storePath = filepath.Join(homeDir, ".whatsapp-desk", "device.db")
	}

	// Health check interval
	healthSeconds := 5
	if val := os.Getenv("HEALTHCHECK_SECONDS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			healthSeconds = parsed
		}
	}

	// Message log capacity
	logLimit := 1000
	if val := os.Getenv("MESSAGE_LOG_LIMIT"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			logLimit = parsed
		}
	}

	// Rate limiting
	rateRPS := 5.0
	if val := os.Getenv("API_RATE_RPS"); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			rateRPS = parsed
		}
	}
	rateBurst := 10
	if val := os.Getenv("API_RATE_BURST"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			rateBurst = parsed
		}
	}

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	locale := os.Getenv("BOT_LOCALE")
	if locale == "" {
		locale = "pt-BR"
	}

	return &Config{
		HTTP: HTTPConfig{
			Addr:        addr,
			AdminToken:  os.Getenv("ADMIN_TOKEN"),
			RateRPS:     rateRPS,
			RateBurst:   rateBurst,
			CORSOrigins: splitList(os.Getenv("CORS_ORIGINS")),
		},
		WhatsApp: WhatsAppConfig{
			StorePath:   storePath,
			HealthCheck: time.Duration(healthSeconds) * time.Second,
		},
		Bot: BotSettings{
			ConfigPath:      os.Getenv("BOT_CONFIG_PATH"),
			Timezone:        os.Getenv("BOT_TIMEZONE"),
			Locale:          locale,
			MessageLogLimit: logLimit,
		},
		Log: LogConfig{
			Level:  os.Getenv("LOG_LEVEL"),
			Format: os.Getenv("LOG_FORMAT"),
		},
		Debug: os.Getenv("DEBUG") == "true",
	}
}

// Location resolves the configured timezone, local time when unset
func (c *Config) Location() (*time.Location, error) {
	if c.Bot.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Bot.Timezone)
	if err != nil {
		return nil, &ConfigError{Field: "BOT_TIMEZONE", Message: err.Error()}
	}
	return loc, nil
}

// LogLevel returns the effective log level, debug whenever DEBUG is set
func (c *Config) LogLevel() string {
	if c.Debug {
		return "debug"
	}
	return c.Log.Level
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.HTTP.AdminToken == "" {
		return &ConfigError{Field: "ADMIN_TOKEN", Message: "required"}
	}
	if c.HTTP.RateRPS < 0 || c.HTTP.RateBurst < 0 {
		return &ConfigError{Field: "API_RATE_RPS/API_RATE_BURST", Message: "must not be negative"}
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
