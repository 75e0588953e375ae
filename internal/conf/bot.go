package conf

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/deskbot/whatsapp-desk/internal/biz/domain"
)

// botFile is the on-disk shape of the initial bot configuration.
// Pointers tell an explicit false apart from a missing key.
type botFile struct {
	AutoReplyEnabled     *bool                  `yaml:"auto_reply_enabled"`
	BusinessHoursEnabled *bool                  `yaml:"business_hours_enabled"`
	StartTime            string                 `yaml:"start_time"`
	EndTime              string                 `yaml:"end_time"`
	WelcomeMessage       string                 `yaml:"welcome_message"`
	CustomCommands       []domain.CustomCommand `yaml:"custom_commands"`
}

// LoadBotConfig loads the initial bot configuration from YAML.
// Keys missing from the file, or the whole file when none is found, take their value from defaults.
func LoadBotConfig(configPath string, defaults domain.BotConfig, logger *zap.Logger) (domain.BotConfig, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Try multiple paths
	paths := []string{configPath}
	if configPath == "" {
		paths = []string{
			"configs/bot.yaml",
			"/etc/whatsapp-desk/bot.yaml",
		}
		// Add path relative to executable
		if execPath, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Join(filepath.Dir(execPath), "configs", "bot.yaml"))
		}
	}

	var data []byte
	var loadedPath string
	for _, p := range paths {
		if b, err := os.ReadFile(p); err == nil {
			data, loadedPath = b, p
			break
		}
	}

	if data == nil {
		if configPath != "" {
			return domain.BotConfig{}, fmt.Errorf("failed to read bot config %s", configPath)
		}
		logger.Info("no bot.yaml found, using defaults")
		return defaults.Clone(), nil
	}

	logger.Info("loading bot config", zap.String("path", loadedPath))

	var file botFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.BotConfig{}, fmt.Errorf("failed to parse bot.yaml: %w", err)
	}

	cfg := file.withDefaults(defaults)
	if err := cfg.Normalize(); err != nil {
		return domain.BotConfig{}, fmt.Errorf("%s: %w", loadedPath, err)
	}
	return cfg, nil
}

// withDefaults fills in default values for empty fields
func (f botFile) withDefaults(defaults domain.BotConfig) domain.BotConfig {
	cfg := defaults.Clone()

	if f.AutoReplyEnabled != nil {
		cfg.AutoReplyEnabled = *f.AutoReplyEnabled
	}
	if f.BusinessHoursEnabled != nil {
		cfg.BusinessHoursEnabled = *f.BusinessHoursEnabled
	}
	if f.StartTime != "" {
		cfg.StartTime = f.StartTime
	}
	if f.EndTime != "" {
		cfg.EndTime = f.EndTime
	}
	if f.WelcomeMessage != "" {
		cfg.WelcomeMessage = f.WelcomeMessage
	}
	if f.CustomCommands != nil {
		cfg.CustomCommands = f.CustomCommands
	}
	return cfg
}
