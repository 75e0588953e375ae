package usecase

import (
	"context"
	"fmt"

	"github.com/deskbot/whatsapp-desk/internal/biz/domain"
	"github.com/deskbot/whatsapp-desk/internal/biz/repo"
)

// ConfigUsecase handles bot configuration reads and administrative updates
type ConfigUsecase struct {
	configRepo repo.ConfigRepo
}

// NewConfigUsecase creates a new config usecase
func NewConfigUsecase(configRepo repo.ConfigRepo) *ConfigUsecase {
	return &ConfigUsecase{configRepo: configRepo}
}

// Get returns the current configuration
func (uc *ConfigUsecase) Get(ctx context.Context) domain.BotConfig {
	return uc.configRepo.Get(ctx)
}

// Update validates and replaces the configuration, returning the stored value
func (uc *ConfigUsecase) Update(ctx context.Context, cfg domain.BotConfig) (domain.BotConfig, error) {
	if err := cfg.Normalize(); err != nil {
		return domain.BotConfig{}, err
	}
	if cfg.CustomCommands == nil {
		cfg.CustomCommands = []domain.CustomCommand{}
	}
	if err := uc.configRepo.Update(ctx, cfg); err != nil {
		return domain.BotConfig{}, fmt.Errorf("update bot config: %w", err)
	}
	return uc.configRepo.Get(ctx), nil
}
