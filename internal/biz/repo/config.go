package repo

import (
	"context"

	"github.com/deskbot/whatsapp-desk/internal/biz/domain"
)

// ConfigRepo is the bot configuration repository interface
type ConfigRepo interface {
	// Get gets a copy of the current configuration
	Get(ctx context.Context) domain.BotConfig

	// Update replaces the configuration
	Update(ctx context.Context, cfg domain.BotConfig) error
}
