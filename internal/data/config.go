package data

import (
	"context"
	"sync"

	"github.com/deskbot/whatsapp-desk/internal/biz/domain"
	"github.com/deskbot/whatsapp-desk/internal/biz/repo"
)

// configRepo implements the in-memory bot configuration singleton
type configRepo struct {
	mu  sync.RWMutex
	cfg domain.BotConfig
}

// NewConfigRepo creates a config repository seeded with initial
func NewConfigRepo(initial domain.BotConfig) repo.ConfigRepo {
	return &configRepo{cfg: initial.Clone()}
}

// Get gets a copy of the configuration
func (r *configRepo) Get(ctx context.Context) domain.BotConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg.Clone()
}

// Update replaces the configuration
func (r *configRepo) Update(ctx context.Context, cfg domain.BotConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg = cfg.Clone()
	return nil
}
