package data

import (
	"context"
	"sync"

	"github.com/deskbot/whatsapp-desk/internal/biz/domain"
	"github.com/deskbot/whatsapp-desk/internal/biz/repo"
)

// DefaultMessageLogLimit is the log capacity when none is configured
const DefaultMessageLogLimit = 1000

// messageLogRepo implements a capped in-memory message log
type messageLogRepo struct {
	mu      sync.RWMutex
	limit   int
	entries []domain.LoggedMessage
}

// NewMessageLogRepo creates a message log keeping at most limit entries
func NewMessageLogRepo(limit int) repo.MessageLogRepo {
	if limit <= 0 {
		limit = DefaultMessageLogLimit
	}
	return &messageLogRepo{limit: limit}
}

// Append appends a message, evicting the oldest entries over the limit
func (r *messageLogRepo) Append(ctx context.Context, msg domain.LoggedMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, msg)
	if over := len(r.entries) - r.limit; over > 0 {
		r.entries = append(r.entries[:0:0], r.entries[over:]...)
	}
	return nil
}

// Recent returns the newest messages, oldest first
func (r *messageLogRepo) Recent(ctx context.Context, limit int) ([]domain.LoggedMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.entries) {
		limit = len(r.entries)
	}
	result := make([]domain.LoggedMessage, limit)
	copy(result, r.entries[len(r.entries)-limit:])
	return result, nil
}
