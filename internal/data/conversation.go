package data

import (
	"context"
	"sort"
	"sync"

	"github.com/deskbot/whatsapp-desk/internal/biz/domain"
	"github.com/deskbot/whatsapp-desk/internal/biz/repo"
)

// conversationRepo implements the in-memory conversation repository
type conversationRepo struct {
	mu    sync.RWMutex
	convs map[string]*domain.Conversation
}

// NewConversationRepo creates a new in-memory conversation repository
func NewConversationRepo() repo.ConversationRepo {
	return &conversationRepo{convs: make(map[string]*domain.Conversation)}
}

// Get gets a copy of a conversation
func (r *conversationRepo) Get(ctx context.Context, contactID string) (*domain.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.convs[contactID].Clone(), nil
}

// Upsert mutates a conversation, creating it when missing
func (r *conversationRepo) Upsert(ctx context.Context, contactID string, mutator repo.ConversationMutator) (*domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv, ok := r.convs[contactID]
	if !ok {
		conv = domain.NewConversation(contactID)
		r.convs[contactID] = conv
	}
	if mutator != nil {
		mutator(conv)
	}
	return conv.Clone(), nil
}

// ListAll lists conversations, most recent activity first
func (r *conversationRepo) ListAll(ctx context.Context) ([]*domain.Conversation, error) {
	r.mu.RLock()
	result := make([]*domain.Conversation, 0, len(r.convs))
	for _, c := range r.convs {
		result = append(result, c.Clone())
	}
	r.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].LastMessageAt.Equal(result[j].LastMessageAt) {
			return result[i].ContactID < result[j].ContactID
		}
		return result[i].LastMessageAt.After(result[j].LastMessageAt)
	})
	return result, nil
}

// Delete deletes a conversation
func (r *conversationRepo) Delete(ctx context.Context, contactID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.convs[contactID]; !ok {
		return domain.ErrConversationNotFound
	}
	delete(r.convs, contactID)
	return nil
}

// Purge deletes all conversations
func (r *conversationRepo) Purge(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.convs)
	r.convs = make(map[string]*domain.Conversation)
	return n, nil
}
