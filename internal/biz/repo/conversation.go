package repo

import (
	"context"

	"github.com/deskbot/whatsapp-desk/internal/biz/domain"
)

// ConversationMutator mutates a conversation in place while the store holds its lock
type ConversationMutator func(c *domain.Conversation)

// ConversationRepo is the conversation repository interface
// Keeps one conversation per external contact, process-local
type ConversationRepo interface {
	// Get gets a copy of the conversation, nil if the contact is unknown
	Get(ctx context.Context, contactID string) (*domain.Conversation, error)

	// Upsert applies mutator to the conversation, creating it first when missing
	// Returns a copy of the conversation after the mutation
	Upsert(ctx context.Context, contactID string, mutator ConversationMutator) (*domain.Conversation, error)

	// ListAll lists all conversations, most recent activity first
	ListAll(ctx context.Context) ([]*domain.Conversation, error)

	// Delete deletes one conversation, returns domain.ErrConversationNotFound if absent
	Delete(ctx context.Context, contactID string) error

	// Purge deletes every conversation and returns how many were removed
	Purge(ctx context.Context) (int, error)
}
