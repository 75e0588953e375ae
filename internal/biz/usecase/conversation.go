package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/deskbot/whatsapp-desk/internal/biz/domain"
	"github.com/deskbot/whatsapp-desk/internal/biz/repo"
)

// DefaultRecentMessages is the message log page size when none is given
const DefaultRecentMessages = 50

// ConversationUsecase handles operator-side conversation logic
type ConversationUsecase struct {
	convRepo repo.ConversationRepo
	logRepo  repo.MessageLogRepo
	now      func() time.Time
}

// NewConversationUsecase creates a new conversation usecase
func NewConversationUsecase(convRepo repo.ConversationRepo, logRepo repo.MessageLogRepo, now func() time.Time) *ConversationUsecase {
	if now == nil {
		now = time.Now
	}
	return &ConversationUsecase{
		convRepo: convRepo,
		logRepo:  logRepo,
		now:      now,
	}
}

// ConversationListItem is a conversation summary with a humanized age
type ConversationListItem struct {
	domain.ConversationSummary
	LastMessageAge string `json:"last_message_age"`
}

// List lists conversation summaries, most recent activity first
func (uc *ConversationUsecase) List(ctx context.Context) ([]ConversationListItem, error) {
	convs, err := uc.convRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	now := uc.now()
	items := make([]ConversationListItem, 0, len(convs))
	for _, c := range convs {
		item := ConversationListItem{ConversationSummary: c.Summary()}
		if !c.LastMessageAt.IsZero() {
			item.LastMessageAge = humanize.RelTime(c.LastMessageAt, now, "ago", "from now")
		}
		items = append(items, item)
	}
	return items, nil
}

// View returns the full conversation and resets its unread counter
func (uc *ConversationUsecase) View(ctx context.Context, contactID string) (*domain.Conversation, error) {
	existing, err := uc.convRepo.Get(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	if existing == nil {
		return nil, domain.ErrConversationNotFound
	}

	conv, err := uc.convRepo.Upsert(ctx, contactID, func(c *domain.Conversation) {
		c.MarkViewed()
	})
	if err != nil {
		return nil, fmt.Errorf("mark conversation viewed: %w", err)
	}
	return conv, nil
}

// RecordOperatorMessage appends a message typed by an operator that was already delivered
func (uc *ConversationUsecase) RecordOperatorMessage(ctx context.Context, contactID, body string) (*domain.Message, error) {
	msg := domain.NewOutboundMessage(body, domain.OriginHuman, uc.now())
	if _, err := uc.convRepo.Upsert(ctx, contactID, func(c *domain.Conversation) {
		c.Append(msg)
	}); err != nil {
		return nil, fmt.Errorf("store operator message: %w", err)
	}
	if err := uc.logRepo.Append(ctx, domain.LoggedMessage{ContactID: contactID, Message: msg}); err != nil {
		return nil, fmt.Errorf("append message log: %w", err)
	}
	return &msg, nil
}

// Purge deletes one conversation
func (uc *ConversationUsecase) Purge(ctx context.Context, contactID string) error {
	return uc.convRepo.Delete(ctx, contactID)
}

// PurgeAll deletes every conversation and returns how many were removed
func (uc *ConversationUsecase) PurgeAll(ctx context.Context) (int, error) {
	n, err := uc.convRepo.Purge(ctx)
	if err != nil {
		return 0, fmt.Errorf("purge conversations: %w", err)
	}
	return n, nil
}

// RecentMessages returns the newest entries of the global message log
func (uc *ConversationUsecase) RecentMessages(ctx context.Context, limit int) ([]domain.LoggedMessage, error) {
	if limit <= 0 {
		limit = DefaultRecentMessages
	}
	return uc.logRepo.Recent(ctx, limit)
}
