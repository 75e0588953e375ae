package mcp

import (
	"context"

	"github.com/deskbot/whatsapp-desk/internal/biz/domain"
	"github.com/deskbot/whatsapp-desk/internal/biz/usecase"
)

// Handler implements the operator tools on top of the admin API client
type Handler struct {
	client *Client
}

// NewHandler creates a new tool handler
func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// ListConversationsInput is empty - no input needed
type ListConversationsInput struct{}

// ListConversationsOutput contains conversation summaries
type ListConversationsOutput struct {
	Conversations []usecase.ConversationListItem `json:"conversations"`
	Error         string                         `json:"error,omitempty"`
}

// ListConversations lists conversations, most recent first
func (h *Handler) ListConversations(ctx context.Context, _ ListConversationsInput) (ListConversationsOutput, error) {
	items, err := h.client.ListConversations(ctx)
	if err != nil {
		return ListConversationsOutput{Error: err.Error()}, nil
	}
	return ListConversationsOutput{Conversations: items}, nil
}

// GetConversationInput is the input for desk_get_conversation
type GetConversationInput struct {
	ContactID string `json:"contact_id" jsonschema:"the contact address, e.g. 5511999999999@s.whatsapp.net"`
}

// GetConversationOutput contains the full conversation
type GetConversationOutput struct {
	Conversation *domain.Conversation `json:"conversation,omitempty"`
	Error        string               `json:"error,omitempty"`
}

// GetConversation reads a conversation transcript
func (h *Handler) GetConversation(ctx context.Context, in GetConversationInput) (GetConversationOutput, error) {
	if in.ContactID == "" {
		return GetConversationOutput{Error: "contact_id is required"}, nil
	}
	conv, err := h.client.GetConversation(ctx, in.ContactID)
	if err != nil {
		return GetConversationOutput{Error: err.Error()}, nil
	}
	return GetConversationOutput{Conversation: conv}, nil
}

// SendMessageInput is the input for desk_send_message
type SendMessageInput struct {
	ContactID string `json:"contact_id" jsonschema:"the contact address to send to"`
	Body      string `json:"body" jsonschema:"the message text"`
}

// SendMessageOutput is the output for desk_send_message
type SendMessageOutput struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// SendMessage sends an operator message
func (h *Handler) SendMessage(ctx context.Context, in SendMessageInput) (SendMessageOutput, error) {
	if in.ContactID == "" || in.Body == "" {
		return SendMessageOutput{Error: "contact_id and body are required"}, nil
	}
	msg, err := h.client.SendMessage(ctx, in.ContactID, in.Body)
	if err != nil {
		return SendMessageOutput{Error: err.Error()}, nil
	}
	return SendMessageOutput{Success: true, MessageID: msg.ID}, nil
}

// GetBotConfigInput is empty - no input needed
type GetBotConfigInput struct{}

// GetBotConfigOutput contains the bot configuration
type GetBotConfigOutput struct {
	Config *domain.BotConfig `json:"config,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// GetBotConfig reads the auto-reply configuration
func (h *Handler) GetBotConfig(ctx context.Context, _ GetBotConfigInput) (GetBotConfigOutput, error) {
	cfg, err := h.client.GetBotConfig(ctx)
	if err != nil {
		return GetBotConfigOutput{Error: err.Error()}, nil
	}
	return GetBotConfigOutput{Config: cfg}, nil
}

// BotStatusInput is empty - no input needed
type BotStatusInput struct{}

// BotStatusOutput contains the connection state
type BotStatusOutput struct {
	Status *domain.ConnectionStatus `json:"status,omitempty"`
	Error  string                   `json:"error,omitempty"`
}

// BotStatus reads the connection state
func (h *Handler) BotStatus(ctx context.Context, _ BotStatusInput) (BotStatusOutput, error) {
	status, err := h.client.BotStatus(ctx)
	if err != nil {
		return BotStatusOutput{Error: err.Error()}, nil
	}
	return BotStatusOutput{Status: status}, nil
}
