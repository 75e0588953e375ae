package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/deskbot/whatsapp-desk/internal/biz/domain"
	"github.com/deskbot/whatsapp-desk/internal/biz/usecase"
)

// Client is the HTTP client for the desk admin API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new admin API client
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ============ Bot ============

// BotStatus gets the connection state
func (c *Client) BotStatus(ctx context.Context) (*domain.ConnectionStatus, error) {
	var status domain.ConnectionStatus
	if err := c.do(ctx, http.MethodGet, "/api/bot/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetBotConfig gets the bot configuration
func (c *Client) GetBotConfig(ctx context.Context) (*domain.BotConfig, error) {
	var cfg domain.BotConfig
	if err := c.do(ctx, http.MethodGet, "/api/bot/config", nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ============ Conversations ============

// ListConversations lists conversation summaries
func (c *Client) ListConversations(ctx context.Context) ([]usecase.ConversationListItem, error) {
	var result struct {
		Conversations []usecase.ConversationListItem `json:"conversations"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/conversations", nil, &result); err != nil {
		return nil, err
	}
	return result.Conversations, nil
}

// GetConversation gets a full conversation, marking it viewed
func (c *Client) GetConversation(ctx context.Context, contactID string) (*domain.Conversation, error) {
	var conv domain.Conversation
	path := "/api/conversations/" + url.PathEscape(contactID)
	if err := c.do(ctx, http.MethodGet, path, nil, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// SendMessage sends an operator message to a contact
func (c *Client) SendMessage(ctx context.Context, contactID, body string) (*domain.Message, error) {
	var msg domain.Message
	path := "/api/conversations/" + url.PathEscape(contactID) + "/messages"
	if err := c.do(ctx, http.MethodPost, path, map[string]string{"body": body}, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal body: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP %s failed: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
