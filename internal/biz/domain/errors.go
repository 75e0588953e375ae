package domain

import "errors"

var (
	// ErrNotReady is returned when an operation needs an authenticated messaging session
	ErrNotReady = errors.New("messaging session is not ready")
	// ErrConversationNotFound is returned when no conversation exists for a contact
	ErrConversationNotFound = errors.New("conversation not found")
	// ErrInvalidAddress is returned when a contact address cannot be parsed
	ErrInvalidAddress = errors.New("invalid contact address")
	// ErrInvalidConfig is returned when a bot configuration fails validation
	ErrInvalidConfig = errors.New("invalid bot config")
)
