package repo

import (
	"context"

	"github.com/deskbot/whatsapp-desk/internal/biz/domain"
)

// MessageLogRepo is the global message log interface
// Holds every stored message across conversations, oldest entries evicted first
type MessageLogRepo interface {
	// Append appends a message to the log
	Append(ctx context.Context, msg domain.LoggedMessage) error

	// Recent returns up to limit of the newest messages, oldest first
	Recent(ctx context.Context, limit int) ([]domain.LoggedMessage, error)
}

// TransportRepo is the messaging transport interface
// Responsible for delivering text to WhatsApp contacts
type TransportRepo interface {
	// NormalizeAddress returns the canonical form of a contact address,
	// the key conversations are stored under
	NormalizeAddress(address string) (string, error)

	// SendText sends a text message to an address
	SendText(ctx context.Context, address, body string) error

	// IsConnected reports whether the socket is up
	IsConnected() bool

	// IsLoggedIn reports whether the device is paired and authenticated
	IsLoggedIn() bool

	// Logout unpairs the device
	Logout(ctx context.Context) error
}
