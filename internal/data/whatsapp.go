package data

import (
	"context"

	"github.com/deskbot/whatsapp-desk/internal/biz/repo"
	"github.com/deskbot/whatsapp-desk/internal/infra/whatsapp"
)

// whatsappRepo implements the transport repository over whatsmeow
type whatsappRepo struct {
	client *whatsapp.Client
}

// NewWhatsAppRepo creates a new WhatsApp transport repository
func NewWhatsAppRepo(client *whatsapp.Client) repo.TransportRepo {
	return &whatsappRepo{client: client}
}

// NormalizeAddress maps bare phone numbers and JIDs to the JID string
func (r *whatsappRepo) NormalizeAddress(address string) (string, error) {
	return whatsapp.NormalizeAddress(address)
}

// SendText sends a text message
func (r *whatsappRepo) SendText(ctx context.Context, address, body string) error {
	return r.client.SendText(ctx, address, body)
}

// IsConnected reports whether the socket is up
func (r *whatsappRepo) IsConnected() bool {
	return r.client.IsConnected()
}

// IsLoggedIn reports whether the device is authenticated
func (r *whatsappRepo) IsLoggedIn() bool {
	return r.client.IsLoggedIn()
}

// Logout unlinks the device
func (r *whatsappRepo) Logout(ctx context.Context) error {
	return r.client.Logout(ctx)
}
