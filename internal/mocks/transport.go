package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/deskbot/whatsapp-desk/internal/infra/whatsapp"
)

// TransportMock is a mock for the messaging transport
type TransportMock struct {
	mock.Mock
}

// NormalizeAddress uses the real address parser so stored keys match production
func (m *TransportMock) NormalizeAddress(address string) (string, error) {
	return whatsapp.NormalizeAddress(address)
}

// SendText mocks sending a text message
func (m *TransportMock) SendText(ctx context.Context, address, body string) error {
	args := m.Called(address, body)
	return args.Error(0)
}

// IsConnected mocks the socket state
func (m *TransportMock) IsConnected() bool {
	return m.Called().Bool(0)
}

// IsLoggedIn mocks the pairing state
func (m *TransportMock) IsLoggedIn() bool {
	return m.Called().Bool(0)
}

// Logout mocks unlinking the device
func (m *TransportMock) Logout(ctx context.Context) error {
	return m.Called().Error(0)
}
