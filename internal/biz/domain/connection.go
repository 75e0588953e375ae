package domain

import "time"

// ConnectionState is the lifecycle state of the messaging session
type ConnectionState string

const (
	StateDisconnected  ConnectionState = "disconnected"
	StateConnecting    ConnectionState = "connecting"
	StateAuthenticated ConnectionState = "authenticated"
	StateReady         ConnectionState = "ready"
)

// IsReady checks if messages can be sent and received
func (s ConnectionState) IsReady() bool {
	return s == StateReady
}

// ConnectionStatus is a point-in-time view of the connection
type ConnectionStatus struct {
	State     ConnectionState `json:"state"`
	Ready     bool            `json:"ready"`
	HasQR     bool            `json:"has_qr"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ConnectionEventKind enumerates transport lifecycle callbacks
type ConnectionEventKind string

const (
	EventQR            ConnectionEventKind = "qr"
	EventAuthenticated ConnectionEventKind = "authenticated"
	EventReady         ConnectionEventKind = "ready"
	EventDisconnected  ConnectionEventKind = "disconnected"
	EventAuthFailure   ConnectionEventKind = "auth_failure"
	EventLogout        ConnectionEventKind = "logout"
)

// ConnectionEvent is a transport lifecycle notification
type ConnectionEvent struct {
	Kind   ConnectionEventKind
	QRCode string
	Reason string
}

// TargetState maps an event to the connection state it leads to
func (e ConnectionEvent) TargetState() ConnectionState {
	switch e.Kind {
	case EventQR:
		return StateConnecting
	case EventAuthenticated:
		return StateAuthenticated
	case EventReady:
		return StateReady
	default:
		return StateDisconnected
	}
}
