package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawInboundMessage_IsDiscardable(t *testing.T) {
	tests := []struct {
		name    string
		msg     RawInboundMessage
		discard bool
	}{
		{"contact", RawInboundMessage{SenderAddress: "5511999999999@s.whatsapp.net", Body: "oi"}, false},
		{"status", RawInboundMessage{SenderAddress: "status@broadcast", Body: "x"}, true},
		{"broadcast list", RawInboundMessage{SenderAddress: "123456@broadcast", Body: "x"}, true},
		{"group", RawInboundMessage{SenderAddress: "1203630@g.us", Body: "x"}, true},
		{"notification", RawInboundMessage{SenderAddress: "a@s.whatsapp.net", Body: "x", Kind: KindNotificationTemplate}, true},
		{"system", RawInboundMessage{SenderAddress: "a@s.whatsapp.net", Body: "x", Kind: KindSystem}, true},
		{"no sender", RawInboundMessage{Body: "x"}, true},
		{"no body", RawInboundMessage{SenderAddress: "a@s.whatsapp.net"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.discard, tt.msg.IsDiscardable())
		})
	}
}

func TestConnectionEvent_TargetState(t *testing.T) {
	tests := map[ConnectionEventKind]ConnectionState{
		EventQR:            StateConnecting,
		EventAuthenticated: StateAuthenticated,
		EventReady:         StateReady,
		EventDisconnected:  StateDisconnected,
		EventAuthFailure:   StateDisconnected,
		EventLogout:        StateDisconnected,
	}
	for kind, want := range tests {
		assert.Equal(t, want, (ConnectionEvent{Kind: kind}).TargetState(), string(kind))
	}
}
