package domain

import (
	"strings"
	"time"
)

// Message kinds emitted by the platform that never come from a real contact
const (
	KindNotificationTemplate = "notification_template"
	KindSystem               = "system"
)

var systemAddressMarkers = []string{"status@broadcast", "@broadcast", "@g.us"}

// RawInboundMessage is an inbound message as delivered by the transport
type RawInboundMessage struct {
	SenderAddress string
	Body          string
	Kind          string
	DisplayName   string
	ID            string
	Timestamp     time.Time
}

// IsSystemChannel checks if the message comes from a broadcast, status or group address,
// or is a platform notification
func (m RawInboundMessage) IsSystemChannel() bool {
	for _, marker := range systemAddressMarkers {
		if strings.Contains(m.SenderAddress, marker) {
			return true
		}
	}
	return m.Kind == KindNotificationTemplate || m.Kind == KindSystem
}

// IsMalformed checks if the sender or the body is missing
func (m RawInboundMessage) IsMalformed() bool {
	return strings.TrimSpace(m.SenderAddress) == "" || m.Body == ""
}

// IsDiscardable checks if the message must be dropped before reaching storage
func (m RawInboundMessage) IsDiscardable() bool {
	return m.IsMalformed() || m.IsSystemChannel()
}
