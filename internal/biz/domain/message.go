package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Direction tells whether a message came from the contact or was sent to it
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// Origin distinguishes automated replies from messages typed by a person
type Origin string

const (
	OriginHuman Origin = "human"
	OriginBot   Origin = "bot"
)

// Message represents a message entity. Messages are never mutated after creation.
type Message struct {
	ID        string    `json:"id"`
	Direction Direction `json:"direction"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
	Origin    Origin    `json:"origin"`
}

// NewMessageID builds a unique message ID from the generation time and a random suffix
func NewMessageID(t time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%d-%s", t.UnixMilli(), suffix)
}

// NewInboundMessage creates a message received from a contact
func NewInboundMessage(id, body string, t time.Time) Message {
	if id == "" {
		id = NewMessageID(t)
	}
	return Message{
		ID:        id,
		Direction: DirectionInbound,
		Body:      body,
		Timestamp: t,
		Origin:    OriginHuman,
	}
}

// NewOutboundMessage creates a message sent to a contact
func NewOutboundMessage(body string, origin Origin, t time.Time) Message {
	return Message{
		ID:        NewMessageID(t),
		Direction: DirectionOutbound,
		Body:      body,
		Timestamp: t,
		Origin:    origin,
	}
}

// IsInbound checks if the message was received from the contact
func (m *Message) IsInbound() bool {
	return m.Direction == DirectionInbound
}

// IsFromBot checks if the message is an automated reply
func (m *Message) IsFromBot() bool {
	return m.Origin == OriginBot
}

// LoggedMessage is a message in the process-wide message log
type LoggedMessage struct {
	ContactID string `json:"contact_id"`
	Message
}

// ReplyKind tells which rule produced an outbound message
type ReplyKind string

const (
	ReplyOutOfHours ReplyKind = "out_of_hours"
	ReplyCommand    ReplyKind = "command"
	ReplyWelcome    ReplyKind = "welcome"
	ReplyOperator   ReplyKind = "operator"
)

// OutboundMessage is a reply to be dispatched over the messaging transport
type OutboundMessage struct {
	Address string
	Body    string
	Kind    ReplyKind
}
