package domain

import "time"

// Conversation represents the conversation aggregate root for one external contact
type Conversation struct {
	ContactID       string    `json:"contact_id"`
	DisplayName     string    `json:"display_name"`
	LastMessageText string    `json:"last_message_text"`
	LastMessageAt   time.Time `json:"last_message_at"`
	UnreadCount     int       `json:"unread_count"`
	Transcript      []Message `json:"transcript"`
}

// NewConversation creates an empty conversation for a contact
func NewConversation(contactID string) *Conversation {
	return &Conversation{
		ContactID:  contactID,
		Transcript: []Message{},
	}
}

// Append adds a message to the transcript and refreshes the last message preview.
// Inbound messages also bump the unread counter.
func (c *Conversation) Append(m Message) {
	c.Transcript = append(c.Transcript, m)
	c.LastMessageText = m.Body
	c.LastMessageAt = m.Timestamp
	if m.IsInbound() {
		c.UnreadCount++
	}
}

// MarkViewed resets the unread counter
func (c *Conversation) MarkViewed() {
	c.UnreadCount = 0
}

// IsFirstContact checks if the transcript holds only the very first message
func (c *Conversation) IsFirstContact() bool {
	return len(c.Transcript) == 1
}

// LastMessage returns the most recent message, nil if the transcript is empty
func (c *Conversation) LastMessage() *Message {
	if len(c.Transcript) == 0 {
		return nil
	}
	m := c.Transcript[len(c.Transcript)-1]
	return &m
}

// Clone returns a deep copy safe to hand out of a store
func (c *Conversation) Clone() *Conversation {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Transcript = make([]Message, len(c.Transcript))
	copy(cp.Transcript, c.Transcript)
	return &cp
}

// ConversationSummary is the listing view of a conversation
type ConversationSummary struct {
	ContactID       string    `json:"contact_id"`
	DisplayName     string    `json:"display_name"`
	LastMessageText string    `json:"last_message_text"`
	LastMessageAt   time.Time `json:"last_message_at"`
	UnreadCount     int       `json:"unread_count"`
	MessageCount    int       `json:"message_count"`
}

// Summary builds the listing view
func (c *Conversation) Summary() ConversationSummary {
	return ConversationSummary{
		ContactID:       c.ContactID,
		DisplayName:     c.DisplayName,
		LastMessageText: c.LastMessageText,
		LastMessageAt:   c.LastMessageAt,
		UnreadCount:     c.UnreadCount,
		MessageCount:    len(c.Transcript),
	}
}
