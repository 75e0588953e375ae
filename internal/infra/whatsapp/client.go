package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
)

// EventKind enumerates session lifecycle notifications
type EventKind string

const (
	EventQR             EventKind = "qr"
	EventPaired         EventKind = "paired"
	EventConnected      EventKind = "connected"
	EventDisconnected   EventKind = "disconnected"
	EventConnectFailure EventKind = "connect_failure"
	EventStreamReplaced EventKind = "stream_replaced"
	EventLoggedOut      EventKind = "logged_out"
)

// ConnectionEvent is a session lifecycle notification
type ConnectionEvent struct {
	Kind   EventKind
	QRCode string
	Reason string
}

// Message represents a received WhatsApp message
type Message struct {
	ID        string
	Chat      string // Chat JID, the contact's JID for direct messages
	Sender    string
	PushName  string
	Text      string
	Type      string // text, media, reaction, poll
	Timestamp time.Time
	IsFromMe  bool
	IsSystem  bool // Protocol messages (revokes, edits, key shares)
}

// MessageHandler is the callback for received messages
type MessageHandler func(msg *Message)

// ConnectionHandler is the callback for lifecycle notifications
type ConnectionHandler func(evt ConnectionEvent)

// ErrNotConnected is returned when sending without a live session
var ErrNotConnected = errors.New("whatsapp client is not connected")

// Client is the WhatsApp multi-device client
type Client struct {
	storePath    string
	logger       *zap.Logger
	onMessage    MessageHandler
	onConnection ConnectionHandler

	mu    sync.RWMutex
	store *deviceStore
	wa    *whatsmeow.Client

	// relink starts a fresh pairing once the device is unlinked
	relink func()

	ctx    context.Context
	cancel context.CancelFunc
}

// NewClient creates a new WhatsApp client backed by the device database at storePath
func NewClient(storePath string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		storePath: storePath,
		logger:    logger.Named("whatsapp"),
	}
	c.relink = c.repair
	return c
}

// OnMessage sets the message handler
func (c *Client) OnMessage(handler MessageHandler) {
	c.onMessage = handler
}

// OnConnection sets the lifecycle handler
func (c *Client) OnConnection(handler ConnectionHandler) {
	c.onConnection = handler
}

// Start opens the device store and connects, pairing by QR code if needed
func (c *Client) Start(ctx context.Context) error {
	c.ctx, c.cancel = context.WithCancel(ctx)

	st, err := openDeviceStore(c.ctx, c.storePath, NewLogger(c.logger.Named("store")))
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.store = st
	c.mu.Unlock()

	return c.connect(c.ctx)
}

// Stop disconnects and closes the device store
func (c *Client) Stop() {
	if c.cancel != nil {
		c.cancel()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.wa != nil {
		c.wa.Disconnect()
	}
	if c.store != nil {
		if err := c.store.close(); err != nil {
			c.logger.Warn("failed to close device store", zap.Error(err))
		}
	}
}

// connect builds a whatsmeow client for the stored device and connects it
func (c *Client) connect(ctx context.Context) error {
	c.mu.RLock()
	st := c.store
	c.mu.RUnlock()
	if st == nil {
		return fmt.Errorf("device store is not open")
	}

	device, err := st.firstDevice(ctx)
	if err != nil {
		return err
	}

	wa := whatsmeow.NewClient(device, NewLogger(c.logger.Named("client")))
	wa.EnableAutoReconnect = true
	wa.AddEventHandler(c.handleEvent)

	c.mu.Lock()
	c.wa = wa
	c.mu.Unlock()

	if wa.Store.ID == nil {
		qrChan, err := wa.GetQRChannel(ctx)
		if err != nil {
			return fmt.Errorf("failed to get QR channel: %w", err)
		}
		if err := wa.Connect(); err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
		go c.watchQR(qrChan)
		c.logger.Info("waiting for device pairing")
		return nil
	}

	if err := wa.Connect(); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	c.logger.Info("connecting with stored session", zap.String("jid", wa.Store.ID.String()))
	return nil
}

// watchQR forwards pairing codes until pairing ends
func (c *Client) watchQR(qrChan <-chan whatsmeow.QRChannelItem) {
	for item := range qrChan {
		switch item.Event {
		case whatsmeow.QRChannelEventCode:
			c.emit(ConnectionEvent{Kind: EventQR, QRCode: item.Code})
		case whatsmeow.QRChannelSuccess.Event:
			c.logger.Info("device paired")
		case whatsmeow.QRChannelTimeout.Event:
			c.emit(ConnectionEvent{Kind: EventDisconnected, Reason: "pairing timed out"})
		case whatsmeow.QRChannelEventError:
			c.emit(ConnectionEvent{Kind: EventConnectFailure, Reason: fmt.Sprint(item.Error)})
		default:
			c.logger.Debug("qr channel event", zap.String("event", item.Event))
		}
	}
}

func (c *Client) handleEvent(evt interface{}) {
	switch v := evt.(type) {
	case *events.Message:
		c.handleMessage(v)
	case *events.PairSuccess:
		c.emit(ConnectionEvent{Kind: EventPaired, Reason: v.ID.String()})
	case *events.Connected:
		c.emit(ConnectionEvent{Kind: EventConnected})
	case *events.Disconnected:
		c.emit(ConnectionEvent{Kind: EventDisconnected})
	case *events.StreamReplaced:
		c.emit(ConnectionEvent{Kind: EventStreamReplaced})
	case *events.ConnectFailure:
		c.emit(ConnectionEvent{Kind: EventConnectFailure, Reason: v.Reason.String()})
	case *events.LoggedOut:
		c.emit(ConnectionEvent{Kind: EventLoggedOut, Reason: v.Reason.String()})
		go c.relink()
	}
}

// repair starts a fresh pairing after the device was unlinked
func (c *Client) repair() {
	if c.ctx == nil || c.ctx.Err() != nil {
		return
	}
	c.mu.Lock()
	old := c.wa
	c.mu.Unlock()
	if old != nil {
		old.Disconnect()
	}
	if err := c.connect(c.ctx); err != nil {
		c.logger.Error("failed to restart pairing", zap.Error(err))
	}
}

func (c *Client) handleMessage(evt *events.Message) {
	if c.onMessage == nil || evt.Message == nil {
		return
	}
	msg := &Message{
		ID:        evt.Info.ID,
		Chat:      evt.Info.Chat.String(),
		Sender:    evt.Info.Sender.String(),
		PushName:  evt.Info.PushName,
		Text:      extractText(evt.Message),
		Type:      evt.Info.Type,
		Timestamp: evt.Info.Timestamp,
		IsFromMe:  evt.Info.IsFromMe,
		IsSystem:  evt.Message.GetProtocolMessage() != nil || evt.Message.GetSenderKeyDistributionMessage() != nil,
	}
	c.onMessage(msg)
}

// extractText pulls the readable text out of the supported message types
func extractText(m *waE2E.Message) string {
	if text := m.GetConversation(); text != "" {
		return text
	}
	if text := m.GetExtendedTextMessage().GetText(); text != "" {
		return text
	}
	if text := m.GetImageMessage().GetCaption(); text != "" {
		return text
	}
	if text := m.GetVideoMessage().GetCaption(); text != "" {
		return text
	}
	return m.GetDocumentMessage().GetCaption()
}

func (c *Client) emit(evt ConnectionEvent) {
	c.logger.Debug("connection event", zap.String("kind", string(evt.Kind)), zap.String("reason", evt.Reason))
	if c.onConnection != nil {
		c.onConnection(evt)
	}
}

func (c *Client) current() *whatsmeow.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.wa
}

// SendText sends a text message to a JID or a bare phone number
func (c *Client) SendText(ctx context.Context, to, text string) error {
	wa := c.current()
	if wa == nil || !wa.IsConnected() {
		return ErrNotConnected
	}

	jid, err := ParseAddress(to)
	if err != nil {
		return err
	}

	_, err = wa.SendMessage(ctx, jid, &waE2E.Message{
		Conversation: proto.String(text),
	})
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// IsConnected reports whether the websocket is up
func (c *Client) IsConnected() bool {
	wa := c.current()
	return wa != nil && wa.IsConnected()
}

// IsLoggedIn reports whether the device is paired and authenticated
func (c *Client) IsLoggedIn() bool {
	wa := c.current()
	return wa != nil && wa.IsLoggedIn()
}

// Logout unlinks the device; a new pairing starts afterwards
func (c *Client) Logout(ctx context.Context) error {
	wa := c.current()
	if wa == nil {
		return ErrNotConnected
	}
	return c.afterLogout(wa.Logout(ctx))
}

// afterLogout reports an operator logout and restarts pairing.
// whatsmeow emits no LoggedOut event for a logout it initiated itself.
func (c *Client) afterLogout(err error) error {
	if err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	c.emit(ConnectionEvent{Kind: EventLoggedOut, Reason: "logged out by operator"})
	go c.relink()
	return nil
}

// NormalizeAddress returns the canonical JID string of a contact address
func NormalizeAddress(addr string) (string, error) {
	jid, err := ParseAddress(addr)
	if err != nil {
		return "", err
	}
	return jid.String(), nil
}

// ParseAddress converts a contact address to a JID, bare phone numbers map to user JIDs
func ParseAddress(addr string) (types.JID, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return types.JID{}, fmt.Errorf("empty address")
	}
	if !strings.Contains(addr, "@") {
		number := strings.TrimPrefix(addr, "+")
		for _, r := range number {
			if r < '0' || r > '9' {
				return types.JID{}, fmt.Errorf("invalid phone number %q", addr)
			}
		}
		return types.NewJID(number, types.DefaultUserServer), nil
	}
	jid, err := types.ParseJID(addr)
	if err != nil {
		return types.JID{}, fmt.Errorf("invalid address %q: %w", addr, err)
	}
	return jid, nil
}
