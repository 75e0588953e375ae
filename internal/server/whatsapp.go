package server

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/deskbot/whatsapp-desk/internal/biz/domain"
	"github.com/deskbot/whatsapp-desk/internal/infra/whatsapp"
	"github.com/deskbot/whatsapp-desk/internal/service"
)

// seenTTL is how long a message ID is remembered for redelivery checks
const seenTTL = 5 * time.Minute

// Session is the WhatsApp client surface the server drives
type Session interface {
	OnMessage(handler whatsapp.MessageHandler)
	OnConnection(handler whatsapp.ConnectionHandler)
	Start(ctx context.Context) error
	Stop()
}

// WhatsAppServer handles WhatsApp message processing
type WhatsAppServer struct {
	session Session
	botSvc  *service.BotService
	health  *service.HealthChecker
	logger  *zap.Logger

	ctx context.Context

	// Message deduplication cache
	seenMsgsMu sync.Mutex
	seenMsgs   map[string]time.Time // msgID -> timestamp
	now        func() time.Time
}

// NewWhatsAppServer creates a new WhatsApp server
func NewWhatsAppServer(
	session Session,
	botSvc *service.BotService,
	health *service.HealthChecker,
	logger *zap.Logger,
) *WhatsAppServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WhatsAppServer{
		session:  session,
		botSvc:   botSvc,
		health:   health,
		logger:   logger.Named("server"),
		ctx:      context.Background(),
		seenMsgs: make(map[string]time.Time),
		now:      time.Now,
	}
}

// Start starts the server
func (s *WhatsAppServer) Start(ctx context.Context) error {
	s.ctx = ctx

	// Set handlers and start the WhatsApp client
	s.session.OnMessage(s.handleMessage)
	s.session.OnConnection(s.handleConnection)
	if err := s.session.Start(ctx); err != nil {
		return err
	}

	if s.health != nil {
		s.health.Start(ctx)
	}
	return nil
}

// Stop stops the server
func (s *WhatsAppServer) Stop() {
	if s.health != nil {
		s.health.Stop()
	}
	s.session.Stop()
}

// handleMessage handles WhatsApp messages
func (s *WhatsAppServer) handleMessage(msg *whatsapp.Message) {
	if msg.IsFromMe {
		return
	}

	s.logger.Debug("received message",
		zap.String("id", msg.ID),
		zap.String("chat", msg.Chat),
		zap.String("type", msg.Type),
		zap.String("text", truncate(msg.Text, 50)))

	// Message deduplication: check if already processed
	if s.checkAndMark(msg.ID) {
		s.logger.Debug("duplicate message ignored", zap.String("id", msg.ID))
		return
	}

	kind := msg.Type
	if msg.IsSystem {
		kind = domain.KindSystem
	}

	s.botSvc.HandleInbound(s.ctx, domain.RawInboundMessage{
		SenderAddress: msg.Chat,
		Body:          msg.Text,
		Kind:          kind,
		DisplayName:   msg.PushName,
		ID:            msg.ID,
		Timestamp:     msg.Timestamp,
	})
}

// handleConnection forwards lifecycle events to the bot service
func (s *WhatsAppServer) handleConnection(evt whatsapp.ConnectionEvent) {
	s.botSvc.OnConnectionEvent(toDomainEvent(evt))
}

func toDomainEvent(evt whatsapp.ConnectionEvent) domain.ConnectionEvent {
	out := domain.ConnectionEvent{QRCode: evt.QRCode, Reason: evt.Reason}
	switch evt.Kind {
	case whatsapp.EventQR:
		out.Kind = domain.EventQR
	case whatsapp.EventPaired:
		out.Kind = domain.EventAuthenticated
	case whatsapp.EventConnected:
		out.Kind = domain.EventReady
	case whatsapp.EventConnectFailure:
		out.Kind = domain.EventAuthFailure
	case whatsapp.EventLoggedOut:
		out.Kind = domain.EventLogout
	default:
		out.Kind = domain.EventDisconnected
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// checkAndMark records a message as processed and reports whether it already was.
// Records older than seenTTL are dropped.
func (s *WhatsAppServer) checkAndMark(msgID string) bool {
	if msgID == "" {
		return false
	}
	s.seenMsgsMu.Lock()
	defer s.seenMsgsMu.Unlock()

	now := s.now()
	cutoff := now.Add(-seenTTL)
	for id, ts := range s.seenMsgs {
		if ts.Before(cutoff) {
			delete(s.seenMsgs, id)
		}
	}

	if _, exists := s.seenMsgs[msgID]; exists {
		return true
	}
	s.seenMsgs[msgID] = now
	return false
}
