package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/deskbot/whatsapp-desk/internal/biz/domain"
	"github.com/deskbot/whatsapp-desk/internal/biz/repo"
	"github.com/deskbot/whatsapp-desk/internal/biz/usecase"
	"github.com/deskbot/whatsapp-desk/internal/metrics"
)

// BotService connects the responder to the transport
type BotService struct {
	responder *usecase.ResponderUsecase
	convUC    *usecase.ConversationUsecase
	transport repo.TransportRepo
	tracker   *ConnectionTracker
	metrics   *metrics.Metrics
	logger    *zap.Logger

	// Inbound messages are handled one at a time, dispatch included
	inboundMu sync.Mutex
}

// NewBotService creates a new bot service
func NewBotService(
	responder *usecase.ResponderUsecase,
	convUC *usecase.ConversationUsecase,
	transport repo.TransportRepo,
	tracker *ConnectionTracker,
	m *metrics.Metrics,
	logger *zap.Logger,
) *BotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.NewNop()
	}
	return &BotService{
		responder: responder,
		convUC:    convUC,
		transport: transport,
		tracker:   tracker,
		metrics:   m,
		logger:    logger.Named("bot"),
	}
}

// HandleInbound runs the responder for a message and dispatches its reply.
// Send failures are logged and dropped.
func (s *BotService) HandleInbound(ctx context.Context, msg domain.RawInboundMessage) {
	s.inboundMu.Lock()
	defer s.inboundMu.Unlock()

	ready := s.tracker.Ready()
	switch {
	case !ready:
		s.metrics.InboundMessages.WithLabelValues(metrics.OutcomeNotReady).Inc()
	case msg.IsDiscardable():
		s.metrics.InboundMessages.WithLabelValues(metrics.OutcomeDiscarded).Inc()
	default:
		s.metrics.InboundMessages.WithLabelValues(metrics.OutcomeStored).Inc()
	}

	reply := s.responder.HandleInbound(ctx, msg, ready)
	if reply == nil {
		return
	}
	s.metrics.AutoReplies.WithLabelValues(string(reply.Kind)).Inc()

	if err := s.transport.SendText(ctx, reply.Address, reply.Body); err != nil {
		s.metrics.SendFailures.WithLabelValues(string(domain.OriginBot)).Inc()
		s.logger.Error("failed to send auto-reply",
			zap.String("to", reply.Address),
			zap.String("kind", string(reply.Kind)),
			zap.Error(err))
		return
	}
	s.logger.Debug("auto-reply sent", zap.String("to", reply.Address))
}

// SendOperatorMessage delivers a message typed by an operator and records it once delivered
func (s *BotService) SendOperatorMessage(ctx context.Context, contactID, body string) (*domain.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("message body is required")
	}
	if !s.tracker.Ready() {
		return nil, domain.ErrNotReady
	}

	contactID, err := s.transport.NormalizeAddress(contactID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidAddress, err)
	}

	if err := s.transport.SendText(ctx, contactID, body); err != nil {
		s.metrics.SendFailures.WithLabelValues(string(domain.OriginHuman)).Inc()
		return nil, fmt.Errorf("send message: %w", err)
	}
	return s.convUC.RecordOperatorMessage(ctx, contactID, body)
}

// OnConnectionEvent applies a transport lifecycle event
func (s *BotService) OnConnectionEvent(evt domain.ConnectionEvent) {
	s.tracker.Apply(evt)
}

// Logout unlinks the device and marks the session Disconnected
func (s *BotService) Logout(ctx context.Context) error {
	if err := s.transport.Logout(ctx); err != nil {
		return err
	}
	s.tracker.Set(domain.StateDisconnected, "")
	return nil
}
