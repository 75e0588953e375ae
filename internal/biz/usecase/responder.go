package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/deskbot/whatsapp-desk/internal/biz/domain"
	"github.com/deskbot/whatsapp-desk/internal/biz/repo"
)

// ReplyTexts renders the canned texts of automated replies
type ReplyTexts interface {
	// OutOfHoursNotice renders the notice sent outside business hours
	OutOfHoursNotice(start, end string) string
	// DateTime renders t as a human-readable local date-time
	DateTime(t time.Time) string
}

// ResponderUsecase decides whether and how to auto-reply to an inbound message
type ResponderUsecase struct {
	convRepo   repo.ConversationRepo
	configRepo repo.ConfigRepo
	logRepo    repo.MessageLogRepo
	texts      ReplyTexts
	loc        *time.Location
	now        func() time.Time
	logger     *zap.Logger

	mu sync.Mutex
}

// ResponderOption configures a ResponderUsecase
type ResponderOption func(*ResponderUsecase)

// WithClock overrides the wall clock
func WithClock(now func() time.Time) ResponderOption {
	return func(uc *ResponderUsecase) {
		uc.now = now
	}
}

// WithLocation sets the timezone business hours and AUTO_TIME are evaluated in
func WithLocation(loc *time.Location) ResponderOption {
	return func(uc *ResponderUsecase) {
		if loc != nil {
			uc.loc = loc
		}
	}
}

// NewResponderUsecase creates a new responder usecase
func NewResponderUsecase(
	convRepo repo.ConversationRepo,
	configRepo repo.ConfigRepo,
	logRepo repo.MessageLogRepo,
	texts ReplyTexts,
	logger *zap.Logger,
	opts ...ResponderOption,
) *ResponderUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	uc := &ResponderUsecase{
		convRepo:   convRepo,
		configRepo: configRepo,
		logRepo:    logRepo,
		texts:      texts,
		loc:        time.Local,
		now:        time.Now,
		logger:     logger.Named("responder"),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// HandleInbound runs the auto-reply decision for one inbound message.
// It returns the reply to dispatch, or nil when nothing must be sent.
// Calls are serialized; each message runs to completion before the next one.
func (uc *ResponderUsecase) HandleInbound(ctx context.Context, msg domain.RawInboundMessage, connectionReady bool) *domain.OutboundMessage {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !connectionReady {
		uc.logger.Debug("ignoring inbound message, session not ready", zap.String("from", msg.SenderAddress))
		return nil
	}
	if msg.IsDiscardable() {
		uc.logger.Debug("discarding inbound message",
			zap.String("from", msg.SenderAddress),
			zap.String("kind", msg.Kind))
		return nil
	}

	now := uc.now().In(uc.loc)
	received := msg.Timestamp
	if received.IsZero() {
		received = now
	}

	inbound := domain.NewInboundMessage(msg.ID, msg.Body, received)
	conv, err := uc.convRepo.Upsert(ctx, msg.SenderAddress, func(c *domain.Conversation) {
		if msg.DisplayName != "" {
			c.DisplayName = msg.DisplayName
		}
		c.Append(inbound)
	})
	if err != nil {
		uc.logger.Error("failed to store inbound message", zap.String("from", msg.SenderAddress), zap.Error(err))
		return nil
	}
	uc.appendLog(ctx, msg.SenderAddress, inbound)

	cfg := uc.configRepo.Get(ctx)
	if !cfg.AutoReplyEnabled {
		return nil
	}

	var (
		body string
		kind domain.ReplyKind
	)
	switch {
	case cfg.OutsideBusinessHours(domain.ClockOf(now)):
		body = uc.texts.OutOfHoursNotice(cfg.StartTime, cfg.EndTime)
		kind = domain.ReplyOutOfHours
	default:
		if cmd, ok := cfg.MatchCommand(msg.Body); ok {
			body = cmd.Response
			if cmd.IsAutoTime() {
				body = uc.texts.DateTime(now)
			}
			kind = domain.ReplyCommand
		} else if conv.IsFirstContact() {
			body = cfg.WelcomeMessage
			kind = domain.ReplyWelcome
		}
	}
	if body == "" {
		return nil
	}

	outbound := domain.NewOutboundMessage(body, domain.OriginBot, now)
	if _, err := uc.convRepo.Upsert(ctx, msg.SenderAddress, func(c *domain.Conversation) {
		c.Append(outbound)
	}); err != nil {
		uc.logger.Error("failed to store reply", zap.String("to", msg.SenderAddress), zap.Error(err))
		return nil
	}
	uc.appendLog(ctx, msg.SenderAddress, outbound)

	uc.logger.Info("auto-reply selected",
		zap.String("to", msg.SenderAddress),
		zap.String("kind", string(kind)))

	return &domain.OutboundMessage{
		Address: msg.SenderAddress,
		Body:    body,
		Kind:    kind,
	}
}

func (uc *ResponderUsecase) appendLog(ctx context.Context, contactID string, m domain.Message) {
	if err := uc.logRepo.Append(ctx, domain.LoggedMessage{ContactID: contactID, Message: m}); err != nil {
		uc.logger.Warn("failed to append message log", zap.Error(err))
	}
}
