package biz

import (
	"time"

	"go.uber.org/zap"

	"github.com/deskbot/whatsapp-desk/internal/biz/repo"
	"github.com/deskbot/whatsapp-desk/internal/biz/usecase"
)

// Usecases contains all usecases
type Usecases struct {
	Responder    *usecase.ResponderUsecase
	Conversation *usecase.ConversationUsecase
	Config       *usecase.ConfigUsecase
}

// NewUsecases wires the usecase layer over the given repositories.
// Times are rendered and compared in loc.
func NewUsecases(
	convRepo repo.ConversationRepo,
	configRepo repo.ConfigRepo,
	logRepo repo.MessageLogRepo,
	texts usecase.ReplyTexts,
	loc *time.Location,
	logger *zap.Logger,
) *Usecases {
	if loc == nil {
		loc = time.Local
	}
	now := func() time.Time { return time.Now().In(loc) }
	return &Usecases{
		Responder: usecase.NewResponderUsecase(convRepo, configRepo, logRepo, texts, logger,
			usecase.WithClock(now), usecase.WithLocation(loc)),
		Conversation: usecase.NewConversationUsecase(convRepo, logRepo, now),
		Config:       usecase.NewConfigUsecase(configRepo),
	}
}
