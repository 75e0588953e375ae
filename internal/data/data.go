package data

import (
	"github.com/deskbot/whatsapp-desk/internal/biz/domain"
	"github.com/deskbot/whatsapp-desk/internal/biz/repo"
	"github.com/deskbot/whatsapp-desk/internal/infra/whatsapp"
)

// Repositories contains all repositories
type Repositories struct {
	Conversation repo.ConversationRepo
	Config       repo.ConfigRepo
	MessageLog   repo.MessageLogRepo
	Transport    repo.TransportRepo
}

// NewRepositories creates all repositories
func NewRepositories(client *whatsapp.Client, initial domain.BotConfig, messageLogLimit int) *Repositories {
	return &Repositories{
		Conversation: NewConversationRepo(),
		Config:       NewConfigRepo(initial),
		MessageLog:   NewMessageLogRepo(messageLogLimit),
		Transport:    NewWhatsAppRepo(client),
	}
}
