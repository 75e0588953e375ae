package server

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskbot/whatsapp-desk/internal/biz/domain"
	"github.com/deskbot/whatsapp-desk/internal/biz/usecase"
	"github.com/deskbot/whatsapp-desk/internal/data"
	"github.com/deskbot/whatsapp-desk/internal/infra/whatsapp"
	"github.com/deskbot/whatsapp-desk/internal/mocks"
	"github.com/deskbot/whatsapp-desk/internal/service"
)

type fakeSession struct {
	onMessage    whatsapp.MessageHandler
	onConnection whatsapp.ConnectionHandler
	started      bool
	stopped      bool
}

func (f *fakeSession) OnMessage(h whatsapp.MessageHandler)       { f.onMessage = h }
func (f *fakeSession) OnConnection(h whatsapp.ConnectionHandler) { f.onConnection = h }
func (f *fakeSession) Start(ctx context.Context) error           { f.started = true; return nil }
func (f *fakeSession) Stop()                                     { f.stopped = true }

type stubTexts struct{}

func (stubTexts) OutOfHoursNotice(start, end string) string { return "closed" }
func (stubTexts) DateTime(t time.Time) string               { return t.String() }

func newTestServer(t *testing.T) (*WhatsAppServer, *fakeSession, *data.Repositories, *service.ConnectionTracker, *mocks.TransportMock) {
	t.Helper()

	cfg := domain.DefaultBotConfig()
	cfg.AutoReplyEnabled = false
	transport := &mocks.TransportMock{}
	repos := &data.Repositories{
		Conversation: data.NewConversationRepo(),
		Config:       data.NewConfigRepo(cfg),
		MessageLog:   data.NewMessageLogRepo(10),
		Transport:    transport,
	}
	responder := usecase.NewResponderUsecase(repos.Conversation, repos.Config, repos.MessageLog, stubTexts{}, nil)
	convUC := usecase.NewConversationUsecase(repos.Conversation, repos.MessageLog, nil)
	tracker := service.NewConnectionTracker(nil)
	botSvc := service.NewBotService(responder, convUC, transport, tracker, nil, nil)

	session := &fakeSession{}
	srv := NewWhatsAppServer(session, botSvc, nil, nil)
	require.NoError(t, srv.Start(context.Background()))
	return srv, session, repos, tracker, transport
}

func TestWhatsAppServer_ConnectionEvents(t *testing.T) {
	_, session, _, tracker, _ := newTestServer(t)
	require.True(t, session.started)

	session.onConnection(whatsapp.ConnectionEvent{Kind: whatsapp.EventQR, QRCode: "2@code"})
	assert.Equal(t, domain.StateConnecting, tracker.State())
	assert.Equal(t, "2@code", tracker.QRCode())

	session.onConnection(whatsapp.ConnectionEvent{Kind: whatsapp.EventPaired})
	assert.Equal(t, domain.StateAuthenticated, tracker.State())

	session.onConnection(whatsapp.ConnectionEvent{Kind: whatsapp.EventConnected})
	assert.Equal(t, domain.StateReady, tracker.State())

	session.onConnection(whatsapp.ConnectionEvent{Kind: whatsapp.EventStreamReplaced})
	assert.Equal(t, domain.StateDisconnected, tracker.State())
}

func TestWhatsAppServer_LogoutThenPairAgain(t *testing.T) {
	_, session, _, tracker, _ := newTestServer(t)
	tracker.Set(domain.StateReady, "")

	session.onConnection(whatsapp.ConnectionEvent{Kind: whatsapp.EventLoggedOut, Reason: "logged out by operator"})
	assert.Equal(t, domain.StateDisconnected, tracker.State())
	assert.Empty(t, tracker.QRCode())

	session.onConnection(whatsapp.ConnectionEvent{Kind: whatsapp.EventQR, QRCode: "2@fresh"})
	assert.Equal(t, domain.StateConnecting, tracker.State())
	assert.Equal(t, "2@fresh", tracker.QRCode())
}

func TestWhatsAppServer_MessageFlow(t *testing.T) {
	_, session, repos, tracker, _ := newTestServer(t)
	tracker.Set(domain.StateReady, "")
	ctx := context.Background()

	msg := &whatsapp.Message{
		ID:        "3EB0A1",
		Chat:      "5511900001111@s.whatsapp.net",
		PushName:  "João",
		Text:      "preciso de ajuda",
		Type:      "text",
		Timestamp: time.Now(),
	}
	session.onMessage(msg)
	session.onMessage(msg) // redelivery

	conv, err := repos.Conversation.Get(ctx, msg.Chat)
	require.NoError(t, err)
	require.NotNil(t, conv)
	assert.Len(t, conv.Transcript, 1)
	assert.Equal(t, "João", conv.DisplayName)

	// Own messages and protocol messages never reach storage
	session.onMessage(&whatsapp.Message{ID: "own", Chat: "5511922223333@s.whatsapp.net", Text: "x", IsFromMe: true})
	session.onMessage(&whatsapp.Message{ID: "sys", Chat: "5511922223333@s.whatsapp.net", Text: "x", IsSystem: true})
	conv, err = repos.Conversation.Get(ctx, "5511922223333@s.whatsapp.net")
	require.NoError(t, err)
	assert.Nil(t, conv)
}

func TestWhatsAppServer_SeenExpiry(t *testing.T) {
	srv, _, _, _, _ := newTestServer(t)
	now := time.Now()
	srv.now = func() time.Time { return now }

	assert.False(t, srv.checkAndMark("a"))
	assert.True(t, srv.checkAndMark("a"))

	now = now.Add(6 * time.Minute)
	assert.False(t, srv.checkAndMark("a"), "expired records are forgotten")
	assert.False(t, srv.checkAndMark(""))
	assert.False(t, srv.checkAndMark(""))
}

func TestWhatsAppServer_ConcurrentRedelivery(t *testing.T) {
	srv, _, _, _, _ := newTestServer(t)

	var wg sync.WaitGroup
	var fresh atomic.Int32
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !srv.checkAndMark("dup") {
				fresh.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), fresh.Load())
}

func TestWhatsAppServer_Stop(t *testing.T) {
	srv, session, _, _, _ := newTestServer(t)
	srv.Stop()
	assert.True(t, session.stopped)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ação...", truncate("açãozinha", 4))
}
