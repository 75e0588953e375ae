package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/deskbot/whatsapp-desk/internal/biz/domain"
	"github.com/deskbot/whatsapp-desk/internal/biz/repo"
)

// Mock implementations

type fakeConversationRepo struct {
	convs   map[string]*domain.Conversation
	upserts int
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{convs: make(map[string]*domain.Conversation)}
}

func (f *fakeConversationRepo) Get(ctx context.Context, contactID string) (*domain.Conversation, error) {
	return f.convs[contactID].Clone(), nil
}

func (f *fakeConversationRepo) Upsert(ctx context.Context, contactID string, mutator repo.ConversationMutator) (*domain.Conversation, error) {
	f.upserts++
	c, ok := f.convs[contactID]
	if !ok {
		c = domain.NewConversation(contactID)
		f.convs[contactID] = c
	}
	mutator(c)
	return c.Clone(), nil
}

func (f *fakeConversationRepo) ListAll(ctx context.Context) ([]*domain.Conversation, error) {
	var out []*domain.Conversation
	for _, c := range f.convs {
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastMessageAt.After(out[j].LastMessageAt) })
	return out, nil
}

func (f *fakeConversationRepo) Delete(ctx context.Context, contactID string) error {
	if _, ok := f.convs[contactID]; !ok {
		return domain.ErrConversationNotFound
	}
	delete(f.convs, contactID)
	return nil
}

func (f *fakeConversationRepo) Purge(ctx context.Context) (int, error) {
	n := len(f.convs)
	f.convs = make(map[string]*domain.Conversation)
	return n, nil
}

type fakeConfigRepo struct {
	cfg domain.BotConfig
}

func (f *fakeConfigRepo) Get(ctx context.Context) domain.BotConfig {
	return f.cfg.Clone()
}

func (f *fakeConfigRepo) Update(ctx context.Context, cfg domain.BotConfig) error {
	f.cfg = cfg.Clone()
	return nil
}

type fakeMessageLog struct {
	entries []domain.LoggedMessage
}

func (f *fakeMessageLog) Append(ctx context.Context, msg domain.LoggedMessage) error {
	f.entries = append(f.entries, msg)
	return nil
}

func (f *fakeMessageLog) Recent(ctx context.Context, limit int) ([]domain.LoggedMessage, error) {
	if limit > len(f.entries) {
		limit = len(f.entries)
	}
	return f.entries[len(f.entries)-limit:], nil
}

type fakeTexts struct{}

func (fakeTexts) OutOfHoursNotice(start, end string) string {
	return fmt.Sprintf("closed, open %s-%s", start, end)
}

func (fakeTexts) DateTime(t time.Time) string {
	return t.Format("02/01/2006, 15:04:05")
}

// fakeClock is a settable wall clock
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func at(clock string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", "2024-03-04 "+clock+":00", time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}
