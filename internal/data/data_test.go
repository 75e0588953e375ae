package data

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskbot/whatsapp-desk/internal/biz/domain"
)

func TestConversationRepo_UpsertAndGet(t *testing.T) {
	r := NewConversationRepo()
	ctx := context.Background()

	conv, err := r.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, conv)

	now := time.Now()
	conv, err = r.Upsert(ctx, "a", func(c *domain.Conversation) {
		c.Append(domain.NewInboundMessage("1", "hello", now))
	})
	require.NoError(t, err)
	assert.Len(t, conv.Transcript, 1)

	// Returned copies must not alias stored state
	conv.Transcript[0].Body = "mutated"
	stored, err := r.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "hello", stored.Transcript[0].Body)
}

func TestConversationRepo_ListAllOrder(t *testing.T) {
	r := NewConversationRepo()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"first", "second", "third"} {
		ts := base.Add(time.Duration(i) * time.Minute)
		_, err := r.Upsert(ctx, id, func(c *domain.Conversation) {
			c.Append(domain.NewInboundMessage("", id, ts))
		})
		require.NoError(t, err)
	}

	convs, err := r.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, convs, 3)
	assert.Equal(t, "third", convs[0].ContactID)
	assert.Equal(t, "first", convs[2].ContactID)
}

func TestConversationRepo_DeleteAndPurge(t *testing.T) {
	r := NewConversationRepo()
	ctx := context.Background()
	for _, id := range []string{"a", "b"} {
		_, err := r.Upsert(ctx, id, nil)
		require.NoError(t, err)
	}

	require.NoError(t, r.Delete(ctx, "a"))
	assert.ErrorIs(t, r.Delete(ctx, "a"), domain.ErrConversationNotFound)

	n, err := r.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	convs, err := r.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, convs)
}

func TestConversationRepo_ConcurrentUpsert(t *testing.T) {
	r := NewConversationRepo()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = r.Upsert(ctx, "a", func(c *domain.Conversation) {
				c.Append(domain.NewInboundMessage(fmt.Sprint(i), "x", time.Now()))
			})
		}(i)
	}
	wg.Wait()

	conv, err := r.Get(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, conv.Transcript, 50)
	assert.Equal(t, 50, conv.UnreadCount)
}

func TestConfigRepo(t *testing.T) {
	r := NewConfigRepo(domain.DefaultBotConfig())
	ctx := context.Background()

	cfg := r.Get(ctx)
	cfg.CustomCommands[0].Trigger = "changed"
	assert.NotEqual(t, "changed", r.Get(ctx).CustomCommands[0].Trigger)

	cfg.WelcomeMessage = "new"
	require.NoError(t, r.Update(ctx, cfg))
	assert.Equal(t, "new", r.Get(ctx).WelcomeMessage)
}

func TestMessageLogRepo_Capped(t *testing.T) {
	r := NewMessageLogRepo(3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, r.Append(ctx, domain.LoggedMessage{
			ContactID: "a",
			Message:   domain.Message{ID: fmt.Sprint(i)},
		}))
	}

	all, err := r.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2", all[0].ID)
	assert.Equal(t, "4", all[2].ID)

	last, err := r.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, "4", last[0].ID)
}
