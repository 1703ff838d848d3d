package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedlet/feedlet/pkg/domain"
)

func TestStateStore_Status(t *testing.T) {
	ss := NewStateStore(newTestStore(t))
	ctx := context.Background()
	account := domain.AccountID("default")
	id := domain.NewArticleID("https://example.com/a")

	st, err := ss.Status(ctx, account, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnread, st, "unknown article defaults to unread")

	require.NoError(t, ss.SetStatus(ctx, account, id, domain.StatusRead))
	st, err = ss.Status(ctx, account, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRead, st)

	require.Error(t, ss.SetStatus(ctx, account, id, "bogus"))
}

func TestStateStore_Favorite(t *testing.T) {
	ss := NewStateStore(newTestStore(t))
	ctx := context.Background()
	account := domain.AccountID("default")
	id := domain.NewArticleID("https://example.com/a")

	fav, err := ss.Favorite(ctx, account, id)
	require.NoError(t, err)
	assert.False(t, fav)

	require.NoError(t, ss.SetFavorite(ctx, account, id, true))
	fav, err = ss.Favorite(ctx, account, id)
	require.NoError(t, err)
	assert.True(t, fav)

	require.NoError(t, ss.SetFavorite(ctx, account, id, false))
	fav, err = ss.Favorite(ctx, account, id)
	require.NoError(t, err)
	assert.False(t, fav)
}

func TestStateStore_Apply(t *testing.T) {
	ss := NewStateStore(newTestStore(t))
	ctx := context.Background()
	account := domain.AccountID("default")

	articles := []domain.Article{
		{ID: "a1", Status: domain.StatusUnread},
		{ID: "a2", Status: domain.StatusUnread},
		{ID: "a3", Status: domain.StatusUnread},
	}

	require.NoError(t, ss.SetStatus(ctx, account, "a2", domain.StatusArchived))
	require.NoError(t, ss.SetFavorite(ctx, account, "a3", true))

	got, err := ss.Apply(ctx, account, articles)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, domain.StatusUnread, got[0].Status)
	assert.False(t, got[0].IsFavorite)
	assert.Equal(t, domain.StatusArchived, got[1].Status)
	assert.Equal(t, domain.StatusUnread, got[2].Status)
	assert.True(t, got[2].IsFavorite)
}

func TestStateStore_AccountIsolation(t *testing.T) {
	ss := NewStateStore(newTestStore(t))
	ctx := context.Background()
	id := domain.ArticleID("a1")

	require.NoError(t, ss.SetStatus(ctx, "alice", id, domain.StatusRead))

	st, err := ss.Status(ctx, "bob", id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnread, st)
}
