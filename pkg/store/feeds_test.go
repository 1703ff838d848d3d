package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedlet/feedlet/pkg/domain"
)

func testFeed(url, title string) domain.Feed {
	return domain.Feed{
		ID:          domain.NewFeedID(url),
		Title:       title,
		URL:         url,
		CategoryIDs: []domain.CategoryID{},
		LastUpdated: time.Now(),
	}
}

func TestFeedStore_AddListRemove(t *testing.T) {
	fs := NewFeedStore(newTestStore(t))
	ctx := context.Background()
	account := domain.AccountID("default")

	feeds, err := fs.List(ctx, account)
	require.NoError(t, err)
	assert.Empty(t, feeds)

	f1 := testFeed("https://example.com/rss", "Example")
	f2 := testFeed("https://other.example.com/atom", "Other")
	require.NoError(t, fs.Add(ctx, account, f1))
	require.NoError(t, fs.Add(ctx, account, f2))

	feeds, err = fs.List(ctx, account)
	require.NoError(t, err)
	require.Len(t, feeds, 2)
	assert.Equal(t, f1.ID, feeds[0].ID)
	assert.Equal(t, f2.ID, feeds[1].ID)

	require.NoError(t, fs.Remove(ctx, account, f1.ID))
	feeds, err = fs.List(ctx, account)
	require.NoError(t, err)
	require.Len(t, feeds, 1)
	assert.Equal(t, f2.ID, feeds[0].ID)

	err = fs.Remove(ctx, account, f1.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFeedStore_AddDuplicateURL(t *testing.T) {
	fs := NewFeedStore(newTestStore(t))
	ctx := context.Background()
	account := domain.AccountID("default")

	require.NoError(t, fs.Add(ctx, account, testFeed("https://example.com/rss", "Example")))
	err := fs.Add(ctx, account, testFeed("https://example.com/rss", "Same URL"))
	require.ErrorIs(t, err, ErrAlreadyExists)
	assert.Contains(t, err.Error(), "already subscribed")
}

func TestFeedStore_Get(t *testing.T) {
	fs := NewFeedStore(newTestStore(t))
	ctx := context.Background()
	account := domain.AccountID("default")

	f := testFeed("https://example.com/rss", "Example")
	require.NoError(t, fs.Add(ctx, account, f))

	got, err := fs.Get(ctx, account, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "Example", got.Title)

	_, err = fs.Get(ctx, account, domain.FeedID("missing"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFeedStore_Update(t *testing.T) {
	fs := NewFeedStore(newTestStore(t))
	ctx := context.Background()
	account := domain.AccountID("default")

	f := testFeed("https://example.com/rss", "Example")
	require.NoError(t, fs.Add(ctx, account, f))

	f.Title = "Renamed"
	require.NoError(t, fs.Update(ctx, account, f))

	got, err := fs.Get(ctx, account, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)

	missing := testFeed("https://missing.example.com/rss", "Missing")
	require.ErrorIs(t, fs.Update(ctx, account, missing), ErrNotFound)
}

func TestFeedStore_Categories(t *testing.T) {
	fs := NewFeedStore(newTestStore(t))
	ctx := context.Background()
	account := domain.AccountID("default")

	cats, err := fs.Categories(ctx, account)
	require.NoError(t, err)
	require.Len(t, cats, 3, "defaults seeded on first access")
	assert.Equal(t, "テクノロジー", cats[0].Name)

	cat, err := fs.AddCategory(ctx, account, "スポーツ")
	require.NoError(t, err)
	assert.Equal(t, domain.NewCategoryID("スポーツ"), cat.ID)

	_, err = fs.AddCategory(ctx, account, "スポーツ")
	require.ErrorIs(t, err, ErrAlreadyExists, "duplicate category name rejected")

	cats, err = fs.Categories(ctx, account)
	require.NoError(t, err)
	assert.Len(t, cats, 4)
}

func TestFeedStore_RemoveCategoryCascades(t *testing.T) {
	fs := NewFeedStore(newTestStore(t))
	ctx := context.Background()
	account := domain.AccountID("default")

	cats, err := fs.Categories(ctx, account)
	require.NoError(t, err)
	techID := cats[0].ID

	f := testFeed("https://example.com/rss", "Example")
	f.CategoryIDs = []domain.CategoryID{techID, cats[1].ID}
	require.NoError(t, fs.Add(ctx, account, f))

	require.NoError(t, fs.RemoveCategory(ctx, account, techID))

	got, err := fs.Get(ctx, account, f.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.CategoryID{cats[1].ID}, got.CategoryIDs)

	require.ErrorIs(t, fs.RemoveCategory(ctx, account, techID), ErrNotFound)
}

func TestFeedStore_AllFeedsAndFeedByID(t *testing.T) {
	fs := NewFeedStore(newTestStore(t))
	ctx := context.Background()

	f1 := testFeed("https://a.example.com/rss", "A")
	f2 := testFeed("https://b.example.com/rss", "B")
	require.NoError(t, fs.Add(ctx, "alice", f1))
	require.NoError(t, fs.Add(ctx, "bob", f2))

	all, err := fs.AllFeeds(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, domain.AccountID("alice"), all[0].Account)
	assert.Equal(t, domain.AccountID("bob"), all[1].Account)

	got, err := fs.FeedByID(ctx, f2.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Title)

	_, err = fs.FeedByID(ctx, domain.FeedID("missing"))
	require.ErrorIs(t, err, ErrNotFound)
}
