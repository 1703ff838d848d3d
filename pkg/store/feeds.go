package store

import (
	"context"
	"fmt"

	"github.com/feedlet/feedlet/pkg/domain"
)

const (
	keyFeeds      = "feeds"
	keyCategories = "feedCategories"
)

// defaultCategories seed every account that has not customized its list
var defaultCategories = []domain.Category{
	{ID: "tech", Name: "テクノロジー"},
	{ID: "news", Name: "ニュース"},
	{ID: "entertainment", Name: "エンタメ"},
}

// FeedStore manages feed subscriptions and categories, partitioned by account
type FeedStore struct {
	kv *Store
}

// NewFeedStore creates a feed store on top of the key-value store
func NewFeedStore(kv *Store) *FeedStore {
	return &FeedStore{kv: kv}
}

// List returns all subscribed feeds for the account
func (s *FeedStore) List(ctx context.Context, account domain.AccountID) ([]domain.Feed, error) {
	return loadJSON(ctx, s.kv, string(account), keyFeeds, []domain.Feed{})
}

// Get returns a single feed by ID
func (s *FeedStore) Get(ctx context.Context, account domain.AccountID, id domain.FeedID) (domain.Feed, error) {
	feeds, err := s.List(ctx, account)
	if err != nil {
		return domain.Feed{}, err
	}
	for _, f := range feeds {
		if f.ID == id {
			return f, nil
		}
	}
	return domain.Feed{}, fmt.Errorf("feed %s: %w", id, ErrNotFound)
}

// Add subscribes the account to a feed. Subscribing to a URL that is already
// present is rejected.
func (s *FeedStore) Add(ctx context.Context, account domain.AccountID, feed domain.Feed) error {
	feeds, err := s.List(ctx, account)
	if err != nil {
		return err
	}
	for _, f := range feeds {
		if f.URL == feed.URL {
			return fmt.Errorf("feed %s already subscribed: %w", feed.URL, ErrAlreadyExists)
		}
	}
	if feed.CategoryIDs == nil {
		feed.CategoryIDs = []domain.CategoryID{}
	}
	feeds = append(feeds, feed)
	return saveJSON(ctx, s.kv, string(account), keyFeeds, feeds)
}

// Update replaces the stored feed with the same ID
func (s *FeedStore) Update(ctx context.Context, account domain.AccountID, feed domain.Feed) error {
	feeds, err := s.List(ctx, account)
	if err != nil {
		return err
	}
	for i, f := range feeds {
		if f.ID == feed.ID {
			feeds[i] = feed
			return saveJSON(ctx, s.kv, string(account), keyFeeds, feeds)
		}
	}
	return fmt.Errorf("feed %s: %w", feed.ID, ErrNotFound)
}

// Remove unsubscribes the account from a feed
func (s *FeedStore) Remove(ctx context.Context, account domain.AccountID, id domain.FeedID) error {
	feeds, err := s.List(ctx, account)
	if err != nil {
		return err
	}
	kept := make([]domain.Feed, 0, len(feeds))
	for _, f := range feeds {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(feeds) {
		return fmt.Errorf("feed %s: %w", id, ErrNotFound)
	}
	return saveJSON(ctx, s.kv, string(account), keyFeeds, kept)
}

// Categories returns the account's categories, seeding the defaults on first
// access
func (s *FeedStore) Categories(ctx context.Context, account domain.AccountID) ([]domain.Category, error) {
	cats, err := loadJSON[[]domain.Category](ctx, s.kv, string(account), keyCategories, nil)
	if err != nil {
		return nil, err
	}
	if cats == nil {
		cats = append([]domain.Category{}, defaultCategories...)
		if err := saveJSON(ctx, s.kv, string(account), keyCategories, cats); err != nil {
			return nil, err
		}
	}
	return cats, nil
}

// AddCategory creates a category with an ID derived from its name
func (s *FeedStore) AddCategory(ctx context.Context, account domain.AccountID, name string) (domain.Category, error) {
	cats, err := s.Categories(ctx, account)
	if err != nil {
		return domain.Category{}, err
	}
	for _, c := range cats {
		if c.Name == name {
			return domain.Category{}, fmt.Errorf("category %q: %w", name, ErrAlreadyExists)
		}
	}
	cat := domain.Category{ID: domain.NewCategoryID(name), Name: name}
	cats = append(cats, cat)
	if err := saveJSON(ctx, s.kv, string(account), keyCategories, cats); err != nil {
		return domain.Category{}, err
	}
	return cat, nil
}

// RemoveCategory deletes a category and detaches it from every feed that
// references it
func (s *FeedStore) RemoveCategory(ctx context.Context, account domain.AccountID, id domain.CategoryID) error {
	cats, err := s.Categories(ctx, account)
	if err != nil {
		return err
	}
	kept := make([]domain.Category, 0, len(cats))
	for _, c := range cats {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(cats) {
		return fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	if err := saveJSON(ctx, s.kv, string(account), keyCategories, kept); err != nil {
		return err
	}

	feeds, err := s.List(ctx, account)
	if err != nil {
		return err
	}
	changed := false
	for i, f := range feeds {
		refs := make([]domain.CategoryID, 0, len(f.CategoryIDs))
		for _, cid := range f.CategoryIDs {
			if cid != id {
				refs = append(refs, cid)
			}
		}
		if len(refs) != len(f.CategoryIDs) {
			feeds[i].CategoryIDs = refs
			changed = true
		}
	}
	if changed {
		return saveJSON(ctx, s.kv, string(account), keyFeeds, feeds)
	}
	return nil
}

// AccountFeed pairs a feed with the account that subscribes to it
type AccountFeed struct {
	Account domain.AccountID
	Feed    domain.Feed
}

// AllFeeds returns every subscription across all accounts, used by the
// background refresh
func (s *FeedStore) AllFeeds(ctx context.Context) ([]AccountFeed, error) {
	scopes, err := s.kv.Scopes(ctx)
	if err != nil {
		return nil, err
	}
	var res []AccountFeed
	for _, scope := range scopes {
		feeds, err := s.List(ctx, domain.AccountID(scope))
		if err != nil {
			return nil, err
		}
		for _, f := range feeds {
			res = append(res, AccountFeed{Account: domain.AccountID(scope), Feed: f})
		}
	}
	return res, nil
}

// FeedByID searches all accounts for a feed with the given ID
func (s *FeedStore) FeedByID(ctx context.Context, id domain.FeedID) (domain.Feed, error) {
	all, err := s.AllFeeds(ctx)
	if err != nil {
		return domain.Feed{}, err
	}
	for _, af := range all {
		if af.Feed.ID == id {
			return af.Feed, nil
		}
	}
	return domain.Feed{}, fmt.Errorf("feed %s: %w", id, ErrNotFound)
}
