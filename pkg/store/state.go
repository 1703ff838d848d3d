package store

import (
	"context"
	"fmt"

	"github.com/feedlet/feedlet/pkg/domain"
)

const (
	keyStatuses  = "articleStatuses"
	keyFavorites = "favorites"
)

// StateStore keeps per-article read state and favorites, partitioned by
// account. Articles themselves come from the cache; this store only holds the
// overlay keyed by article ID.
type StateStore struct {
	kv *Store
}

// NewStateStore creates a state store on top of the key-value store
func NewStateStore(kv *Store) *StateStore {
	return &StateStore{kv: kv}
}

// Status returns the article's read status, defaulting to unread
func (s *StateStore) Status(ctx context.Context, account domain.AccountID, id domain.ArticleID) (domain.ArticleStatus, error) {
	statuses, err := loadJSON(ctx, s.kv, string(account), keyStatuses, map[domain.ArticleID]domain.ArticleStatus{})
	if err != nil {
		return "", err
	}
	if st, ok := statuses[id]; ok {
		return st, nil
	}
	return domain.StatusUnread, nil
}

// SetStatus updates the article's read status
func (s *StateStore) SetStatus(ctx context.Context, account domain.AccountID, id domain.ArticleID, status domain.ArticleStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}
	statuses, err := loadJSON(ctx, s.kv, string(account), keyStatuses, map[domain.ArticleID]domain.ArticleStatus{})
	if err != nil {
		return err
	}
	statuses[id] = status
	return saveJSON(ctx, s.kv, string(account), keyStatuses, statuses)
}

// Favorite reports whether the article is marked as a favorite
func (s *StateStore) Favorite(ctx context.Context, account domain.AccountID, id domain.ArticleID) (bool, error) {
	favorites, err := loadJSON(ctx, s.kv, string(account), keyFavorites, map[domain.ArticleID]bool{})
	if err != nil {
		return false, err
	}
	return favorites[id], nil
}

// SetFavorite marks or unmarks the article as a favorite
func (s *StateStore) SetFavorite(ctx context.Context, account domain.AccountID, id domain.ArticleID, favorite bool) error {
	favorites, err := loadJSON(ctx, s.kv, string(account), keyFavorites, map[domain.ArticleID]bool{})
	if err != nil {
		return err
	}
	if favorite {
		favorites[id] = true
	} else {
		delete(favorites, id)
	}
	return saveJSON(ctx, s.kv, string(account), keyFavorites, favorites)
}

// Apply overlays the account's read state and favorites onto freshly fetched
// articles
func (s *StateStore) Apply(ctx context.Context, account domain.AccountID, articles []domain.Article) ([]domain.Article, error) {
	statuses, err := loadJSON(ctx, s.kv, string(account), keyStatuses, map[domain.ArticleID]domain.ArticleStatus{})
	if err != nil {
		return nil, err
	}
	favorites, err := loadJSON(ctx, s.kv, string(account), keyFavorites, map[domain.ArticleID]bool{})
	if err != nil {
		return nil, err
	}
	res := make([]domain.Article, len(articles))
	for i, a := range articles {
		if st, ok := statuses[a.ID]; ok {
			a.Status = st
		}
		a.IsFavorite = favorites[a.ID]
		res[i] = a
	}
	return res, nil
}
