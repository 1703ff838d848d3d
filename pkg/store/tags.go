package store

import (
	"context"
	"fmt"

	"github.com/feedlet/feedlet/pkg/domain"
)

const (
	keyTags        = "tags"
	keyArticleTags = "articleTags"
)

// defaultTags seed every account that has not customized its list
var defaultTags = []domain.Tag{
	{ID: "tech", Name: "テクノロジー", Color: "#3498db"},
	{ID: "news", Name: "ニュース", Color: "#e74c3c"},
	{ID: "dev", Name: "開発", Color: "#2ecc71"},
	{ID: "ai", Name: "AI", Color: "#9b59b6"},
}

// TagStore manages tags and their assignment to articles, partitioned by
// account
type TagStore struct {
	kv *Store
}

// NewTagStore creates a tag store on top of the key-value store
func NewTagStore(kv *Store) *TagStore {
	return &TagStore{kv: kv}
}

// List returns the account's tags, seeding the defaults on first access
func (s *TagStore) List(ctx context.Context, account domain.AccountID) ([]domain.Tag, error) {
	tags, err := loadJSON[[]domain.Tag](ctx, s.kv, string(account), keyTags, nil)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = append([]domain.Tag{}, defaultTags...)
		if err := saveJSON(ctx, s.kv, string(account), keyTags, tags); err != nil {
			return nil, err
		}
	}
	return tags, nil
}

// Add creates a tag with an ID derived from its name
func (s *TagStore) Add(ctx context.Context, account domain.AccountID, name, color string) (domain.Tag, error) {
	tags, err := s.List(ctx, account)
	if err != nil {
		return domain.Tag{}, err
	}
	for _, t := range tags {
		if t.Name == name {
			return domain.Tag{}, fmt.Errorf("tag %q: %w", name, ErrAlreadyExists)
		}
	}
	tag := domain.Tag{ID: domain.NewTagID(name), Name: name, Color: color}
	tags = append(tags, tag)
	if err := saveJSON(ctx, s.kv, string(account), keyTags, tags); err != nil {
		return domain.Tag{}, err
	}
	return tag, nil
}

// Remove deletes a tag and unassigns it from every article
func (s *TagStore) Remove(ctx context.Context, account domain.AccountID, id domain.TagID) error {
	tags, err := s.List(ctx, account)
	if err != nil {
		return err
	}
	kept := make([]domain.Tag, 0, len(tags))
	for _, t := range tags {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(tags) {
		return fmt.Errorf("tag %s: %w", id, ErrNotFound)
	}
	if err := saveJSON(ctx, s.kv, string(account), keyTags, kept); err != nil {
		return err
	}

	assignments, err := loadJSON(ctx, s.kv, string(account), keyArticleTags, map[domain.ArticleID][]domain.TagID{})
	if err != nil {
		return err
	}
	changed := false
	for articleID, tagIDs := range assignments {
		refs := make([]domain.TagID, 0, len(tagIDs))
		for _, tid := range tagIDs {
			if tid != id {
				refs = append(refs, tid)
			}
		}
		if len(refs) != len(tagIDs) {
			changed = true
			if len(refs) == 0 {
				delete(assignments, articleID)
				continue
			}
			assignments[articleID] = refs
		}
	}
	if changed {
		return saveJSON(ctx, s.kv, string(account), keyArticleTags, assignments)
	}
	return nil
}

// Assign replaces the article's tag set. Every tag ID must exist.
func (s *TagStore) Assign(ctx context.Context, account domain.AccountID, articleID domain.ArticleID, tagIDs []domain.TagID) error {
	tags, err := s.List(ctx, account)
	if err != nil {
		return err
	}
	known := make(map[domain.TagID]bool, len(tags))
	for _, t := range tags {
		known[t.ID] = true
	}
	for _, tid := range tagIDs {
		if !known[tid] {
			return fmt.Errorf("tag %s: %w", tid, ErrNotFound)
		}
	}

	assignments, err := loadJSON(ctx, s.kv, string(account), keyArticleTags, map[domain.ArticleID][]domain.TagID{})
	if err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		delete(assignments, articleID)
	} else {
		assignments[articleID] = tagIDs
	}
	return saveJSON(ctx, s.kv, string(account), keyArticleTags, assignments)
}

// TagsForArticle returns the tags assigned to an article
func (s *TagStore) TagsForArticle(ctx context.Context, account domain.AccountID, articleID domain.ArticleID) ([]domain.Tag, error) {
	assignments, err := loadJSON(ctx, s.kv, string(account), keyArticleTags, map[domain.ArticleID][]domain.TagID{})
	if err != nil {
		return nil, err
	}
	tagIDs := assignments[articleID]
	if len(tagIDs) == 0 {
		return []domain.Tag{}, nil
	}

	tags, err := s.List(ctx, account)
	if err != nil {
		return nil, err
	}
	byID := make(map[domain.TagID]domain.Tag, len(tags))
	for _, t := range tags {
		byID[t.ID] = t
	}
	res := make([]domain.Tag, 0, len(tagIDs))
	for _, tid := range tagIDs {
		if t, ok := byID[tid]; ok {
			res = append(res, t)
		}
	}
	return res, nil
}
