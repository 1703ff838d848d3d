package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/feedlet/feedlet/pkg/domain"
)

//go:generate moq -out mocks/converter.go -pkg mocks -skip-ensure -fmt goimports . Converter
//go:generate moq -out mocks/feed_lookup.go -pkg mocks -skip-ensure -fmt goimports . FeedLookup
//go:generate moq -out mocks/persister.go -pkg mocks -skip-ensure -fmt goimports . Persister

// ErrNotFound indicates the requested article is not in the cache or the feed
var ErrNotFound = errors.New("article not found")

const (
	cacheScope = "articleCache"
	keyEntries = "entries"
)

// Converter fetches a feed URL and turns it into domain objects
type Converter interface {
	Convert(ctx context.Context, feedURL string) (domain.Feed, []domain.Article, error)
}

// FeedLookup resolves a feed ID to its subscription record
type FeedLookup interface {
	FeedByID(ctx context.Context, id domain.FeedID) (domain.Feed, error)
}

// Persister stores the cache contents between restarts
type Persister interface {
	Save(ctx context.Context, scope, key, value string) error
	Load(ctx context.Context, scope, key string) (string, bool, error)
}

// entry is a cached article with its fetch timestamp
type entry struct {
	Article  domain.Article `json:"article"`
	FeedID   domain.FeedID  `json:"feedId"`
	CachedAt time.Time      `json:"cachedAt"`
}

// Config represents cache tuning parameters
type Config struct {
	TTL         time.Duration // how long a cached article stays valid
	MinArticles int           // cached articles needed to skip a refetch
}

// Cache holds fetched articles per feed. Reads are served from cache when
// enough unexpired articles are present; otherwise the feed is refetched and
// the result merged with what survived. A fetch failure on the read path
// degrades to whatever valid cached articles remain, possibly none.
type Cache struct {
	converter Converter
	feeds     FeedLookup
	persister Persister
	ttl       time.Duration
	min       int
	now       func() time.Time

	mu      sync.Mutex
	entries map[domain.ArticleID]entry
}

// New creates a cache and loads any persisted entries
func New(persister Persister, converter Converter, feeds FeedLookup, cfg Config) (*Cache, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = 360 * 24 * time.Hour
	}
	if cfg.MinArticles <= 0 {
		cfg.MinArticles = 5
	}

	c := &Cache{
		converter: converter,
		feeds:     feeds,
		persister: persister,
		ttl:       cfg.TTL,
		min:       cfg.MinArticles,
		now:       time.Now,
		entries:   map[domain.ArticleID]entry{},
	}

	raw, ok, err := persister.Load(context.Background(), cacheScope, keyEntries)
	if err != nil {
		return nil, fmt.Errorf("load article cache: %w", err)
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &c.entries); err != nil {
			// a corrupt cache is not fatal, start empty
			log.Printf("[WARN] failed to decode article cache, starting empty: %v", err)
			c.entries = map[domain.ArticleID]entry{}
		}
	}
	return c, nil
}

// valid reports whether the entry is within its TTL
func (c *Cache) valid(e entry) bool {
	return c.now().Sub(e.CachedAt) <= c.ttl
}

// cachedForFeed returns unexpired entries for the feed. Caller holds the lock.
func (c *Cache) cachedForFeed(feedID domain.FeedID) []entry {
	var res []entry
	for _, e := range c.entries {
		if e.FeedID == feedID && c.valid(e) {
			res = append(res, e)
		}
	}
	return res
}

// ArticlesForFeed returns the feed's articles, refetching only when the cache
// holds fewer unexpired articles than the configured minimum. A read never
// fails on fetch or lookup errors, it falls back to the cached articles even
// when there are none.
func (c *Cache) ArticlesForFeed(ctx context.Context, feedID domain.FeedID) ([]domain.Article, error) {
	c.mu.Lock()
	cached := c.cachedForFeed(feedID)
	c.mu.Unlock()

	if len(cached) >= c.min {
		return articlesOf(cached), nil
	}

	fresh, err := c.fetch(ctx, feedID)
	if err != nil {
		log.Printf("[WARN] refresh of feed %s failed, serving %d cached articles: %v", feedID, len(cached), err)
		return articlesOf(cached), nil
	}
	return fresh, nil
}

// ArticleByID returns a single article from the feed, fetching the feed if the
// article is not cached
func (c *Cache) ArticleByID(ctx context.Context, feedID domain.FeedID, id domain.ArticleID) (domain.Article, error) {
	c.mu.Lock()
	e, ok := c.entries[id]
	c.mu.Unlock()
	if ok && e.FeedID == feedID && c.valid(e) {
		return e.Article, nil
	}

	articles, err := c.ArticlesForFeed(ctx, feedID)
	if err != nil {
		return domain.Article{}, err
	}
	for _, a := range articles {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.Article{}, fmt.Errorf("article %s in feed %s: %w", id, feedID, ErrNotFound)
}

// Refresh forces a refetch of the feed regardless of cache sufficiency and
// returns the merged article list. Unlike the read path this is an explicit
// user action, so fetch errors propagate to the caller.
func (c *Cache) Refresh(ctx context.Context, feedID domain.FeedID) ([]domain.Article, error) {
	return c.fetch(ctx, feedID)
}

// fetch refetches the feed, merges the result with surviving cached articles
// and persists the cache
func (c *Cache) fetch(ctx context.Context, feedID domain.FeedID) ([]domain.Article, error) {
	feed, err := c.feeds.FeedByID(ctx, feedID)
	if err != nil {
		return nil, fmt.Errorf("resolve feed %s: %w", feedID, err)
	}
	_, articles, err := c.converter.Convert(ctx, feed.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", feed.URL, err)
	}

	now := c.now()

	c.mu.Lock()
	seen := make(map[domain.ArticleID]bool, len(articles))
	for _, a := range articles {
		seen[a.ID] = true
		c.entries[a.ID] = entry{Article: a, FeedID: feedID, CachedAt: now}
	}
	// keep unexpired articles the feed no longer lists
	merged := articles
	for _, e := range c.cachedForFeed(feedID) {
		if !seen[e.Article.ID] {
			merged = append(merged, e.Article)
		}
	}
	c.evictExpired()
	err = c.persist(ctx)
	c.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return merged, nil
}

// evictExpired drops entries past their TTL. Caller holds the lock.
func (c *Cache) evictExpired() {
	for id, e := range c.entries {
		if !c.valid(e) {
			delete(c.entries, id)
		}
	}
}

// persist writes the cache to the store. Caller holds the lock.
func (c *Cache) persist(ctx context.Context) error {
	raw, err := json.Marshal(c.entries)
	if err != nil {
		return fmt.Errorf("marshal article cache: %w", err)
	}
	if err := c.persister.Save(ctx, cacheScope, keyEntries, string(raw)); err != nil {
		return fmt.Errorf("persist article cache: %w", err)
	}
	return nil
}

func articlesOf(entries []entry) []domain.Article {
	res := make([]domain.Article, len(entries))
	for i, e := range entries {
		res[i] = e.Article
	}
	return res
}
