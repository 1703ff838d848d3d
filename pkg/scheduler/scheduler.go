// Package scheduler runs periodic background refreshes of all subscribed
// feeds so the article cache stays warm.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/feedlet/feedlet/pkg/domain"
	"github.com/feedlet/feedlet/pkg/store"
)

//go:generate moq -out mocks/feed_lister.go -pkg mocks -skip-ensure -fmt goimports . FeedLister
//go:generate moq -out mocks/refresher.go -pkg mocks -skip-ensure -fmt goimports . Refresher

// FeedLister enumerates subscriptions across all accounts
type FeedLister interface {
	AllFeeds(ctx context.Context) ([]store.AccountFeed, error)
}

// Refresher refetches a feed into the article cache
type Refresher interface {
	Refresh(ctx context.Context, feedID domain.FeedID) ([]domain.Article, error)
}

// Config holds scheduler configuration
type Config struct {
	UpdateInterval time.Duration
	MaxWorkers     int
}

// Scheduler periodically refreshes every subscribed feed
type Scheduler struct {
	feeds      FeedLister
	cache      Refresher
	interval   time.Duration
	maxWorkers int
	wg         sync.WaitGroup
	cancel     context.CancelFunc
}

// NewScheduler creates a scheduler instance
func NewScheduler(feeds FeedLister, cache Refresher, cfg Config) *Scheduler {
	if cfg.UpdateInterval == 0 {
		cfg.UpdateInterval = 30 * time.Minute
	}
	if cfg.MaxWorkers == 0 {
		cfg.MaxWorkers = 5
	}
	return &Scheduler{
		feeds:      feeds,
		cache:      cache,
		interval:   cfg.UpdateInterval,
		maxWorkers: cfg.MaxWorkers,
	}
}

// Start begins the periodic refresh loop
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.refreshWorker(ctx)

	lgr.Printf("[INFO] scheduler started with update interval %v, %d workers", s.interval, s.maxWorkers)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// refreshWorker runs a refresh immediately and then on every tick
func (s *Scheduler) refreshWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.RefreshAll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RefreshAll(ctx)
		}
	}
}

// RefreshAll refetches every subscribed feed once, concurrently up to
// maxWorkers. A feed shared by several accounts is refreshed a single time.
// Per-feed failures are logged and do not stop the run.
func (s *Scheduler) RefreshAll(ctx context.Context) {
	all, err := s.feeds.AllFeeds(ctx)
	if err != nil {
		lgr.Printf("[ERROR] failed to list feeds: %v", err)
		return
	}

	seen := map[domain.FeedID]bool{}
	var ids []domain.FeedID
	for _, af := range all {
		if !seen[af.Feed.ID] {
			seen[af.Feed.ID] = true
			ids = append(ids, af.Feed.ID)
		}
	}

	lgr.Printf("[INFO] refreshing %d feeds", len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxWorkers)
	for _, id := range ids {
		g.Go(func() error {
			if _, err := s.cache.Refresh(ctx, id); err != nil {
				lgr.Printf("[WARN] refresh of feed %s failed: %v", id, err)
			}
			return nil
		})
	}
	_ = g.Wait() // errors are logged per feed

	lgr.Printf("[INFO] feed refresh completed")
}
