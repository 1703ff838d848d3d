package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/feedlet/feedlet/pkg/domain"
	"github.com/feedlet/feedlet/pkg/feed"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/discoverer.go -pkg mocks -skip-ensure -fmt goimports . Discoverer
//go:generate moq -out mocks/converter.go -pkg mocks -skip-ensure -fmt goimports . Converter
//go:generate moq -out mocks/article_cache.go -pkg mocks -skip-ensure -fmt goimports . ArticleCache

// Server represents HTTP server instance
type Server struct {
	config     ConfigProvider
	discoverer Discoverer
	converter  Converter
	cache      ArticleCache
	feeds      FeedStore
	state      StateStore
	tags       TagStore
	version    string
	debug      bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// Discoverer finds candidate feed URLs for a web page
type Discoverer interface {
	Discover(ctx context.Context, pageURL string) ([]string, error)
}

// Converter fetches and validates feed URLs
type Converter interface {
	Convert(ctx context.Context, feedURL string) (domain.Feed, []domain.Article, error)
	Validate(ctx context.Context, feedURL string) (feed.Metadata, error)
}

// ArticleCache serves feed articles from the TTL cache
type ArticleCache interface {
	ArticlesForFeed(ctx context.Context, feedID domain.FeedID) ([]domain.Article, error)
	ArticleByID(ctx context.Context, feedID domain.FeedID, id domain.ArticleID) (domain.Article, error)
	Refresh(ctx context.Context, feedID domain.FeedID) ([]domain.Article, error)
}

// FeedStore manages feed subscriptions and categories per account
type FeedStore interface {
	List(ctx context.Context, account domain.AccountID) ([]domain.Feed, error)
	Get(ctx context.Context, account domain.AccountID, id domain.FeedID) (domain.Feed, error)
	Add(ctx context.Context, account domain.AccountID, f domain.Feed) error
	Remove(ctx context.Context, account domain.AccountID, id domain.FeedID) error
	Categories(ctx context.Context, account domain.AccountID) ([]domain.Category, error)
	AddCategory(ctx context.Context, account domain.AccountID, name string) (domain.Category, error)
	RemoveCategory(ctx context.Context, account domain.AccountID, id domain.CategoryID) error
}

// StateStore manages per-article read state and favorites per account
type StateStore interface {
	SetStatus(ctx context.Context, account domain.AccountID, id domain.ArticleID, status domain.ArticleStatus) error
	SetFavorite(ctx context.Context, account domain.AccountID, id domain.ArticleID, favorite bool) error
	Apply(ctx context.Context, account domain.AccountID, articles []domain.Article) ([]domain.Article, error)
}

// TagStore manages tags and their assignment to articles per account
type TagStore interface {
	List(ctx context.Context, account domain.AccountID) ([]domain.Tag, error)
	Add(ctx context.Context, account domain.AccountID, name, color string) (domain.Tag, error)
	Remove(ctx context.Context, account domain.AccountID, id domain.TagID) error
	Assign(ctx context.Context, account domain.AccountID, articleID domain.ArticleID, tagIDs []domain.TagID) error
	TagsForArticle(ctx context.Context, account domain.AccountID, articleID domain.ArticleID) ([]domain.Tag, error)
}

// New initializes a new server instance
func New(cfg ConfigProvider, discoverer Discoverer, converter Converter, cache ArticleCache,
	feeds FeedStore, state StateStore, tags TagStore, version string, debug bool) *Server {
	s := &Server{
		config:     cfg,
		discoverer: discoverer,
		converter:  converter,
		cache:      cache,
		feeds:      feeds,
		state:      state,
		tags:       tags,
		version:    version,
		debug:      debug,
		router:     routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("feedlet", "feedlet", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		r.HandleFunc("GET /feeds/discover", s.discoverHandler)
		r.HandleFunc("POST /feeds/validate", s.validateFeedHandler)

		r.HandleFunc("GET /feeds", s.listFeedsHandler)
		r.HandleFunc("POST /feeds", s.addFeedHandler)
		r.HandleFunc("DELETE /feeds/{id}", s.deleteFeedHandler)
		r.HandleFunc("GET /feeds/export", s.exportOPMLHandler)
		r.HandleFunc("POST /feeds/import", s.importOPMLHandler)

		r.HandleFunc("GET /feeds/{id}/articles", s.feedArticlesHandler)
		r.HandleFunc("POST /feeds/{id}/refresh", s.refreshFeedHandler)
		r.HandleFunc("GET /feeds/{feed}/articles/{id}", s.articleHandler)

		r.HandleFunc("POST /articles/{id}/status", s.articleStatusHandler)
		r.HandleFunc("POST /articles/{id}/favorite", s.articleFavoriteHandler)
		r.HandleFunc("PUT /articles/{id}/tags", s.articleTagsHandler)

		r.HandleFunc("GET /tags", s.listTagsHandler)
		r.HandleFunc("POST /tags", s.addTagHandler)
		r.HandleFunc("DELETE /tags/{id}", s.deleteTagHandler)

		r.HandleFunc("GET /categories", s.listCategoriesHandler)
		r.HandleFunc("POST /categories", s.addCategoryHandler)
		r.HandleFunc("DELETE /categories/{id}", s.deleteCategoryHandler)
	})
}
