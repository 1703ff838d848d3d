package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/feedlet/feedlet/pkg/cache"
	"github.com/feedlet/feedlet/pkg/domain"
	"github.com/feedlet/feedlet/pkg/feed"
	"github.com/feedlet/feedlet/pkg/store"
)

// sanitizer strips unsafe markup from article content before it reaches the
// client
var sanitizer = bluemonday.UGCPolicy()

// defaultAccount is used when the client does not identify itself
const defaultAccount = domain.AccountID("default")

// accountFrom extracts the account from the X-Account header
func accountFrom(r *http.Request) domain.AccountID {
	if acc := strings.TrimSpace(r.Header.Get("X-Account")); acc != "" {
		return domain.AccountID(acc)
	}
	return defaultAccount
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// discoverHandler finds candidate feed URLs for a web page
func (s *Server) discoverHandler(w http.ResponseWriter, r *http.Request) {
	pageURL := r.URL.Query().Get("url")
	if pageURL == "" {
		renderError(w, r, fmt.Errorf("url parameter is required"), http.StatusBadRequest)
		return
	}

	feeds, err := s.discoverer.Discover(r.Context(), pageURL)
	if err != nil {
		log.Printf("[WARN] discovery failed for %s: %v", pageURL, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"feeds": feeds})
}

// validateFeedHandler checks that a URL serves a parseable feed and returns
// its metadata
func (s *Server) validateFeedHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		renderError(w, r, fmt.Errorf("url is required"), http.StatusBadRequest)
		return
	}

	meta, err := s.converter.Validate(r.Context(), req.URL)
	if err != nil {
		if errors.Is(err, feed.ErrNotFeed) {
			renderError(w, r, err, http.StatusBadRequest)
			return
		}
		log.Printf("[WARN] validation failed for %s: %v", req.URL, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, meta)
}

// listFeedsHandler returns the account's subscriptions
func (s *Server) listFeedsHandler(w http.ResponseWriter, r *http.Request) {
	feeds, err := s.feeds.List(r.Context(), accountFrom(r))
	if err != nil {
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, feeds)
}

// addFeedHandler subscribes the account to a feed URL
func (s *Server) addFeedHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL         string   `json:"url"`
		CategoryIDs []string `json:"categoryIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		renderError(w, r, fmt.Errorf("url is required"), http.StatusBadRequest)
		return
	}

	f, _, err := s.converter.Convert(r.Context(), req.URL)
	if err != nil {
		log.Printf("[WARN] failed to fetch feed %s: %v", req.URL, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	for _, cid := range req.CategoryIDs {
		f.CategoryIDs = append(f.CategoryIDs, domain.CategoryID(cid))
	}

	if err := s.feeds.Add(r.Context(), accountFrom(r), f); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			renderError(w, r, err, http.StatusConflict)
			return
		}
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusCreated, f)
}

// deleteFeedHandler unsubscribes the account from a feed
func (s *Server) deleteFeedHandler(w http.ResponseWriter, r *http.Request) {
	id := domain.FeedID(r.PathValue("id"))
	if err := s.feeds.Remove(r.Context(), accountFrom(r), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			renderError(w, r, err, http.StatusNotFound)
			return
		}
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"status": "deleted"})
}

// feedArticlesHandler returns the feed's articles with the account's read
// state applied
func (s *Server) feedArticlesHandler(w http.ResponseWriter, r *http.Request) {
	account := accountFrom(r)
	id := domain.FeedID(r.PathValue("id"))

	if _, err := s.feeds.Get(r.Context(), account, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			renderError(w, r, err, http.StatusNotFound)
			return
		}
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	articles, err := s.cache.ArticlesForFeed(r.Context(), id)
	if err != nil {
		log.Printf("[WARN] failed to get articles for feed %s: %v", id, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	articles, err = s.state.Apply(r.Context(), account, articles)
	if err != nil {
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, articles)
}

// refreshFeedHandler forces a refetch of the feed
func (s *Server) refreshFeedHandler(w http.ResponseWriter, r *http.Request) {
	account := accountFrom(r)
	id := domain.FeedID(r.PathValue("id"))

	if _, err := s.feeds.Get(r.Context(), account, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			renderError(w, r, err, http.StatusNotFound)
			return
		}
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	if _, err := s.cache.Refresh(r.Context(), id); err != nil {
		log.Printf("[WARN] refresh of feed %s failed: %v", id, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"status": "refreshed"})
}

// articleWithTags is a single article response with sanitized content
type articleWithTags struct {
	domain.Article
	Tags []domain.Tag `json:"tags"`
}

// articleHandler returns a single article with sanitized content, read state
// and tags
func (s *Server) articleHandler(w http.ResponseWriter, r *http.Request) {
	account := accountFrom(r)
	feedID := domain.FeedID(r.PathValue("feed"))
	articleID := domain.ArticleID(r.PathValue("id"))

	if _, err := s.feeds.Get(r.Context(), account, feedID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			renderError(w, r, err, http.StatusNotFound)
			return
		}
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	article, err := s.cache.ArticleByID(r.Context(), feedID, articleID)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			renderError(w, r, err, http.StatusNotFound)
			return
		}
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	applied, err := s.state.Apply(r.Context(), account, []domain.Article{article})
	if err != nil {
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	article = applied[0]
	article.Content = sanitizer.Sanitize(article.Content)
	article.Summary = sanitizer.Sanitize(article.Summary)

	tags, err := s.tags.TagsForArticle(r.Context(), account, articleID)
	if err != nil {
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, articleWithTags{Article: article, Tags: tags})
}

// articleStatusHandler updates the article's read status
func (s *Server) articleStatusHandler(w http.ResponseWriter, r *http.Request) {
	id := domain.ArticleID(r.PathValue("id"))

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	status := domain.ArticleStatus(req.Status)
	if !status.Valid() {
		renderError(w, r, fmt.Errorf("invalid status %q", req.Status), http.StatusBadRequest)
		return
	}

	if err := s.state.SetStatus(r.Context(), accountFrom(r), id, status); err != nil {
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"articleId": id, "status": status})
}

// articleFavoriteHandler marks or unmarks the article as a favorite
func (s *Server) articleFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	id := domain.ArticleID(r.PathValue("id"))

	var req struct {
		IsFavorite *bool `json:"isFavorite"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsFavorite == nil {
		renderError(w, r, fmt.Errorf("isFavorite boolean is required"), http.StatusBadRequest)
		return
	}

	if err := s.state.SetFavorite(r.Context(), accountFrom(r), id, *req.IsFavorite); err != nil {
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"articleId": id, "isFavorite": *req.IsFavorite})
}

// articleTagsHandler replaces the article's tag set
func (s *Server) articleTagsHandler(w http.ResponseWriter, r *http.Request) {
	id := domain.ArticleID(r.PathValue("id"))

	var req struct {
		TagIDs []string `json:"tagIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	tagIDs := make([]domain.TagID, len(req.TagIDs))
	for i, t := range req.TagIDs {
		tagIDs[i] = domain.TagID(t)
	}

	account := accountFrom(r)
	if err := s.tags.Assign(r.Context(), account, id, tagIDs); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			renderError(w, r, err, http.StatusBadRequest)
			return
		}
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	tags, err := s.tags.TagsForArticle(r.Context(), account, id)
	if err != nil {
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"articleId": id, "tags": tags})
}

// listTagsHandler returns the account's tags
func (s *Server) listTagsHandler(w http.ResponseWriter, r *http.Request) {
	tags, err := s.tags.List(r.Context(), accountFrom(r))
	if err != nil {
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, tags)
}

// addTagHandler creates a tag
func (s *Server) addTagHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		renderError(w, r, fmt.Errorf("name is required"), http.StatusBadRequest)
		return
	}

	tag, err := s.tags.Add(r.Context(), accountFrom(r), req.Name, req.Color)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			renderError(w, r, err, http.StatusConflict)
			return
		}
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusCreated, tag)
}

// deleteTagHandler deletes a tag
func (s *Server) deleteTagHandler(w http.ResponseWriter, r *http.Request) {
	id := domain.TagID(r.PathValue("id"))
	if err := s.tags.Remove(r.Context(), accountFrom(r), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			renderError(w, r, err, http.StatusNotFound)
			return
		}
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"status": "deleted"})
}

// listCategoriesHandler returns the account's categories
func (s *Server) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	cats, err := s.feeds.Categories(r.Context(), accountFrom(r))
	if err != nil {
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, cats)
}

// addCategoryHandler creates a category
func (s *Server) addCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		renderError(w, r, fmt.Errorf("name is required"), http.StatusBadRequest)
		return
	}

	cat, err := s.feeds.AddCategory(r.Context(), accountFrom(r), req.Name)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			renderError(w, r, err, http.StatusConflict)
			return
		}
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusCreated, cat)
}

// deleteCategoryHandler deletes a category and detaches it from feeds
func (s *Server) deleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id := domain.CategoryID(r.PathValue("id"))
	if err := s.feeds.RemoveCategory(r.Context(), accountFrom(r), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			renderError(w, r, err, http.StatusNotFound)
			return
		}
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"status": "deleted"})
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
