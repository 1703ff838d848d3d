package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/feedlet/feedlet/pkg/domain"
	"github.com/feedlet/feedlet/pkg/opml"
	"github.com/feedlet/feedlet/pkg/store"
)

// exportOPMLHandler renders the account's subscriptions as an OPML document
func (s *Server) exportOPMLHandler(w http.ResponseWriter, r *http.Request) {
	account := accountFrom(r)

	feeds, err := s.feeds.List(r.Context(), account)
	if err != nil {
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	cats, err := s.feeds.Categories(r.Context(), account)
	if err != nil {
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	catNames := make(map[domain.CategoryID]string, len(cats))
	for _, c := range cats {
		catNames[c.ID] = c.Name
	}

	subs := make([]opml.Subscription, 0, len(feeds))
	for _, f := range feeds {
		var names []string
		for _, cid := range f.CategoryIDs {
			if name, ok := catNames[cid]; ok {
				names = append(names, name)
			}
		}
		subs = append(subs, opml.Subscription{Title: f.Title, URL: f.URL, Categories: names})
	}

	out, err := opml.Generate("feedlet subscriptions", subs, time.Now())
	if err != nil {
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="feedlet.opml"`)
	if _, err := w.Write(out); err != nil {
		log.Printf("[WARN] failed to write opml response: %v", err)
	}
}

// importOPMLHandler subscribes the account to every feed in the posted OPML
// document, creating missing categories on the fly. Already subscribed feeds
// are counted as skipped.
func (s *Server) importOPMLHandler(w http.ResponseWriter, r *http.Request) {
	account := accountFrom(r)

	subs, err := opml.Parse(r.Body)
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid opml document: %w", err), http.StatusBadRequest)
		return
	}

	cats, err := s.feeds.Categories(r.Context(), account)
	if err != nil {
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	catByName := make(map[string]domain.CategoryID, len(cats))
	for _, c := range cats {
		catByName[c.Name] = c.ID
	}

	imported, skipped := 0, 0
	for _, sub := range subs {
		if sub.URL == "" {
			skipped++
			continue
		}

		var categoryIDs []domain.CategoryID
		for _, name := range sub.Categories {
			cid, ok := catByName[name]
			if !ok {
				cat, err := s.feeds.AddCategory(r.Context(), account, name)
				if err != nil {
					renderError(w, r, err, http.StatusInternalServerError)
					return
				}
				catByName[name] = cat.ID
				cid = cat.ID
			}
			categoryIDs = append(categoryIDs, cid)
		}
		if categoryIDs == nil {
			categoryIDs = []domain.CategoryID{}
		}

		title := sub.Title
		if title == "" {
			title = sub.URL
		}
		f := domain.Feed{
			ID:          domain.NewFeedID(sub.URL),
			Title:       title,
			URL:         sub.URL,
			CategoryIDs: categoryIDs,
			LastUpdated: time.Now(),
		}

		if err := s.feeds.Add(r.Context(), account, f); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				skipped++
				continue
			}
			renderError(w, r, err, http.StatusInternalServerError)
			return
		}
		imported++
	}

	renderJSON(w, r, http.StatusOK, map[string]int{"imported": imported, "skipped": skipped})
}
