package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/araddon/dateparse"

	"github.com/feedlet/feedlet/pkg/domain"
)

// ErrNotFeed reports content that was fetched successfully but is not a
// recognized feed. Callers use it to answer "bad URL or just not a feed?".
var ErrNotFeed = errors.New("not a recognized feed")

// summaryLength is how many leading characters of the content become the
// summary when the feed provides none
const summaryLength = 200

// Converter turns a feed URL into the canonical feed and article records,
// assigning deterministic content-addressed IDs along the way.
type Converter struct {
	client    *http.Client
	userAgent string
	now       func() time.Time
}

// NewConverter creates a converter using the given HTTP client
func NewConverter(client *http.Client, userAgent string) *Converter {
	return &Converter{client: client, userAgent: userAgent, now: time.Now}
}

// Convert fetches the URL and produces the feed envelope plus its articles.
// An unrecognized document still yields the envelope with best-effort
// metadata and an empty article list; only access failures are errors.
func (c *Converter) Convert(ctx context.Context, feedURL string) (domain.Feed, []domain.Article, error) {
	raw, _, err := c.fetch(ctx, feedURL)
	if err != nil {
		return domain.Feed{}, nil, fmt.Errorf("fetch feed %s: %w", feedURL, err)
	}

	meta := ExtractMetadata(raw)

	feed := domain.Feed{
		ID:          domain.NewFeedID(feedURL),
		Title:       firstNonEmpty(meta.Title, feedURL),
		URL:         feedURL,
		CategoryIDs: []domain.CategoryID{},
		Description: meta.Description,
		ImageURL:    meta.ImageURL,
		LastUpdated: c.now(),
	}

	parsed := Parse(raw)
	if parsed == nil {
		return feed, []domain.Article{}, nil
	}

	articles := make([]domain.Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		articles = append(articles, domain.Article{
			ID:          domain.NewArticleID(item.Link),
			FeedID:      feed.ID,
			Title:       item.Title,
			URL:         item.Link,
			Content:     item.Content,
			Summary:     summarize(item.Content),
			PublishedAt: c.publishedAt(item.PubDate),
			Status:      domain.StatusUnread,
			Categories:  []string{},
		})
	}

	return feed, articles, nil
}

// Validate fetches the URL and returns feed metadata when the response looks
// like a feed. Returns ErrNotFeed when the URL is reachable but does not
// serve a feed; other errors mean the source could not be fetched.
func (c *Converter) Validate(ctx context.Context, feedURL string) (Metadata, error) {
	raw, contentType, err := c.fetch(ctx, feedURL)
	if err != nil {
		return Metadata{}, fmt.Errorf("fetch %s: %w", feedURL, err)
	}

	if !isFeedResponse(contentType, raw) {
		return Metadata{}, ErrNotFeed
	}

	return ExtractMetadata(raw), nil
}

func (c *Converter) fetch(ctx context.Context, feedURL string) (body, contentType string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, http.NoBody)
	if err != nil {
		return "", "", fmt.Errorf("create request: %w", err)
	}
	return httpGet(req, c.client, c.userAgent)
}

// publishedAt parses raw feed date text in whatever format the publisher
// chose; absent or unparseable dates fall back to conversion time
func (c *Converter) publishedAt(raw string) time.Time {
	if raw == "" {
		return c.now()
	}
	ts, err := dateparse.ParseAny(raw)
	if err != nil {
		return c.now()
	}
	return ts
}

// summarize keeps the first summaryLength characters of the content,
// counting runes so multibyte text is not cut mid-character
func summarize(content string) string {
	runes := []rune(content)
	if len(runes) <= summaryLength {
		return content
	}
	return string(runes[:summaryLength])
}
