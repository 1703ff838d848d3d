package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedlet/feedlet/pkg/domain"
)

func newTestConverter() *Converter {
	return NewConverter(NewHTTPClient(5*time.Second), "feedlet-test/1.0")
}

func TestConverter_Convert(t *testing.T) {
	rssContent := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
	<title>Test Feed</title>
	<link>http://example.com</link>
	<description>Test Description</description>
	<item>
		<title>Test Article 1</title>
		<link>http://example.com/article1</link>
		<description>Article 1 description</description>
		<pubDate>Mon, 02 Jan 2006 15:04:05 -0700</pubDate>
	</item>
	<item>
		<title>Test Article 2</title>
		<link>http://example.com/article2</link>
		<description>Article 2 description</description>
		<pubDate>Tue, 03 Jan 2006 15:04:05 -0700</pubDate>
	</item>
</channel>
</rss>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssContent)
	}))
	defer server.Close()

	conv := newTestConverter()
	feed, articles, err := conv.Convert(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, domain.NewFeedID(server.URL), feed.ID)
	assert.Equal(t, "Test Feed", feed.Title)
	assert.Equal(t, server.URL, feed.URL)
	assert.Equal(t, "Test Description", feed.Description)
	assert.False(t, feed.LastUpdated.IsZero())

	require.Len(t, articles, 2)
	a1 := articles[0]
	assert.Equal(t, domain.NewArticleID("http://example.com/article1"), a1.ID)
	assert.Equal(t, feed.ID, a1.FeedID)
	assert.Equal(t, "Test Article 1", a1.Title)
	assert.Equal(t, "http://example.com/article1", a1.URL)
	assert.Equal(t, "Article 1 description", a1.Content)
	assert.Equal(t, "Article 1 description", a1.Summary)
	assert.Equal(t, domain.StatusUnread, a1.Status)
	assert.False(t, a1.IsFavorite)

	want := time.Date(2006, 1, 2, 15, 4, 5, 0, time.FixedZone("", -7*3600))
	assert.True(t, a1.PublishedAt.Equal(want), "got %s", a1.PublishedAt)
}

func TestConverter_Convert_Idempotent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, `<rss version="2.0"><channel><title>F</title>
			<item><title>A</title><link>http://example.com/a</link><description>x</description></item>
		</channel></rss>`)
	}))
	defer server.Close()

	conv := newTestConverter()
	feed1, articles1, err := conv.Convert(context.Background(), server.URL)
	require.NoError(t, err)
	feed2, articles2, err := conv.Convert(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, feed1.ID, feed2.ID, "feed ID must be stable across fetches")
	require.Len(t, articles1, 1)
	require.Len(t, articles2, 1)
	assert.Equal(t, articles1[0].ID, articles2[0].ID, "article ID must be stable across fetches")
}

func TestConverter_Convert_SummaryTruncation(t *testing.T) {
	long := strings.Repeat("あ", 500)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprintf(w, `<rss version="2.0"><channel><title>F</title>
			<item><title>A</title><link>http://example.com/a</link><description>%s</description></item>
		</channel></rss>`, long)
	}))
	defer server.Close()

	_, articles, err := newTestConverter().Convert(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, articles, 1)

	assert.Equal(t, long, articles[0].Content)
	assert.Equal(t, summaryLength, len([]rune(articles[0].Summary)))
	assert.Equal(t, strings.Repeat("あ", summaryLength), articles[0].Summary)
}

func TestConverter_Convert_DateFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, `<rss version="2.0"><channel><title>F</title>
			<item><title>No date</title><link>http://example.com/a</link><description>x</description></item>
			<item><title>Bad date</title><link>http://example.com/b</link><description>y</description><pubDate>next tuesday-ish</pubDate></item>
		</channel></rss>`)
	}))
	defer server.Close()

	conv := newTestConverter()
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	conv.now = func() time.Time { return fixed }

	_, articles, err := conv.Convert(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.True(t, articles[0].PublishedAt.Equal(fixed))
	assert.True(t, articles[1].PublishedAt.Equal(fixed))
}

func TestConverter_Convert_UnrecognizedFormat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body>just a page</body></html>")
	}))
	defer server.Close()

	feed, articles, err := newTestConverter().Convert(context.Background(), server.URL)
	require.NoError(t, err, "unrecognized format is not an error")

	assert.Equal(t, server.URL, feed.Title, "title falls back to the URL when metadata is empty")
	assert.Empty(t, articles)
	assert.NotNil(t, articles)
}

func TestConverter_Convert_FetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, _, err := newTestConverter().Convert(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code: 500")
}

func TestConverter_Validate(t *testing.T) {
	t.Run("valid feed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/rss+xml")
			fmt.Fprint(w, `<rss version="2.0"><channel>
				<title>Valid Feed</title><description>desc</description>
			</channel></rss>`)
		}))
		defer server.Close()

		meta, err := newTestConverter().Validate(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "Valid Feed", meta.Title)
		assert.Equal(t, "desc", meta.Description)
	})

	t.Run("not a feed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, "<html></html>")
		}))
		defer server.Close()

		_, err := newTestConverter().Validate(context.Background(), server.URL)
		require.ErrorIs(t, err, ErrNotFeed)
	})

	t.Run("unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		_, err := newTestConverter().Validate(context.Background(), server.URL)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFeed)
	})
}
