package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RSS2(t *testing.T) {
	rssXML := `<?xml version="1.0" encoding="UTF-8" ?>
<rss version="2.0">
	<channel>
		<title>サンプルRSSフィード</title>
		<link>https://example.com/feed</link>
		<description>これはサンプルのRSSフィードです</description>
		<item>
			<title>記事タイトル1</title>
			<link>https://example.com/article1</link>
			<description>記事の内容1</description>
			<pubDate>Mon, 01 Jan 2024 00:00:00 GMT</pubDate>
		</item>
		<item>
			<title>記事タイトル2</title>
			<link>https://example.com/article2</link>
			<description>記事の内容2</description>
			<pubDate>Mon, 02 Jan 2024 00:00:00 GMT</pubDate>
		</item>
	</channel>
</rss>`

	parsed := Parse(rssXML)
	require.NotNil(t, parsed)

	assert.Equal(t, "サンプルRSSフィード", parsed.Title)
	assert.Equal(t, "https://example.com/feed", parsed.Link)
	assert.Equal(t, "これはサンプルのRSSフィードです", parsed.Description)

	require.Len(t, parsed.Items, 2)
	assert.Equal(t, "記事タイトル1", parsed.Items[0].Title)
	assert.Equal(t, "https://example.com/article1", parsed.Items[0].Link)
	assert.Equal(t, "記事の内容1", parsed.Items[0].Content)
	assert.Equal(t, "Mon, 01 Jan 2024 00:00:00 GMT", parsed.Items[0].PubDate)
	assert.Equal(t, "記事タイトル2", parsed.Items[1].Title)
	assert.Equal(t, "https://example.com/article2", parsed.Items[1].Link)
}

func TestParse_RSS2_ContentPrecedence(t *testing.T) {
	t.Run("description wins over content:encoded", func(t *testing.T) {
		rssXML := `<?xml version="1.0"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
	<title>Feed</title>
	<item>
		<title>Article</title>
		<link>https://example.com/a</link>
		<description>short description</description>
		<content:encoded><![CDATA[<p>full content</p>]]></content:encoded>
	</item>
</channel>
</rss>`
		parsed := Parse(rssXML)
		require.NotNil(t, parsed)
		require.Len(t, parsed.Items, 1)
		assert.Equal(t, "short description", parsed.Items[0].Content)
	})

	t.Run("content:encoded fallback when no description", func(t *testing.T) {
		rssXML := `<?xml version="1.0"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
	<title>Feed</title>
	<item>
		<title>Article</title>
		<link>https://example.com/a</link>
		<content:encoded><![CDATA[<p>full content</p>]]></content:encoded>
	</item>
</channel>
</rss>`
		parsed := Parse(rssXML)
		require.NotNil(t, parsed)
		require.Len(t, parsed.Items, 1)
		assert.Equal(t, "<p>full content</p>", parsed.Items[0].Content)
	})
}

func TestParse_RSS2_GUIDFallback(t *testing.T) {
	t.Run("guid used when link missing", func(t *testing.T) {
		rssXML := `<?xml version="1.0"?>
<rss version="2.0">
<channel>
	<title>Feed</title>
	<item>
		<title>Article</title>
		<guid>https://example.com/from-guid</guid>
		<description>body</description>
	</item>
</channel>
</rss>`
		parsed := Parse(rssXML)
		require.NotNil(t, parsed)
		require.Len(t, parsed.Items, 1)
		assert.Equal(t, "https://example.com/from-guid", parsed.Items[0].Link)
	})

	t.Run("guid ignored when marked non-permalink", func(t *testing.T) {
		rssXML := `<?xml version="1.0"?>
<rss version="2.0">
<channel>
	<title>Feed</title>
	<item>
		<title>Article</title>
		<guid isPermaLink="false">internal-id-123</guid>
		<description>body</description>
	</item>
</channel>
</rss>`
		parsed := Parse(rssXML)
		require.NotNil(t, parsed)
		require.Len(t, parsed.Items, 1)
		assert.Empty(t, parsed.Items[0].Link)
	})

	t.Run("link wins over guid", func(t *testing.T) {
		rssXML := `<?xml version="1.0"?>
<rss version="2.0">
<channel>
	<title>Feed</title>
	<item>
		<title>Article</title>
		<link>https://example.com/real</link>
		<guid>https://example.com/from-guid</guid>
	</item>
</channel>
</rss>`
		parsed := Parse(rssXML)
		require.NotNil(t, parsed)
		require.Len(t, parsed.Items, 1)
		assert.Equal(t, "https://example.com/real", parsed.Items[0].Link)
	})
}

func TestParse_Atom(t *testing.T) {
	atomXML := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>サンプルAtomフィード</title>
	<link rel="self" href="https://example.com/feed"/>
	<subtitle>これはサンプルのAtomフィードです</subtitle>
	<entry>
		<title>記事タイトル1</title>
		<link rel="alternate" href="https://example.com/article1"/>
		<content>記事の内容1</content>
		<updated>2024-01-01T00:00:00Z</updated>
	</entry>
	<entry>
		<title>記事タイトル2</title>
		<link rel="alternate" href="https://example.com/article2"/>
		<summary>要約2</summary>
		<published>2024-01-02T00:00:00Z</published>
	</entry>
</feed>`

	parsed := Parse(atomXML)
	require.NotNil(t, parsed)

	assert.Equal(t, "サンプルAtomフィード", parsed.Title)
	assert.Equal(t, "https://example.com/feed", parsed.Link)
	assert.Equal(t, "これはサンプルのAtomフィードです", parsed.Description)

	require.Len(t, parsed.Items, 2)
	assert.Equal(t, "記事タイトル1", parsed.Items[0].Title)
	assert.Equal(t, "https://example.com/article1", parsed.Items[0].Link)
	assert.Equal(t, "記事の内容1", parsed.Items[0].Content)
	assert.Equal(t, "2024-01-01T00:00:00Z", parsed.Items[0].PubDate)

	// second entry falls back to summary for content and published for date
	assert.Equal(t, "要約2", parsed.Items[1].Content)
	assert.Equal(t, "2024-01-02T00:00:00Z", parsed.Items[1].PubDate)
}

func TestParse_RDF(t *testing.T) {
	rdfXML := `<?xml version="1.0" encoding="UTF-8" ?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:dc="http://purl.org/dc/elements/1.1/"
         xmlns="http://purl.org/rss/1.0/">
	<channel rdf:about="https://example.com">
		<title>テストRDFフィード</title>
		<link>https://example.com</link>
		<description>テスト用のRDFフィード</description>
	</channel>
	<item rdf:about="https://example.com/article1">
		<title>記事1</title>
		<link>https://example.com/article1</link>
		<description>記事1の内容</description>
		<dc:date>2024-01-01T00:00:00Z</dc:date>
	</item>
	<item rdf:about="https://example.com/article2">
		<title>記事2</title>
		<link>https://example.com/article2</link>
		<description>記事2の内容</description>
	</item>
</rdf:RDF>`

	parsed := Parse(rdfXML)
	require.NotNil(t, parsed)

	assert.Equal(t, "テストRDFフィード", parsed.Title)
	assert.Equal(t, "https://example.com", parsed.Link)
	assert.Equal(t, "テスト用のRDFフィード", parsed.Description)

	require.Len(t, parsed.Items, 2)
	assert.Equal(t, "記事1", parsed.Items[0].Title)
	assert.Equal(t, "https://example.com/article1", parsed.Items[0].Link)
	assert.Equal(t, "記事1の内容", parsed.Items[0].Content)
	assert.Equal(t, "2024-01-01T00:00:00Z", parsed.Items[0].PubDate)
}

func TestParse_JSONFeed(t *testing.T) {
	jsonFeed := `{
		"version": "https://jsonfeed.org/version/1.1",
		"title": "JSON Feed Sample",
		"home_page_url": "https://example.com/",
		"feed_url": "https://example.com/feed.json",
		"description": "a json feed",
		"items": [
			{
				"id": "1",
				"url": "https://example.com/one",
				"title": "First",
				"content_html": "<p>one</p>",
				"date_published": "2024-01-01T00:00:00Z"
			},
			{
				"id": "2",
				"external_url": "https://elsewhere.example.com/two",
				"title": "Second",
				"content_text": "two",
				"date_modified": "2024-01-02T00:00:00Z"
			}
		]
	}`

	parsed := Parse(jsonFeed)
	require.NotNil(t, parsed)

	assert.Equal(t, "JSON Feed Sample", parsed.Title)
	assert.Equal(t, "https://example.com/", parsed.Link)
	assert.Equal(t, "a json feed", parsed.Description)

	require.Len(t, parsed.Items, 2)
	assert.Equal(t, "First", parsed.Items[0].Title)
	assert.Equal(t, "https://example.com/one", parsed.Items[0].Link)
	assert.Equal(t, "<p>one</p>", parsed.Items[0].Content)
	assert.Equal(t, "2024-01-01T00:00:00Z", parsed.Items[0].PubDate)

	assert.Equal(t, "https://elsewhere.example.com/two", parsed.Items[1].Link)
	assert.Equal(t, "two", parsed.Items[1].Content)
	assert.Equal(t, "2024-01-02T00:00:00Z", parsed.Items[1].PubDate)
}

func TestParse_Unrecognized(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unknown XML root", "<invalid></invalid>"},
		{"malformed XML", "<rss><channel><title>broken"},
		{"plain text", "not a feed at all"},
		{"empty", ""},
		{"JSON but not a feed", `{"version": "1.0", "data": []}`},
		{"JSON feed version without items", `{"version": "https://jsonfeed.org/version/1.1"}`},
		{"malformed JSON", `{"version": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, Parse(tt.raw))
		})
	}
}

func TestLooksLikeJSONFeed(t *testing.T) {
	assert.True(t, looksLikeJSONFeed(`{"version":"https://jsonfeed.org/version/1","items":[]}`))
	assert.False(t, looksLikeJSONFeed(`{"version":"https://jsonfeed.org/version/1","items":{}}`))
	assert.False(t, looksLikeJSONFeed(`{"version":"2.0","items":[]}`))
	assert.False(t, looksLikeJSONFeed(`[]`))
	assert.False(t, looksLikeJSONFeed(`garbage`))
}
