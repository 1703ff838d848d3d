package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_ExportOPML(t *testing.T) {
	env := newTestEnv(t)
	env.addFeed(t, "https://example.com/rss")

	resp, body := env.do(t, "GET", "/api/v1/feeds/export", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/xml")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "feedlet.opml")

	s := string(body)
	assert.Contains(t, s, `<opml version="2.0">`)
	assert.Contains(t, s, `xmlUrl="https://example.com/rss"`)
	assert.Contains(t, s, `Fetched Feed`)
}

func TestServer_ImportOPML(t *testing.T) {
	env := newTestEnv(t)
	env.addFeed(t, "https://existing.example.com/rss")

	doc := `<?xml version="1.0"?>
<opml version="2.0">
	<head><title>import</title></head>
	<body>
		<outline text="スポーツ">
			<outline type="rss" text="Sports Feed" xmlUrl="https://sports.example.com/rss"/>
		</outline>
		<outline type="rss" text="Existing" xmlUrl="https://existing.example.com/rss"/>
	</body>
</opml>`

	resp, body := env.do(t, "POST", "/api/v1/feeds/import", doc)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var res map[string]int
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, 1, res["imported"])
	assert.Equal(t, 1, res["skipped"], "already subscribed feed skipped")

	// the grouping outline created a category and attached it
	_, body = env.do(t, "GET", "/api/v1/feeds", nil)
	var feeds []struct {
		URL         string   `json:"url"`
		CategoryIDs []string `json:"categoryIds"`
	}
	require.NoError(t, json.Unmarshal(body, &feeds))
	require.Len(t, feeds, 2)

	var imported *struct {
		URL         string   `json:"url"`
		CategoryIDs []string `json:"categoryIds"`
	}
	for i := range feeds {
		if feeds[i].URL == "https://sports.example.com/rss" {
			imported = &feeds[i]
		}
	}
	require.NotNil(t, imported)
	assert.Len(t, imported.CategoryIDs, 1)

	_, body = env.do(t, "GET", "/api/v1/categories", nil)
	assert.Contains(t, string(body), "スポーツ")
}

func TestServer_ImportOPML_Invalid(t *testing.T) {
	env := newTestEnv(t)
	resp, _ := env.do(t, "POST", "/api/v1/feeds/import", "not opml {")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
