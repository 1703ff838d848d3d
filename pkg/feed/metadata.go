package feed

import (
	"encoding/json"
	"strings"

	"github.com/mmcdole/gofeed/atom"
	"github.com/mmcdole/gofeed/rss"
)

// Metadata holds feed-level fields used by validation and preview flows,
// extracted without touching item-level data.
type Metadata struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// ExtractMetadata pulls feed-level title, description and image from a raw
// document. Detection order matches Parse. Any parse failure degrades to an
// empty Metadata, never an error - this path backs fast "is it a feed?"
// checks and must not fail hard.
func ExtractMetadata(raw string) Metadata {
	if strings.HasPrefix(strings.TrimSpace(raw), "{") {
		if m, ok := jsonFeedMetadata(raw); ok {
			return m
		}
	}

	switch rootElement(raw) {
	case "rss", "RDF":
		return rssMetadata(raw)
	case "feed":
		return atomMetadata(raw)
	}
	return Metadata{}
}

func jsonFeedMetadata(raw string) (Metadata, bool) {
	var doc struct {
		Version     string `json:"version"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
		Favicon     string `json:"favicon"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return Metadata{}, false
	}
	if !strings.HasPrefix(doc.Version, jsonFeedVersionPrefix) {
		return Metadata{}, false
	}
	return Metadata{
		Title:       doc.Title,
		Description: doc.Description,
		ImageURL:    firstNonEmpty(doc.Icon, doc.Favicon),
	}, true
}

func rssMetadata(raw string) Metadata {
	feed, err := (&rss.Parser{}).Parse(strings.NewReader(raw))
	if err != nil {
		return Metadata{}
	}
	m := Metadata{Title: feed.Title, Description: feed.Description}
	if feed.Image != nil {
		m.ImageURL = feed.Image.URL
	}
	return m
}

func atomMetadata(raw string) Metadata {
	feed, err := (&atom.Parser{}).Parse(strings.NewReader(raw))
	if err != nil {
		return Metadata{}
	}
	return Metadata{
		Title:       feed.Title,
		Description: feed.Subtitle,
		ImageURL:    firstNonEmpty(feed.Logo, feed.Icon),
	}
}
