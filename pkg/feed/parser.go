package feed

import (
	"encoding/json"
	"encoding/xml"
	"strings"

	"github.com/mmcdole/gofeed/atom"
	ext "github.com/mmcdole/gofeed/extensions"
	jsonfeed "github.com/mmcdole/gofeed/json"
	"github.com/mmcdole/gofeed/rss"
)

// jsonFeedVersionPrefix marks a JSON Feed document per the spec at
// https://jsonfeed.org
const jsonFeedVersionPrefix = "https://jsonfeed.org/version/"

// Parsed is the intermediate result of parsing a feed document, one per call.
// The converter turns it into canonical feed and article records.
type Parsed struct {
	Title       string
	Link        string
	Description string
	Items       []Item
}

// Item is a single entry as it appears in the source document. PubDate keeps
// the raw date text; parsing into a timestamp happens at conversion time.
type Item struct {
	Title   string
	Link    string
	Content string
	PubDate string
}

// Parse identifies the document format (JSON Feed, RSS 2.0, Atom, RDF/RSS 1.0)
// and maps it onto the intermediate shape. Returns nil for anything that is
// not a recognized feed, malformed input included - it never fails.
func Parse(raw string) *Parsed {
	if strings.HasPrefix(strings.TrimSpace(raw), "{") && looksLikeJSONFeed(raw) {
		return parseJSONFeed(raw)
	}

	switch rootElement(raw) {
	case "rss":
		return parseRSS(raw)
	case "feed":
		return parseAtom(raw)
	case "RDF":
		return parseRDF(raw)
	}
	return nil
}

// looksLikeJSONFeed reports whether the text is a JSON object with a JSON Feed
// version marker and an items array.
func looksLikeJSONFeed(raw string) bool {
	var probe map[string]any
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return false
	}
	version, ok := probe["version"].(string)
	if !ok || !strings.HasPrefix(version, jsonFeedVersionPrefix) {
		return false
	}
	_, ok = probe["items"].([]any)
	return ok
}

// rootElement returns the local name of the document's root XML element, or
// an empty string when the input is not well-formed XML.
func rootElement(raw string) string {
	dec := xml.NewDecoder(strings.NewReader(raw))
	dec.Strict = false
	for {
		tok, err := dec.Token()
		if err != nil {
			return ""
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local
		}
	}
}

func parseRSS(raw string) *Parsed {
	feed, err := (&rss.Parser{}).Parse(strings.NewReader(raw))
	if err != nil {
		return nil
	}

	items := make([]Item, 0, len(feed.Items))
	for _, it := range feed.Items {
		items = append(items, Item{
			Title:   it.Title,
			Link:    rssItemLink(it),
			Content: firstNonEmpty(it.Description, it.Content),
			PubDate: firstNonEmpty(it.PubDate, dublinCoreDate(it.DublinCoreExt)),
		})
	}

	return &Parsed{
		Title:       feed.Title,
		Link:        feed.Link,
		Description: feed.Description,
		Items:       items,
	}
}

// rssItemLink falls back to the guid, but only when the guid is not
// explicitly marked as a non-permalink (isPermaLink="false")
func rssItemLink(it *rss.Item) string {
	if it.Link != "" {
		return it.Link
	}
	if it.GUID != nil && it.GUID.IsPermalink != "false" {
		return it.GUID.Value
	}
	return ""
}

func parseAtom(raw string) *Parsed {
	feed, err := (&atom.Parser{}).Parse(strings.NewReader(raw))
	if err != nil {
		return nil
	}

	items := make([]Item, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		items = append(items, Item{
			Title:   entry.Title,
			Link:    atomLink(entry.Links, "alternate"),
			Content: firstNonEmpty(atomContent(entry.Content), entry.Summary),
			PubDate: firstNonEmpty(entry.Updated, entry.Published),
		})
	}

	return &Parsed{
		Title:       feed.Title,
		Link:        atomLink(feed.Links, "self"),
		Description: feed.Subtitle,
		Items:       items,
	}
}

// atomLink picks the first link whose rel matches or is unset
func atomLink(links []*atom.Link, rel string) string {
	for _, l := range links {
		if l == nil {
			continue
		}
		if l.Rel == rel || l.Rel == "" {
			return l.Href
		}
	}
	return ""
}

func atomContent(content *atom.Content) string {
	if content == nil {
		return ""
	}
	return content.Value
}

// parseRDF handles RDF/RSS 1.0 documents. Channel fields carry the same names
// as RSS 2.0 while items sit at the top level; the rss parser understands
// both layouts.
func parseRDF(raw string) *Parsed {
	feed, err := (&rss.Parser{}).Parse(strings.NewReader(raw))
	if err != nil {
		return nil
	}

	items := make([]Item, 0, len(feed.Items))
	for _, it := range feed.Items {
		items = append(items, Item{
			Title:   it.Title,
			Link:    it.Link,
			Content: it.Description,
			PubDate: firstNonEmpty(dublinCoreDate(it.DublinCoreExt), it.PubDate),
		})
	}

	return &Parsed{
		Title:       feed.Title,
		Link:        feed.Link,
		Description: feed.Description,
		Items:       items,
	}
}

func dublinCoreDate(dc *ext.DublinCoreExtension) string {
	if dc == nil || len(dc.Date) == 0 {
		return ""
	}
	return dc.Date[0]
}

func parseJSONFeed(raw string) *Parsed {
	feed, err := (&jsonfeed.Parser{}).Parse(strings.NewReader(raw))
	if err != nil {
		return nil
	}

	items := make([]Item, 0, len(feed.Items))
	for _, it := range feed.Items {
		items = append(items, Item{
			Title:   it.Title,
			Link:    firstNonEmpty(it.URL, it.ExternalURL),
			Content: firstNonEmpty(it.ContentHTML, it.ContentText),
			PubDate: firstNonEmpty(it.DatePublished, it.DateModified),
		})
	}

	return &Parsed{
		Title:       feed.Title,
		Link:        firstNonEmpty(feed.HomePageURL, feed.FeedURL),
		Description: feed.Description,
		Items:       items,
	}
}

// firstNonEmpty returns the first non-empty string, mirroring the
// "first non-empty wins" field mapping rule
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
