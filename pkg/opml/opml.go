// Package opml reads and writes OPML 2.0 subscription lists.
package opml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"
)

// Document is the root opml element
type Document struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    Head     `xml:"head"`
	Body    Body     `xml:"body"`
}

// Head holds document metadata
type Head struct {
	Title       string `xml:"title,omitempty"`
	DateCreated string `xml:"dateCreated,omitempty"`
}

// Body holds the outline tree
type Body struct {
	Outlines []Outline `xml:"outline"`
}

// Outline is either a feed entry (xmlUrl set) or a grouping node containing
// nested outlines
type Outline struct {
	Type     string    `xml:"type,attr,omitempty"`
	Text     string    `xml:"text,attr"`
	Title    string    `xml:"title,attr,omitempty"`
	XMLURL   string    `xml:"xmlUrl,attr,omitempty"`
	HTMLURL  string    `xml:"htmlUrl,attr,omitempty"`
	Category string    `xml:"category,attr,omitempty"`
	Outlines []Outline `xml:"outline"`
}

// Subscription is a single feed extracted from an OPML document
type Subscription struct {
	Title      string
	URL        string
	SiteURL    string
	Categories []string
}

// Parse extracts subscriptions from an OPML document. Grouping outlines
// contribute their text as a category to every nested feed; the category
// attribute adds comma-separated categories.
func Parse(r io.Reader) ([]Subscription, error) {
	var doc Document
	dec := xml.NewDecoder(r)
	dec.Strict = false
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode opml: %w", err)
	}

	var subs []Subscription
	for _, o := range doc.Body.Outlines {
		subs = collect(o, nil, subs)
	}
	return subs, nil
}

func collect(o Outline, parents []string, subs []Subscription) []Subscription {
	if o.XMLURL != "" {
		title := o.Title
		if title == "" {
			title = o.Text
		}
		cats := append([]string{}, parents...)
		for _, c := range strings.Split(o.Category, ",") {
			if c = strings.TrimSpace(c); c != "" {
				cats = append(cats, c)
			}
		}
		subs = append(subs, Subscription{Title: title, URL: o.XMLURL, SiteURL: o.HTMLURL, Categories: cats})
		return subs
	}

	group := parents
	if name := strings.TrimSpace(o.Text); name != "" {
		group = append(append([]string{}, parents...), name)
	}
	for _, child := range o.Outlines {
		subs = collect(child, group, subs)
	}
	return subs
}

// Generate renders subscriptions as a flat OPML 2.0 document. Categories go
// into the category attribute.
func Generate(title string, subs []Subscription, now time.Time) ([]byte, error) {
	doc := Document{
		Version: "2.0",
		Head: Head{
			Title:       title,
			DateCreated: now.UTC().Format(time.RFC1123Z),
		},
	}
	for _, s := range subs {
		doc.Body.Outlines = append(doc.Body.Outlines, Outline{
			Type:     "rss",
			Text:     s.Title,
			Title:    s.Title,
			XMLURL:   s.URL,
			HTMLURL:  s.SiteURL,
			Category: strings.Join(s.Categories, ","),
		})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode opml: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
