package feed

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// wellKnownPaths are conventional feed locations probed relative to the site
// origin, in confidence order. They are returned as candidates without being
// verified - validation is the caller's job.
var wellKnownPaths = []string{
	"/feed", "/rss", "/atom", "/feed.xml", "/rss.xml", "/atom.xml",
	"/feed/", "/rss/", "/atom/", "/index.xml", "/feed.json",
}

// feedLinkTypes are the <link type="..."> values that advertise a feed
var feedLinkTypes = map[string]bool{
	"application/rss+xml":   true,
	"application/atom+xml":  true,
	"application/feed+json": true,
}

// Discovery finds candidate feed URLs for arbitrary web pages
type Discovery struct {
	client    *http.Client
	userAgent string
}

// NewDiscovery creates a feed discovery service using the given client
func NewDiscovery(client *http.Client, userAgent string) *Discovery {
	return &Discovery{client: client, userAgent: userAgent}
}

// Discover returns candidate feed URLs for the given page, most confident
// first. A URL that is itself a feed short-circuits to a single-element
// result. Failure to reach the source at all is an error so callers can tell
// "nothing found" apart from "could not even look".
func (d *Discovery) Discover(ctx context.Context, pageURL string) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("invalid discovery URL %q: %w", pageURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	body, contentType, err := httpGet(req, d.client, d.userAgent)
	if err != nil {
		return nil, fmt.Errorf("discover feeds at %s: %w", pageURL, err)
	}

	// direct-feed test: the URL itself is a feed, no need to scan HTML
	if isFeedResponse(contentType, body) {
		return []string{pageURL}, nil
	}

	return extractFeedLinks(body, base), nil
}

// extractFeedLinks scans an HTML page for <link> feed hints and appends the
// conventional well-known paths. All hrefs resolve against the page origin;
// malformed ones are skipped with a warning.
func extractFeedLinks(html string, base *url.URL) []string {
	origin := &url.URL{Scheme: base.Scheme, Host: base.Host}

	var candidates []string
	seen := make(map[string]bool)
	add := func(href string) {
		if href == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			log.Printf("[WARN] skipping malformed feed link %q: %v", href, err)
			return
		}
		abs := origin.ResolveReference(ref).String()
		if !seen[abs] {
			seen[abs] = true
			candidates = append(candidates, abs)
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		log.Printf("[WARN] failed to parse HTML for feed links: %v", err)
	} else {
		// rel-based hints first, then type-based, de-duplicated
		doc.Find("link").Each(func(_ int, sel *goquery.Selection) {
			rel, _ := sel.Attr("rel")
			if rel == "alternate" || rel == "feed" {
				href, _ := sel.Attr("href")
				add(href)
			}
		})
		doc.Find("link").Each(func(_ int, sel *goquery.Selection) {
			typ, _ := sel.Attr("type")
			if feedLinkTypes[typ] {
				href, _ := sel.Attr("href")
				add(href)
			}
		})
	}

	for _, p := range wellKnownPaths {
		add(p)
	}

	return candidates
}
