package domain

import (
	"crypto/sha256"
	"encoding/base64"
)

// Identifier types are distinct on purpose: a FeedID never stands in for an
// ArticleID even though both are short hash strings.
type (
	// FeedID identifies a feed, derived from its source URL
	FeedID string

	// ArticleID identifies an article, derived from its permalink URL
	ArticleID string

	// CategoryID identifies a feed category
	CategoryID string

	// TagID identifies a user-defined tag
	TagID string

	// AccountID scopes user-owned data (subscriptions, read state, tags)
	AccountID string
)

// idLength is the truncated size of content-addressed identifiers. Short
// enough to be readable, long enough that collisions within one installation
// are not a practical concern.
const idLength = 16

// NewFeedID derives a stable feed identifier from the feed URL. The same URL
// always produces the same ID, making re-ingestion idempotent.
func NewFeedID(url string) FeedID { return FeedID(hashID(url)) }

// NewArticleID derives a stable article identifier from the article permalink.
// User state keyed by this ID survives re-fetching the feed.
func NewArticleID(link string) ArticleID { return ArticleID(hashID(link)) }

// NewCategoryID derives a category identifier from the category name.
func NewCategoryID(name string) CategoryID { return CategoryID(hashID(name)) }

// NewTagID derives a tag identifier from the tag name.
func NewTagID(name string) TagID { return TagID(hashID(name)) }

// hashID renders a SHA-256 digest in the URL-safe base64 alphabet, truncated
// to idLength characters.
func hashID(s string) string {
	sum := sha256.Sum256([]byte(s))
	return base64.RawURLEncoding.EncodeToString(sum[:])[:idLength]
}
