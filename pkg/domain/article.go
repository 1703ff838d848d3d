package domain

import "time"

// ArticleStatus tracks the user's reading state for an article
type ArticleStatus string

// article statuses
const (
	StatusUnread   ArticleStatus = "unread"
	StatusRead     ArticleStatus = "read"
	StatusArchived ArticleStatus = "archived"
)

// Valid reports whether the status is one of the known values
func (s ArticleStatus) Valid() bool {
	return s == StatusUnread || s == StatusRead || s == StatusArchived
}

// Article is a single feed entry normalized to the canonical schema
type Article struct {
	ID          ArticleID     `json:"id"`
	FeedID      FeedID        `json:"feedId"`
	Title       string        `json:"title"`
	URL         string        `json:"url"`
	Content     string        `json:"content"`
	Summary     string        `json:"summary"`
	Author      string        `json:"author,omitempty"`
	ImageURL    string        `json:"imageUrl,omitempty"`
	PublishedAt time.Time     `json:"publishedAt"`
	Status      ArticleStatus `json:"status"`
	IsFavorite  bool          `json:"isFavorite"`
	Categories  []string      `json:"categories"`
}

// Tag is a user-defined label attached to articles
type Tag struct {
	ID    TagID  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}
