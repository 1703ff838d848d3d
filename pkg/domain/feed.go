package domain

import "time"

// Feed represents a subscribed feed source
type Feed struct {
	ID          FeedID       `json:"id"`
	Title       string       `json:"title"`
	URL         string       `json:"url"`
	CategoryIDs []CategoryID `json:"categoryIds"`
	Description string       `json:"description,omitempty"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	LastUpdated time.Time    `json:"lastUpdated"`
}

// Category groups feeds for display and filtering
type Category struct {
	ID   CategoryID `json:"id"`
	Name string     `json:"name"`
}
