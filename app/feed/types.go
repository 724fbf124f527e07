package feed

import (
	"time"
)

// Source is one feed discovered in a channel catalog.
type Source struct {
	Category string
	FeedURL  string
}

// Catalog is the parsed outline document of a channel.
type Catalog struct {
	DateModified string
	Sources      []Source
}

type Metadata struct {
	Title         string
	Link          string
	Language      string
	PubDate       string
	LastBuildDate string
}

// RawItem is a single feed entry before enrichment. Only Link is required;
// missing elements are left empty.
type RawItem struct {
	Title           string     `json:"title"`
	Link            string     `json:"link"`
	Description     string     `json:"description"`
	GUID            string     `json:"guid"`
	GUIDIsPermalink string     `json:"guid_is_permalink"`
	PubDate         string     `json:"pub_date"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	SourceName      string     `json:"source"`
	SourceURL       string     `json:"source_url"`
	Category        string     `json:"category"`
}
