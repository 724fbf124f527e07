package enrich

import (
	"github.com/lysyi3m/news-comb/app/feed"
)

// NotAvailable marks a field the collaborator could not determine.
const NotAvailable = "NA"

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
	SentimentUnknown  Sentiment = NotAvailable
)

// Fields is what the collaborator contributes to an item. It has no title;
// an item's title always comes from the feed.
type Fields struct {
	Author           string    `json:"author"`
	Date             string    `json:"date"`
	Article          string    `json:"article"`
	Keywords         []string  `json:"keywords"`
	ImageLinks       []string  `json:"image_links"`
	VideoLinks       []string  `json:"video_links"`
	RelatedLinks     []string  `json:"related_news_links"`
	Sentiment        Sentiment `json:"sentiment"`
	Summary          []string  `json:"summary"`
	ExplainedSummary string    `json:"explained_summary"`
	// ImportanceRating is 1..10, or 0 when the collaborator gave none.
	ImportanceRating int `json:"importance_rating"`
}

// Item is a raw feed item merged with its enrichment.
type Item struct {
	feed.RawItem
	Fields
}

// Merge combines a raw item with collaborator output.
func Merge(raw feed.RawItem, fields Fields) Item {
	return Item{
		RawItem: raw,
		Fields:  fields,
	}
}
