package database

import (
	"time"

	"github.com/lysyi3m/news-comb/app/enrich"
)

// Document is a stored news item. ID grows with insertion order and doubles
// as the pagination cursor.
type Document struct {
	ID int64 `json:"id"`
	enrich.Item
	CreatedAt time.Time `json:"created_at"`
}
