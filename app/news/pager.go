package news

import (
	"context"
	"fmt"
	"strconv"

	"github.com/lysyi3m/news-comb/app/database"
)

const (
	MessageFound       = "news item retrieved"
	MessageNoMoreItems = "no more items"
)

// Store is the read side of the document store used for paging.
type Store interface {
	GetByID(ctx context.Context, id int64) (*database.Document, error)
	GetNewest(ctx context.Context, category string) (*database.Document, error)
	GetOlder(ctx context.Context, id int64, category string) (*database.Document, error)
	GetNewer(ctx context.Context, id int64, category string) (*database.Document, error)
	HasOlder(ctx context.Context, id int64, category string) (bool, error)
	HasNewer(ctx context.Context, id int64, category string) (bool, error)
}

var _ Store = (database.NewsRepository)(nil)

type Page struct {
	Message     string             `json:"message"`
	ID          *string            `json:"id"`
	Data        *database.Document `json:"data"`
	HasNext     bool               `json:"hasNext"`
	HasPrevious bool               `json:"hasPrevious"`
}

// Pager walks the store one item at a time. Next moves towards older items
// (smaller ids), previous towards newer ones.
type Pager struct {
	store Store
}

func NewPager(store Store) *Pager {
	return &Pager{store: store}
}

func (p *Pager) Page(ctx context.Context, cursor Cursor) (*Page, error) {
	var (
		doc *database.Document
		err error
	)

	switch {
	case cursor.LastID == nil:
		doc, err = p.store.GetNewest(ctx, cursor.Category)
	case cursor.Direction == DirectionPrevious:
		doc, err = p.store.GetNewer(ctx, *cursor.LastID, cursor.Category)
	default:
		doc, err = p.store.GetOlder(ctx, *cursor.LastID, cursor.Category)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get news item: %w", err)
	}

	if doc == nil {
		return &Page{Message: MessageNoMoreItems}, nil
	}

	hasNext, err := p.store.HasOlder(ctx, doc.ID, cursor.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to check next item: %w", err)
	}

	hasPrevious, err := p.store.HasNewer(ctx, doc.ID, cursor.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to check previous item: %w", err)
	}

	doc.Description = StripParagraphs(doc.Description)
	id := strconv.FormatInt(doc.ID, 10)

	return &Page{
		Message:     MessageFound,
		ID:          &id,
		Data:        doc,
		HasNext:     hasNext,
		HasPrevious: hasPrevious,
	}, nil
}

// Item returns the document with the given id, or nil when there is none.
func (p *Pager) Item(ctx context.Context, id int64) (*database.Document, error) {
	doc, err := p.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get news item %d: %w", id, err)
	}
	if doc == nil {
		return nil, nil
	}

	doc.Description = StripParagraphs(doc.Description)
	return doc, nil
}
