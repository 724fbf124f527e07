package database

import (
	"context"
	"errors"

	"github.com/lysyi3m/news-comb/app/enrich"
)

// ErrDuplicate is returned by Insert when a document with the same title exists.
var ErrDuplicate = errors.New("document with this title already exists")

// NewsRepository is the document store. Category filters are ignored when
// empty; Get* methods return nil when nothing matches.
type NewsRepository interface {
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	Insert(ctx context.Context, item enrich.Item) (int64, error)

	GetByID(ctx context.Context, id int64) (*Document, error)
	GetNewest(ctx context.Context, category string) (*Document, error)
	GetOlder(ctx context.Context, id int64, category string) (*Document, error)
	GetNewer(ctx context.Context, id int64, category string) (*Document, error)
	HasOlder(ctx context.Context, id int64, category string) (bool, error)
	HasNewer(ctx context.Context, id int64, category string) (bool, error)
	GetLatest(ctx context.Context, category string, limit int) ([]Document, error)

	GetCount(ctx context.Context) (int, error)
}
