package ingest

import (
	"context"
	"fmt"

	"github.com/lysyi3m/news-comb/app/feed"
)

// DedupGate decides whether a raw item still needs to be stored.
type DedupGate interface {
	IsNew(ctx context.Context, item feed.RawItem) (bool, error)
}

type TitleLookup interface {
	ExistsByTitle(ctx context.Context, title string) (bool, error)
}

// TitleGate treats any stored document with an identical title as the same
// story. Two different stories sharing a headline collide, and an edited
// headline is stored again.
type TitleGate struct {
	store TitleLookup
}

var _ DedupGate = (*TitleGate)(nil)

func NewTitleGate(store TitleLookup) *TitleGate {
	return &TitleGate{store: store}
}

func (g *TitleGate) IsNew(ctx context.Context, item feed.RawItem) (bool, error) {
	exists, err := g.store.ExistsByTitle(ctx, item.Title)
	if err != nil {
		return false, fmt.Errorf("failed to look up title: %w", err)
	}
	return !exists, nil
}
