package api

import (
	"context"

	"github.com/lysyi3m/news-comb/app/channel"
	"github.com/lysyi3m/news-comb/app/database"
	"github.com/lysyi3m/news-comb/app/news"
	"github.com/lysyi3m/news-comb/app/tasks"
)

type PagerInterface interface {
	Page(ctx context.Context, cursor news.Cursor) (*news.Page, error)
	Item(ctx context.Context, id int64) (*database.Document, error)
}

var _ PagerInterface = (*news.Pager)(nil)

type GeneratorInterface interface {
	Run(ctx context.Context, category, selfLink string) (string, error)
}

var _ GeneratorInterface = (*news.RSSGenerator)(nil)

type CounterInterface interface {
	GetCount(ctx context.Context) (int, error)
}

type Handler struct {
	pager       PagerInterface
	generator   GeneratorInterface
	counter     CounterInterface
	configCache *channel.ConfigCache
	registry    *channel.Registry
	ingester    tasks.Ingester
	runner      tasks.TaskRunnerInterface
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
