package channel

import (
	"context"
	"log/slog"

	"github.com/lysyi3m/news-comb/app/feed"
)

var _ Channel = (*OPMLChannel)(nil)

// OPMLChannel discovers RSS feeds from an OPML catalog.
type OPMLChannel struct {
	name       string
	catalogURL string
	catalog    *feed.CatalogReader
	reader     *feed.Reader
}

func NewOPMLChannel(config *Config, fetcher *feed.Fetcher) *OPMLChannel {
	return &OPMLChannel{
		name:       config.Name,
		catalogURL: config.CatalogURL,
		catalog:    feed.NewCatalogReader(fetcher),
		reader:     feed.NewReader(fetcher, feed.NewParser()),
	}
}

func (c *OPMLChannel) Name() string {
	return c.name
}

func (c *OPMLChannel) CatalogURL() string {
	return c.catalogURL
}

func (c *OPMLChannel) Discover(ctx context.Context, catalogURL string) ([]feed.Source, error) {
	catalog, err := c.catalog.Discover(ctx, catalogURL)
	if err != nil {
		return nil, err
	}

	slog.Info("Catalog loaded", "channel", c.name, "date_modified", catalog.DateModified, "feeds", len(catalog.Sources))

	return catalog.Sources, nil
}

func (c *OPMLChannel) Read(ctx context.Context, src feed.Source) ([]feed.RawItem, error) {
	return c.reader.Read(ctx, src)
}
