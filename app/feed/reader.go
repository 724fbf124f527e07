package feed

import (
	"context"
	"log/slog"
)

// Reader turns one discovered source into raw items tagged with the
// source category.
type Reader struct {
	fetcher *Fetcher
	parser  *Parser
}

func NewReader(fetcher *Fetcher, parser *Parser) *Reader {
	return &Reader{
		fetcher: fetcher,
		parser:  parser,
	}
}

func (r *Reader) Read(ctx context.Context, src Source) ([]RawItem, error) {
	data, err := r.fetcher.Get(ctx, src.FeedURL)
	if err != nil {
		return nil, err
	}

	metadata, items, err := r.parser.Run(data)
	if err != nil {
		return nil, &ParseError{URL: src.FeedURL, Err: err}
	}

	for i := range items {
		items[i].Category = src.Category
	}

	slog.Debug("Feed read",
		"url", src.FeedURL,
		"category", src.Category,
		"title", metadata.Title,
		"last_build_date", metadata.LastBuildDate,
		"pub_date", metadata.PubDate,
		"items", len(items))

	return items, nil
}
