package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lysyi3m/news-comb/app/channel"
	"github.com/lysyi3m/news-comb/app/database"
	"github.com/lysyi3m/news-comb/app/enrich"
	"github.com/lysyi3m/news-comb/app/feed"
	"github.com/lysyi3m/news-comb/app/metrics"
	"golang.org/x/sync/errgroup"
)

type Enricher interface {
	Enrich(ctx context.Context, raw feed.RawItem) (enrich.Item, error)
}

type Store interface {
	Insert(ctx context.Context, item enrich.Item) (int64, error)
}

// Coordinator runs one ingestion pass over a channel: discover, read, gate,
// enrich and store.
type Coordinator struct {
	gate     DedupGate
	enricher Enricher
	store    Store
}

func NewCoordinator(gate DedupGate, enricher Enricher, store Store) *Coordinator {
	return &Coordinator{
		gate:     gate,
		enricher: enricher,
		store:    store,
	}
}

// Run returns once every discovered item has reached a terminal state. Only a
// catalog failure is returned as an error.
func (c *Coordinator) Run(ctx context.Context, ch channel.Channel, catalogURL string) (Report, error) {
	sources, err := ch.Discover(ctx, catalogURL)
	if err != nil {
		return Report{}, fmt.Errorf("failed to discover feeds: %w", err)
	}

	batch, feedErrors := c.readAll(ctx, ch, sources)

	slog.Debug("Feeds read", "channel", ch.Name(), "feeds", len(sources), "feed_errors", feedErrors, "items", len(batch))

	outcomes := make([]Outcome, len(batch))
	seen := make(map[string]bool, len(batch))

	var g errgroup.Group
	for i, item := range batch {
		// Within one batch the first occurrence of a title wins, even when it
		// later fails; later copies are skipped either way.
		switch {
		case strings.TrimSpace(item.Title) == "":
			outcomes[i] = OutcomeDropped
			continue
		case seen[item.Title]:
			outcomes[i] = OutcomeDuplicate
			continue
		}
		seen[item.Title] = true

		g.Go(func() error {
			outcomes[i] = c.process(ctx, item)
			return nil
		})
	}
	_ = g.Wait()

	for _, outcome := range outcomes {
		metrics.IngestItems.WithLabelValues(outcome.String()).Inc()
	}
	metrics.IngestFeedErrors.Add(float64(feedErrors))

	report := Summarize(outcomes)
	report.FeedErrors = feedErrors
	return report, nil
}

func (c *Coordinator) readAll(ctx context.Context, ch channel.Channel, sources []feed.Source) ([]feed.RawItem, int) {
	results := make([][]feed.RawItem, len(sources))
	errs := make([]error, len(sources))

	var g errgroup.Group
	for i, src := range sources {
		g.Go(func() error {
			results[i], errs[i] = ch.Read(ctx, src)
			return nil
		})
	}
	_ = g.Wait()

	var batch []feed.RawItem
	feedErrors := 0
	for i, items := range results {
		if errs[i] != nil {
			slog.Error("Failed to read feed", "channel", ch.Name(), "url", sources[i].FeedURL, "category", sources[i].Category, "error", errs[i])
			feedErrors++
			continue
		}
		batch = append(batch, items...)
	}

	return batch, feedErrors
}

func (c *Coordinator) process(ctx context.Context, raw feed.RawItem) Outcome {
	isNew, err := c.gate.IsNew(ctx, raw)
	if err != nil {
		slog.Error("Failed to check item", "title", raw.Title, "link", raw.Link, "error", err)
		return OutcomeCheckFailed
	}
	if !isNew {
		return OutcomeDuplicate
	}

	item, err := c.enricher.Enrich(ctx, raw)
	if err != nil {
		slog.Error("Failed to enrich item", "title", raw.Title, "link", raw.Link, "error", err)
		return OutcomeEnrichFailed
	}

	id, err := c.store.Insert(ctx, item)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			slog.Debug("Item stored concurrently, skipping", "title", raw.Title)
			return OutcomeDuplicate
		}
		slog.Error("Failed to store item", "title", raw.Title, "link", raw.Link, "error", err)
		return OutcomeStoreFailed
	}

	slog.Debug("Item stored", "id", id, "title", raw.Title, "category", raw.Category)
	return OutcomeStored
}
