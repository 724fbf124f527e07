package enrich

import (
	"context"
	"log/slog"
	"time"

	"github.com/lysyi3m/news-comb/app/feed"
	"github.com/lysyi3m/news-comb/app/metrics"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Enricher runs collaborator calls with at most limit calls in flight and
// merges the answer into the raw item.
type Enricher struct {
	collaborator Collaborator
	sem          *semaphore.Weighted
	limiter      *rate.Limiter
	timeout      time.Duration
}

type Option func(*Enricher)

// WithRate caps enrichment calls per second. Zero or negative disables it.
func WithRate(perSecond float64) Option {
	return func(e *Enricher) {
		if perSecond > 0 {
			e.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithTimeout bounds each collaborator call.
func WithTimeout(timeout time.Duration) Option {
	return func(e *Enricher) {
		e.timeout = timeout
	}
}

func NewEnricher(collaborator Collaborator, limit int, opts ...Option) *Enricher {
	e := &Enricher{
		collaborator: collaborator,
		sem:          semaphore.NewWeighted(int64(max(limit, 1))),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Enricher) Enrich(ctx context.Context, raw feed.RawItem) (Item, error) {
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return Item{}, &Error{Link: raw.Link, Err: err}
	}
	defer e.sem.Release(1)

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return Item{}, &Error{Link: raw.Link, Err: err}
		}
	}

	callCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	metrics.EnrichInFlight.Inc()
	start := time.Now()
	fields, err := e.collaborator.Enrich(callCtx, raw.Link, Prompt)
	metrics.EnrichDuration.Observe(time.Since(start).Seconds())
	metrics.EnrichInFlight.Dec()

	if err != nil {
		metrics.EnrichFailures.Inc()
		return Item{}, &Error{Link: raw.Link, Err: err}
	}

	slog.Debug("Item enriched", "link", raw.Link, "duration", time.Since(start), "sentiment", fields.Sentiment)

	return Merge(raw, fields), nil
}
