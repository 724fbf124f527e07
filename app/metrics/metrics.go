package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IngestRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "news_ingest_runs_total",
		Help: "Ingestion runs by channel and result",
	}, []string{"channel", "result"})

	IngestItems = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "news_ingest_items_total",
		Help: "Feed items by terminal outcome",
	}, []string{"outcome"})

	IngestFeedErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "news_ingest_feed_errors_total",
		Help: "Feeds that could not be fetched or parsed",
	})

	EnrichInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "news_enrich_in_flight",
		Help: "Enrichment calls currently in flight",
	})

	EnrichDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "news_enrich_duration_seconds",
		Help:    "Duration of enrichment calls",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10), // 0.5s doubling to ~4m
	})

	EnrichFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "news_enrich_failures_total",
		Help: "Enrichment calls that returned an error",
	})
)
