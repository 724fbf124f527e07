package ingest

import (
	"net/http"

	"github.com/lysyi3m/news-comb/app/cfg"
	"github.com/lysyi3m/news-comb/app/database"
	"github.com/lysyi3m/news-comb/app/enrich"
	"github.com/lysyi3m/news-comb/app/feed"
)

// NewCoordinatorFromConfig wires the title gate, the LLM-backed enricher and
// the SQLite store.
func NewCoordinatorFromConfig(c *cfg.Cfg, httpClient *http.Client, repo database.NewsRepository) *Coordinator {
	pages := enrich.NewPageFetcher(feed.NewFetcher(httpClient, c.UserAgent, c.FetchTimeoutDuration()), c.MaxArticleChars)

	client := enrich.NewLLMClient(enrich.LLMClientConfig{
		Endpoint: c.EnrichEndpoint,
		Model:    c.EnrichModel,
		APIKey:   c.EnrichAPIKey,
	}, pages, httpClient)

	enricher := enrich.NewEnricher(client, c.EnrichConcurrency,
		enrich.WithRate(c.EnrichRate),
		enrich.WithTimeout(c.EnrichTimeoutDuration()))

	return NewCoordinator(NewTitleGate(repo), enricher, repo)
}
