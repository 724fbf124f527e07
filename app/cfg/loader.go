package cfg

import (
	"cmp"
	"fmt"
	"log/slog"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage
	DBPath string `long:"db-path" env:"DB_PATH" default:"./data/news.db" description:"Path to the SQLite database file"`

	// Application configuration
	ChannelsDir  string `long:"channels-dir" env:"CHANNELS_DIR" default:"./channels" description:"Directory containing channel configuration files"`
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	WorkerCount  int    `long:"worker-count" env:"WORKER_COUNT" default:"2" description:"Number of background workers for manually triggered ingestion"`
	FetchTimeout int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"30" description:"Timeout in seconds for catalog, feed and page requests"`

	// Enrichment collaborator
	EnrichEndpoint    string  `long:"enrich-endpoint" env:"ENRICH_ENDPOINT" default:"https://api.openai.com/v1/chat/completions" description:"OpenAI-compatible chat completions endpoint"`
	EnrichModel       string  `long:"enrich-model" env:"ENRICH_MODEL" default:"gpt-4o-mini" description:"Model used for enrichment"`
	EnrichAPIKey      string  `long:"enrich-api-key" env:"OPENAI_API_KEY" description:"API key for the enrichment endpoint (ingestion is disabled without it)"`
	EnrichConcurrency int     `long:"enrich-concurrency" env:"ENRICH_CONCURRENCY" default:"3" description:"Maximum number of concurrent enrichment calls"`
	EnrichRate        float64 `long:"enrich-rate" env:"ENRICH_RATE" default:"0" description:"Maximum enrichment calls per second (0 disables the limiter)"`
	EnrichTimeout     int     `long:"enrich-timeout" env:"ENRICH_TIMEOUT" default:"120" description:"Timeout in seconds for a single enrichment call"`
	MaxArticleChars   int     `long:"max-article-chars" env:"MAX_ARTICLE_CHARS" default:"20000" description:"Maximum article characters sent for enrichment"`

	// One-shot ingestion
	Channel    string `long:"channel" env:"CHANNEL" description:"Channel to ingest (all enabled channels when empty)"`
	CatalogURL string `long:"catalog-url" env:"CATALOG_URL" description:"Override the catalog URL of the selected channel"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"News Comb/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Asia/Singapore)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	return load(nil)
}

func load(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:            raw.DBPath,
		ChannelsDir:       raw.ChannelsDir,
		Port:              raw.Port,
		WorkerCount:       raw.WorkerCount,
		FetchTimeout:      raw.FetchTimeout,
		EnrichEndpoint:    raw.EnrichEndpoint,
		EnrichModel:       raw.EnrichModel,
		EnrichAPIKey:      raw.EnrichAPIKey,
		EnrichConcurrency: raw.EnrichConcurrency,
		EnrichRate:        raw.EnrichRate,
		EnrichTimeout:     raw.EnrichTimeout,
		MaxArticleChars:   raw.MaxArticleChars,
		Channel:           raw.Channel,
		CatalogURL:        raw.CatalogURL,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		slog.Warn("Invalid timezone, using system default", "timezone", cfg.Timezone, "error", err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func (c *Cfg) validate() error {
	if c.EnrichConcurrency < 1 {
		return fmt.Errorf("enrich concurrency must be at least 1, got %d", c.EnrichConcurrency)
	}
	if c.EnrichRate < 0 {
		return fmt.Errorf("enrich rate must be non-negative, got %v", c.EnrichRate)
	}
	if c.WorkerCount < 1 {
		return fmt.Errorf("worker count must be at least 1, got %d", c.WorkerCount)
	}
	if c.CatalogURL != "" && c.Channel == "" {
		return fmt.Errorf("catalog URL override requires a channel")
	}
	return nil
}

func (c *Cfg) FetchTimeoutDuration() time.Duration {
	return time.Duration(c.FetchTimeout) * time.Second
}

func (c *Cfg) EnrichTimeoutDuration() time.Duration {
	return time.Duration(c.EnrichTimeout) * time.Second
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			slog.Debug("Timezone configured", "timezone", timezone)
		}
	}
	return nil
}
