package main

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lysyi3m/news-comb/app/cfg"
	"github.com/lysyi3m/news-comb/app/channel"
	"github.com/lysyi3m/news-comb/app/database"
	"github.com/lysyi3m/news-comb/app/ingest"
	"github.com/lysyi3m/news-comb/app/logging"
	"github.com/lysyi3m/news-comb/app/tasks"
)

// Runs one ingestion pass for --channel, or for every enabled channel, and
// exits non-zero if any catalog could not be loaded.
func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if appCfg == nil {
		return
	}

	logging.Setup(appCfg.Debug)

	if appCfg.EnrichAPIKey == "" {
		slog.Error("Enrichment API key is not set (--enrich-api-key or OPENAI_API_KEY)")
		os.Exit(1)
	}

	os.Exit(run(appCfg))
}

func run(appCfg *cfg.Cfg) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to connect to database", "path", appCfg.DBPath, "error", err)
		return 1
	}
	defer db.Close()

	if _, _, err := database.RunMigrations(db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return 1
	}

	configCache := channel.NewConfigCache(appCfg.ChannelsDir)
	if err := configCache.Run(); err != nil {
		slog.Error("Failed to load channel configurations", "dir", appCfg.ChannelsDir, "error", err)
		return 1
	}

	httpClient := &http.Client{}
	registry := channel.NewRegistryFromConfigs(configCache.GetConfigs(), httpClient, appCfg.UserAgent)
	coordinator := ingest.NewCoordinatorFromConfig(appCfg, httpClient, database.NewNewsRepository(db))

	names := registry.Names()
	if appCfg.Channel != "" {
		names = []string{appCfg.Channel}
	}
	if len(names) == 0 {
		slog.Warn("No enabled channels configured", "dir", appCfg.ChannelsDir)
		return 0
	}

	exitCode := 0
	for _, name := range names {
		ch, err := registry.Resolve(name)
		if err != nil {
			slog.Error("Unknown channel", "channel", name, "available", registry.Names(), "error", err)
			exitCode = 1
			continue
		}

		task := tasks.NewIngestChannelTask(ch, cmp.Or(appCfg.CatalogURL, ch.CatalogURL()), coordinator)
		task.Start()
		if err := task.Execute(ctx); err != nil {
			slog.Error("Ingestion failed", "channel", name, "error", err)
			exitCode = 1
		}
	}

	return exitCode
}
