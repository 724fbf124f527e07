package api

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/news-comb/app/cfg"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewServer builds the gin engine. Manual ingestion routes are only mounted
// when enableIngest is set.
func NewServer(handler *Handler, enableIngest bool) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
		SkipPaths: []string{"/metrics"},
	}))

	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, enableIngest)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler, enableIngest bool) {
	r.GET("/news/get_news_simple", handler.GetNewsSimple)
	r.GET("/news/rss", handler.GetNewsRSS)
	r.GET("/news/:id", handler.GetNewsByID)

	r.GET("/health", handler.GetHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/channels", handler.APIListChannels)
		if enableIngest {
			api.POST("/channels/:name/ingest", handler.APIIngestChannel)
			slog.Info("Manual ingestion endpoint enabled")
		} else {
			slog.Info("Manual ingestion endpoint disabled (enrichment API key not set)")
		}
	}

	r.GET("/", func(c *gin.Context) {
		endpoints := map[string]string{
			"news":     "/news/get_news_simple?last_retrieved_id=<id>&navigation=next|previous&category=<category>",
			"item":     "/news/<id>",
			"rss":      "/news/rss?category=<category>",
			"health":   "/health",
			"metrics":  "/metrics",
			"channels": "/api/channels",
		}
		if enableIngest {
			endpoints["ingest"] = "/api/channels/<name>/ingest (POST)"
		}

		c.JSON(200, gin.H{
			"service":       "News Comb",
			"version":       cfg.GetVersion(),
			"description":   "News ingestion from OPML/RSS catalogs with enrichment and cursor-based browsing",
			"endpoints":     endpoints,
			"documentation": "https://github.com/lysyi3m/news-comb",
		})
	})

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
