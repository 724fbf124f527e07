package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/news-comb/app/channel"
	"github.com/lysyi3m/news-comb/app/news"
	"github.com/lysyi3m/news-comb/app/tasks"
)

func NewHandler(pager PagerInterface, generator GeneratorInterface, counter CounterInterface,
	configCache *channel.ConfigCache, registry *channel.Registry,
	ingester tasks.Ingester, runner tasks.TaskRunnerInterface) *Handler {
	return &Handler{
		pager:       pager,
		generator:   generator,
		counter:     counter,
		configCache: configCache,
		registry:    registry,
		ingester:    ingester,
		runner:      runner,
	}
}

func (h *Handler) GetNewsSimple(c *gin.Context) {
	cursor, err := news.ParseCursor(c.Query("last_retrieved_id"), c.Query("navigation"), c.Query("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request parameters", Details: err.Error()})
		return
	}

	page, err := h.pager.Page(c.Request.Context(), cursor)
	if err != nil {
		slog.Error("Database error", "operation", "get_news_simple", "category", cursor.Category, "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to retrieve news", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *Handler) GetNewsByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid news id", Details: fmt.Sprintf("id must be a positive integer, got %q", c.Param("id"))})
		return
	}

	doc, err := h.pager.Item(c.Request.Context(), id)
	if err != nil {
		slog.Error("Database error", "operation", "get_news_by_id", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to retrieve news", Details: err.Error()})
		return
	}
	if doc == nil {
		c.JSON(http.StatusNotFound, errorResponse{Error: "News item not found"})
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *Handler) GetNewsRSS(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	selfLink := fmt.Sprintf("%s://%s%s", scheme, c.Request.Host, c.Request.URL.RequestURI())

	rss, err := h.generator.Run(c.Request.Context(), category, selfLink)
	if err != nil {
		slog.Error("RSS generation error", "category", category, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, rss)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if count, err := h.counter.GetCount(c.Request.Context()); err == nil {
		health["documents"] = count
	} else {
		slog.Warn("Failed to count documents", "error", err)
	}

	health["loaded_channels"] = h.configCache.GetConfigCount()

	c.JSON(http.StatusOK, health)
}

func (h *Handler) APIListChannels(c *gin.Context) {
	configs := h.configCache.GetConfigs()

	channels := make([]map[string]interface{}, 0, len(configs))
	for _, config := range configs {
		_, err := h.registry.Resolve(config.Name)

		channels = append(channels, map[string]interface{}{
			"name":        config.Name,
			"title":       config.Title,
			"type":        config.Type,
			"catalog_url": config.CatalogURL,
			"enabled":     config.Settings.Enabled,
			"timeout":     (time.Duration(config.Settings.Timeout) * time.Second).String(),
			"registered":  err == nil,
		})
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"channels": channels,
		"total":    len(channels),
	})
}

func (h *Handler) APIIngestChannel(c *gin.Context) {
	name := c.Param("name")

	ch, err := h.registry.Resolve(name)
	if err != nil {
		if errors.Is(err, channel.ErrChannelNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Error: "Channel not found", Details: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to resolve channel", Details: err.Error()})
		return
	}

	task := tasks.NewIngestChannelTask(ch, ch.CatalogURL(), h.ingester)
	if err := h.runner.EnqueueTask(task); err != nil {
		slog.Error("Failed to enqueue IngestChannelTask", "channel", name, "error", err)
		status := http.StatusInternalServerError
		if errors.Is(err, tasks.ErrQueueFull) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, errorResponse{Error: "Failed to schedule ingestion", Details: err.Error()})
		return
	}

	slog.Info("Ingestion scheduled", "channel", name, "task_id", task.GetID())

	c.JSON(http.StatusAccepted, map[string]interface{}{
		"message": "Ingestion scheduled",
		"channel": name,
		"task_id": task.GetID(),
	})
}
