package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/news-comb/app/channel"
	"github.com/lysyi3m/news-comb/app/ingest"
	"github.com/lysyi3m/news-comb/app/metrics"
)

type Ingester interface {
	Run(ctx context.Context, ch channel.Channel, catalogURL string) (ingest.Report, error)
}

type IngestChannelTask struct {
	Task
	channel    channel.Channel
	catalogURL string
	ingester   Ingester
	report     ingest.Report
}

func NewIngestChannelTask(ch channel.Channel, catalogURL string, ingester Ingester) *IngestChannelTask {
	return &IngestChannelTask{
		Task:       NewTask(TaskTypeIngestChannel, ch.Name()),
		channel:    ch,
		catalogURL: catalogURL,
		ingester:   ingester,
	}
}

func (t *IngestChannelTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	report, err := t.ingester.Run(ctx, t.channel, t.catalogURL)
	if err != nil {
		metrics.IngestRuns.WithLabelValues(t.ChannelName, "error").Inc()
		return fmt.Errorf("failed to ingest channel %s: %w", t.ChannelName, err)
	}

	t.report = report
	metrics.IngestRuns.WithLabelValues(t.ChannelName, "ok").Inc()

	slog.Info("Task completed",
		"type", string(t.Type),
		"channel", t.ChannelName,
		"catalog", t.catalogURL,
		"inserted", report.Inserted,
		"skipped", report.Skipped,
		"failed", report.Failed,
		"dropped", report.Dropped,
		"feed_errors", report.FeedErrors,
		"duration", t.GetDuration().String())

	return nil
}

// Report is the outcome of the last successful Execute.
func (t *IngestChannelTask) Report() ingest.Report {
	return t.report
}
