package channel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/lysyi3m/news-comb/app/feed"
)

var ErrChannelNotFound = errors.New("channel not found")

// Channel is a news source: it knows its catalog and how to turn the feeds
// listed there into raw items.
type Channel interface {
	Name() string
	CatalogURL() string
	Discover(ctx context.Context, catalogURL string) ([]feed.Source, error)
	Read(ctx context.Context, src feed.Source) ([]feed.RawItem, error)
}

// Registry maps channel names to their implementations.
type Registry struct {
	channels map[string]Channel
}

func NewRegistry() *Registry {
	return &Registry{channels: map[string]Channel{}}
}

// NewRegistryFromConfigs registers every enabled channel configuration.
func NewRegistryFromConfigs(configs []*Config, httpClient *http.Client, userAgent string) *Registry {
	r := NewRegistry()

	for _, config := range configs {
		if !config.Settings.Enabled {
			slog.Debug("Channel disabled, skipping", "channel", config.Name)
			continue
		}

		timeout := time.Duration(config.Settings.Timeout) * time.Second

		switch config.Type {
		case TypeOPML:
			r.Register(NewOPMLChannel(config, feed.NewFetcher(httpClient, userAgent, timeout)))
		default:
			slog.Warn("Unsupported channel type, skipping", "channel", config.Name, "type", config.Type)
		}
	}

	return r
}

// Register adds or replaces a channel implementation.
func (r *Registry) Register(ch Channel) {
	r.channels[ch.Name()] = ch
}

func (r *Registry) Resolve(name string) (Channel, error) {
	if ch, ok := r.channels[name]; ok {
		return ch, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrChannelNotFound, name)
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.channels))
	for name := range r.channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
