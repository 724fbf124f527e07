package enrich

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lysyi3m/news-comb/app/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnricherBoundsConcurrency(t *testing.T) {
	const limit = 3
	const items = 10

	var active, maxObserved int32
	entered := make(chan struct{}, items)
	release := make(chan struct{})

	collaborator := CollaboratorFunc(func(ctx context.Context, url string, prompt string) (Fields, error) {
		current := atomic.AddInt32(&active, 1)
		for {
			observed := atomic.LoadInt32(&maxObserved)
			if current <= observed || atomic.CompareAndSwapInt32(&maxObserved, observed, current) {
				break
			}
		}
		entered <- struct{}{}
		<-release
		atomic.AddInt32(&active, -1)
		return Fields{Author: "someone"}, nil
	})

	enricher := NewEnricher(collaborator, limit)

	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := enricher.Enrich(context.Background(), feed.RawItem{
				Title: fmt.Sprintf("item %d", i),
				Link:  fmt.Sprintf("https://example.com/%d", i),
			})
			assert.NoError(t, err)
		}()
	}

	for range limit {
		select {
		case <-entered:
		case <-time.After(2 * time.Second):
			t.Fatal("collaborator calls did not reach the limit")
		}
	}

	select {
	case <-entered:
		t.Fatal("more calls in flight than the limit allows")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	wg.Wait()

	assert.Equal(t, int32(limit), atomic.LoadInt32(&maxObserved))
	assert.Equal(t, int32(0), atomic.LoadInt32(&active))
}

func TestEnricherKeepsFeedTitle(t *testing.T) {
	collaborator := CollaboratorFunc(func(ctx context.Context, url string, prompt string) (Fields, error) {
		assert.Equal(t, "https://example.com/story", url)
		assert.Equal(t, Prompt, prompt)
		return ParseFields(`{"title": "Rewritten Title", "author": "Jane Tan", "sentiment": "negative", "importance_rating": 8}`)
	})

	raw := feed.RawItem{
		Title:    "Original Title",
		Link:     "https://example.com/story",
		Category: "World",
	}

	item, err := NewEnricher(collaborator, 1).Enrich(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, "Original Title", item.Title)
	assert.Equal(t, "World", item.Category)
	assert.Equal(t, "Jane Tan", item.Author)
	assert.Equal(t, SentimentNegative, item.Sentiment)
	assert.Equal(t, 8, item.ImportanceRating)
	assert.Equal(t, []string{NotAvailable}, item.Keywords)
}

func TestEnricherWrapsCollaboratorError(t *testing.T) {
	cause := errors.New("upstream unavailable")
	collaborator := CollaboratorFunc(func(ctx context.Context, url string, prompt string) (Fields, error) {
		return Fields{}, cause
	})

	_, err := NewEnricher(collaborator, 3).Enrich(context.Background(), feed.RawItem{Title: "t", Link: "https://example.com/a"})
	require.Error(t, err)

	var enrichErr *Error
	require.ErrorAs(t, err, &enrichErr)
	assert.Equal(t, "https://example.com/a", enrichErr.Link)
	assert.ErrorIs(t, err, cause)
}

func TestEnricherTimeout(t *testing.T) {
	collaborator := CollaboratorFunc(func(ctx context.Context, url string, prompt string) (Fields, error) {
		<-ctx.Done()
		return Fields{}, ctx.Err()
	})

	enricher := NewEnricher(collaborator, 1, WithTimeout(20*time.Millisecond))

	_, err := enricher.Enrich(context.Background(), feed.RawItem{Title: "t", Link: "https://example.com/slow"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEnricherRateLimit(t *testing.T) {
	var calls int32
	collaborator := CollaboratorFunc(func(ctx context.Context, url string, prompt string) (Fields, error) {
		atomic.AddInt32(&calls, 1)
		return Fields{}, nil
	})

	enricher := NewEnricher(collaborator, 3, WithRate(20))

	start := time.Now()
	for i := range 3 {
		_, err := enricher.Enrich(context.Background(), feed.RawItem{Title: "t", Link: fmt.Sprintf("https://example.com/%d", i)})
		require.NoError(t, err)
	}

	// Burst of one, then one token every 50ms
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}
