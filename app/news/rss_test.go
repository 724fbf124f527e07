package news

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/lysyi3m/news-comb/app/database"
	"github.com/lysyi3m/news-comb/app/enrich"
	"github.com/lysyi3m/news-comb/app/feed"
)

type listStore struct {
	docs []database.Document
	err  error
}

func (l *listStore) GetLatest(ctx context.Context, category string, limit int) ([]database.Document, error) {
	if l.err != nil {
		return nil, l.err
	}
	var out []database.Document
	for _, doc := range l.docs {
		if category == "" || doc.Category == category {
			out = append(out, doc)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func testDocument(id int64, title, category string) database.Document {
	published := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	return database.Document{
		ID: id,
		Item: enrich.Merge(
			feed.RawItem{
				Title:           title,
				Link:            "https://example.com/" + strings.ToLower(strings.ReplaceAll(title, " ", "-")),
				Description:     "<p>" + title + "</p>",
				GUID:            "https://example.com/guid/" + title,
				GUIDIsPermalink: "false",
				PublishedAt:     &published,
				Category:        category,
			},
			enrich.Fields{Author: enrich.NotAvailable, ExplainedSummary: "Explained"},
		),
		CreatedAt: published.Add(time.Minute),
	}
}

func TestRSSGenerator(t *testing.T) {
	store := &listStore{docs: []database.Document{
		testDocument(3, "Storm hits coast", "World"),
		testDocument(2, "Markets rally", "Business"),
		testDocument(1, "Rail line opens", "World"),
	}}

	output, err := NewRSSGenerator(store, 10).Run(context.Background(), "World", "http://localhost:8080/news/rss?category=World")
	if err != nil {
		t.Fatal(err)
	}

	parsed, err := gofeed.NewParser().ParseString(output)
	if err != nil {
		t.Fatalf("Generated RSS does not parse: %v", err)
	}

	if parsed.Title != "News Comb: World" {
		t.Errorf("Expected title 'News Comb: World', got '%s'", parsed.Title)
	}
	if len(parsed.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(parsed.Items))
	}

	item := parsed.Items[0]
	if item.Title != "Storm hits coast" {
		t.Errorf("Expected newest item first, got '%s'", item.Title)
	}
	if item.Description != "Storm hits coast" {
		t.Errorf("Expected paragraph markup stripped, got '%s'", item.Description)
	}
	if item.Author != nil {
		t.Errorf("Expected no author for NA, got %+v", item.Author)
	}
	if item.PublishedParsed == nil || item.PublishedParsed.Year() != 2025 {
		t.Errorf("Expected 2025 publish date, got %v", item.PublishedParsed)
	}
	if !strings.Contains(output, `<guid isPermaLink="false">`) {
		t.Error("Expected guid with isPermaLink=false")
	}
}

func TestRSSGeneratorEmpty(t *testing.T) {
	output, err := NewRSSGenerator(&listStore{}, 0).Run(context.Background(), "", "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(output, "<title>News Comb</title>") {
		t.Error("Expected channel title")
	}
	if strings.Contains(output, "<item>") {
		t.Error("Expected no items")
	}
}

func TestRSSGeneratorStoreError(t *testing.T) {
	_, err := NewRSSGenerator(&listStore{err: errors.New("closed")}, 5).Run(context.Background(), "", "")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
}
