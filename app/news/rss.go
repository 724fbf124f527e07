package news

import (
	"bytes"
	"cmp"
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/lysyi3m/news-comb/app/cfg"
	"github.com/lysyi3m/news-comb/app/database"
	"github.com/lysyi3m/news-comb/app/enrich"
)

const DefaultRSSLimit = 50

type Lister interface {
	GetLatest(ctx context.Context, category string, limit int) ([]database.Document, error)
}

var _ Lister = (database.NewsRepository)(nil)

// RSSGenerator renders the latest stored documents as an RSS 2.0 channel.
type RSSGenerator struct {
	store Lister
	limit int
}

func NewRSSGenerator(store Lister, limit int) *RSSGenerator {
	if limit <= 0 {
		limit = DefaultRSSLimit
	}
	return &RSSGenerator{store: store, limit: limit}
}

func (g *RSSGenerator) Run(ctx context.Context, category, selfLink string) (string, error) {
	docs, err := g.store.GetLatest(ctx, category, g.limit)
	if err != nil {
		return "", fmt.Errorf("failed to list news items: %w", err)
	}

	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	title := "News Comb"
	if category != "" {
		title = fmt.Sprintf("News Comb: %s", category)
	}
	g.writeElement(&buf, "title", title, 4)
	g.writeElement(&buf, "link", selfLink, 4)
	g.writeElement(&buf, "description", "Enriched news items", 4)

	if selfLink != "" {
		buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
			html.EscapeString(selfLink)))
	}

	lastBuildDate := time.Now().In(time.Local)
	if len(docs) > 0 {
		lastBuildDate = docs[0].CreatedAt
	}
	g.writeElement(&buf, "lastBuildDate", lastBuildDate.Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("News-Comb/%s", cfg.GetVersion()), 4)

	for _, doc := range docs {
		g.writeItem(&buf, doc)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

func (g *RSSGenerator) writeItem(buf *bytes.Buffer, doc database.Document) {
	buf.WriteString("    <item>\n")

	if doc.GUID != "" {
		buf.WriteString(fmt.Sprintf("      <guid isPermaLink=\"%t\">", isPermalink(doc)))
		xml.EscapeText(buf, []byte(doc.GUID))
		buf.WriteString("</guid>\n")
	}

	g.writeElement(buf, "title", doc.Title, 6)
	g.writeElement(buf, "link", doc.Link, 6)

	description := cmp.Or(StripParagraphs(doc.Description), available(doc.ExplainedSummary), "No description available")
	g.writeElement(buf, "description", description, 6)

	published := doc.CreatedAt
	if doc.PublishedAt != nil {
		published = *doc.PublishedAt
	}
	g.writeElement(buf, "pubDate", published.Format(time.RFC1123Z), 6)

	g.writeElement(buf, "author", available(doc.Author), 6)
	g.writeElement(buf, "category", doc.Category, 6)

	buf.WriteString("    </item>\n")
}

func (g *RSSGenerator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	buf.WriteString(strings.Repeat(" ", indent))
	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func available(s string) string {
	if s == enrich.NotAvailable {
		return ""
	}
	return s
}

func isPermalink(doc database.Document) bool {
	if doc.GUIDIsPermalink != "" {
		return strings.EqualFold(doc.GUIDIsPermalink, "true")
	}
	return strings.HasPrefix(doc.GUID, "http://") || strings.HasPrefix(doc.GUID, "https://")
}
