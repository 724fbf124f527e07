package enrich

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"codeberg.org/readeck/go-readability/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/lysyi3m/news-comb/app/feed"
)

const maxLinks = 20

// Page is the readable content of a news page plus link candidates.
type Page struct {
	URL        string
	Title      string
	Text       string
	ImageLinks []string
	VideoLinks []string
	Links      []string
}

type PageFetcher struct {
	fetcher  *feed.Fetcher
	maxChars int
}

func NewPageFetcher(fetcher *feed.Fetcher, maxChars int) *PageFetcher {
	return &PageFetcher{
		fetcher:  fetcher,
		maxChars: maxChars,
	}
}

func (f *PageFetcher) Fetch(ctx context.Context, pageURL string) (*Page, error) {
	data, err := f.fetcher.Get(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return ExtractPage(pageURL, data, f.maxChars)
}

// ExtractPage pulls the article text out of an HTML document with
// readability, falling back to the body text, and collects image, video and
// same-site link candidates. maxChars <= 0 keeps the whole text.
func ExtractPage(pageURL string, data []byte, maxChars int) (*Page, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("HTML data is empty")
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	page := &Page{
		URL:   pageURL,
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
		ImageLinks: collectLinks(doc, base,
			attrSelector{`meta[property="og:image"]`, "content"},
			attrSelector{"img", "src"}),
		VideoLinks: collectLinks(doc, base,
			attrSelector{`meta[property="og:video"]`, "content"},
			attrSelector{"video", "src"},
			attrSelector{"video source", "src"},
			attrSelector{`iframe[src*="youtube"], iframe[src*="vimeo"], iframe[src*="video"]`, "src"}),
	}

	for _, link := range collectLinks(doc, base, attrSelector{"a", "href"}) {
		u, err := url.Parse(link)
		if err != nil || u.Host != base.Host || strings.TrimSuffix(link, "/") == strings.TrimSuffix(pageURL, "/") {
			continue
		}
		page.Links = append(page.Links, link)
	}

	page.Text = readableText(data, base)
	if page.Text == "" {
		doc.Find("script, style, noscript").Remove()
		page.Text = normalizeWhitespace(doc.Find("body").Text())
	}
	if page.Text == "" {
		return nil, fmt.Errorf("no content extracted from HTML data")
	}

	if maxChars > 0 {
		if runes := []rune(page.Text); len(runes) > maxChars {
			page.Text = string(runes[:maxChars])
		}
	}

	slog.Debug("Content extracted successfully",
		"url", pageURL,
		"content_length", len(page.Text),
		"images", len(page.ImageLinks),
		"videos", len(page.VideoLinks),
		"links", len(page.Links))

	return page, nil
}

func readableText(data []byte, base *url.URL) string {
	article, err := readability.FromReader(bytes.NewReader(data), base)
	if err != nil {
		slog.Debug("Readability extraction failed", "url", base.String(), "error", err)
		return ""
	}

	var buf strings.Builder
	if err := article.RenderText(&buf); err != nil {
		return ""
	}
	return normalizeWhitespace(buf.String())
}

type attrSelector struct {
	selector string
	attr     string
}

func collectLinks(doc *goquery.Document, base *url.URL, selectors ...attrSelector) []string {
	seen := make(map[string]bool)
	var links []string

	for _, s := range selectors {
		doc.Find(s.selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			value, ok := sel.Attr(s.attr)
			if !ok {
				return true
			}

			ref, err := url.Parse(strings.TrimSpace(value))
			if err != nil {
				return true
			}

			abs := base.ResolveReference(ref)
			abs.Fragment = ""
			if abs.Scheme != "http" && abs.Scheme != "https" {
				return true
			}

			link := abs.String()
			if !seen[link] {
				seen[link] = true
				links = append(links, link)
			}
			return len(links) < maxLinks
		})
		if len(links) >= maxLinks {
			break
		}
	}

	return links
}

func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
