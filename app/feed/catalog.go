package feed

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

var ErrMissingDateModified = errors.New("catalog has no head/dateModified element")

type opmlDocument struct {
	XMLName xml.Name  `xml:"opml"`
	Head    *opmlHead `xml:"head"`
	Body    opmlBody  `xml:"body"`
}

type opmlHead struct {
	DateModified *string `xml:"dateModified"`
}

type opmlBody struct {
	Outlines []opmlOutline `xml:"outline"`
}

type opmlOutline struct {
	Text   string `xml:"text,attr"`
	Title  string `xml:"title,attr"`
	XMLURL string `xml:"xmlUrl,attr"`
}

// CatalogReader discovers the feeds of a channel from its OPML catalog.
type CatalogReader struct {
	fetcher *Fetcher
}

func NewCatalogReader(fetcher *Fetcher) *CatalogReader {
	return &CatalogReader{fetcher: fetcher}
}

func (r *CatalogReader) Discover(ctx context.Context, catalogURL string) (*Catalog, error) {
	data, err := r.fetcher.Get(ctx, catalogURL)
	if err != nil {
		return nil, err
	}

	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, &ParseError{URL: catalogURL, Err: err}
	}

	slog.Debug("Catalog discovered", "url", catalogURL, "date_modified", catalog.DateModified, "sources", len(catalog.Sources))

	return catalog, nil
}

// ParseCatalog reads the top-level outlines of an OPML document. The
// head/dateModified element is mandatory for the whole document, while an
// outline without xmlUrl is skipped on its own.
func ParseCatalog(data []byte) (*Catalog, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charsetReader

	var doc opmlDocument
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse OPML: %w", err)
	}

	if doc.Head == nil || doc.Head.DateModified == nil {
		return nil, ErrMissingDateModified
	}

	catalog := &Catalog{
		DateModified: strings.TrimSpace(*doc.Head.DateModified),
		Sources:      make([]Source, 0, len(doc.Body.Outlines)),
	}

	for _, outline := range doc.Body.Outlines {
		feedURL := strings.TrimSpace(outline.XMLURL)
		if feedURL == "" {
			slog.Debug("Outline without xmlUrl skipped", "text", outline.Text)
			continue
		}

		category := strings.TrimSpace(outline.Text)
		if category == "" {
			category = strings.TrimSpace(outline.Title)
		}

		catalog.Sources = append(catalog.Sources, Source{
			Category: category,
			FeedURL:  feedURL,
		})
	}

	return catalog, nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}
