package feed

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/rss"
)

type Parser struct {
	rssParser    *rss.Parser
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		rssParser:    &rss.Parser{},
		gofeedParser: gofeed.NewParser(),
	}
}

// Run parses an RSS document into raw items. RSS goes through the dedicated
// parser so guid and source attributes survive; Atom and JSON feeds fall back
// to the universal parser. Items without a link are dropped.
func (p *Parser) Run(data []byte) (*Metadata, []RawItem, error) {
	var (
		metadata *Metadata
		items    []RawItem
		err      error
	)

	if gofeed.DetectFeedType(bytes.NewReader(data)) == gofeed.FeedTypeRSS {
		metadata, items, err = p.runRSS(data)
	} else {
		metadata, items, err = p.runUniversal(data)
	}
	if err != nil {
		return nil, nil, err
	}

	kept := items[:0]
	for _, item := range items {
		if item.Link == "" {
			slog.Debug("Item without link skipped", "title", item.Title)
			continue
		}
		kept = append(kept, item)
	}

	return metadata, kept, nil
}

func (p *Parser) runRSS(data []byte) (*Metadata, []RawItem, error) {
	feed, err := p.rssParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	metadata := &Metadata{
		Title:         feed.Title,
		Link:          feed.Link,
		Language:      feed.Language,
		PubDate:       feed.PubDate,
		LastBuildDate: feed.LastBuildDate,
	}

	permalinks := guidPermalinks(data)

	items := make([]RawItem, 0, len(feed.Items))
	for i, item := range feed.Items {
		if item == nil {
			continue
		}
		normalized := p.normalizeRSSItem(item)
		if normalized.GUIDIsPermalink == "" && i < len(permalinks) {
			normalized.GUIDIsPermalink = permalinks[i]
		}
		items = append(items, normalized)
	}

	return metadata, items, nil
}

// guidPermalinks returns the isPermaLink attribute of each item's guid, in
// item order. The rss parser only looks up the lower-case isPermalink
// spelling. Decoding stops quietly at the first malformed token.
func guidPermalinks(data []byte) []string {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = false
	decoder.AutoClose = xml.HTMLAutoClose
	decoder.Entity = xml.HTMLEntity
	decoder.CharsetReader = charsetReader

	var (
		permalinks []string
		inItem     bool
	)
	for {
		tok, err := decoder.Token()
		if err != nil {
			return permalinks
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch strings.ToLower(t.Name.Local) {
			case "item":
				inItem = true
				permalinks = append(permalinks, "")
			case "guid":
				if !inItem {
					continue
				}
				for _, attr := range t.Attr {
					if strings.EqualFold(attr.Name.Local, "isPermaLink") {
						permalinks[len(permalinks)-1] = strings.TrimSpace(attr.Value)
					}
				}
			}
		case xml.EndElement:
			if strings.ToLower(t.Name.Local) == "item" {
				inItem = false
			}
		}
	}
}

func (p *Parser) normalizeRSSItem(item *rss.Item) RawItem {
	normalized := RawItem{
		Title:       strings.TrimSpace(item.Title),
		Link:        strings.TrimSpace(item.Link),
		Description: item.Description,
		PubDate:     strings.TrimSpace(item.PubDate),
		PublishedAt: item.PubDateParsed,
	}

	if item.GUID != nil {
		normalized.GUID = strings.TrimSpace(item.GUID.Value)
		normalized.GUIDIsPermalink = item.GUID.IsPermalink
	}

	if item.Source != nil {
		normalized.SourceName = strings.TrimSpace(item.Source.Title)
		normalized.SourceURL = strings.TrimSpace(item.Source.URL)
	}

	return normalized
}

func (p *Parser) runUniversal(data []byte) (*Metadata, []RawItem, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	metadata := &Metadata{
		Title:         feed.Title,
		Link:          feed.Link,
		Language:      feed.Language,
		PubDate:       feed.Published,
		LastBuildDate: feed.Updated,
	}

	items := make([]RawItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}

		link := item.Link
		if link == "" && len(item.Links) > 0 {
			link = item.Links[0]
		}

		items = append(items, RawItem{
			Title:       strings.TrimSpace(item.Title),
			Link:        strings.TrimSpace(link),
			Description: item.Description,
			GUID:        item.GUID,
			PubDate:     cmp.Or(item.Published, item.Updated),
			PublishedAt: cmp.Or(item.PublishedParsed, item.UpdatedParsed),
		})
	}

	return metadata, items, nil
}
