package feed

import (
	"testing"
)

func TestParseRSS2(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <description>Test Description</description>
    <language>en-us</language>
    <pubDate>Mon, 03 Jul 2023 09:00:00 GMT</pubDate>
    <lastBuildDate>Mon, 03 Jul 2023 12:00:00 GMT</lastBuildDate>
    <item>
      <title>Test Item 1</title>
      <link>https://example.com/item1</link>
      <description>&lt;p&gt;Test Item 1 Description&lt;/p&gt;</description>
      <guid isPermaLink="false">item-1</guid>
      <pubDate>Mon, 03 Jul 2023 10:00:00 GMT</pubDate>
      <source url="https://example.com/source.xml">Example Wire</source>
    </item>
    <item>
      <title>Test Item 2</title>
      <link>https://example.com/item2</link>
    </item>
  </channel>
</rss>`

	parser := NewParser()
	metadata, items, err := parser.Run([]byte(rssData))

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if metadata.Title != "Test Feed" {
		t.Errorf("Expected title 'Test Feed', got: %s", metadata.Title)
	}
	if metadata.Language != "en-us" {
		t.Errorf("Expected language 'en-us', got: %s", metadata.Language)
	}
	if metadata.LastBuildDate != "Mon, 03 Jul 2023 12:00:00 GMT" {
		t.Errorf("Expected last build date, got: %s", metadata.LastBuildDate)
	}
	if metadata.PubDate != "Mon, 03 Jul 2023 09:00:00 GMT" {
		t.Errorf("Expected pub date, got: %s", metadata.PubDate)
	}

	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got: %d", len(items))
	}

	item1 := items[0]
	if item1.Title != "Test Item 1" {
		t.Errorf("Expected title 'Test Item 1', got: %s", item1.Title)
	}
	if item1.Link != "https://example.com/item1" {
		t.Errorf("Expected link 'https://example.com/item1', got: %s", item1.Link)
	}
	if item1.Description != "<p>Test Item 1 Description</p>" {
		t.Errorf("Expected unescaped description, got: %s", item1.Description)
	}
	if item1.GUID != "item-1" {
		t.Errorf("Expected GUID 'item-1', got: %s", item1.GUID)
	}
	if item1.GUIDIsPermalink != "false" {
		t.Errorf("Expected guid isPermaLink 'false', got: %s", item1.GUIDIsPermalink)
	}
	if item1.PubDate != "Mon, 03 Jul 2023 10:00:00 GMT" {
		t.Errorf("Expected raw pub date, got: %s", item1.PubDate)
	}
	if item1.PublishedAt == nil || item1.PublishedAt.Hour() != 10 {
		t.Errorf("Expected parsed publish time at 10:00, got: %v", item1.PublishedAt)
	}
	if item1.SourceName != "Example Wire" {
		t.Errorf("Expected source name 'Example Wire', got: %s", item1.SourceName)
	}
	if item1.SourceURL != "https://example.com/source.xml" {
		t.Errorf("Expected source URL, got: %s", item1.SourceURL)
	}

	// Missing optional elements stay empty
	item2 := items[1]
	if item2.Description != "" || item2.GUID != "" || item2.GUIDIsPermalink != "" {
		t.Errorf("Expected empty optional fields, got: %+v", item2)
	}
	if item2.SourceName != "" || item2.SourceURL != "" || item2.PublishedAt != nil {
		t.Errorf("Expected no source or publish time, got: %+v", item2)
	}
}

func TestParseGUIDPermalinkByItem(t *testing.T) {
	rssData := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <item>
      <title>Permalink</title>
      <link>https://example.com/a</link>
      <guid isPermaLink="true">https://example.com/a</guid>
    </item>
    <item>
      <title>No guid</title>
      <link>https://example.com/b</link>
    </item>
    <item>
      <title>Opaque guid &amp; entity</title>
      <link>https://example.com/c</link>
      <guid isPermaLink="false">c-123</guid>
    </item>
  </channel>
</rss>`

	_, items, err := NewParser().Run([]byte(rssData))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got: %d", len(items))
	}

	expected := []string{"true", "", "false"}
	for i, want := range expected {
		if items[i].GUIDIsPermalink != want {
			t.Errorf("Item %d: expected guid isPermaLink '%s', got '%s'", i, want, items[i].GUIDIsPermalink)
		}
	}
}

func TestParseSkipsItemsWithoutLink(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <item>
      <title>No Link</title>
    </item>
    <item>
      <title>With Link</title>
      <link>https://example.com/with-link</link>
    </item>
  </channel>
</rss>`

	_, items, err := NewParser().Run([]byte(rssData))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got: %d", len(items))
	}
	if items[0].Title != "With Link" {
		t.Errorf("Expected 'With Link', got: %s", items[0].Title)
	}
}

func TestParseAtomFallback(t *testing.T) {
	atomData := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom Feed</title>
  <updated>2023-07-03T12:00:00Z</updated>
  <entry>
    <title>Atom Entry</title>
    <link href="https://example.com/atom-entry"/>
    <id>urn:uuid:1225c695</id>
    <updated>2023-07-03T12:00:00Z</updated>
    <summary>Entry summary</summary>
  </entry>
</feed>`

	metadata, items, err := NewParser().Run([]byte(atomData))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if metadata.Title != "Atom Feed" {
		t.Errorf("Expected title 'Atom Feed', got: %s", metadata.Title)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got: %d", len(items))
	}
	if items[0].Link != "https://example.com/atom-entry" {
		t.Errorf("Expected entry link, got: %s", items[0].Link)
	}
	if items[0].GUID != "urn:uuid:1225c695" {
		t.Errorf("Expected entry id as GUID, got: %s", items[0].GUID)
	}
	if items[0].PublishedAt == nil {
		t.Error("Expected updated time as publish time")
	}
}

func TestParseInvalidFeed(t *testing.T) {
	_, _, err := NewParser().Run([]byte("this is not a feed"))
	if err == nil {
		t.Error("Expected error for invalid feed data")
	}
}
