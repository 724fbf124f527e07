package enrich

import (
	"strings"
	"testing"
)

func TestExtractPage(t *testing.T) {
	page, err := ExtractPage("https://example.com/news/flood-warning", []byte(testArticlePage), 0)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if page.Title != "Flood warning issued" {
		t.Errorf("Expected title 'Flood warning issued', got: %s", page.Title)
	}
	if !strings.Contains(page.Text, "Heavy rain is expected") {
		t.Errorf("Expected article text, got: %s", page.Text)
	}
	if len(page.ImageLinks) != 1 || page.ImageLinks[0] != "https://example.com/images/flood.jpg" {
		t.Errorf("Expected resolved og:image link, got: %v", page.ImageLinks)
	}
	if len(page.Links) != 1 || page.Links[0] != "https://example.com/news/earlier-floods" {
		t.Errorf("Expected same-site link, got: %v", page.Links)
	}
	if len(page.VideoLinks) != 0 {
		t.Errorf("Expected no video links, got: %v", page.VideoLinks)
	}
}

func TestExtractPageLinks(t *testing.T) {
	html := `<html><body>
  <p>Short body text.</p>
  <video src="/media/clip.mp4"></video>
  <iframe src="https://www.youtube.com/embed/abc"></iframe>
  <a href="https://other.example.org/story">Elsewhere</a>
  <a href="mailto:desk@example.com">Mail</a>
  <a href="/news/a#comments">A</a>
  <a href="/news/a">A again</a>
  <a href="/news/current">Self</a>
  <script>var tracking = true;</script>
</body></html>`

	page, err := ExtractPage("https://example.com/news/current", []byte(html), 0)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	expectedVideos := []string{"https://example.com/media/clip.mp4", "https://www.youtube.com/embed/abc"}
	if strings.Join(page.VideoLinks, ",") != strings.Join(expectedVideos, ",") {
		t.Errorf("Expected videos %v, got: %v", expectedVideos, page.VideoLinks)
	}
	if len(page.Links) != 1 || page.Links[0] != "https://example.com/news/a" {
		t.Errorf("Expected one deduplicated same-site link, got: %v", page.Links)
	}
	if strings.Contains(page.Text, "tracking") {
		t.Errorf("Expected scripts to be excluded from text, got: %s", page.Text)
	}
}

func TestExtractPageTruncates(t *testing.T) {
	page, err := ExtractPage("https://example.com/a", []byte(testArticlePage), 10)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len([]rune(page.Text)) != 10 {
		t.Errorf("Expected 10 characters, got %d: %s", len([]rune(page.Text)), page.Text)
	}
}

func TestExtractPageEmpty(t *testing.T) {
	if _, err := ExtractPage("https://example.com/a", nil, 0); err == nil {
		t.Error("Expected error for empty HTML data")
	}
	if _, err := ExtractPage("https://example.com/a", []byte("<html><body></body></html>"), 0); err == nil {
		t.Error("Expected error when no content can be extracted")
	}
}
