package news

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// StripParagraphs removes <p> and </p> tags from a description and keeps
// everything else byte for byte, entities and other markup included.
func StripParagraphs(description string) string {
	if !strings.Contains(strings.ToLower(description), "<p") {
		return strings.TrimSpace(description)
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(description))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if !errors.Is(z.Err(), io.EOF) {
				return strings.TrimSpace(description)
			}
			break
		}

		switch tt {
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "p" {
				continue
			}
		}
		b.Write(z.Raw())
	}

	return strings.TrimSpace(b.String())
}
