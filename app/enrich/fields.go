package enrich

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// ParseFields decodes a collaborator JSON answer. Every missing or empty value
// becomes the NotAvailable sentinel; a response that is not a JSON object is
// an error.
func ParseFields(content string) (Fields, error) {
	obj, err := decodeObject(stripCodeFence(content))
	if err != nil {
		return Fields{}, fmt.Errorf("malformed enrichment response: %w", err)
	}

	// Scrapers tend to wrap the answer in a single "content" object
	if inner, ok := obj["content"]; ok && len(obj) == 1 {
		if unwrapped, err := decodeObject(inner); err == nil {
			obj = unwrapped
		}
	}

	return Fields{
		Author:           textField(obj["author"]),
		Date:             textField(obj["date"]),
		Article:          textField(obj["article"]),
		Keywords:         listField(obj["keywords"]),
		ImageLinks:       listField(obj["image_links"]),
		VideoLinks:       listField(obj["video_links"]),
		RelatedLinks:     listField(obj["related_news_links"]),
		Sentiment:        sentimentField(obj["sentiment"]),
		Summary:          listField(obj["summary"]),
		ExplainedSummary: textField(obj["explained_summary"]),
		ImportanceRating: ratingField(obj["importance_rating"]),
	}, nil
}

func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("response is not a JSON object")
	}
	return obj, nil
}

func stripCodeFence(content string) []byte {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}
	return []byte(strings.TrimSpace(content))
}

func textField(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return NotAvailable
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return NotAvailable
		}
		return cleanText(s)
	case '[':
		parts := listField(raw)
		if len(parts) == 1 && parts[0] == NotAvailable {
			return NotAvailable
		}
		return strings.Join(parts, ", ")
	case '{':
		return NotAvailable
	default:
		return cleanText(string(raw))
	}
}

func listField(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		if s := textField(raw); s != NotAvailable {
			return []string{s}
		}
		return []string{NotAvailable}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return []string{NotAvailable}
	}

	values := make([]string, 0, len(elems))
	for _, elem := range elems {
		if s := textField(elem); s != NotAvailable {
			values = append(values, s)
		}
	}
	if len(values) == 0 {
		return []string{NotAvailable}
	}
	return values
}

func sentimentField(raw json.RawMessage) Sentiment {
	switch s := Sentiment(strings.ToLower(textField(raw))); s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return s
	default:
		return SentimentUnknown
	}
}

func ratingField(raw json.RawMessage) int {
	s := textField(raw)
	if s == NotAvailable {
		return 0
	}

	// Accept "7", "7.5" and "7/10"
	s, _, _ = strings.Cut(s, "/")
	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}

	rating := int(math.Round(value))
	return min(max(rating, 1), 10)
}

func cleanText(s string) string {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "<") {
		s = strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
	}
	if s == "" || strings.EqualFold(s, NotAvailable) {
		return NotAvailable
	}
	return s
}
