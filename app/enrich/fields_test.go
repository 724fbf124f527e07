package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldsComplete(t *testing.T) {
	content := `{
  "title": "Ignored",
  "author": "Jane Tan",
  "date": "Oct 14, 2025",
  "article": "<p>Markets rallied &amp; closed higher.</p>",
  "keywords": ["markets", "", "stocks"],
  "image_links": ["https://example.com/a.jpg"],
  "video_links": "NA",
  "related_news_links": [],
  "sentiment": "Positive",
  "summary": ["Markets rallied.", "Stocks closed higher."],
  "explained_summary": "Markets rose after a week of losses.",
  "importance_rating": "7/10"
}`

	fields, err := ParseFields(content)
	require.NoError(t, err)

	assert.Equal(t, "Jane Tan", fields.Author)
	assert.Equal(t, "Oct 14, 2025", fields.Date)
	assert.Equal(t, "Markets rallied & closed higher.", fields.Article)
	assert.Equal(t, []string{"markets", "stocks"}, fields.Keywords)
	assert.Equal(t, []string{"https://example.com/a.jpg"}, fields.ImageLinks)
	assert.Equal(t, []string{NotAvailable}, fields.VideoLinks)
	assert.Equal(t, []string{NotAvailable}, fields.RelatedLinks)
	assert.Equal(t, SentimentPositive, fields.Sentiment)
	assert.Len(t, fields.Summary, 2)
	assert.Equal(t, "Markets rose after a week of losses.", fields.ExplainedSummary)
	assert.Equal(t, 7, fields.ImportanceRating)
}

func TestParseFieldsMissingValues(t *testing.T) {
	fields, err := ParseFields(`{"author": null, "date": "", "sentiment": "mixed", "importance_rating": 42}`)
	require.NoError(t, err)

	assert.Equal(t, NotAvailable, fields.Author)
	assert.Equal(t, NotAvailable, fields.Date)
	assert.Equal(t, NotAvailable, fields.Article)
	assert.Equal(t, NotAvailable, fields.ExplainedSummary)
	assert.Equal(t, []string{NotAvailable}, fields.Keywords)
	assert.Equal(t, []string{NotAvailable}, fields.Summary)
	assert.Equal(t, SentimentUnknown, fields.Sentiment)
	assert.Equal(t, 10, fields.ImportanceRating)
}

func TestParseFieldsUnwrapsContent(t *testing.T) {
	fields, err := ParseFields("```json\n{\"content\": {\"author\": \"Lee\", \"summary\": \"One line\", \"importance_rating\": 3}}\n```")
	require.NoError(t, err)

	assert.Equal(t, "Lee", fields.Author)
	assert.Equal(t, []string{"One line"}, fields.Summary)
	assert.Equal(t, 3, fields.ImportanceRating)
}

func TestParseFieldsMalformed(t *testing.T) {
	for _, content := range []string{"", "not json", "[1, 2]", "null"} {
		_, err := ParseFields(content)
		assert.Error(t, err, "content %q", content)
	}
}

func TestParseFieldsRatingAbsent(t *testing.T) {
	fields, err := ParseFields(`{"importance_rating": "NA"}`)
	require.NoError(t, err)
	assert.Equal(t, 0, fields.ImportanceRating)
}
