package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var _ Collaborator = (*LLMClient)(nil)

type LLMClientConfig struct {
	Endpoint string
	Model    string
	APIKey   string
}

// LLMClient enriches a news page through an OpenAI-compatible chat
// completions endpoint. The page is fetched and reduced to readable text
// before it is sent.
type LLMClient struct {
	endpoint   string
	model      string
	apiKey     string
	pages      *PageFetcher
	httpClient *http.Client
}

func NewLLMClient(config LLMClientConfig, pages *PageFetcher, httpClient *http.Client) *LLMClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &LLMClient{
		endpoint:   config.Endpoint,
		model:      config.Model,
		apiKey:     config.APIKey,
		pages:      pages,
		httpClient: httpClient,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	Temperature    float64           `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *LLMClient) Enrich(ctx context.Context, url string, prompt string) (Fields, error) {
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return Fields{}, fmt.Errorf("enrichment client misconfigured")
	}

	page, err := c.pages.Fetch(ctx, url)
	if err != nil {
		return Fields{}, fmt.Errorf("failed to fetch page: %w", err)
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: prompt},
			{Role: "user", Content: pageMessage(page)},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return Fields{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Fields{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Fields{}, fmt.Errorf("failed to call enrichment endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Fields{}, fmt.Errorf("API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return Fields{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return Fields{}, fmt.Errorf("no choices in response")
	}

	return ParseFields(chat.Choices[0].Message.Content)
}

func pageMessage(page *Page) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Page URL: %s\n", page.URL)
	if page.Title != "" {
		fmt.Fprintf(&b, "Page title: %s\n", page.Title)
	}
	writeLinks(&b, "Image links found on the page", page.ImageLinks)
	writeLinks(&b, "Video links found on the page", page.VideoLinks)
	writeLinks(&b, "Other links on the same site", page.Links)
	b.WriteString("\nPage content:\n")
	b.WriteString(page.Text)

	return b.String()
}

func writeLinks(b *strings.Builder, label string, links []string) {
	if len(links) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", label)
	for _, link := range links {
		fmt.Fprintf(b, "- %s\n", link)
	}
}
