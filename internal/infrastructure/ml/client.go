package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"NewsPoster/internal/domain"
	"NewsPoster/internal/ports"
)

// Client talks to an external inference service hosting a summarization
// model and a keyword extractor.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var (
	_ ports.Summarizer       = (*Client)(nil)
	_ ports.KeywordExtractor = (*Client)(nil)
)

// NewClient creates a reusable HTTP client; nil httpClient uses a 2m timeout.
func NewClient(endpoint, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 2 * time.Minute}
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		http:     httpClient,
	}
}

// Summarize requests a summary bounded by length.
func (c *Client) Summarize(ctx context.Context, text string, length domain.SummaryLength) (string, error) {
	payload := map[string]any{
		"text":       text,
		"max_length": length.Max,
		"min_length": length.Min,
	}

	var resp struct {
		Summary string `json:"summary"`
	}
	if err := c.post(ctx, "/summarize", payload, &resp); err != nil {
		return "", err
	}

	return resp.Summary, nil
}

// ExtractKeywords requests the topN keyphrases of text.
func (c *Client) ExtractKeywords(ctx context.Context, text string, topN int) ([]string, error) {
	payload := map[string]any{
		"text":  text,
		"top_n": topN,
	}

	var resp struct {
		Keywords []string `json:"keywords"`
	}
	if err := c.post(ctx, "/keywords", payload, &resp); err != nil {
		return nil, err
	}

	return resp.Keywords, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return fmt.Errorf("unexpected status %s, close body: %v", resp.Status, closeErr)
		}
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		_ = resp.Body.Close()
		return fmt.Errorf("decode response: %w", err)
	}

	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}

	return nil
}
