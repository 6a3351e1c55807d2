package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	ollama "github.com/ollama/ollama/api"

	"NewsPoster/internal/config"
	"NewsPoster/internal/domain"
	"NewsPoster/internal/ports"
)

// OllamaClient summarizes and extracts keywords with a local Ollama model.
type OllamaClient struct {
	client *ollama.Client
	model  string
}

var (
	_ ports.Summarizer       = (*OllamaClient)(nil)
	_ ports.KeywordExtractor = (*OllamaClient)(nil)
)

// NewOllamaClient builds a client for cfg.Host.
func NewOllamaClient(cfg config.OllamaConfig) (*OllamaClient, error) {
	base, err := url.Parse(cfg.Host)
	if err != nil || base.Scheme == "" {
		return nil, fmt.Errorf("invalid ollama host %q", cfg.Host)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("ollama model is not configured")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	return &OllamaClient{
		client: ollama.NewClient(base, &http.Client{Timeout: timeout}),
		model:  cfg.Model,
	}, nil
}

// Summarize asks the model for a summary within length words.
func (c *OllamaClient) Summarize(ctx context.Context, text string, length domain.SummaryLength) (string, error) {
	return c.generate(ctx, summaryPrompt(text, length), map[string]any{
		"temperature": 0.2,
		"num_predict": length.Max * 2,
	})
}

// ExtractKeywords asks the model for up to topN keywords.
func (c *OllamaClient) ExtractKeywords(ctx context.Context, text string, topN int) ([]string, error) {
	reply, err := c.generate(ctx, keywordPrompt(text, topN), map[string]any{
		"temperature": 0,
	})
	if err != nil {
		return nil, err
	}
	return parseKeywords(reply, topN), nil
}

func (c *OllamaClient) generate(ctx context.Context, prompt string, options map[string]any) (string, error) {
	stream := false
	var response strings.Builder

	err := c.client.Generate(ctx, &ollama.GenerateRequest{
		Model:   c.model,
		Prompt:  prompt,
		Stream:  &stream,
		Options: options,
	}, func(res ollama.GenerateResponse) error {
		response.WriteString(res.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}

	return strings.TrimSpace(response.String()), nil
}
