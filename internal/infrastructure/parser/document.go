package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

const maxPageBytes = 8 << 20

// pageFetcher downloads HTML pages and keeps the most recent one, so the body
// and image lookups for the same article share a single request.
type pageFetcher struct {
	client *http.Client

	mu       sync.Mutex
	lastURL  string
	lastPage []byte
}

func newPageFetcher(client *http.Client) *pageFetcher {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &pageFetcher{client: client}
}

func (f *pageFetcher) fetch(ctx context.Context, pageURL string) ([]byte, error) {
	f.mu.Lock()
	if f.lastURL == pageURL && f.lastPage != nil {
		page := f.lastPage
		f.mu.Unlock()
		return page, nil
	}
	f.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned %s", pageURL, resp.Status)
	}

	page, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	f.mu.Lock()
	f.lastURL, f.lastPage = pageURL, page
	f.mu.Unlock()

	return page, nil
}

func (f *pageFetcher) document(ctx context.Context, pageURL string) (*goquery.Document, []byte, error) {
	page, err := f.fetch(ctx, pageURL)
	if err != nil {
		return nil, nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, page, nil
}

func readable(page []byte, pageURL string) (readability.Article, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return readability.Article{}, fmt.Errorf("parse url %s: %w", pageURL, err)
	}
	return readability.FromReader(bytes.NewReader(page), parsed)
}

func resolveLink(base, href string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base url %s: %w", base, err)
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", fmt.Errorf("invalid link %s: %w", href, err)
	}
	resolved := baseURL.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String(), nil
}

func collapse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func openGraphImage(doc *goquery.Document) string {
	content, _ := doc.Find(`meta[property="og:image"]`).First().Attr("content")
	return strings.TrimSpace(content)
}
