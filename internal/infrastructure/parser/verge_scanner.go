package parser

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"NewsPoster/internal/domain"
	"NewsPoster/internal/scanner"
)

const (
	vergeListSelector  = "ol.styled-counter"
	vergeBodySelector  = "div.duet--article--article-body-component-container"
	vergeImageSelector = "div.duet--article--lede figure img"
)

// VergeScanner reads the "Most Popular" list of a The Verge section page.
type VergeScanner struct {
	pages  *pageFetcher
	logger *slog.Logger
}

// NewVergeScanner wires an HTTP client; nil falls back to a 20s-timeout client.
func NewVergeScanner(client *http.Client, log *slog.Logger) *VergeScanner {
	return &VergeScanner{pages: newPageFetcher(client), logger: log}
}

// Name identifies the strategy inside the registry.
func (v *VergeScanner) Name() string {
	return "verge"
}

// Listing returns (title, link) pairs of the most popular list in page order.
func (v *VergeScanner) Listing(ctx context.Context, req scanner.Request) ([]domain.Listing, error) {
	doc, _, err := v.pages.document(ctx, req.URL)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", req.URL, err)
	}

	list := doc.Find(vergeListSelector).First()
	if list.Length() == 0 {
		v.warn("most popular section not found", "url", req.URL)
		return nil, nil
	}

	var (
		results []domain.Listing
		seen    = map[string]struct{}{}
	)
	list.Find("li").Each(func(_ int, item *goquery.Selection) {
		title := collapse(item.Find("h2").First().Text())
		href, ok := item.Find("a[href]").First().Attr("href")
		if title == "" || !ok {
			return
		}

		link, err := resolveLink(req.URL, href)
		if err != nil {
			v.warn("skip listing entry", "href", href, "error", err)
			return
		}
		if _, dup := seen[link]; dup {
			return
		}
		seen[link] = struct{}{}
		results = append(results, domain.Listing{Title: title, Link: link})
	})

	return results, nil
}

// Body extracts the article text, falling back to #content and then readability.
func (v *VergeScanner) Body(ctx context.Context, link string) (string, error) {
	doc, page, err := v.pages.document(ctx, link)
	if err != nil {
		return "", fmt.Errorf("body %s: %w", link, err)
	}

	var parts []string
	doc.Find(vergeBodySelector).Each(func(_ int, s *goquery.Selection) {
		if text := collapse(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	if len(parts) == 0 {
		if text := collapse(doc.Find("#content").First().Text()); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, "\n\n"), nil
	}

	article, err := readable(page, link)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		return strings.TrimSpace(article.TextContent), nil
	}

	return "", fmt.Errorf("body %s: article body not found", link)
}

// ImageURL returns the lede image, or the Open Graph image, or "" when absent.
func (v *VergeScanner) ImageURL(ctx context.Context, link string) (string, error) {
	doc, _, err := v.pages.document(ctx, link)
	if err != nil {
		return "", fmt.Errorf("image %s: %w", link, err)
	}

	src, _ := doc.Find(vergeImageSelector).First().Attr("src")
	if strings.TrimSpace(src) == "" {
		src = openGraphImage(doc)
	}
	if src == "" {
		v.debug("image not found in article", "link", link)
		return "", nil
	}

	return resolveLink(link, src)
}

func (v *VergeScanner) warn(msg string, args ...any) {
	if v.logger != nil {
		v.logger.Warn(msg, args...)
	}
}

func (v *VergeScanner) debug(msg string, args ...any) {
	if v.logger != nil {
		v.logger.Debug(msg, args...)
	}
}
