package parser

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"NewsPoster/internal/domain"
	"NewsPoster/internal/scanner"
)

const (
	defaultLinkSelector = "article a[href]"
	defaultListingLimit = 20
	minReadableChars    = 100
)

// GenericScanner lists links through a configurable selector and relies on
// readability for article text and lead images.
//
// Options: linkSelector, titleSelector (relative to the link), limit.
type GenericScanner struct {
	pages  *pageFetcher
	logger *slog.Logger
}

// NewGenericScanner wires an HTTP client.
func NewGenericScanner(client *http.Client, log *slog.Logger) *GenericScanner {
	return &GenericScanner{pages: newPageFetcher(client), logger: log}
}

// Name identifies the strategy inside the registry.
func (g *GenericScanner) Name() string {
	return "generic"
}

// Listing collects anchors matched by the linkSelector option.
func (g *GenericScanner) Listing(ctx context.Context, req scanner.Request) ([]domain.Listing, error) {
	doc, _, err := g.pages.document(ctx, req.URL)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", req.URL, err)
	}

	selector := option(req.Options, "linkSelector", defaultLinkSelector)
	titleSelector := option(req.Options, "titleSelector", "")
	limit := defaultListingLimit
	if raw := option(req.Options, "limit", ""); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	var (
		results []domain.Listing
		seen    = map[string]struct{}{}
	)
	doc.Find(selector).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		if !ok {
			return true
		}

		title := collapse(a.Text())
		if titleSelector != "" {
			if t := collapse(a.Find(titleSelector).First().Text()); t != "" {
				title = t
			}
		}
		if title == "" {
			return true
		}

		link, err := resolveLink(req.URL, href)
		if err != nil {
			return true
		}
		if _, dup := seen[link]; dup {
			return true
		}
		seen[link] = struct{}{}
		results = append(results, domain.Listing{Title: title, Link: link})
		return len(results) < limit
	})

	return results, nil
}

// Body returns readability text, or the longest text block when readability
// finds too little.
func (g *GenericScanner) Body(ctx context.Context, link string) (string, error) {
	doc, page, err := g.pages.document(ctx, link)
	if err != nil {
		return "", fmt.Errorf("body %s: %w", link, err)
	}

	article, err := readable(page, link)
	if err == nil && len(strings.TrimSpace(article.TextContent)) >= minReadableChars {
		return strings.TrimSpace(article.TextContent), nil
	}

	doc.Find("script, style, noscript, iframe, nav, footer").Remove()
	longest := ""
	doc.Find("article, main, p, div").Each(func(_ int, s *goquery.Selection) {
		if text := collapse(s.Text()); len(text) > len(longest) {
			longest = text
		}
	})
	if longest == "" {
		return "", fmt.Errorf("body %s: article body not found", link)
	}
	return longest, nil
}

// ImageURL returns readability's lead image or the Open Graph image.
func (g *GenericScanner) ImageURL(ctx context.Context, link string) (string, error) {
	doc, page, err := g.pages.document(ctx, link)
	if err != nil {
		return "", fmt.Errorf("image %s: %w", link, err)
	}

	src := ""
	if article, err := readable(page, link); err == nil {
		src = strings.TrimSpace(article.Image)
	}
	if src == "" {
		src = openGraphImage(doc)
	}
	if src == "" {
		return "", nil
	}
	return resolveLink(link, src)
}

func option(opts map[string]string, key, fallback string) string {
	if v, ok := opts[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}
