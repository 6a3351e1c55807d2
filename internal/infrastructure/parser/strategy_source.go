package parser

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"NewsPoster/internal/config"
	"NewsPoster/internal/domain"
	"NewsPoster/internal/ports"
	"NewsPoster/internal/scanner"
)

// FallbackScanner handles source URLs and links that no configured site claims.
const FallbackScanner = "generic"

// StrategySource implements ArticleSource via registered scanner strategies.
// Article links remember the scanner that listed them, so body and image
// lookups use the same site rules.
type StrategySource struct {
	registry *scanner.Registry
	sites    []config.SiteConfig
	logger   *slog.Logger

	mu     sync.Mutex
	owners map[string]string
}

var _ ports.ArticleSource = (*StrategySource)(nil)

// NewStrategySource wires scanner registry with config-defined sites.
func NewStrategySource(reg *scanner.Registry, sites []config.SiteConfig, log *slog.Logger) *StrategySource {
	if reg != nil && log != nil {
		for _, site := range sites {
			if _, err := reg.Resolve(site.Scanner); err != nil {
				log.Warn("site uses an unknown scanner", "site", site.Name, "scanner", site.Scanner, "registered", reg.Names())
			}
		}
	}
	return &StrategySource{
		registry: reg,
		sites:    sites,
		logger:   log,
		owners:   map[string]string{},
	}
}

// SourceURLs lists the configured listing pages in config order.
func (s *StrategySource) SourceURLs() []string {
	urls := make([]string, 0, len(s.sites))
	for _, site := range s.sites {
		urls = append(urls, site.URL)
	}
	return urls
}

// FetchListing runs the scanner configured for sourceURL.
func (s *StrategySource) FetchListing(ctx context.Context, sourceURL string) ([]domain.Listing, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("scanner registry is not configured")
	}

	site := s.siteFor(sourceURL)
	s.debug("process site", "site", site.Name, "scanner", site.Scanner)

	strategy, err := s.registry.Resolve(site.Scanner)
	if err != nil {
		return nil, fmt.Errorf("site %s: %w", site.Name, err)
	}

	results, err := strategy.Listing(ctx, scanner.Request{
		SiteName: site.Name,
		URL:      site.URL,
		Options:  site.Options,
	})
	if err != nil {
		return nil, fmt.Errorf("scan site %s: %w", site.Name, err)
	}

	s.mu.Lock()
	for _, item := range results {
		s.owners[item.Link] = strategy.Name()
	}
	s.mu.Unlock()

	s.debug("site produced listings", "site", site.Name, "count", len(results))
	return results, nil
}

// FetchArticleBody extracts the article text of link.
func (s *StrategySource) FetchArticleBody(ctx context.Context, link string) (string, error) {
	strategy, err := s.strategyFor(link)
	if err != nil {
		return "", err
	}
	return strategy.Body(ctx, link)
}

// FetchArticleImage returns the lead image URL of link, or "" when there is none.
func (s *StrategySource) FetchArticleImage(ctx context.Context, link string) (string, error) {
	strategy, err := s.strategyFor(link)
	if err != nil {
		return "", err
	}
	return strategy.ImageURL(ctx, link)
}

func (s *StrategySource) siteFor(sourceURL string) config.SiteConfig {
	for _, site := range s.sites {
		if site.URL == sourceURL {
			return site
		}
	}
	return config.SiteConfig{Name: hostOf(sourceURL), Scanner: FallbackScanner, URL: sourceURL}
}

func (s *StrategySource) strategyFor(link string) (scanner.Scanner, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("scanner registry is not configured")
	}

	s.mu.Lock()
	name, ok := s.owners[link]
	s.mu.Unlock()

	if !ok {
		name = FallbackScanner
		host := hostOf(link)
		for _, site := range s.sites {
			if host != "" && hostOf(site.URL) == host {
				name = site.Scanner
				break
			}
		}
	}

	return s.registry.Resolve(name)
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
