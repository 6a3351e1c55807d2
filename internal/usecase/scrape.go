package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"NewsPoster/internal/domain"
	"NewsPoster/internal/metrics"
	"NewsPoster/internal/ports"
)

// ScrapeResult counts the outcome of one listing.
type ScrapeResult struct {
	Added   int
	Skipped int
	Errors  int
}

// Scraper turns a listing page into new store records.
type Scraper struct {
	source  ports.ArticleSource
	images  ports.ImageDownloader
	store   ports.PostStore
	newID   func() string
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewScraper wires the scrape stage. images may be nil to skip downloads.
func NewScraper(source ports.ArticleSource, images ports.ImageDownloader, store ports.PostStore, m *metrics.Metrics, log *slog.Logger) *Scraper {
	if m == nil {
		m = metrics.Discard()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Scraper{
		source:  source,
		images:  images,
		store:   store,
		newID:   uuid.NewString,
		metrics: m,
		logger:  log,
	}
}

// Scrape fetches sourceURL and stores every listed article whose link is new.
// A listing failure aborts before any article is fetched; per-article
// failures are logged and skipped.
func (s *Scraper) Scrape(ctx context.Context, sourceURL string) (ScrapeResult, error) {
	var res ScrapeResult

	listings, err := s.source.FetchListing(ctx, sourceURL)
	if err != nil {
		return res, fmt.Errorf("fetch listing %s: %w", sourceURL, err)
	}
	s.logger.Debug("listing fetched", "source", sourceURL, "entries", len(listings))

	known := map[string]struct{}{}
	err = s.store.View(ctx, func(posts []domain.Post) error {
		for _, p := range posts {
			known[p.Link] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("read store: %w", err)
	}

	var fresh []domain.Post
	for _, item := range listings {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		link := strings.TrimSpace(item.Link)
		if link == "" {
			continue
		}
		if _, ok := known[link]; ok {
			res.Skipped++
			s.metrics.ArticlesSkipped.Inc()
			continue
		}
		known[link] = struct{}{}

		body, err := s.source.FetchArticleBody(ctx, link)
		if err == nil && strings.TrimSpace(body) == "" {
			err = fmt.Errorf("empty body")
		}
		if err != nil {
			res.Errors++
			s.metrics.ArticleErrors.WithLabelValues("body").Inc()
			s.logger.Warn("skip article", "link", link, "error", err)
			continue
		}

		post := domain.Post{
			ID:    s.newID(),
			Title: item.Title,
			Body:  body,
			Link:  link,
		}
		post.SetImage(s.image(ctx, link, post.ID))
		fresh = append(fresh, post)
	}

	if len(fresh) == 0 {
		return res, nil
	}

	err = s.store.Update(ctx, func(posts []domain.Post) ([]domain.Post, error) {
		stored := make(map[string]struct{}, len(posts))
		for _, p := range posts {
			stored[p.Link] = struct{}{}
		}

		added := 0
		for _, p := range fresh {
			if _, ok := stored[p.Link]; ok {
				res.Skipped++
				continue
			}
			stored[p.Link] = struct{}{}
			posts = append(posts, p)
			added++
		}
		if added == 0 {
			return nil, ports.ErrNoChange
		}
		res.Added = added
		return posts, nil
	})
	if err != nil {
		return res, fmt.Errorf("save scraped articles: %w", err)
	}

	s.metrics.ArticlesScraped.Add(float64(res.Added))
	s.logger.Info("articles scraped", "source", sourceURL, "added", res.Added, "skipped", res.Skipped, "errors", res.Errors)
	return res, nil
}

func (s *Scraper) image(ctx context.Context, link, id string) string {
	imageURL, err := s.source.FetchArticleImage(ctx, link)
	if err != nil {
		s.metrics.ArticleErrors.WithLabelValues("image").Inc()
		s.logger.Warn("image lookup failed", "link", link, "error", err)
		return ""
	}
	if imageURL == "" || s.images == nil {
		return ""
	}

	path, err := s.images.DownloadImage(ctx, imageURL, id)
	if err != nil {
		s.metrics.ArticleErrors.WithLabelValues("image_download").Inc()
		s.logger.Warn("image download failed", "link", link, "image", imageURL, "error", err)
		return ""
	}
	return path
}
