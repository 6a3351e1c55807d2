package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"NewsPoster/internal/domain"
)

// ErrNoChange may be returned from a PostStore.Update callback to skip the write.
var ErrNoChange = errors.New("no change")

// PostStore is the shared JSON store. Raw load/save is never exposed; every
// read-modify-write cycle runs under the store lock.
type PostStore interface {
	View(ctx context.Context, fn func(posts []domain.Post) error) error
	Update(ctx context.Context, fn func(posts []domain.Post) ([]domain.Post, error)) error
}

// ArticleSource discovers and fetches articles from configured sites.
type ArticleSource interface {
	FetchListing(ctx context.Context, sourceURL string) ([]domain.Listing, error)
	FetchArticleBody(ctx context.Context, link string) (string, error)
	FetchArticleImage(ctx context.Context, link string) (string, error)
}

// ImageDownloader stores a remote image locally and returns its path.
type ImageDownloader interface {
	DownloadImage(ctx context.Context, imageURL, id string) (string, error)
}

// Summarizer turns article text into a short summary within the requested length.
type Summarizer interface {
	Summarize(ctx context.Context, text string, length domain.SummaryLength) (string, error)
}

// KeywordExtractor returns up to topN keywords for text.
type KeywordExtractor interface {
	ExtractKeywords(ctx context.Context, text string, topN int) ([]string, error)
}

// SocialPublisher uploads a formatted post, optionally with a photo.
type SocialPublisher interface {
	Publish(ctx context.Context, message, imagePath string) error
}

// PublishHistory remembers which links already reached the social platform.
type PublishHistory interface {
	AlreadyPublished(ctx context.Context, link string) (bool, error)
	RecordPublished(ctx context.Context, post domain.Post, platform string) error
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
