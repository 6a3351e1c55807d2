package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"NewsPoster/internal/domain"
	"NewsPoster/internal/metrics"
	"NewsPoster/internal/ports"
)

// ErrNothingToPublish means no record is approved, unposted and composed.
var ErrNothingToPublish = errors.New("nothing to publish")

// Publisher posts at most one approved draft per call.
type Publisher struct {
	social   ports.SocialPublisher
	store    ports.PostStore
	history  ports.PublishHistory
	platform string
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewPublisher wires the publish stage.
func NewPublisher(social ports.SocialPublisher, store ports.PostStore, m *metrics.Metrics, log *slog.Logger) *Publisher {
	if m == nil {
		m = metrics.Discard()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Publisher{social: social, store: store, metrics: m, logger: log}
}

// WithHistory records every upload in history under platform and skips links
// it already holds.
func (p *Publisher) WithHistory(history ports.PublishHistory, platform string) *Publisher {
	p.history = history
	p.platform = platform
	return p
}

// PublishNext publishes the first publishable record in store order and marks
// it posted. Selection, upload and the flag flip share one store transaction;
// on failure the store is left untouched.
func (p *Publisher) PublishNext(ctx context.Context) (domain.Post, error) {
	var published domain.Post

	err := p.store.Update(ctx, func(posts []domain.Post) ([]domain.Post, error) {
		updated, post, err := p.publishNext(ctx, posts)
		if err != nil {
			return nil, err
		}
		published = post
		return updated, nil
	})
	switch {
	case errors.Is(err, ErrNothingToPublish):
		p.logger.Info("nothing to publish")
		return domain.Post{}, err
	case err != nil:
		p.metrics.PublishFailures.Inc()
		return domain.Post{}, err
	}

	p.metrics.PostsPublished.Inc()
	p.logger.Info("post published", "id", published.ID, "title", published.Title, "image", published.Image())
	return published, nil
}

func (p *Publisher) publishNext(ctx context.Context, posts []domain.Post) ([]domain.Post, domain.Post, error) {
	idx := slices.IndexFunc(posts, domain.Post.Publishable)
	if idx < 0 {
		return posts, domain.Post{}, ErrNothingToPublish
	}

	candidate := posts[idx]
	seen, err := p.alreadyPublished(ctx, candidate)
	if err != nil {
		return posts, candidate, err
	}

	if !seen {
		if err := p.social.Publish(ctx, candidate.PostContent, candidate.Image()); err != nil {
			return posts, candidate, fmt.Errorf("publish %q: %w", candidate.Title, err)
		}
		p.record(ctx, candidate)
	}

	updated := slices.Clone(posts)
	updated[idx].Posted = true
	return updated, updated[idx], nil
}

func (p *Publisher) alreadyPublished(ctx context.Context, post domain.Post) (bool, error) {
	if p.history == nil {
		return false, nil
	}
	seen, err := p.history.AlreadyPublished(ctx, post.Link)
	if err != nil {
		return false, fmt.Errorf("check publish history: %w", err)
	}
	if seen {
		p.logger.Warn("post found in publish history, marking posted", "id", post.ID, "link", post.Link)
	}
	return seen, nil
}

// record never fails the publish: the platform already accepted the post.
func (p *Publisher) record(ctx context.Context, post domain.Post) {
	if p.history == nil {
		return
	}
	if err := p.history.RecordPublished(ctx, post, p.platform); err != nil {
		p.logger.Error("record publish history", "id", post.ID, "error", err)
	}
}
