package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"NewsPoster/internal/domain"
	"NewsPoster/internal/metrics"
	"NewsPoster/internal/ports"
)

// PostComposer formats a scraped article into a draft.
type PostComposer interface {
	Compose(ctx context.Context, article domain.Post) (domain.Post, error)
}

// ComposeResult counts the outcome of one compose stage.
type ComposeResult struct {
	Composed int
	Failed   int
	Skipped  int
}

// ComposeStage fills post_content for every record that lacks it.
type ComposeStage struct {
	composer PostComposer
	store    ports.PostStore
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewComposeStage wires the compose stage.
func NewComposeStage(composer PostComposer, store ports.PostStore, m *metrics.Metrics, log *slog.Logger) *ComposeStage {
	if m == nil {
		m = metrics.Discard()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &ComposeStage{composer: composer, store: store, metrics: m, logger: log}
}

// ComposeDrafts composes pending records outside the store lock and merges
// the drafts back in one transaction. Records composed meanwhile are kept.
func (c *ComposeStage) ComposeDrafts(ctx context.Context) (ComposeResult, error) {
	var (
		res     ComposeResult
		pending []domain.Post
	)

	err := c.store.View(ctx, func(posts []domain.Post) error {
		composed := map[string]struct{}{}
		for _, p := range posts {
			if p.PostContent != "" {
				composed[p.Link] = struct{}{}
			}
		}
		queued := map[string]struct{}{}
		for _, p := range posts {
			if p.PostContent != "" || p.Posted {
				continue
			}
			if _, ok := composed[p.Link]; ok {
				res.Skipped++
				continue
			}
			if _, ok := queued[p.Link]; ok {
				res.Skipped++
				continue
			}
			queued[p.Link] = struct{}{}
			pending = append(pending, p)
		}
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("read store: %w", err)
	}
	if len(pending) == 0 {
		return res, nil
	}

	drafts := make(map[string]domain.Post, len(pending))
	for _, article := range pending {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		draft, err := c.composer.Compose(ctx, article)
		if err != nil {
			res.Failed++
			c.metrics.ComposeFailures.Inc()
			c.logger.Warn("skip article, composition failed", "link", article.Link, "error", err)
			continue
		}
		drafts[article.Link] = draft
	}
	if len(drafts) == 0 {
		return res, nil
	}

	err = c.store.Update(ctx, func(posts []domain.Post) ([]domain.Post, error) {
		res.Composed = 0
		for i := range posts {
			draft, ok := drafts[posts[i].Link]
			if !ok || posts[i].PostContent != "" || posts[i].Posted {
				continue
			}
			posts[i].PostContent = draft.PostContent
			posts[i].Approved = false
			posts[i].Posted = false
			res.Composed++
			delete(drafts, posts[i].Link)
		}
		if res.Composed == 0 {
			return nil, ports.ErrNoChange
		}
		return posts, nil
	})
	if err != nil {
		return res, fmt.Errorf("save drafts: %w", err)
	}

	c.metrics.PostsComposed.Add(float64(res.Composed))
	c.logger.Info("drafts composed", "composed", res.Composed, "failed", res.Failed, "skipped", res.Skipped)
	return res, nil
}
