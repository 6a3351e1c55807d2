package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"NewsPoster/internal/domain"
	"NewsPoster/internal/metrics"
)

// RunLocker serializes pipeline passes across processes.
type RunLocker interface {
	TryLock() (bool, error)
	Unlock() error
}

// PipelineDeps wires the stages into the orchestration pipeline.
type PipelineDeps struct {
	Sources   []string
	Scraper   *Scraper
	Composer  *ComposeStage
	Publisher *Publisher
	RunLock   RunLocker
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

// Pipeline runs scrape, compose and publish in order.
type Pipeline struct {
	sources   []string
	scraper   *Scraper
	composer  *ComposeStage
	publisher *Publisher
	runLock   RunLocker
	metrics   *metrics.Metrics
	logger    *slog.Logger
	running   atomic.Bool
}

// NewPipeline constructs the orchestration component. A nil Publisher
// disables the publish stage.
func NewPipeline(deps PipelineDeps) *Pipeline {
	if deps.Metrics == nil {
		deps.Metrics = metrics.Discard()
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{
		sources:   deps.Sources,
		scraper:   deps.Scraper,
		composer:  deps.Composer,
		publisher: deps.Publisher,
		runLock:   deps.RunLock,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
	}
}

// Run executes one pass. A failing stage is logged and the next stage still
// runs; the stage errors are joined. A pass that overlaps another is skipped.
func (p *Pipeline) Run(ctx context.Context) (domain.RunStats, error) {
	var stats domain.RunStats

	if !p.running.CompareAndSwap(false, true) {
		p.logger.Info("pipeline pass already running, skipping")
		p.metrics.PipelineRuns.WithLabelValues("skipped").Inc()
		return stats, nil
	}
	defer p.running.Store(false)

	if p.runLock != nil {
		locked, err := p.runLock.TryLock()
		if err != nil {
			p.metrics.PipelineRuns.WithLabelValues("error").Inc()
			return stats, fmt.Errorf("acquire run lock: %w", err)
		}
		if !locked {
			p.logger.Info("another process holds the run lock, skipping")
			p.metrics.PipelineRuns.WithLabelValues("skipped").Inc()
			return stats, nil
		}
		defer func() {
			if err := p.runLock.Unlock(); err != nil {
				p.logger.Warn("release run lock", "error", err)
			}
		}()
	}

	start := time.Now()
	var errs []error

	if p.scraper != nil {
		for _, source := range p.sources {
			res, err := p.scraper.Scrape(ctx, source)
			stats.Scraped += res.Added
			stats.ScrapeSkipped += res.Skipped
			stats.ScrapeErrors += res.Errors
			if err != nil {
				p.logger.Error("scrape stage failed", "source", source, "error", err)
				errs = append(errs, fmt.Errorf("scrape: %w", err))
			}
		}
	}

	if p.composer != nil {
		res, err := p.composer.ComposeDrafts(ctx)
		stats.Composed = res.Composed
		stats.ComposeErrors = res.Failed
		stats.ComposeSkipped = res.Skipped
		if err != nil {
			p.logger.Error("compose stage failed", "error", err)
			errs = append(errs, fmt.Errorf("compose: %w", err))
		}
	}

	if p.publisher == nil {
		p.logger.Info("publishing disabled, no publisher credential")
	} else {
		_, err := p.publisher.PublishNext(ctx)
		switch {
		case err == nil:
			stats.Published = true
		case errors.Is(err, ErrNothingToPublish):
		default:
			p.logger.Error("publish stage failed", "error", err)
			errs = append(errs, fmt.Errorf("publish: %w", err))
		}
	}

	err := errors.Join(errs...)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	p.metrics.PipelineRuns.WithLabelValues(outcome).Inc()
	p.metrics.PipelineDuration.Observe(time.Since(start).Seconds())

	p.logger.Info("pipeline pass finished",
		"duration", time.Since(start).Round(time.Millisecond),
		"scraped", stats.Scraped,
		"composed", stats.Composed,
		"compose_skipped", stats.ComposeSkipped,
		"published", stats.Published,
		"outcome", outcome)
	return stats, err
}

// Publisher returns the publish stage, nil when publishing is disabled.
func (p *Pipeline) Publisher() *Publisher {
	return p.publisher
}
