package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "newsposter"

// Metrics holds the pipeline and review counters.
type Metrics struct {
	ArticlesScraped  prometheus.Counter
	ArticlesSkipped  prometheus.Counter
	ArticleErrors    *prometheus.CounterVec
	PostsComposed    prometheus.Counter
	ComposeFailures  prometheus.Counter
	PostsPublished   prometheus.Counter
	PublishFailures  prometheus.Counter
	ReviewSubmits    prometheus.Counter
	PipelineRuns     *prometheus.CounterVec
	PipelineDuration prometheus.Histogram
}

// New registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ArticlesScraped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_scraped_total",
			Help:      "Articles added to the store by the scraper.",
		}),
		ArticlesSkipped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_skipped_total",
			Help:      "Listing entries skipped because their link is already stored.",
		}),
		ArticleErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "article_errors_total",
			Help:      "Per-article scrape failures by step.",
		}, []string{"step"}),
		PostsComposed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_composed_total",
			Help:      "Drafts produced by the composer.",
		}),
		ComposeFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compose_failures_total",
			Help:      "Articles skipped because summarization failed.",
		}),
		PostsPublished: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_published_total",
			Help:      "Posts accepted by the social platform.",
		}),
		PublishFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_failures_total",
			Help:      "Publish attempts rejected or failed.",
		}),
		ReviewSubmits: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "review_submissions_total",
			Help:      "Approval forms applied by the review gateway.",
		}),
		PipelineRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Pipeline passes by outcome.",
		}, []string{"outcome"}),
		PipelineDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Wall time of a full scrape, compose and publish pass.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 12),
		}),
	}
}

// Discard returns metrics registered on a private registry nobody scrapes.
func Discard() *Metrics {
	return New(prometheus.NewRegistry())
}
