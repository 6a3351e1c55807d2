package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"NewsPoster/internal/compose"
	"NewsPoster/internal/config"
	"NewsPoster/internal/infrastructure/llm"
	"NewsPoster/internal/infrastructure/media"
	"NewsPoster/internal/infrastructure/ml"
	"NewsPoster/internal/infrastructure/parser"
	"NewsPoster/internal/infrastructure/scheduler"
	"NewsPoster/internal/infrastructure/social"
	"NewsPoster/internal/infrastructure/storage"
	"NewsPoster/internal/infrastructure/webclient"
	"NewsPoster/internal/logging"
	"NewsPoster/internal/metrics"
	"NewsPoster/internal/ports"
	"NewsPoster/internal/review"
	"NewsPoster/internal/scanner"
	"NewsPoster/internal/usecase"
	"NewsPoster/pkg/logger"
)

const shutdownGrace = 10 * time.Second

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	pipeline  *usecase.Pipeline
	scheduler *usecase.Scheduler
	history   *storage.HistoryRepository
	registry  *prometheus.Registry
	logger    *slog.Logger
}

// New builds the pipeline application.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	reg := newRegistry()
	m := metrics.New(reg)

	if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	store := storage.NewJSONStore(cfg.Store.Path, baseLogger.With("component", "store"))

	httpClient := webclient.New(webclient.Options{
		Timeout:           cfg.Scraper.Timeout,
		RetryMax:          cfg.Scraper.RetryMax,
		RequestsPerSecond: cfg.Scraper.RequestsPerSecond,
		UserAgent:         cfg.Scraper.UserAgent,
		Logger:            baseLogger.With("component", "http"),
	})

	registry := scanner.NewRegistry()
	registry.Register(parser.NewVergeScanner(httpClient, baseLogger.With("component", "scanner.verge")))
	registry.Register(parser.NewGenericScanner(httpClient, baseLogger.With("component", "scanner.generic")))

	source := parser.NewStrategySource(registry, cfg.Sites, baseLogger.With("component", "source"))
	images := media.NewDownloader(httpClient, cfg.Store.ImageDir, cfg.Scraper.MaxImageBytes, baseLogger.With("component", "media"))

	summarizer, keywords, err := newModels(cfg)
	if err != nil {
		return nil, err
	}
	composer := compose.New(compose.Deps{
		Summarizer: summarizer,
		Keywords:   keywords,
		Chooser:    compose.NewRandomChooser(cfg.Composer.Seed),
		Logger:     baseLogger.With("component", "composer"),
	}, compose.Options{
		ContextWindow: cfg.Composer.ContextWindow,
		Keywords:      cfg.Composer.Keywords,
		Tags:          cfg.Composer.Tags,
		CallToAction:  cfg.Composer.CallToAction,
	})

	var (
		publisher *usecase.Publisher
		history   *storage.HistoryRepository
	)
	socialPublisher, err := social.New(cfg.Publisher, nil, baseLogger.With("component", "social"))
	switch {
	case errors.Is(err, social.ErrMissingCredential):
		baseLogger.Warn("publisher credential missing, publish stage disabled", "platform", cfg.Publisher.Platform)
	case err != nil:
		return nil, err
	default:
		publisher = usecase.NewPublisher(socialPublisher, store, m, baseLogger.With("component", "publisher"))
		if history, err = openHistory(cfg); err != nil {
			return nil, err
		}
		if history != nil {
			publisher.WithHistory(history, platformName(cfg.Publisher.Platform))
			logLastPublication(history, baseLogger)
		}
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Sources:   source.SourceURLs(),
		Scraper:   usecase.NewScraper(source, images, store.WithRecovery(), m, baseLogger.With("component", "scraper")),
		Composer:  usecase.NewComposeStage(composer, store, m, baseLogger.With("component", "compose")),
		Publisher: publisher,
		RunLock:   flock.New(cfg.Store.Path + ".run.lock"),
		Metrics:   m,
		Logger:    baseLogger.With("component", "pipeline"),
	})

	driver := scheduler.NewIntervalScheduler(cfg.Scheduler.Interval)
	return &Application{
		cfg:       cfg,
		pipeline:  pipeline,
		history:   history,
		scheduler: usecase.NewScheduler(driver, pipeline, baseLogger.With("component", "scheduler")),
		registry:  reg,
		logger:    baseLogger,
	}, nil
}

// RunOnce performs a single pipeline pass.
func (a *Application) RunOnce(ctx context.Context) error {
	_, err := a.pipeline.Run(ctx)
	return err
}

// Run schedules pipeline passes until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	if a.cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
		srv := newServer(a.cfg.Metrics.Addr, mux, "metrics", a.logger)
		go func() {
			if err := serve(ctx, srv); err != nil {
				a.logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	a.logger.Info("scheduler started",
		"interval", a.cfg.Scheduler.Interval,
		"sources", len(a.cfg.Sites),
		"publishing", a.pipeline.Publisher() != nil)
	if err := a.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	<-ctx.Done()
	a.logger.Info("shutting down")

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownGrace)
	defer cancel()
	return a.scheduler.Stop(stopCtx)
}

// Close releases the publish history database.
func (a *Application) Close() error {
	if a.history == nil {
		return nil
	}
	return a.history.Close()
}

func openHistory(cfg config.Config) (*storage.HistoryRepository, error) {
	if cfg.History.Disabled || cfg.History.Path == "" {
		return nil, nil
	}
	history, err := storage.OpenHistory(context.Background(), cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("open publish history: %w", err)
	}
	return history, nil
}

func logLastPublication(history *storage.HistoryRepository, log *slog.Logger) {
	recent, err := history.Recent(context.Background(), 1)
	switch {
	case err != nil:
		log.Warn("read publish history", "error", err)
	case len(recent) == 0:
		log.Info("publish history is empty")
	default:
		last := recent[0]
		log.Info("last publication", "title", last.Title, "platform", last.Platform, "at", last.PublishedAt)
	}
}

func platformName(platform string) string {
	if platform == "" {
		return "facebook"
	}
	return platform
}

// Gateway serves the review UI over the shared store.
type Gateway struct {
	cfg    config.Config
	server *review.Server
	logger *slog.Logger
}

// NewGateway builds the review gateway.
func NewGateway(cfg config.Config, baseLogger *slog.Logger) (*Gateway, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	reg := newRegistry()
	auth := review.NewAuth(cfg.Web.Username, cfg.Web.Password, cfg.Web.JWTSecret)
	if auth == nil {
		baseLogger.Warn("review gateway runs without login, set web.username and web.password to enable it")
	} else if cfg.Web.JWTSecret == "" {
		baseLogger.Warn("web.jwtSecret not set, sessions end on restart")
	}

	server, err := review.New(review.Options{
		Store:    storage.NewJSONStore(cfg.Store.Path, baseLogger.With("component", "store")),
		ImageDir: cfg.Store.ImageDir,
		Auth:     auth,
		Metrics:  metrics.New(reg),
		Gatherer: reg,
		Logger:   baseLogger.With("component", "review"),
	})
	if err != nil {
		return nil, err
	}

	return &Gateway{cfg: cfg, server: server, logger: baseLogger}, nil
}

// Handler exposes the router for tests and embedding.
func (g *Gateway) Handler() http.Handler {
	return g.server.Handler()
}

// Run serves until ctx is cancelled.
func (g *Gateway) Run(ctx context.Context) error {
	g.logger.Info("review gateway listening", "addr", g.cfg.Web.Addr)
	return serve(ctx, newServer(g.cfg.Web.Addr, g.server.Handler(), "review", g.logger))
}

func newModels(cfg config.Config) (ports.Summarizer, ports.KeywordExtractor, error) {
	switch cfg.Composer.Backend {
	case "", "ollama":
		client, err := llm.NewOllamaClient(cfg.Ollama)
		if err != nil {
			return nil, nil, err
		}
		return client, client, nil
	case "ml":
		client := ml.NewClient(cfg.ML.InferenceURL, cfg.ML.APIKey, nil)
		return client, client, nil
	case "chatgpt":
		client := llm.NewChatGPTClient(cfg.ChatGPT)
		return client, client, nil
	default:
		return nil, nil, fmt.Errorf("unknown composer backend %q", cfg.Composer.Backend)
	}
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func newServer(addr string, handler http.Handler, component string, log *slog.Logger) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          logger.New(component, log),
	}
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
