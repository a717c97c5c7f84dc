package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/vango-dev/hashroute/internal/config"
	apperrors "github.com/vango-dev/hashroute/internal/errors"
	"github.com/vango-dev/hashroute/internal/logging"
	"github.com/vango-dev/hashroute/pkg/manifest"
	"github.com/vango-dev/hashroute/pkg/mount"
	"github.com/vango-dev/hashroute/pkg/observe"
	"github.com/vango-dev/hashroute/pkg/router"
)

// app holds everything a command needs after bootstrapping.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	closer   io.Closer
	manifest *manifest.Manifest
	router   *router.Router

	registry *prometheus.Registry
	metrics  *observe.Metrics
}

// loadApp reads the configuration, sets up logging and observers, and
// builds the router from the manifest.
func loadApp(ctx context.Context, flags *globalFlags) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = logging.Level(flags.logLevel)
		if err := cfg.Logging.Level.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", config.ErrInvalid, err)
		}
	}

	logger, closer := logging.New(&cfg.Logging)
	slog.SetDefault(logger)

	a := &app{cfg: cfg, logger: logger, closer: closer}

	opts := []router.Option{
		router.WithLogger(logger),
		router.WithObserver(observe.Log(logger)),
	}
	if cfg.Router.StrictSegments {
		opts = append(opts, router.WithStrictSegments())
	}
	if cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		a.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		a.metrics = observe.NewMetrics(
			observe.WithRegistry(a.registry),
			observe.WithNamespace(cfg.Metrics.Namespace),
			observe.WithErrorType(apperrors.Code),
		)
		opts = append(opts, router.WithObserver(a.metrics))
	}
	if cfg.Tracing.Enabled {
		opts = append(opts, router.WithObserver(observe.NewTracing(observe.WithTracerName(cfg.Tracing.TracerName))))
	}

	src, err := manifestSource(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	m, err := manifest.Load(ctx, src)
	if err != nil {
		a.Close()
		return nil, err
	}
	routes, err := manifest.Build(m, manifest.Controllers(mount.Controllers()), templateFS(cfg))
	if err != nil {
		a.Close()
		return nil, err
	}

	a.manifest = m
	a.router = router.New(opts...)
	a.router.RegisterRoutes(routes)
	if _, ok := a.router.Lookup("/"); !ok {
		logger.Warn(`no route registered at "/"; unmatched hashes will fail`)
	}
	return a, nil
}

// Close releases the log file.
func (a *app) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// title is the application title, from the manifest or the configuration.
func (a *app) title() string {
	if a.manifest != nil && a.manifest.Title != "" {
		return a.manifest.Title
	}
	return a.cfg.Server.Title
}

func manifestSource(ctx context.Context, cfg *config.Config) (manifest.Source, error) {
	s3cfg := cfg.Manifest.S3
	if !s3cfg.Enabled() {
		return manifest.FileSource{Path: cfg.Resolve(cfg.Manifest.Path)}, nil
	}
	client, err := manifest.NewS3Client(ctx, manifest.S3Options{
		Region:       s3cfg.Region,
		Endpoint:     s3cfg.Endpoint,
		UsePathStyle: s3cfg.UsePathStyle,
		Anonymous:    s3cfg.Anonymous,
	})
	if err != nil {
		return nil, err
	}
	return &manifest.S3Source{Client: client, Bucket: s3cfg.Bucket, Key: s3cfg.Key}, nil
}

// templateFS returns the template directory, or nil when it does not exist.
func templateFS(cfg *config.Config) fs.FS {
	dir := cfg.Resolve(cfg.Manifest.Templates)
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return os.DirFS(dir)
}
