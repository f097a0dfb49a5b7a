package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	statusadapter "github.com/bnema/refocus-cli/internal/adapters/render/status"
	"github.com/bnema/refocus-cli/internal/adapters/repo/document"
	"github.com/bnema/refocus-cli/internal/application"
	"github.com/bnema/refocus-cli/internal/logfields"
	"github.com/bnema/refocus-cli/internal/metrics"
	"github.com/bnema/refocus-cli/internal/ports"
)

type app struct {
	store          *document.Store
	blocking       *application.BlockingService
	sites          *application.SiteService
	profile        ports.ProfileRepository
	prometheus     *metrics.PrometheusRecorder
	metricsFile    string
	statusRenderer func(application.BlockingStatus, []string, statusadapter.RenderOptions) (string, error)
	logger         *slog.Logger
	now            func() time.Time
}

func wireApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg, os.Stderr)

	store, err := document.NewStore(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("wire user data store: %w", err)
	}
	if _, err := store.Load(ctx); err != nil {
		return nil, fmt.Errorf("load user data: %w", err)
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prometheus *metrics.PrometheusRecorder
	metricsFile := cfg.GetString(metricsFileKey)
	if metricsFile != "" {
		prometheus = metrics.NewPrometheusRecorder(nil)
		recorder = prometheus
	}

	blocking, err := application.NewBlockingService(ctx, store, ports.SystemClock{},
		application.WithEnforcer(ports.NoopEnforcer{}),
		application.WithRecorder(recorder),
		application.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("wire blocking session: %w", err)
	}

	return &app{
		store:          store,
		blocking:       blocking,
		sites:          application.NewSiteService(store, recorder),
		profile:        store,
		prometheus:     prometheus,
		metricsFile:    metricsFile,
		statusRenderer: statusadapter.Render,
		logger:         logger,
		now:            time.Now,
	}, nil
}

// flushMetrics refreshes the session gauges and writes the textfile when
// metrics are configured.
func (a *app) flushMetrics(ctx context.Context) error {
	if a.prometheus == nil {
		return nil
	}

	if _, err := a.blocking.RemainingTime(ctx); err != nil {
		return err
	}
	if _, err := a.sites.List(ctx); err != nil {
		return err
	}

	if err := a.prometheus.WriteTextfile(a.metricsFile); err != nil {
		a.logger.Warn("metrics textfile not written", logfields.Path(a.metricsFile), logfields.Error(err))
		return err
	}
	return nil
}
