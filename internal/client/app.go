package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MKhiriev/go-chat-sync/internal/adapter"
	"github.com/MKhiriev/go-chat-sync/internal/config"
	handler "github.com/MKhiriev/go-chat-sync/internal/handler/http"
	"github.com/MKhiriev/go-chat-sync/internal/logger"
	"github.com/MKhiriev/go-chat-sync/internal/metrics"
	"github.com/MKhiriev/go-chat-sync/internal/server"
	"github.com/MKhiriev/go-chat-sync/internal/service"
	"github.com/MKhiriev/go-chat-sync/internal/store"
	"github.com/MKhiriev/go-chat-sync/internal/updates"
	"github.com/MKhiriev/go-chat-sync/internal/workers"
)

type App struct {
	engine   *updates.Engine
	session  service.SessionService
	storages *store.ClientStorages
	events   *updates.ChanNotifier
	workers  *workers.Workers

	logger *logger.Logger
}

// NewApp assembles the client around storages and updatesAdapter. The push
// stream and the local HTTP endpoint are added only when their addresses are
// configured.
func NewApp(cfg *config.ClientConfig, storages *store.ClientStorages, updatesAdapter adapter.UpdatesAdapter, version string, log *logger.Logger, opts ...updates.Option) (*App, error) {
	log.Info().Msg("creating client app...")

	if cfg.App.Token != "" {
		updatesAdapter.SetToken(cfg.App.Token)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	events := updates.NewChanNotifier(cfg.Sync.EventBuffer, log.Component("events"))

	opts = append([]updates.Option{
		updates.WithMetrics(metrics.NewSyncMetrics(registry)),
		updates.WithNotifier(events),
	}, opts...)
	engine := updates.NewEngine(updatesAdapter, storages.Cache, service.NewSyncConfig(cfg), log.Component("engine"), opts...)

	session := service.NewSessionService(engine, storages.State, log.Component("session"))

	app := &App{
		engine:   engine,
		session:  session,
		storages: storages,
		events:   events,
		logger:   log,
	}

	app.workers = workers.New(
		engine,
		service.NewStateFlushJob(session, cfg.Workers.StateFlushInterval, nil, log.Component("flush")),
		workers.Func(app.consumeEvents),
	)

	if cfg.Adapter.PushAddress != "" {
		push, err := adapter.NewPushStream(cfg.Adapter, updatesAdapter, engine, log.Component("push"))
		if err != nil {
			return nil, fmt.Errorf("create push stream: %w", err)
		}
		app.workers.Add(push)
	}

	if cfg.App.MetricsAddress != "" {
		h := handler.NewHandler(engine, registry, version, log.Component("http"))
		srv, err := server.NewServer(h.Init(), cfg.App.MetricsAddress, log.Component("http"))
		if err != nil {
			return nil, fmt.Errorf("create http server: %w", err)
		}
		app.workers.Add(srv)
	}

	return app, nil
}

// Run restores the saved positions and runs every component until ctx is
// cancelled. When the server revokes the session the saved state is dropped
// and the revocation error is returned.
func (a *App) Run(ctx context.Context) error {
	if err := a.session.Restore(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	a.logger.Info().
		Str("func", "App.Run").
		Str("session_id", a.engine.SessionID()).
		Msg("client started")

	err := a.workers.Run(ctx)
	if errors.Is(err, updates.ErrSessionRevoked) {
		a.logger.Warn().Str("func", "App.Run").Err(err).Msg("session revoked, dropping sync state")
		if rerr := a.revoke(context.WithoutCancel(ctx)); rerr != nil {
			return errors.Join(err, rerr)
		}
		return err
	}
	if err != nil {
		return fmt.Errorf("client run: %w", err)
	}

	a.logger.Info().Str("func", "App.Run").Int64("dropped_events", a.events.Dropped()).Msg("client stopped")
	return nil
}

func (a *App) revoke(ctx context.Context) error {
	a.storages.Cache.Forget()
	return a.session.Revoke(ctx)
}
