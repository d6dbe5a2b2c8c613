package daemon

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/calma-app/calma/internal/api"
	"github.com/calma-app/calma/internal/app/chat"
	"github.com/calma-app/calma/internal/app/checkout"
	"github.com/calma-app/calma/internal/app/wellness"
	"github.com/calma-app/calma/internal/infra/observability"
	"github.com/calma-app/calma/internal/infra/reminder"
	"github.com/calma-app/calma/internal/infra/sqlite"
)

// sweepInterval is how often idle sessions are collected.
const sweepInterval = 10 * time.Minute

// Daemon is the running calma service.
type Daemon struct {
	cfg      Config
	db       *sqlite.DB
	server   *api.Server
	http     *http.Server
	reminder *reminder.Scheduler
}

// New builds a daemon from cfg. Storage is opened eagerly so a broken data
// directory fails fast.
func New(cfg Config) (*Daemon, error) {
	d := &Daemon{cfg: cfg}

	if cfg.Storage.Enabled {
		db, err := sqlite.Open(cfg.Storage.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		d.db = db
	}

	deps := wellness.Deps{Recorder: observability.Recorder{}}
	sessions := api.NewSessionStore(cfg.SessionSettings(), deps, cfg.Session.MaxSessions)

	d.server = api.NewServer(
		sessions,
		chat.NewAssistant(cfg.ChatSettings(), nil, nil),
		checkout.NewProcessor(cfg.CheckoutSettings(), nil),
	)
	d.server.SetTimeout(parseDuration(cfg.API.RequestTimeout, 30*time.Second))
	d.server.SetTracer(observability.NewTracer(observability.TracerConfig{
		Enabled:  cfg.Metrics.Enabled,
		MaxSpans: cfg.Metrics.MaxSpans,
	}))
	if cfg.Metrics.Enabled {
		d.server.EnableMetrics()
	}
	if d.db != nil {
		d.server.SetStore(d.db)
	}

	d.reminder = reminder.New(cfg.Reminder.At, cfg.Location(), sessions.Targets)
	ttl := parseDuration(cfg.Session.IdleTTL, 24*time.Hour)
	if ttl > 0 {
		if err := d.reminder.Every(sweepInterval, "session sweep", func() { sessions.Sweep(ttl) }); err != nil {
			d.closeStorage()
			return nil, err
		}
	}

	d.http = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           d.server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return d, nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (d *Daemon) Handler() http.Handler { return d.http.Handler }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (d *Daemon) Run(ctx context.Context) error {
	if d.cfg.Reminder.Enabled {
		if err := d.reminder.Start(); err != nil {
			return err
		}
	}
	defer d.reminder.Stop()
	defer d.closeStorage()
	defer d.server.Sessions().CloseAll()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[daemon] listening on http://%s", d.http.Addr)
		if err := d.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("[daemon] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := d.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (d *Daemon) closeStorage() {
	if d.db == nil {
		return
	}
	if err := d.db.Close(); err != nil {
		log.Printf("[daemon] close storage: %v", err)
	}
	d.db = nil
}
