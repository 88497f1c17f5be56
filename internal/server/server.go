// Package server boots the storefront: config, logging, cache, storage,
// the in-memory store, background workers, and the HTTP listener.
package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	appevents "github.com/shashiranjanraj/launchpad/app/events"
	"github.com/shashiranjanraj/launchpad/app/jobs"
	"github.com/shashiranjanraj/launchpad/app/routes"
	"github.com/shashiranjanraj/launchpad/app/services"
	"github.com/shashiranjanraj/launchpad/config"
	"github.com/shashiranjanraj/launchpad/internal/store"
	"github.com/shashiranjanraj/launchpad/pkg/cache"
	"github.com/shashiranjanraj/launchpad/pkg/event"
	"github.com/shashiranjanraj/launchpad/pkg/logger"
	"github.com/shashiranjanraj/launchpad/pkg/notification"
	"github.com/shashiranjanraj/launchpad/pkg/queue"
	"github.com/shashiranjanraj/launchpad/pkg/schedule"
	"github.com/shashiranjanraj/launchpad/pkg/storage"
	"github.com/shashiranjanraj/launchpad/pkg/workerpool"
	"github.com/shashiranjanraj/launchpad/pkg/ws"
)

const (
	queueWorkers    = 4
	eventPoolSize   = 16
	shutdownTimeout = 10 * time.Second
)

// Start boots everything and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	flushLogs := logger.AttachMongo(config.LogMongoURI())
	defer flushLogs()

	// Redis is optional: without it the cache no-ops and the queue stays
	// on the in-process driver.
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, caching and queue persistence disabled", "error", err)
	} else {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}

	storage.Connect()
	if err := SeedAssets(); err != nil {
		logger.Warn("asset seeding failed", "error", err)
	}
	queue.PersistFailedJobs()
	notification.SetSlackWebhook(config.Get("SLACK_WEBHOOK_URL", ""))

	st := store.New()
	st.Seed()
	if err := st.SeedDemoCart(config.DemoUserID()); err != nil {
		return err
	}

	hub := ws.NewHub()
	go hub.Run()

	broker := appevents.NewBroker()
	appevents.RegisterListeners(hub, broker)

	pool := workerpool.New(eventPoolSize)
	defer pool.Shutdown()
	event.UsePool(pool)

	jobs.Register()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue.StartWorkers(ctx, queueWorkers)

	catalog := services.NewCatalog(st)
	catalog.RewarmTrending()
	schedule.Every(5).Minutes().Name("rewarm-trending").Run(catalog.RewarmTrending)
	go schedule.Start(ctx)

	r, err := routes.Register(routes.Deps{Store: st, Hub: hub, Broker: broker})
	if err != nil {
		return err
	}

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("launchpad listening", "addr", addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	event.Flush()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
