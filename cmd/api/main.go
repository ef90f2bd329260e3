package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crm_backend/internal/adapters"
	"crm_backend/internal/auth"
	"crm_backend/internal/conversion"
	"crm_backend/internal/customers"
	"crm_backend/internal/dashboard"
	apphttp "crm_backend/internal/http"
	"crm_backend/internal/http/router"
	"crm_backend/internal/leads"
	"crm_backend/internal/notes"
	"crm_backend/internal/notification"
	"crm_backend/internal/offers"
	"crm_backend/internal/refresh"
	"crm_backend/migrations"
	"crm_backend/platform/config"
	"crm_backend/platform/db"
	"crm_backend/platform/events"
	"crm_backend/platform/logger"
	"crm_backend/platform/validator"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.Env)
	log.Info("starting crm backend", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := withRetry(ctx, log, "migrations", func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS)
	}); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()

	leadsModule := leads.NewModule(pool, eventBus, cfg, log, val)
	customersModule := customers.NewModule(pool, eventBus, val)
	offersModule := offers.NewModule(pool, eventBus, val)
	notesModule := notes.NewModule(pool, eventBus, val)

	conversionModule := conversion.NewModule(
		adapters.NewConversionLeadStore(leadsModule.Repository()),
		adapters.NewConversionCustomerStore(customersModule.Repository()),
		eventBus, log, val,
	)

	customerSource := adapters.NewDashboardCustomerSource(customersModule.Repository())
	dashboardModule := dashboard.NewModule(dashboard.Sources{
		Leads:     adapters.NewDashboardLeadSource(leadsModule.Repository()),
		Customers: customerSource,
		Offers:    adapters.NewDashboardOfferSource(offersModule.Repository()),
		Notes:     adapters.NewDashboardNoteSource(notesModule.Repository()),
		Names:     customerSource,
	}, log)

	refreshModule := refresh.NewModule(eventBus)
	authModule := auth.NewModule(pool, cfg, log, val)

	// Subscribes to cleanup failures, no routes.
	notification.NewModule(eventBus, cfg, log)

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: pool,
		Modules: []apphttp.Module{
			authModule,
			leadsModule,
			customersModule,
			offersModule,
			notesModule,
			conversionModule,
			dashboardModule,
			refreshModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		log.Error("http server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	log.Info("server stopped")
}

// withRetry runs op a few times with backoff, for steps that race the
// database becoming reachable at boot.
func withRetry(ctx context.Context, log *logger.Logger, name string, op func() error) error {
	const attempts = 5
	var err error
	for i := 1; i <= attempts; i++ {
		if err = op(); err == nil {
			return nil
		}
		log.Warn("startup step failed, retrying",
			"step", name, "attempt", i, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(i) * time.Second):
		}
	}
	return err
}
