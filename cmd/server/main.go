package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/config"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/jitter"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/repository/csvstore"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/repository/sheets"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/scheduler"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/server/handlers"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/server/router"
	analyticssvc "github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/service/analytics"
	decisionsvc "github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/service/decision"
	forecastingsvc "github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/service/forecasting"
	maintenancesvc "github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/service/maintenance"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/pkg/clients/alert"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel, cfg.Server.LogConsole))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store := csvstore.New(cfg.Data.Dir, cfg.Data.Seed, cfg.Data.Autosave, baseLogger.Named("repo.csvstore"))
	store.LoadOrGenerate()

	// One shared noise stream feeds every heuristic, seeded from the clock so
	// dataset refreshes do not replay the same prediction noise.
	noise := jitter.New(time.Now().UnixNano())

	maintenanceSvc := maintenancesvc.NewService(noise)
	forecastingSvc := forecastingsvc.NewService(noise)
	decisionSvc := decisionsvc.NewService(noise)
	analyticsSvc := analyticssvc.NewService(noise)
	sessions := decisionsvc.NewSessionManager()

	var notifier alert.Notifier
	if cfg.AlertsEnabled() {
		notifier = alert.NewWebhookClient(cfg.Alerts)
		baseLogger.Info("risk alert webhook enabled")
	} else {
		baseLogger.Warn("alert webhook url missing, risk alerts disabled")
	}

	var exporter sheets.Exporter
	if cfg.SheetsEnabled() {
		sheetExporter, err := sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		exporter = sheetExporter
		baseLogger.Info("sheets recommendation export enabled")
	}

	h := handlers.New(
		store,
		maintenanceSvc,
		forecastingSvc,
		decisionSvc,
		analyticsSvc,
		sessions,
		cfg.Forecast.HorizonDays,
		baseLogger.Named("handlers.dashboard"),
	)
	engine := router.New(h, baseLogger.Named("router"))

	// Initialize Scheduler
	sched := scheduler.NewScheduler(*cfg, store, decisionSvc, notifier, exporter, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
