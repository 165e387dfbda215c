// Package scheduler runs the background jobs: the hourly factory risk
// check that escalates through the alert webhook, and the daily dataset
// snapshot that persists the CSVs and exports recommendations.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/config"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/repository/csvstore"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/repository/sheets"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/service/decision"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/pkg/clients/alert"
)

// jobTimeout bounds one background job run.
const jobTimeout = 2 * time.Minute

// Scheduler manages the cron-driven background jobs. The notifier and
// exporter are optional; jobs degrade to logging when they are absent.
type Scheduler struct {
	cron      *cron.Cron
	store     *csvstore.Store
	decisions *decision.Service
	notifier  alert.Notifier
	exporter  sheets.Exporter
	cfg       config.Config
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance. Jobs fire in the
// configured timezone so "daily at 20:00" means factory-local evenings.
func NewScheduler(cfg config.Config, store *csvstore.Store, decisions *decision.Service, notifier alert.Notifier, exporter sheets.Exporter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, falling back to local",
			zap.String("timezone", cfg.Scheduler.Timezone),
			zap.Error(err))
		loc = time.Local
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		store:     store,
		decisions: decisions,
		notifier:  notifier,
		exporter:  exporter,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler",
		zap.String("alert_cron", s.cfg.Scheduler.AlertCron),
		zap.String("snapshot_cron", s.cfg.Scheduler.SnapshotCron))

	if _, err := s.cron.AddFunc(s.cfg.Scheduler.AlertCron, s.checkRiskAlert); err != nil {
		s.logger.Error("failed to schedule risk alert job", zap.Error(err))
	}

	if _, err := s.cron.AddFunc(s.cfg.Scheduler.SnapshotCron, s.snapshotDatasets); err != nil {
		s.logger.Error("failed to schedule snapshot job", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the cron loop and waits for any running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// checkRiskAlert computes the factory risk score and escalates through the
// webhook when it crosses the configured threshold.
func (s *Scheduler) checkRiskAlert() {
	ds := s.store.Dataset()
	if ds == nil {
		s.logger.Warn("risk check skipped, dataset not initialized")
		return
	}

	summary := s.decisions.Summarize(ds)
	if summary.RiskScore < s.cfg.Alerts.RiskThreshold {
		s.logger.Debug("risk below alert threshold",
			zap.Float64("risk_score", summary.RiskScore),
			zap.Float64("threshold", s.cfg.Alerts.RiskThreshold))
		return
	}

	if s.notifier == nil {
		s.logger.Warn("risk above threshold but no alert webhook configured",
			zap.Float64("risk_score", summary.RiskScore))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	payload := alert.RiskAlert{
		Title: "Factory risk elevated",
		Message: fmt.Sprintf("Risk score %.0f crossed the alert threshold (%.0f): %d critical machine(s), %d low-stock item(s)",
			summary.RiskScore, s.cfg.Alerts.RiskThreshold, summary.CriticalMachines, summary.LowStockItems),
		Severity:         string(summary.RiskStatus),
		RiskScore:        summary.RiskScore,
		CriticalMachines: summary.CriticalMachines,
		LowStockItems:    summary.LowStockItems,
		Timestamp:        time.Now(),
	}

	if err := s.notifier.SendRiskAlert(ctx, payload); err != nil {
		s.logger.Error("failed to send risk alert", zap.Error(err))
		return
	}

	s.logger.Info("risk alert sent", zap.Float64("risk_score", summary.RiskScore))
}

// snapshotDatasets persists the CSV snapshot and, when the sheets export is
// configured, appends a fresh recommendation pass to the spreadsheet.
func (s *Scheduler) snapshotDatasets() {
	s.logger.Info("snapshotting datasets")

	if err := s.store.Save(); err != nil {
		s.logger.Error("failed saving dataset snapshot", zap.Error(err))
	}

	if s.exporter == nil {
		return
	}

	ds := s.store.Dataset()
	if ds == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	result := s.decisions.Generate(ds)
	if err := s.exporter.AppendRecommendations(ctx, result.Recommendations, result.GeneratedAt); err != nil {
		s.logger.Error("failed exporting recommendations to sheet", zap.Error(err))
		return
	}

	s.logger.Info("recommendations exported to sheet", zap.Int("count", len(result.Recommendations)))
}
