package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/PizzaTimeVN/pizza-backend/internal/config"
	"github.com/PizzaTimeVN/pizza-backend/internal/repository/sheets"
	"github.com/PizzaTimeVN/pizza-backend/internal/service/notify"
	"github.com/PizzaTimeVN/pizza-backend/internal/service/reporting"
)

const dateLayout = "2006-01-02"

// Scheduler runs the nightly digest: yesterday's revenue and export totals,
// posted to the chat channel and appended to the bookkeeping sheet.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	notifySvc    *notify.Service
	exporter     sheets.Exporter
	cfg          config.ReportingConfig
	logger       *zap.Logger
}

// NewScheduler creates a scheduler in the configured timezone. The exporter
// may be nil when the bookkeeping sheet is not configured.
func NewScheduler(cfg config.ReportingConfig, reportingSvc *reporting.Service, notifySvc *notify.Service, exporter sheets.Exporter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to local", zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.Local
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(loc)),
		reportingSvc: reportingSvc,
		notifySvc:    notifySvc,
		exporter:     exporter,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the digest job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.sendDailyDigest); err != nil {
		s.logger.Error("failed to schedule daily digest", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) sendDailyDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// The digest covers the previous calendar day so evening schedules see a
	// complete day.
	date := time.Now().AddDate(0, 0, -1).Format(dateLayout)
	s.logger.Info("generating daily digest", zap.String("date", date))

	digest, err := s.reportingSvc.DailyDigest(ctx, date)
	if err != nil {
		s.logger.Error("failed to generate daily digest", zap.Error(err))
		return
	}

	if err := s.notifySvc.NotifyDigest(ctx, digest); err != nil {
		s.logger.Error("failed to send daily digest", zap.Error(err))
	}

	if s.exporter != nil {
		if err := s.exporter.AppendDigest(ctx, digest); err != nil {
			s.logger.Error("failed to append digest to sheet", zap.Error(err))
		}
	}
}
