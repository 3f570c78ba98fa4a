package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/asafarviv55/attendance-system-backend/internal/reports"
	"github.com/asafarviv55/attendance-system-backend/internal/service"
)

type Scheduler struct {
	cron       *cron.Cron
	attendance *service.AttendanceService
	exporter   *reports.Exporter
	log        zerolog.Logger
}

func NewScheduler(attendance *service.AttendanceService, exporter *reports.Exporter, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:       c,
		attendance: attendance,
		exporter:   exporter,
		log:        log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 30 2 * * *", s.sweepStaleSessions); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 0 3 1 * *", s.exportLastMonth); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for running jobs to finish, up to a bounded grace period.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler jobs still running at shutdown")
	}
}

func (s *Scheduler) sweepStaleSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	closed, err := s.attendance.SweepStaleSessions(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("stale session sweep failed")
		return
	}
	if closed > 0 {
		s.log.Info().Int("closed", closed).Msg("stale sessions closed")
	}
}

func (s *Scheduler) exportLastMonth() {
	if s.exporter == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	lastMonth := time.Now().UTC().AddDate(0, -1, 0)
	if err := s.exporter.ExportMonth(ctx, lastMonth.Year(), lastMonth.Month()); err != nil {
		s.log.Error().Err(err).Msg("attendance export failed")
	}
}
