package infra

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"stockfolio/internal/service"
)

// Scheduler runs the periodic ledger audit in the background.
type Scheduler struct {
	cron     *cron.Cron
	auditSvc *service.AuditService
	schedule string
}

// NewScheduler creates a new scheduler. schedule is a standard cron
// expression; the audit defaults to hourly when empty.
func NewScheduler(auditSvc *service.AuditService, schedule string) *Scheduler {
	if schedule == "" {
		schedule = "0 * * * *"
	}
	return &Scheduler{
		cron:     cron.New(),
		auditSvc: auditSvc,
		schedule: schedule,
	}
}

// Start registers the audit job and starts the cron scheduler.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx := context.Background()
		if _, err := s.auditSvc.AuditAll(ctx); err != nil {
			log.Printf("ERROR: Scheduled ledger audit failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("[OK] Ledger audit scheduled (%s)", s.schedule)
	return nil
}

// Stop stops the scheduler gracefully
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[OK] Scheduler stopped")
}

// RunNow triggers one audit pass immediately.
func (s *Scheduler) RunNow(ctx context.Context) error {
	_, err := s.auditSvc.AuditAll(ctx)
	return err
}
