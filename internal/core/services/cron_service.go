package services

import (
	"log"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled background jobs: a periodic overstay
// sweep and a nightly consecutive-visit pattern scan. Both jobs are
// read-only over the directory; they log findings and never mutate
// visit records.
type CronService struct {
	cron           *cron.Cron
	visitorService *VisitorService
	patternService *PatternService
}

// NewCronService creates a new cron service
func NewCronService(visitorService *VisitorService, patternService *PatternService) *CronService {
	return &CronService{
		cron:           cron.New(),
		visitorService: visitorService,
		patternService: patternService,
	}
}

// Start registers the jobs and launches the scheduler
func (s *CronService) Start() {
	// 1. Overstay sweep: every minute
	if _, err := s.cron.AddFunc("@every 1m", s.sweepOverstays); err != nil {
		log.Printf("❌ Failed to schedule overstay sweep: %v", err)
	}

	// 2. Pattern scan: nightly at 02:00
	if _, err := s.cron.AddFunc("0 2 * * *", s.scanPatterns); err != nil {
		log.Printf("❌ Failed to schedule pattern scan: %v", err)
	}

	s.cron.Start()
	log.Println("🚀 CronService started (overstay sweep @every 1m, pattern scan @ 02:00)")
}

// Stop halts the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) sweepOverstays() {
	overstayed := s.visitorService.OverstayedVisitors()
	for _, v := range overstayed {
		log.Printf("⚠️ Overstay: visitor %s (%s) at %s unit %s, expired %s",
			v.ID, v.FullName(), v.PropertyName, v.ResidentUnit,
			v.ExpirationTime.Format("2006-01-02 15:04"))
	}
	if len(overstayed) > 0 {
		log.Printf("⚠️ Overstay sweep: %d visitor(s) past expected check-out", len(overstayed))
	}
}

func (s *CronService) scanPatterns() {
	alerts := s.patternService.ConsecutiveVisitAlerts()
	for _, a := range alerts {
		log.Printf("🚨 Visit pattern: %s visiting %s (%s unit %s) on %d consecutive days",
			a.VisitorName, a.ResidentName, a.PropertyName, a.UnitNumber, a.ConsecutiveDays)
	}
	log.Printf("📝 Pattern scan complete: %d alert(s)", len(alerts))
}
