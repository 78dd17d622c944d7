package scheduler

import (
	"context"
	"log"

	cron "github.com/robfig/cron/v3"

	"github.com/barberking/booking-api/internal/timezone"
	ucAppointment "github.com/barberking/booking-api/internal/usecase/appointment"
)

// Scheduler owns the background jobs that keep the dataset healthy. Jobs run
// in the shop timezone so "nightly" means the shop's night, not the host's.
type Scheduler struct {
	cron      *cron.Cron
	archiveUC *ucAppointment.ArchiveAppointments
}

func New(shopTimezone string, archiveUC *ucAppointment.ArchiveAppointments) *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(timezone.Location(shopTimezone)),
		),
		archiveUC: archiveUC,
	}
}

func (s *Scheduler) Start() {
	// Archive settled appointments every night at 03:30.
	if _, err := s.cron.AddFunc("30 3 * * *", s.runArchive); err != nil {
		log.Println("failed to register archive job:", err)
	}

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runArchive() {
	count, err := s.archiveUC.Execute(context.Background(), nil)
	if err != nil {
		log.Println("nightly archive failed:", err)
		return
	}

	if count > 0 {
		log.Printf("nightly archive moved %d appointments", count)
	}
}
