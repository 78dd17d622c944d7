package appointment

import (
	"context"
	"time"

	domain "github.com/barberking/booking-api/internal/domain/appointment"
	"github.com/barberking/booking-api/internal/httperr"
)

type GetAvailability struct {
	repo  domain.Repository
	hours domain.WorkingHours
}

func NewGetAvailability(
	repo domain.Repository,
	hours domain.WorkingHours,
) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		hours: hours,
	}
}

// Execute returns the offerable start times for a service on a calendar day.
// The busy set is recomputed from the active table on every call; now is
// injected so the past-slot cutoff is testable.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	serviceID string,
	day time.Time,
	now time.Time,
) ([]time.Time, error) {

	service, err := uc.repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	busy, err := uc.repo.GetBusyStarts(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(service.DurationMinutes) * time.Minute
	return domain.AvailableSlots(dayStart, duration, uc.hours, busy, now), nil
}
