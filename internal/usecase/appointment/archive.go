package appointment

import (
	"context"
	"time"

	"github.com/barberking/booking-api/internal/audit"
	domain "github.com/barberking/booking-api/internal/domain/appointment"
)

// ArchiveAppointments moves settled appointments into the history table so
// the active working set stays small. Re-running with nothing to move is a
// no-op that reports zero.
type ArchiveAppointments struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewArchiveAppointments(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
) *ArchiveAppointments {
	return &ArchiveAppointments{
		repo:  repo,
		audit: auditDisp,
	}
}

func (uc *ArchiveAppointments) Execute(
	ctx context.Context,
	actorID *string,
) (int64, error) {

	count, err := uc.repo.ArchiveTerminal(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID: actorID,
		Action:  "appointments_archived",
		Entity:  "appointment",
		Metadata: map[string]any{
			"archived_count": count,
		},
	})

	return count, nil
}
