package appointment

import (
	"context"
	"fmt"
	"log"

	"github.com/barberking/booking-api/internal/audit"
	domain "github.com/barberking/booking-api/internal/domain/appointment"
	"github.com/barberking/booking-api/internal/httperr"
	"github.com/barberking/booking-api/internal/models"
	"github.com/barberking/booking-api/internal/outbox"
)

// ======================================================
// INPUT
// ======================================================

type TransitionInput struct {
	AppointmentID string
	Requested     string

	ActorID   string
	ActorRole string

	Reason string
}

// ======================================================
// USE CASE
// ======================================================

// TransitionAppointment is the single gate for status changes. Notification
// delivery is queued, not awaited: the persisted status is authoritative
// whether or not the client ever sees the message.
type TransitionAppointment struct {
	repo   domain.Repository
	outbox outbox.Enqueuer
	audit  *audit.Dispatcher
}

func NewTransitionAppointment(
	repo domain.Repository,
	ob outbox.Enqueuer,
	auditDisp *audit.Dispatcher,
) *TransitionAppointment {
	return &TransitionAppointment{
		repo:   repo,
		outbox: ob,
		audit:  auditDisp,
	}
}

func (uc *TransitionAppointment) Execute(
	ctx context.Context,
	in TransitionInput,
) (*models.Appointment, error) {

	requested, err := domain.ParseStatus(in.Requested)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	isOwner := ap.ClientID == in.ActorID

	if err := domain.Authorize(requested, in.ActorRole, isOwner); err != nil {
		return nil, err
	}
	if err := domain.ValidateReason(requested, in.ActorRole, isOwner, in.Reason); err != nil {
		return nil, err
	}
	if err := domain.CanLeave(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	ap.Status = string(requested)
	if requested == domain.StatusCancelled && in.Reason != "" {
		ap.CancellationReason = in.Reason
	}

	if err := uc.repo.UpdateAppointmentStatus(ctx, ap); err != nil {
		return nil, err
	}

	if requested == domain.StatusConfirmed || requested == domain.StatusCancelled {
		uc.notifyClient(ctx, ap, requested)
	}

	// Operator callbacks have no profile behind them; audit those anonymously.
	var actorID *string
	if in.ActorID != "" {
		actorID = &in.ActorID
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "appointment_" + string(requested),
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

// notifyClient queues the decision message for the client's registered chat.
// Clients without one get an audit entry so staff can reach out by phone.
func (uc *TransitionAppointment) notifyClient(
	ctx context.Context,
	ap *models.Appointment,
	status domain.Status,
) {
	serviceName := ap.Service.Name
	if serviceName == "" {
		serviceName = "BarberKing"
	}

	if ap.Client.TelegramChatID == "" {
		uc.audit.Dispatch(audit.Event{
			Action:   "client_unreachable",
			Entity:   "appointment",
			EntityID: &ap.ID,
			Metadata: map[string]any{
				"status": string(status),
				"phone":  ap.Client.Phone,
			},
		})
		return
	}

	var text string
	if status == domain.StatusConfirmed {
		text = fmt.Sprintf("Tu cita para %s fue confirmada.", serviceName)
	} else {
		text = fmt.Sprintf("Tu cita para %s fue cancelada.", serviceName)
	}

	if err := uc.outbox.Enqueue(ctx, ap.Client.TelegramChatID, text, nil); err != nil {
		log.Println("failed to enqueue client notification:", err)
	}
}
