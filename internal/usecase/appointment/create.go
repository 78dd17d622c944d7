package appointment

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/barberking/booking-api/internal/audit"
	domain "github.com/barberking/booking-api/internal/domain/appointment"
	"github.com/barberking/booking-api/internal/httperr"
	"github.com/barberking/booking-api/internal/models"
	"github.com/barberking/booking-api/internal/notify"
	"github.com/barberking/booking-api/internal/outbox"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID  string
	ServiceID string
	Start     time.Time

	// Optional contact data; when present the profile is refreshed before
	// the appointment is written.
	ClientName  string
	ClientPhone string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo      domain.Repository
	outbox    outbox.Enqueuer
	audit     *audit.Dispatcher
	adminChat string
}

func NewCreateAppointment(
	repo domain.Repository,
	ob outbox.Enqueuer,
	auditDisp *audit.Dispatcher,
	adminChat string,
) *CreateAppointment {
	return &CreateAppointment{
		repo:      repo,
		outbox:    ob,
		audit:     auditDisp,
		adminChat: adminChat,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if _, err := uuid.Parse(in.ServiceID); err != nil {
		return nil, httperr.ErrBusiness("invalid_service")
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	// Refresh contact data first; a failure here never blocks the booking.
	if in.ClientName != "" && in.ClientPhone != "" {
		if err := uc.repo.UpdateProfileContact(
			ctx, in.ClientID, in.ClientName, in.ClientPhone,
		); err != nil {
			log.Println("profile update failed:", err)
		}
	}

	ap := &models.Appointment{
		ID:        uuid.NewString(),
		ClientID:  in.ClientID,
		ServiceID: service.ID,
		StartTime: in.Start,
		Status:    string(domain.StatusPending),
	}

	if err := uc.repo.InsertAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.notifyOperator(ctx, ap, service)

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.ClientID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

// notifyOperator queues the operator message asking to confirm or reject the
// new booking. Skipped entirely when no operator channel is configured.
func (uc *CreateAppointment) notifyOperator(
	ctx context.Context,
	ap *models.Appointment,
	service *models.Service,
) {
	if uc.adminChat == "" {
		return
	}

	clientName := "Cliente BarberKing"
	clientPhone := ""
	if profile, err := uc.repo.GetProfile(ctx, ap.ClientID); err == nil {
		if profile.FullName != "" {
			clientName = profile.FullName
		}
		if profile.Phone != "" {
			clientPhone = "\nTel: " + profile.Phone
		}
	}

	text := fmt.Sprintf(
		"*Nueva cita pendiente*\nCliente: %s%s\nServicio: %s\nPrecio: $%.2f\nHora: %s",
		clientName,
		clientPhone,
		service.Name,
		service.Price,
		ap.StartTime.Format("02 Jan 15:04"),
	)

	buttons := []notify.Button{
		{Text: "Aceptar ✂️", CallbackData: "confirm:" + ap.ID},
		{Text: "Rechazar", CallbackData: "cancel:" + ap.ID},
	}

	if err := uc.outbox.Enqueue(ctx, uc.adminChat, text, buttons); err != nil {
		log.Println("failed to enqueue operator notification:", err)
	}
}
