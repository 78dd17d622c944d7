package appointment

import (
	"context"
	"time"

	"github.com/barberking/booking-api/internal/models"
)

// Repository is the hosted-store capability the booking workflow runs
// against. Handlers stay thin adapters; everything here is mockable.
type Repository interface {
	// -------- Services --------
	GetServices(ctx context.Context) ([]models.Service, error)

	GetService(
		ctx context.Context,
		id string,
	) (*models.Service, error)

	// -------- Busy set --------
	// GetBusyStarts returns start timestamps of pending/confirmed
	// appointments inside [from, to). Derived per request, never cached.
	GetBusyStarts(
		ctx context.Context,
		from time.Time,
		to time.Time,
	) ([]time.Time, error)

	// -------- Appointment --------
	// InsertAppointment persists a new pending appointment. It fails with
	// the slot_taken business error when another non-terminal appointment
	// already starts at the same instant.
	InsertAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	UpdateAppointmentStatus(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForClient(
		ctx context.Context,
		clientID string,
	) ([]models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		status string,
		day *time.Time,
	) ([]models.Appointment, error)

	// -------- Profiles --------
	GetProfile(
		ctx context.Context,
		id string,
	) (*models.Profile, error)

	UpdateProfileContact(
		ctx context.Context,
		id string,
		fullName string,
		phone string,
	) error

	// -------- Archive / history --------
	ArchiveTerminal(
		ctx context.Context,
		now time.Time,
	) (int64, error)

	QueryHistory(
		ctx context.Context,
		from time.Time,
	) ([]models.AppointmentHistory, error)
}
