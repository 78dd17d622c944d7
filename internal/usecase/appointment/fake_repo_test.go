package appointment

import (
	"context"
	"time"

	"github.com/barberking/booking-api/internal/audit"
	"github.com/barberking/booking-api/internal/httperr"
	"github.com/barberking/booking-api/internal/models"
	"github.com/barberking/booking-api/internal/notify"
)

// fakeRepo is an in-memory stand-in for the gorm repository. Only the
// behavior the use cases exercise is implemented.
type fakeRepo struct {
	services     map[string]*models.Service
	profiles     map[string]*models.Profile
	appointments map[string]*models.Appointment
	history      []models.AppointmentHistory

	contactUpdates []string // "id/name/phone" in call order
	archiveCalls   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services:     map[string]*models.Service{},
		profiles:     map[string]*models.Profile{},
		appointments: map[string]*models.Appointment{},
	}
}

func (f *fakeRepo) GetServices(ctx context.Context) ([]models.Service, error) {
	out := make([]models.Service, 0, len(f.services))
	for _, s := range f.services {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeRepo) GetService(ctx context.Context, id string) (*models.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	return s, nil
}

func (f *fakeRepo) GetBusyStarts(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	var busy []time.Time
	for _, ap := range f.appointments {
		if ap.Status != "pending" && ap.Status != "confirmed" {
			continue
		}
		if !ap.StartTime.Before(from) && ap.StartTime.Before(to) {
			busy = append(busy, ap.StartTime)
		}
	}
	return busy, nil
}

func (f *fakeRepo) InsertAppointment(ctx context.Context, ap *models.Appointment) error {
	for _, existing := range f.appointments {
		if existing.StartTime.Equal(ap.StartTime) &&
			(existing.Status == "pending" || existing.Status == "confirmed") {
			return httperr.ErrBusiness("slot_taken")
		}
	}
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	ap, ok := f.appointments[id]
	if !ok {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	cp := *ap
	if p, ok := f.profiles[ap.ClientID]; ok {
		cp.Client = *p
	}
	if s, ok := f.services[ap.ServiceID]; ok {
		cp.Service = *s
	}
	return &cp, nil
}

func (f *fakeRepo) UpdateAppointmentStatus(ctx context.Context, ap *models.Appointment) error {
	stored, ok := f.appointments[ap.ID]
	if !ok {
		return httperr.ErrBusiness("appointment_not_found")
	}
	stored.Status = ap.Status
	stored.CancellationReason = ap.CancellationReason
	return nil
}

func (f *fakeRepo) ListAppointmentsForClient(ctx context.Context, clientID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.ClientID == clientID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAppointments(ctx context.Context, status string, day *time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if status != "" && ap.Status != status {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

func (f *fakeRepo) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, httperr.ErrBusiness("profile_not_found")
	}
	return p, nil
}

func (f *fakeRepo) UpdateProfileContact(ctx context.Context, id, fullName, phone string) error {
	f.contactUpdates = append(f.contactUpdates, id+"/"+fullName+"/"+phone)
	if p, ok := f.profiles[id]; ok {
		p.FullName = fullName
		p.Phone = phone
	}
	return nil
}

func (f *fakeRepo) ArchiveTerminal(ctx context.Context, now time.Time) (int64, error) {
	f.archiveCalls++

	var moved int64
	for id, ap := range f.appointments {
		if ap.Status != "completed" && ap.Status != "cancelled" {
			continue
		}

		row := models.AppointmentHistory{
			ID:         ap.ID,
			ClientID:   ap.ClientID,
			ServiceID:  ap.ServiceID,
			StartTime:  ap.StartTime,
			Status:     ap.Status,
			ArchivedAt: now,
		}
		if s, ok := f.services[ap.ServiceID]; ok {
			row.ServiceName = s.Name
			row.Price = s.Price
		}
		f.history = append(f.history, row)
		delete(f.appointments, id)
		moved++
	}
	return moved, nil
}

func (f *fakeRepo) QueryHistory(ctx context.Context, from time.Time) ([]models.AppointmentHistory, error) {
	var out []models.AppointmentHistory
	for _, row := range f.history {
		if !row.StartTime.Before(from) {
			out = append(out, row)
		}
	}
	return out, nil
}

// fakeOutbox records enqueued messages instead of hitting the database.
type fakeOutbox struct {
	messages []fakeMessage
	err      error
}

type fakeMessage struct {
	chatID  string
	text    string
	buttons []notify.Button
}

func (f *fakeOutbox) Enqueue(ctx context.Context, chatID, text string, buttons []notify.Button) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, fakeMessage{chatID: chatID, text: text, buttons: buttons})
	return nil
}

// discardSink keeps the audit dispatcher off the database in tests.
type discardSink struct{}

func (discardSink) Log(*string, string, string, *string, any) error { return nil }

func testAudit() *audit.Dispatcher {
	return audit.NewDispatcher(discardSink{})
}
