package appointment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberking/booking-api/internal/httperr"
	"github.com/barberking/booking-api/internal/models"
)

func seedService(repo *fakeRepo) *models.Service {
	svc := &models.Service{
		ID:              uuid.NewString(),
		Name:            "Corte clásico",
		Price:           25,
		DurationMinutes: 30,
		Active:          true,
	}
	repo.services[svc.ID] = svc
	return svc
}

func seedClient(repo *fakeRepo) *models.Profile {
	p := &models.Profile{
		ID:       uuid.NewString(),
		FullName: "Ana García",
		Phone:    "+34600111222",
		Role:     models.RoleCustomer,
	}
	repo.profiles[p.ID] = p
	return p
}

func TestCreateAppointment_Success(t *testing.T) {
	repo := newFakeRepo()
	svc := seedService(repo)
	client := seedClient(repo)
	ob := &fakeOutbox{}

	uc := NewCreateAppointment(repo, ob, testAudit(), "admin-chat")

	start := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID:  client.ID,
		ServiceID: svc.ID,
		Start:     start,
	})

	require.NoError(t, err)
	require.NotNil(t, ap)
	assert.Equal(t, "pending", ap.Status)
	assert.True(t, ap.StartTime.Equal(start))
	assert.NotEmpty(t, ap.ID)

	// Operator got the pending notice with both decision buttons.
	require.Len(t, ob.messages, 1)
	msg := ob.messages[0]
	assert.Equal(t, "admin-chat", msg.chatID)
	assert.Contains(t, msg.text, "Nueva cita pendiente")
	assert.Contains(t, msg.text, svc.Name)
	require.Len(t, msg.buttons, 2)
	assert.Equal(t, "confirm:"+ap.ID, msg.buttons[0].CallbackData)
	assert.Equal(t, "cancel:"+ap.ID, msg.buttons[1].CallbackData)
}

func TestCreateAppointment_UnknownService(t *testing.T) {
	repo := newFakeRepo()
	client := seedClient(repo)

	uc := NewCreateAppointment(repo, &fakeOutbox{}, testAudit(), "admin-chat")

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID:  client.ID,
		ServiceID: "not-a-uuid",
		Start:     time.Now().Add(time.Hour),
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_service"))

	_, err = uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID:  client.ID,
		ServiceID: uuid.NewString(),
		Start:     time.Now().Add(time.Hour),
	})
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestCreateAppointment_SlotTaken(t *testing.T) {
	repo := newFakeRepo()
	svc := seedService(repo)
	client := seedClient(repo)

	uc := NewCreateAppointment(repo, &fakeOutbox{}, testAudit(), "admin-chat")

	start := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	in := CreateAppointmentInput{ClientID: client.ID, ServiceID: svc.ID, Start: start}

	_, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))
	assert.Len(t, repo.appointments, 1)
}

func TestCreateAppointment_RefreshesContact(t *testing.T) {
	repo := newFakeRepo()
	svc := seedService(repo)
	client := seedClient(repo)

	uc := NewCreateAppointment(repo, &fakeOutbox{}, testAudit(), "admin-chat")

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID:    client.ID,
		ServiceID:   svc.ID,
		Start:       time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		ClientName:  "Ana G.",
		ClientPhone: "+34600999888",
	})
	require.NoError(t, err)

	require.Len(t, repo.contactUpdates, 1)
	assert.True(t, strings.HasPrefix(repo.contactUpdates[0], client.ID+"/"))
	assert.Equal(t, "Ana G.", repo.profiles[client.ID].FullName)
	assert.Equal(t, "+34600999888", repo.profiles[client.ID].Phone)
}

func TestCreateAppointment_NoOperatorChannel(t *testing.T) {
	repo := newFakeRepo()
	svc := seedService(repo)
	client := seedClient(repo)
	ob := &fakeOutbox{}

	uc := NewCreateAppointment(repo, ob, testAudit(), "")

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID:  client.ID,
		ServiceID: svc.ID,
		Start:     time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Empty(t, ob.messages)
}
