package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/barberking/booking-api/internal/domain/appointment"
	"github.com/barberking/booking-api/internal/models"
)

func TestArchive_MovesSettledOnly(t *testing.T) {
	repo := newFakeRepo()
	seedAppointment(repo, "pending")
	seedAppointment(repo, "confirmed")
	done, _ := seedAppointment(repo, "completed")
	gone, _ := seedAppointment(repo, "cancelled")

	uc := NewArchiveAppointments(repo, testAudit())

	count, err := uc.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	assert.Len(t, repo.appointments, 2)
	require.Len(t, repo.history, 2)

	archived := map[string]bool{}
	for _, row := range repo.history {
		archived[row.ID] = true
		assert.NotEmpty(t, row.ServiceName)
	}
	assert.True(t, archived[done.ID])
	assert.True(t, archived[gone.ID])
}

func TestArchive_SecondRunIsNoop(t *testing.T) {
	repo := newFakeRepo()
	seedAppointment(repo, "completed")

	uc := NewArchiveAppointments(repo, testAudit())

	count, err := uc.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = uc.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func historyRow(start time.Time, status string, price float64) models.AppointmentHistory {
	return models.AppointmentHistory{
		ID:          uuid.NewString(),
		ServiceName: "Corte clásico",
		Price:       price,
		StartTime:   start,
		Status:      status,
	}
}

func TestMonthlyReport_GroupsByMonth(t *testing.T) {
	repo := newFakeRepo()
	now := time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)

	march := time.Date(2026, 3, 5, 11, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 2, 11, 0, 0, 0, time.UTC)

	repo.history = []models.AppointmentHistory{
		historyRow(march, "completed", 25),
		historyRow(march, "completed", 25),
		historyRow(march, "cancelled", 25),
		historyRow(april, "completed", 40),
	}

	uc := NewMonthlyReport(repo)

	rows, err := uc.Execute(context.Background(), 12, now)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Newest month first.
	assert.Equal(t, "2026-04", rows[0].Month)
	assert.Equal(t, 1, rows[0].Completed)
	assert.Equal(t, float64(40), rows[0].Revenue)

	assert.Equal(t, "2026-03", rows[1].Month)
	assert.Equal(t, 2, rows[1].Completed)
	assert.Equal(t, 1, rows[1].Cancelled)
	assert.Equal(t, 3, rows[1].Total)
	assert.Equal(t, float64(50), rows[1].Revenue)
}

func TestMonthlyReport_CancelledEarnsNothing(t *testing.T) {
	repo := newFakeRepo()
	now := time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)

	repo.history = []models.AppointmentHistory{
		historyRow(time.Date(2026, 4, 1, 11, 0, 0, 0, time.UTC), "cancelled", 99),
	}

	uc := NewMonthlyReport(repo)

	rows, err := uc.Execute(context.Background(), 12, now)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, float64(0), rows[0].Revenue)
	assert.Equal(t, 1, rows[0].Cancelled)
	assert.Equal(t, 1, rows[0].Total)
}

func TestMonthlyReport_WindowCutsOldRows(t *testing.T) {
	repo := newFakeRepo()
	now := time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)

	repo.history = []models.AppointmentHistory{
		historyRow(now.Add(-10*24*time.Hour), "completed", 25),
		historyRow(now.Add(-100*24*time.Hour), "completed", 25),
	}

	uc := NewMonthlyReport(repo)

	// One month back = 30 days: only the recent row survives the cut.
	rows, err := uc.Execute(context.Background(), 1, now)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Total)
}

func TestGetAvailability_ExcludesBusy(t *testing.T) {
	repo := newFakeRepo()
	svc := seedService(repo)
	client := seedClient(repo)

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	repo.appointments["x"] = &models.Appointment{
		ID:        "x",
		ClientID:  client.ID,
		ServiceID: svc.ID,
		StartTime: day.Add(11 * time.Hour),
		Status:    "confirmed",
	}

	uc := NewGetAvailability(repo, domain.WorkingHours{Start: 10, End: 20})

	slots, err := uc.Execute(context.Background(), svc.ID, day, day.Add(-24*time.Hour))
	require.NoError(t, err)

	assert.Len(t, slots, 9)
	for _, slot := range slots {
		assert.False(t, slot.Equal(day.Add(11*time.Hour)), "busy slot offered")
	}
}
