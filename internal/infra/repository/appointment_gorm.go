package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/barberking/booking-api/internal/domain/appointment"
	"github.com/barberking/booking-api/internal/httperr"
	"github.com/barberking/booking-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *AppointmentGormRepository) GetServices(
	ctx context.Context,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("active = true").
		Order("name ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id string,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = true", id).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Busy set
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBusyStarts(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]time.Time, error) {

	var starts []time.Time
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"status IN ('pending', 'confirmed') AND start_time >= ? AND start_time < ?",
			from, to,
		).
		Order("start_time ASC").
		Pluck("start_time", &starts).Error; err != nil {
		return nil, err
	}
	return starts, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) InsertAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"status IN ('pending', 'confirmed') AND start_time = ?",
				ap.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("slot_taken")
		}

		return tx.Create(ap).Error
	})
}

// --------------------------------------------------
// Appointment (state change / listing)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", ap.ID).
		Updates(map[string]any{
			"status":              ap.Status,
			"cancellation_reason": ap.CancellationReason,
		}).Error
}

func (r *AppointmentGormRepository) ListAppointmentsForClient(
	ctx context.Context,
	clientID string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("client_id = ?", clientID).
		Order("start_time DESC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	status string,
	day *time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service")

	if status != "" {
		q = q.Where("status = ?", status)
	}
	if day != nil {
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		q = q.Where("start_time >= ? AND start_time < ?", start, start.Add(24*time.Hour))
	}

	var aps []models.Appointment
	if err := q.Order("start_time ASC").Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// --------------------------------------------------
// Profiles
// --------------------------------------------------

func (r *AppointmentGormRepository) GetProfile(
	ctx context.Context,
	id string,
) (*models.Profile, error) {

	var profile models.Profile
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *AppointmentGormRepository) UpdateProfileContact(
	ctx context.Context,
	id string,
	fullName string,
	phone string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"full_name": fullName,
			"phone":     phone,
		}).Error
}

// --------------------------------------------------
// Archive / history
// --------------------------------------------------

func (r *AppointmentGormRepository) ArchiveTerminal(
	ctx context.Context,
	now time.Time,
) (int64, error) {

	var archived int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var settled []models.Appointment
		if err := tx.
			Preload("Service").
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("status IN ('completed', 'cancelled')").
			Find(&settled).Error; err != nil {
			return err
		}

		if len(settled) == 0 {
			return nil
		}

		rows := make([]models.AppointmentHistory, 0, len(settled))
		ids := make([]string, 0, len(settled))
		for _, ap := range settled {
			rows = append(rows, models.AppointmentHistory{
				ID:                 ap.ID,
				ClientID:           ap.ClientID,
				ServiceID:          ap.ServiceID,
				ServiceName:        ap.Service.Name,
				Price:              ap.Service.Price,
				StartTime:          ap.StartTime,
				Status:             ap.Status,
				CancellationReason: ap.CancellationReason,
				ArchivedAt:         now,
			})
			ids = append(ids, ap.ID)
		}

		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", ids).
			Delete(&models.Appointment{}).Error; err != nil {
			return err
		}

		archived = int64(len(settled))
		return nil
	})

	return archived, err
}

func (r *AppointmentGormRepository) QueryHistory(
	ctx context.Context,
	from time.Time,
) ([]models.AppointmentHistory, error) {

	var rows []models.AppointmentHistory
	if err := r.db.WithContext(ctx).
		Where("start_time >= ?", from).
		Order("start_time DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

var _ domain.Repository = (*AppointmentGormRepository)(nil)
