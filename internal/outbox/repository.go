package outbox

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/barberking/booking-api/internal/models"
	"github.com/barberking/booking-api/internal/notify"
)

// Enqueuer is the slice of the outbox the use cases depend on.
type Enqueuer interface {
	Enqueue(ctx context.Context, chatID string, text string, buttons []notify.Button) error
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Enqueue(
	ctx context.Context,
	chatID string,
	text string,
	buttons []notify.Button,
) error {

	var encoded string
	if len(buttons) > 0 {
		raw, err := json.Marshal(buttons)
		if err != nil {
			return err
		}
		encoded = string(raw)
	}

	msg := models.OutboxMessage{
		ChatID:  chatID,
		Text:    text,
		Buttons: encoded,
		Status:  models.OutboxPending,
	}
	return r.db.WithContext(ctx).Create(&msg).Error
}

func (r *Repository) ListPending(
	ctx context.Context,
	limit int,
) ([]models.OutboxMessage, error) {

	var msgs []models.OutboxMessage
	if err := r.db.WithContext(ctx).
		Where("status = ?", models.OutboxPending).
		Order("id ASC").
		Limit(limit).
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *Repository) MarkSent(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.OutboxMessage{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":  models.OutboxSent,
			"sent_at": at,
		}).Error
}

// MarkAttemptFailed bumps the attempt counter and gives up once the retry
// budget is spent.
func (r *Repository) MarkAttemptFailed(
	ctx context.Context,
	id uint,
	attempts int,
	maxAttempts int,
	lastErr string,
) error {

	status := models.OutboxPending
	if attempts >= maxAttempts {
		status = models.OutboxFailed
	}

	if len(lastErr) > 255 {
		lastErr = lastErr[:255]
	}

	return r.db.WithContext(ctx).
		Model(&models.OutboxMessage{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":   status,
			"attempts": attempts,
			"last_err": lastErr,
		}).Error
}
