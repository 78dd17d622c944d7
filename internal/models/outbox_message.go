package models

import "time"

// OutboxMessage is a queued chat notification. Rows are written in the same
// flow that changes appointment state and delivered by a background worker,
// so delivery failures never roll back a transition.
type OutboxMessage struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ChatID string `gorm:"size:32;not null" json:"chat_id"`
	Text   string `gorm:"type:text;not null" json:"text"`

	// JSON-encoded inline keyboard buttons, empty for plain messages.
	Buttons string `gorm:"type:text" json:"buttons"`

	Status   string `gorm:"size:20;default:'pending';index" json:"status"`
	Attempts int    `gorm:"default:0" json:"attempts"`
	LastErr  string `gorm:"size:255" json:"last_err"`

	CreatedAt time.Time  `json:"created_at"`
	SentAt    *time.Time `json:"sent_at"`
}

const (
	OutboxPending = "pending"
	OutboxSent    = "sent"
	OutboxFailed  = "failed"
)
