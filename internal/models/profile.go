package models

import "time"

// Profile is the authenticated identity plus the contact data the booking
// flow keeps up to date opportunistically.
type Profile struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	FullName     string `gorm:"size:100" json:"full_name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'customer'" json:"role"`

	// Chat the client registered for booking notifications. Empty means the
	// dispatcher leaves an audit entry for manual outreach instead.
	TelegramChatID string `gorm:"size:32" json:"telegram_chat_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)
