package models

import "time"

// AppointmentHistory is the archive row for a settled appointment. Service
// name and price are copied in so reports survive catalog edits.
type AppointmentHistory struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID  string `gorm:"type:uuid;index" json:"client_id"`
	ServiceID string `gorm:"type:uuid" json:"service_id"`

	ServiceName string  `gorm:"size:100" json:"service_name"`
	Price       float64 `json:"price"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	Status    string    `gorm:"size:20" json:"status"`

	CancellationReason string `gorm:"size:255" json:"cancellation_reason"`

	ArchivedAt time.Time `json:"archived_at"`
}

func (AppointmentHistory) TableName() string {
	return "appointments_history"
}
