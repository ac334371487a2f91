package entities

import "time"

// Notification is a user-visible event record emitted by the lifecycle
// engine (stage change, new task). Delivery beyond persistence is up to the
// client polling its inbox.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Message   string    `gorm:"not null" json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
