package entities

import "time"

// Task is one concrete occurrence of a rule's care action for a crop.
//
// State machine: a pending task has Active=true and both Completed and
// Expired false. Completing or expiring it clears Active and sets exactly one
// of the two flags; both states are terminal.
type Task struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	CropID uint `gorm:"index;not null" json:"crop_id"`
	RuleID uint `gorm:"index;not null" json:"rule_id"`
	Rule   Rule `json:"rule,omitempty"`

	Active    bool `gorm:"not null" json:"active"`
	Completed bool `gorm:"not null" json:"completed"`
	Expired   bool `gorm:"not null" json:"expired"`

	ScheduledAt time.Time  `json:"scheduled_at"`
	DueAt       *time.Time `json:"due_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Pending reports whether the task can still be completed.
func (t *Task) Pending() bool { return !t.Completed && !t.Expired }
