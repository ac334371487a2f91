package entities

import "time"

type RuleCategory string

const (
	RuleIrrigation    RuleCategory = "IRRIGATION"
	RuleFertilization RuleCategory = "FERTILIZATION"
	RuleMaintenance   RuleCategory = "MAINTENANCE"
)

// Rule is a recurring-care directive. IntervalDays is the cadence at which
// tasks recur for crops in a stage carrying this rule; it is also the task's
// time-to-live before it expires.
type Rule struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Category     RuleCategory `gorm:"size:20;index" json:"category"`
	Description  string       `gorm:"not null" json:"description"`
	IntervalDays *int         `json:"interval_days"`
	CreatedAt    time.Time    `json:"created_at"`
}
