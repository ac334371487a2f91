package entities

import "time"

// Species is a catalog entry managed by admins. Crops reference it and walk
// its stages in order.
type Species struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	ScientificName string    `gorm:"size:150" json:"scientific_name"`
	Description    string    `json:"description"`
	ImageURL       string    `gorm:"size:500" json:"image_url"`
	Active         bool      `json:"active"`
	Stages         []Stage   `gorm:"constraint:OnDelete:CASCADE" json:"stages,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Stage is one growth phase of a species. StageOrder is 1-based and defines
// the sequence; DurationDays is how long a crop stays in it before the
// scheduler promotes it.
type Stage struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	SpeciesID    uint   `gorm:"index" json:"species_id"`
	Name         string `gorm:"size:50" json:"name"`
	StageOrder   int    `gorm:"index" json:"stage_order"`
	DurationDays *int   `json:"duration_days"`
	Rules        []Rule `gorm:"many2many:stage_rules" json:"rules,omitempty"`
}
