package entities

import "time"

type CropStatus string

const (
	CropActive    CropStatus = "ACTIVE"
	CropHarvested CropStatus = "HARVESTED"
	CropLost      CropStatus = "LOST"
)

// InitialHealth is the score every category starts at when a crop is planted.
const InitialHealth = 75.0

// Crop is a user's planted instance of a species. The scheduler advances
// CurrentStageOrder and the task pass moves the three health scores; nothing
// else writes those fields.
type Crop struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	UserID    uint    `gorm:"index;not null" json:"user_id"`
	SpeciesID uint    `gorm:"index;not null" json:"species_id"`
	Species   Species `json:"species,omitempty"`
	Name      string  `gorm:"size:150;not null" json:"name"`

	AreaHectares float64   `json:"area_hectares"`
	YieldKg      *float64  `json:"yield_kg"`
	PlantedAt    time.Time `json:"planted_at"`

	CurrentStageOrder int        `json:"current_stage_order"`
	StageEnteredAt    time.Time  `json:"stage_entered_at"`
	Status            CropStatus `gorm:"size:20;index" json:"status"`

	HealthIrrigation    float64 `json:"health_irrigation"`
	HealthFertilization float64 `json:"health_fertilization"`
	HealthMaintenance   float64 `json:"health_maintenance"`

	Tasks []Task `gorm:"constraint:OnDelete:CASCADE" json:"tasks,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Archived reports whether the crop left the active lifecycle. Archived crops
// reject edits and are skipped by both scheduler passes.
func (c *Crop) Archived() bool {
	return c.Status == CropHarvested || c.Status == CropLost
}
