package service

import (
	"errors"
	"time"

	"cultivapp/entities"
)

var (
	ErrCropNotFound    = errors.New("crop not found")
	ErrSpeciesNotFound = errors.New("species not found")
	ErrUserNotFound    = errors.New("user not found")
	// ErrArchived is returned when editing a harvested or lost crop.
	ErrArchived = errors.New("crop is archived and cannot be edited")
)

// CropPatch carries the user-editable fields of a crop. Lifecycle fields
// (stage, health, status) are owned by the engine.
type CropPatch struct {
	Name         *string
	AreaHectares *float64
	YieldKg      *float64
}

// CropService owns crop CRUD and the stage advancement pass.
type CropService interface {
	Create(userID, speciesID uint, name string, areaHectares float64, plantedAt *time.Time) (*entities.Crop, error)
	ListByUser(userID uint) ([]entities.Crop, error)
	Get(id uint) (*entities.Crop, error)
	Update(id uint, patch CropPatch) (*entities.Crop, error)
	// ToggleStatus flips a crop between Active and Harvested.
	ToggleStatus(id uint) (*entities.Crop, error)
	Delete(id uint) error

	// AdvanceStages runs the daily stage pass over all active crops,
	// promoting each at most one stage. One crop's failure is logged and
	// skipped, never aborts the batch.
	AdvanceStages(now time.Time) error
}
