package repository

import "cultivapp/entities"

// CropRepository is the persistence contract for crops. Lookup methods return
// (nil, nil) when no row matches.
type CropRepository interface {
	Create(c *entities.Crop) error
	FindByID(id uint) (*entities.Crop, error)
	FindByUser(userID uint) ([]entities.Crop, error)
	FindActive() ([]entities.Crop, error)
	Save(c *entities.Crop) error
	Delete(c *entities.Crop) error
	ExistsBySpecies(speciesID uint) (bool, error)
}
