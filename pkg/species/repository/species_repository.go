package repository

import "cultivapp/entities"

// SpeciesRepository manages the admin catalog. FindByID returns (nil, nil)
// when the species does not exist.
type SpeciesRepository interface {
	Create(s *entities.Species) error
	FindAll() ([]entities.Species, error)
	FindByID(id uint) (*entities.Species, error)
	Save(s *entities.Species) error
	Delete(s *entities.Species) error
}
