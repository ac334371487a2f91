package repository

import "cultivapp/entities"

// StageRepository resolves a species' stages by their 1-based order.
// Lookup methods return (nil, nil) when no stage matches.
type StageRepository interface {
	// FindBySpeciesAndOrder returns the stage with its rules preloaded.
	FindBySpeciesAndOrder(speciesID uint, order int) (*entities.Stage, error)
	// FindNext returns the stage with the smallest order strictly greater
	// than the given one.
	FindNext(speciesID uint, order int) (*entities.Stage, error)
	FindBySpecies(speciesID uint) ([]entities.Stage, error)
}
