package repositoryImp

import (
	"gorm.io/gorm"

	"cultivapp/entities"
	"cultivapp/pkg/stage/repository"
)

type stageRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.StageRepository { return &stageRepo{db} }

func (r *stageRepo) FindBySpeciesAndOrder(speciesID uint, order int) (*entities.Stage, error) {
	var out []entities.Stage
	err := r.db.Preload("Rules").
		Where("species_id = ? AND stage_order = ?", speciesID, order).
		Limit(1).Find(&out).Error
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

func (r *stageRepo) FindNext(speciesID uint, order int) (*entities.Stage, error) {
	var out []entities.Stage
	err := r.db.Where("species_id = ? AND stage_order > ?", speciesID, order).
		Order("stage_order ASC").Limit(1).Find(&out).Error
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

func (r *stageRepo) FindBySpecies(speciesID uint) ([]entities.Stage, error) {
	var out []entities.Stage
	err := r.db.Preload("Rules").
		Where("species_id = ?", speciesID).Order("stage_order ASC").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
