package repositoryImp

import (
	"gorm.io/gorm"

	"cultivapp/entities"
	"cultivapp/pkg/species/repository"
)

type speciesRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.SpeciesRepository { return &speciesRepo{db} }

func (r *speciesRepo) Create(s *entities.Species) error { return r.db.Create(s).Error }

func (r *speciesRepo) FindAll() ([]entities.Species, error) {
	var out []entities.Species
	err := r.db.Preload("Stages", func(db *gorm.DB) *gorm.DB {
		return db.Order("stage_order ASC")
	}).Preload("Stages.Rules").Order("name ASC").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *speciesRepo) FindByID(id uint) (*entities.Species, error) {
	var out []entities.Species
	err := r.db.Preload("Stages", func(db *gorm.DB) *gorm.DB {
		return db.Order("stage_order ASC")
	}).Preload("Stages.Rules").Where("id = ?", id).Limit(1).Find(&out).Error
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

func (r *speciesRepo) Save(s *entities.Species) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(s).Error
}

func (r *speciesRepo) Delete(s *entities.Species) error {
	return r.db.Select("Stages").Delete(s).Error
}
