package repositoryImp

import (
	"gorm.io/gorm"

	"cultivapp/entities"
	"cultivapp/pkg/crop/repository"
)

type cropRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CropRepository { return &cropRepo{db} }

func (r *cropRepo) Create(c *entities.Crop) error { return r.db.Create(c).Error }

func (r *cropRepo) FindByID(id uint) (*entities.Crop, error) {
	var out []entities.Crop
	if err := r.db.Preload("Species").Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

func (r *cropRepo) FindByUser(userID uint) ([]entities.Crop, error) {
	var out []entities.Crop
	if err := r.db.Preload("Species").Where("user_id = ?", userID).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *cropRepo) FindActive() ([]entities.Crop, error) {
	var out []entities.Crop
	if err := r.db.Where("status = ?", entities.CropActive).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *cropRepo) Save(c *entities.Crop) error { return r.db.Save(c).Error }

func (r *cropRepo) Delete(c *entities.Crop) error {
	return r.db.Select("Tasks").Delete(c).Error
}

func (r *cropRepo) ExistsBySpecies(speciesID uint) (bool, error) {
	var n int64
	if err := r.db.Model(&entities.Crop{}).Where("species_id = ?", speciesID).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
