package repositoryImp

import (
	"database/sql"
	"time"

	"gorm.io/gorm"

	"cultivapp/entities"
	"cultivapp/pkg/task/repository"
)

type taskRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.TaskRepository { return &taskRepo{db} }

func (r *taskRepo) Create(t *entities.Task) error { return r.db.Create(t).Error }

func (r *taskRepo) FindByID(id uint) (*entities.Task, error) {
	var out []entities.Task
	if err := r.db.Preload("Rule").Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

func (r *taskRepo) FindByCrop(cropID uint) ([]entities.Task, error) {
	var out []entities.Task
	if err := r.db.Preload("Rule").Where("crop_id = ?", cropID).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *taskRepo) LatestDue(cropID, ruleID uint) (*time.Time, error) {
	var due sql.NullTime
	err := r.db.Model(&entities.Task{}).
		Where("crop_id = ? AND rule_id = ?", cropID, ruleID).
		Select("MAX(due_at)").Scan(&due).Error
	if err != nil {
		return nil, err
	}
	if !due.Valid {
		return nil, nil
	}
	return &due.Time, nil
}

func (r *taskRepo) Save(t *entities.Task) error { return r.db.Save(t).Error }

func (r *taskRepo) SaveAll(ts []entities.Task) error {
	if len(ts) == 0 {
		return nil
	}
	return r.db.Save(&ts).Error
}
