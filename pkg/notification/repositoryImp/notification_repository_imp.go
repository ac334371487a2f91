package repositoryImp

import (
	"gorm.io/gorm"

	"cultivapp/entities"
	"cultivapp/pkg/notification/repository"
)

type notifRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.NotificationRepository { return &notifRepo{db} }

func (r *notifRepo) Create(n *entities.Notification) error { return r.db.Create(n).Error }

func (r *notifRepo) FindByUser(userID uint) ([]entities.Notification, error) {
	var out []entities.Notification
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *notifRepo) FindByID(id uint) (*entities.Notification, error) {
	var out []entities.Notification
	if err := r.db.Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

func (r *notifRepo) Save(n *entities.Notification) error { return r.db.Save(n).Error }

func (r *notifRepo) SaveAll(ns []entities.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return r.db.Save(&ns).Error
}

func (r *notifRepo) Delete(n *entities.Notification) error { return r.db.Delete(n).Error }

func (r *notifRepo) DeleteByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&entities.Notification{}).Error
}
