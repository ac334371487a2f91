package repository

import "cultivapp/entities"

// NotificationRepository stores user inbox entries. FindByID returns
// (nil, nil) when the notification does not exist.
type NotificationRepository interface {
	Create(n *entities.Notification) error
	FindByUser(userID uint) ([]entities.Notification, error)
	FindByID(id uint) (*entities.Notification, error)
	Save(n *entities.Notification) error
	SaveAll(ns []entities.Notification) error
	Delete(n *entities.Notification) error
	DeleteByUser(userID uint) error
}
