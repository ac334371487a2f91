package service

import (
	"errors"

	"cultivapp/entities"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService is the emit contract the lifecycle engine writes to,
// plus the inbox maintenance operations the client uses.
type NotificationService interface {
	// Notify records a message for a user. Fire-and-forget: failures are
	// logged, never propagated to the lifecycle engine.
	Notify(message string, userID uint)
	ListByUser(userID uint) ([]entities.Notification, error)
	MarkRead(id uint) error
	MarkAllRead(userID uint) error
	Delete(id uint) error
	DeleteByUser(userID uint) error
}
