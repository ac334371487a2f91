package serviceImp

import (
	"log"

	"cultivapp/entities"
	"cultivapp/pkg/notification/repository"
	"cultivapp/pkg/notification/service"
)

type notifSvc struct {
	repo repository.NotificationRepository
}

func New(repo repository.NotificationRepository) service.NotificationService {
	return &notifSvc{repo}
}

func (s *notifSvc) Notify(message string, userID uint) {
	n := &entities.Notification{UserID: userID, Message: message}
	if err := s.repo.Create(n); err != nil {
		log.Printf("[notify] user %d: %v", userID, err)
	}
}

func (s *notifSvc) ListByUser(userID uint) ([]entities.Notification, error) {
	return s.repo.FindByUser(userID)
}

func (s *notifSvc) MarkRead(id uint) error {
	n, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if n == nil {
		return service.ErrNotificationNotFound
	}
	n.Read = true
	return s.repo.Save(n)
}

func (s *notifSvc) MarkAllRead(userID uint) error {
	ns, err := s.repo.FindByUser(userID)
	if err != nil {
		return err
	}
	var unread []entities.Notification
	for _, n := range ns {
		if !n.Read {
			n.Read = true
			unread = append(unread, n)
		}
	}
	return s.repo.SaveAll(unread)
}

func (s *notifSvc) Delete(id uint) error {
	n, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if n == nil {
		return service.ErrNotificationNotFound
	}
	return s.repo.Delete(n)
}

func (s *notifSvc) DeleteByUser(userID uint) error {
	return s.repo.DeleteByUser(userID)
}
