package repository

import (
	"time"

	"cultivapp/entities"
)

// TaskRepository is the persistence contract for care tasks. FindByID returns
// (nil, nil) when the task does not exist.
type TaskRepository interface {
	Create(t *entities.Task) error
	FindByID(id uint) (*entities.Task, error)
	FindByCrop(cropID uint) ([]entities.Task, error)
	// LatestDue returns the greatest due date among tasks for (crop, rule),
	// or nil when the pair has no tasks with a due date yet.
	LatestDue(cropID, ruleID uint) (*time.Time, error)
	Save(t *entities.Task) error
	SaveAll(ts []entities.Task) error
}
