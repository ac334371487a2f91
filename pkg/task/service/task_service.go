package service

import (
	"errors"
	"time"

	"cultivapp/entities"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	// ErrInvalidTransition is returned when completing a task that is
	// already completed or expired. Terminal states never transition.
	ErrInvalidTransition = errors.New("task is already completed or expired")
)

// TaskService owns the task lifecycle: the daily expire-and-generate pass and
// manual completion. It is the only writer of task rows and the only caller
// of the strategy registry.
type TaskService interface {
	// ExpireAndGenerate runs the daily task pass over all active crops.
	// One crop's failure is logged and skipped, never aborts the batch.
	ExpireAndGenerate(now time.Time) error
	Get(taskID uint) (*entities.Task, error)
	Complete(taskID uint) (*entities.Task, error)
	ListByCrop(cropID uint) ([]entities.Task, error)
}
