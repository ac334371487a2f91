package serviceImp

import (
	"fmt"
	"log"
	"time"

	"cultivapp/entities"
	croprepo "cultivapp/pkg/crop/repository"
	"cultivapp/pkg/guard"
	stagerepo "cultivapp/pkg/stage/repository"
	"cultivapp/pkg/strategy"
	"cultivapp/pkg/task/repository"
	"cultivapp/pkg/task/service"
)

type notifier interface {
	Notify(message string, userID uint)
}

type taskSvc struct {
	tasks    repository.TaskRepository
	crops    croprepo.CropRepository
	stages   stagerepo.StageRepository
	registry *strategy.Registry
	notify   notifier
	locks    *guard.CropGuard
	now      func() time.Time
}

func New(
	tasks repository.TaskRepository,
	crops croprepo.CropRepository,
	stages stagerepo.StageRepository,
	registry *strategy.Registry,
	notify notifier,
	locks *guard.CropGuard,
) service.TaskService {
	return &taskSvc{
		tasks:    tasks,
		crops:    crops,
		stages:   stages,
		registry: registry,
		notify:   notify,
		locks:    locks,
		now:      time.Now,
	}
}

func (s *taskSvc) ExpireAndGenerate(now time.Time) error {
	crops, err := s.crops.FindActive()
	if err != nil {
		return fmt.Errorf("load active crops: %w", err)
	}

	for i := range crops {
		if err := s.processCrop(&crops[i], now); err != nil {
			log.Printf("[task-pass] crop %d: %v", crops[i].ID, err)
		}
	}
	return nil
}

// processCrop runs the expire step and the generate step for one crop under
// its lock. Errors here isolate to this crop.
func (s *taskSvc) processCrop(crop *entities.Crop, now time.Time) error {
	unlock := s.locks.Lock(crop.ID)
	defer unlock()

	expired, err := s.expireOverdue(crop, now)
	if err != nil {
		return err
	}

	created, err := s.generateFromRules(crop, now)
	if err != nil {
		return err
	}

	if expired > 0 {
		if err := s.crops.Save(crop); err != nil {
			return fmt.Errorf("save crop health: %w", err)
		}
	}
	if expired > 0 || created > 0 {
		log.Printf("[task-pass] crop %d: %d expired, %d created", crop.ID, expired, created)
	}
	return nil
}

// expireOverdue marks every pending task whose due date passed and applies
// the category penalty. Already-expired tasks are left alone so re-running
// the pass never double-penalizes.
func (s *taskSvc) expireOverdue(crop *entities.Crop, now time.Time) (int, error) {
	tasks, err := s.tasks.FindByCrop(crop.ID)
	if err != nil {
		return 0, fmt.Errorf("load tasks: %w", err)
	}

	var changed []entities.Task
	for i := range tasks {
		t := &tasks[i]
		if !t.Pending() || t.DueAt == nil || !t.DueAt.Before(now) {
			continue
		}
		t.Expired = true
		t.Active = false

		strat, err := s.registry.Resolve(t.Rule.Category)
		if err != nil {
			return 0, err
		}
		strat.Apply(t, crop)
		changed = append(changed, *t)
	}

	if err := s.tasks.SaveAll(changed); err != nil {
		return 0, fmt.Errorf("save expired tasks: %w", err)
	}
	return len(changed), nil
}

// generateFromRules creates a task per current-stage rule whose cadence has
// elapsed, and notifies the crop's owner.
func (s *taskSvc) generateFromRules(crop *entities.Crop, now time.Time) (int, error) {
	stage, err := s.stages.FindBySpeciesAndOrder(crop.SpeciesID, crop.CurrentStageOrder)
	if err != nil {
		return 0, fmt.Errorf("load stage: %w", err)
	}
	if stage == nil {
		// no stage with this order: configuration gap, skip this crop
		return 0, nil
	}

	created := 0
	for i := range stage.Rules {
		rule := &stage.Rules[i]
		if rule.IntervalDays == nil {
			log.Printf("[task-pass] rule %d has no interval, skipping", rule.ID)
			continue
		}

		latest, err := s.tasks.LatestDue(crop.ID, rule.ID)
		if err != nil {
			return created, fmt.Errorf("latest due for rule %d: %w", rule.ID, err)
		}
		if latest != nil && !latest.AddDate(0, 0, *rule.IntervalDays).Before(now) {
			continue
		}

		due := now.AddDate(0, 0, *rule.IntervalDays)
		t := &entities.Task{
			CropID:      crop.ID,
			RuleID:      rule.ID,
			Active:      true,
			ScheduledAt: now,
			DueAt:       &due,
		}
		if err := s.tasks.Create(t); err != nil {
			return created, fmt.Errorf("create task for rule %d: %w", rule.ID, err)
		}
		created++

		s.notify.Notify(
			fmt.Sprintf("New task for crop %s: %s", crop.Name, rule.Description),
			crop.UserID,
		)
	}
	return created, nil
}

func (s *taskSvc) Get(taskID uint) (*entities.Task, error) {
	task, err := s.tasks.FindByID(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, service.ErrTaskNotFound
	}
	return task, nil
}

func (s *taskSvc) Complete(taskID uint) (*entities.Task, error) {
	task, err := s.tasks.FindByID(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, service.ErrTaskNotFound
	}

	unlock := s.locks.Lock(task.CropID)
	defer unlock()

	// reload under the lock: the task pass may have expired it meanwhile
	task, err = s.tasks.FindByID(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, service.ErrTaskNotFound
	}
	if !task.Pending() {
		return nil, service.ErrInvalidTransition
	}

	crop, err := s.crops.FindByID(task.CropID)
	if err != nil {
		return nil, err
	}
	if crop == nil {
		return nil, fmt.Errorf("crop %d for task %d not found", task.CropID, taskID)
	}

	strat, err := s.registry.Resolve(task.Rule.Category)
	if err != nil {
		return nil, err
	}
	strat.Apply(task, crop) // task still active: reward path

	done := s.now()
	task.Completed = true
	task.Active = false
	task.CompletedAt = &done

	if err := s.crops.Save(crop); err != nil {
		return nil, fmt.Errorf("save crop health: %w", err)
	}
	if err := s.tasks.Save(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}
	return task, nil
}

func (s *taskSvc) ListByCrop(cropID uint) ([]entities.Task, error) {
	return s.tasks.FindByCrop(cropID)
}
