package serviceImp

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cultivapp/entities"
	"cultivapp/pkg/guard"
	"cultivapp/pkg/strategy"
	"cultivapp/pkg/task/service"
)

type fakeTaskRepo struct {
	tasks  map[uint]*entities.Task
	nextID uint
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[uint]*entities.Task{}, nextID: 1}
}

func (r *fakeTaskRepo) Create(t *entities.Task) error {
	t.ID = r.nextID
	r.nextID++
	cp := *t
	r.tasks[t.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) FindByID(id uint) (*entities.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTaskRepo) FindByCrop(cropID uint) ([]entities.Task, error) {
	var out []entities.Task
	for id := uint(1); id < r.nextID; id++ {
		if t, ok := r.tasks[id]; ok && t.CropID == cropID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) LatestDue(cropID, ruleID uint) (*time.Time, error) {
	var latest *time.Time
	for _, t := range r.tasks {
		if t.CropID != cropID || t.RuleID != ruleID || t.DueAt == nil {
			continue
		}
		if latest == nil || t.DueAt.After(*latest) {
			d := *t.DueAt
			latest = &d
		}
	}
	return latest, nil
}

func (r *fakeTaskRepo) Save(t *entities.Task) error {
	cp := *t
	r.tasks[t.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) SaveAll(ts []entities.Task) error {
	for i := range ts {
		if err := r.Save(&ts[i]); err != nil {
			return err
		}
	}
	return nil
}

type fakeCropRepo struct {
	crops map[uint]*entities.Crop
}

func (r *fakeCropRepo) Create(c *entities.Crop) error { r.crops[c.ID] = c; return nil }

func (r *fakeCropRepo) FindByID(id uint) (*entities.Crop, error) {
	c, ok := r.crops[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCropRepo) FindByUser(userID uint) ([]entities.Crop, error) { return nil, nil }

func (r *fakeCropRepo) FindActive() ([]entities.Crop, error) {
	var out []entities.Crop
	for _, c := range r.crops {
		if !c.Archived() {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCropRepo) Save(c *entities.Crop) error {
	cp := *c
	r.crops[c.ID] = &cp
	return nil
}

func (r *fakeCropRepo) Delete(c *entities.Crop) error { delete(r.crops, c.ID); return nil }

func (r *fakeCropRepo) ExistsBySpecies(speciesID uint) (bool, error) { return false, nil }

type fakeStageRepo struct {
	stages []entities.Stage
}

func (r *fakeStageRepo) FindBySpeciesAndOrder(speciesID uint, order int) (*entities.Stage, error) {
	for i := range r.stages {
		if r.stages[i].SpeciesID == speciesID && r.stages[i].StageOrder == order {
			return &r.stages[i], nil
		}
	}
	return nil, nil
}

func (r *fakeStageRepo) FindNext(speciesID uint, order int) (*entities.Stage, error) {
	var next *entities.Stage
	for i := range r.stages {
		s := &r.stages[i]
		if s.SpeciesID != speciesID || s.StageOrder <= order {
			continue
		}
		if next == nil || s.StageOrder < next.StageOrder {
			next = s
		}
	}
	return next, nil
}

func (r *fakeStageRepo) FindBySpecies(speciesID uint) ([]entities.Stage, error) {
	return r.stages, nil
}

type fakeNotifier struct {
	messages []string
}

func (n *fakeNotifier) Notify(message string, userID uint) {
	n.messages = append(n.messages, fmt.Sprintf("u%d: %s", userID, message))
}

func intp(v int) *int { return &v }

type fixture struct {
	svc    *taskSvc
	tasks  *fakeTaskRepo
	crops  *fakeCropRepo
	stages *fakeStageRepo
	notify *fakeNotifier
}

func newFixture(stages []entities.Stage, crops ...*entities.Crop) *fixture {
	f := &fixture{
		tasks:  newFakeTaskRepo(),
		crops:  &fakeCropRepo{crops: map[uint]*entities.Crop{}},
		stages: &fakeStageRepo{stages: stages},
		notify: &fakeNotifier{},
	}
	for _, c := range crops {
		f.crops.crops[c.ID] = c
	}
	f.svc = &taskSvc{
		tasks:    f.tasks,
		crops:    f.crops,
		stages:   f.stages,
		registry: strategy.NewRegistry(),
		notify:   f.notify,
		locks:    guard.New(),
		now:      time.Now,
	}
	return f
}

func activeCrop(id uint) *entities.Crop {
	return &entities.Crop{
		ID:                  id,
		UserID:              7,
		SpeciesID:           1,
		Name:                "north field maize",
		CurrentStageOrder:   1,
		Status:              entities.CropActive,
		HealthIrrigation:    entities.InitialHealth,
		HealthFertilization: entities.InitialHealth,
		HealthMaintenance:   entities.InitialHealth,
	}
}

func TestExpireOverdueAppliesPenalty(t *testing.T) {
	now := time.Date(2026, 3, 10, 1, 10, 0, 0, time.UTC)
	f := newFixture(nil, activeCrop(1))

	due := now.Add(-2 * time.Hour)
	task := &entities.Task{
		CropID: 1, RuleID: 9,
		Rule:   entities.Rule{ID: 9, Category: entities.RuleIrrigation, IntervalDays: intp(3)},
		Active: true,
		DueAt:  &due,
	}
	require.NoError(t, f.tasks.Create(task))

	require.NoError(t, f.svc.ExpireAndGenerate(now))

	got, _ := f.tasks.FindByID(task.ID)
	assert.True(t, got.Expired)
	assert.False(t, got.Active)
	crop, _ := f.crops.FindByID(1)
	assert.Equal(t, 65.0, crop.HealthIrrigation)
	assert.Equal(t, 75.0, crop.HealthFertilization)
}

func TestExpirePassIsIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 10, 1, 10, 0, 0, time.UTC)
	f := newFixture(nil, activeCrop(1))

	due := now.Add(-time.Hour)
	require.NoError(t, f.tasks.Create(&entities.Task{
		CropID: 1, RuleID: 9,
		Rule:   entities.Rule{ID: 9, Category: entities.RuleFertilization, IntervalDays: intp(5)},
		Active: true,
		DueAt:  &due,
	}))

	require.NoError(t, f.svc.ExpireAndGenerate(now))
	require.NoError(t, f.svc.ExpireAndGenerate(now.Add(time.Minute)))

	crop, _ := f.crops.FindByID(1)
	assert.Equal(t, 67.0, crop.HealthFertilization, "second pass must not re-penalize")
}

func TestGenerateCreatesTaskAndNotifies(t *testing.T) {
	now := time.Date(2026, 3, 10, 1, 10, 0, 0, time.UTC)
	stages := []entities.Stage{{
		SpeciesID: 1, StageOrder: 1, Name: "Germination",
		Rules: []entities.Rule{{ID: 4, Category: entities.RuleIrrigation, Description: "Water lightly", IntervalDays: intp(3)}},
	}}
	f := newFixture(stages, activeCrop(1))

	require.NoError(t, f.svc.ExpireAndGenerate(now))

	tasks, _ := f.tasks.FindByCrop(1)
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Pending())
	assert.True(t, tasks[0].Active)
	require.NotNil(t, tasks[0].DueAt)
	assert.Equal(t, now.AddDate(0, 0, 3), *tasks[0].DueAt)
	require.Len(t, f.notify.messages, 1)
	assert.Contains(t, f.notify.messages[0], "Water lightly")
}

func TestGenerateWaitsForCadence(t *testing.T) {
	now := time.Date(2026, 3, 10, 1, 10, 0, 0, time.UTC)
	stages := []entities.Stage{{
		SpeciesID: 1, StageOrder: 1,
		Rules: []entities.Rule{{ID: 4, Category: entities.RuleIrrigation, IntervalDays: intp(3)}},
	}}
	f := newFixture(stages, activeCrop(1))

	require.NoError(t, f.svc.ExpireAndGenerate(now))
	require.NoError(t, f.svc.ExpireAndGenerate(now.AddDate(0, 0, 1)))

	tasks, _ := f.tasks.FindByCrop(1)
	assert.Len(t, tasks, 1, "interval has not elapsed since the last due date")

	require.NoError(t, f.svc.ExpireAndGenerate(now.AddDate(0, 0, 7)))
	tasks, _ = f.tasks.FindByCrop(1)
	assert.Len(t, tasks, 2)
}

func TestGenerateSkipsRuleWithoutInterval(t *testing.T) {
	now := time.Date(2026, 3, 10, 1, 10, 0, 0, time.UTC)
	stages := []entities.Stage{{
		SpeciesID: 1, StageOrder: 1,
		Rules: []entities.Rule{
			{ID: 4, Category: entities.RuleIrrigation},
			{ID: 5, Category: entities.RuleMaintenance, IntervalDays: intp(7)},
		},
	}}
	f := newFixture(stages, activeCrop(1))

	require.NoError(t, f.svc.ExpireAndGenerate(now))

	tasks, _ := f.tasks.FindByCrop(1)
	require.Len(t, tasks, 1)
	assert.Equal(t, uint(5), tasks[0].RuleID)
}

func TestGenerateSkipsCropWithoutStage(t *testing.T) {
	now := time.Date(2026, 3, 10, 1, 10, 0, 0, time.UTC)
	crop := activeCrop(1)
	crop.CurrentStageOrder = 99
	f := newFixture(nil, crop)

	require.NoError(t, f.svc.ExpireAndGenerate(now))

	tasks, _ := f.tasks.FindByCrop(1)
	assert.Empty(t, tasks)
}

func TestCompleteRewardsHealth(t *testing.T) {
	f := newFixture(nil, activeCrop(1))
	done := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return done }

	due := done.AddDate(0, 0, 1)
	task := &entities.Task{
		CropID: 1, RuleID: 9,
		Rule:   entities.Rule{ID: 9, Category: entities.RuleFertilization, IntervalDays: intp(5)},
		Active: true,
		DueAt:  &due,
	}
	require.NoError(t, f.tasks.Create(task))

	got, err := f.svc.Complete(task.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.False(t, got.Active)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, done, *got.CompletedAt)

	crop, _ := f.crops.FindByID(1)
	assert.Equal(t, 79.0, crop.HealthFertilization)
}

func TestCompleteExpiredTaskRejected(t *testing.T) {
	f := newFixture(nil, activeCrop(1))

	task := &entities.Task{
		CropID: 1, RuleID: 9,
		Rule:    entities.Rule{ID: 9, Category: entities.RuleIrrigation},
		Expired: true,
	}
	require.NoError(t, f.tasks.Create(task))

	_, err := f.svc.Complete(task.ID)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)

	crop, _ := f.crops.FindByID(1)
	assert.Equal(t, 75.0, crop.HealthIrrigation, "rejected completion must not move health")
}

func TestCompleteUnknownTask(t *testing.T) {
	f := newFixture(nil, activeCrop(1))

	_, err := f.svc.Complete(42)
	assert.ErrorIs(t, err, service.ErrTaskNotFound)
}
