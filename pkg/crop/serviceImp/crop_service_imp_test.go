package serviceImp

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cultivapp/entities"
	"cultivapp/pkg/crop/service"
	"cultivapp/pkg/guard"
)

type fakeCropRepo struct {
	crops  map[uint]*entities.Crop
	nextID uint
}

func newFakeCropRepo() *fakeCropRepo {
	return &fakeCropRepo{crops: map[uint]*entities.Crop{}, nextID: 1}
}

func (r *fakeCropRepo) Create(c *entities.Crop) error {
	c.ID = r.nextID
	r.nextID++
	cp := *c
	r.crops[c.ID] = &cp
	return nil
}

func (r *fakeCropRepo) FindByID(id uint) (*entities.Crop, error) {
	c, ok := r.crops[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCropRepo) FindByUser(userID uint) ([]entities.Crop, error) {
	var out []entities.Crop
	for _, c := range r.crops {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

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

type fakeSpecies struct{ known map[uint]bool }

func (f *fakeSpecies) FindByID(id uint) (*entities.Species, error) {
	if !f.known[id] {
		return nil, nil
	}
	return &entities.Species{ID: id, Name: "Maize", Active: true}, nil
}

type fakeUsers struct{ known map[uint]bool }

func (f *fakeUsers) FindByID(id uint) (*entities.User, error) {
	if !f.known[id] {
		return nil, nil
	}
	return &entities.User{ID: id}, nil
}

type fakeNotifier struct{ messages []string }

func (n *fakeNotifier) Notify(message string, userID uint) {
	n.messages = append(n.messages, fmt.Sprintf("u%d: %s", userID, message))
}

func intp(v int) *int { return &v }

func newSvc(stages []entities.Stage) (service.CropService, *fakeCropRepo, *fakeNotifier) {
	crops := newFakeCropRepo()
	notify := &fakeNotifier{}
	svc := New(
		crops,
		&fakeStageRepo{stages: stages},
		&fakeSpecies{known: map[uint]bool{1: true}},
		&fakeUsers{known: map[uint]bool{7: true}},
		notify,
		guard.New(),
	)
	return svc, crops, notify
}

func TestCreateSeedsLifecycle(t *testing.T) {
	svc, _, _ := newSvc(nil)

	crop, err := svc.Create(7, 1, "north field maize", 2.5, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, crop.CurrentStageOrder)
	assert.Equal(t, entities.CropActive, crop.Status)
	assert.Equal(t, entities.InitialHealth, crop.HealthIrrigation)
	assert.Equal(t, entities.InitialHealth, crop.HealthFertilization)
	assert.Equal(t, entities.InitialHealth, crop.HealthMaintenance)
	assert.False(t, crop.StageEnteredAt.IsZero())
}

func TestCreateUnknownSpecies(t *testing.T) {
	svc, _, _ := newSvc(nil)

	_, err := svc.Create(7, 99, "x", 1, nil)
	assert.ErrorIs(t, err, service.ErrSpeciesNotFound)
}

func TestCreateUnknownUser(t *testing.T) {
	svc, _, _ := newSvc(nil)

	_, err := svc.Create(99, 1, "x", 1, nil)
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func stagedCrop(entered time.Time, order int) *entities.Crop {
	return &entities.Crop{
		ID: 1, UserID: 7, SpeciesID: 1,
		Name:              "north field maize",
		CurrentStageOrder: order,
		StageEnteredAt:    entered,
		Status:            entities.CropActive,
	}
}

func TestAdvancePromotesAfterDuration(t *testing.T) {
	now := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
	stages := []entities.Stage{
		{SpeciesID: 1, StageOrder: 1, Name: "Germination", DurationDays: intp(10)},
		{SpeciesID: 1, StageOrder: 2, Name: "Vegetative", DurationDays: intp(30)},
	}
	svc, crops, notify := newSvc(stages)
	crops.crops[1] = stagedCrop(now.AddDate(0, 0, -11), 1)

	require.NoError(t, svc.AdvanceStages(now))

	got, _ := crops.FindByID(1)
	assert.Equal(t, 2, got.CurrentStageOrder)
	assert.Equal(t, now, got.StageEnteredAt)
	require.Len(t, notify.messages, 1)
	assert.Contains(t, notify.messages[0], "Vegetative")
}

func TestAdvanceOnePromotionPerPass(t *testing.T) {
	now := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
	stages := []entities.Stage{
		{SpeciesID: 1, StageOrder: 1, DurationDays: intp(10)},
		{SpeciesID: 1, StageOrder: 2, DurationDays: intp(10)},
		{SpeciesID: 1, StageOrder: 3, DurationDays: intp(10)},
	}
	svc, crops, _ := newSvc(stages)
	crops.crops[1] = stagedCrop(now.AddDate(0, 0, -100), 1)

	require.NoError(t, svc.AdvanceStages(now))

	got, _ := crops.FindByID(1)
	assert.Equal(t, 2, got.CurrentStageOrder, "a pass moves at most one stage")
}

func TestAdvanceNotDueYet(t *testing.T) {
	now := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
	stages := []entities.Stage{
		{SpeciesID: 1, StageOrder: 1, DurationDays: intp(10)},
		{SpeciesID: 1, StageOrder: 2, DurationDays: intp(10)},
	}
	svc, crops, notify := newSvc(stages)
	crops.crops[1] = stagedCrop(now.AddDate(0, 0, -3), 1)

	require.NoError(t, svc.AdvanceStages(now))

	got, _ := crops.FindByID(1)
	assert.Equal(t, 1, got.CurrentStageOrder)
	assert.Empty(t, notify.messages)
}

func TestAdvanceTerminalStageStaysPut(t *testing.T) {
	now := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
	stages := []entities.Stage{
		{SpeciesID: 1, StageOrder: 1, DurationDays: intp(10)},
		{SpeciesID: 1, StageOrder: 2, Name: "Harvest-ready", DurationDays: intp(5)},
	}
	svc, crops, notify := newSvc(stages)
	entered := now.AddDate(0, 0, -60)
	crops.crops[1] = stagedCrop(entered, 2)

	require.NoError(t, svc.AdvanceStages(now))

	got, _ := crops.FindByID(1)
	assert.Equal(t, 2, got.CurrentStageOrder)
	assert.Equal(t, entered, got.StageEnteredAt, "terminal stage keeps its entry time")
	assert.Empty(t, notify.messages)
}

func TestAdvanceOpenEndedStage(t *testing.T) {
	now := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
	stages := []entities.Stage{
		{SpeciesID: 1, StageOrder: 1}, // no duration: manual stage
		{SpeciesID: 1, StageOrder: 2, DurationDays: intp(10)},
	}
	svc, crops, _ := newSvc(stages)
	crops.crops[1] = stagedCrop(now.AddDate(0, 0, -365), 1)

	require.NoError(t, svc.AdvanceStages(now))

	got, _ := crops.FindByID(1)
	assert.Equal(t, 1, got.CurrentStageOrder)
}

func TestAdvanceSkipsArchivedCrops(t *testing.T) {
	now := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
	stages := []entities.Stage{
		{SpeciesID: 1, StageOrder: 1, DurationDays: intp(10)},
		{SpeciesID: 1, StageOrder: 2, DurationDays: intp(10)},
	}
	svc, crops, _ := newSvc(stages)
	c := stagedCrop(now.AddDate(0, 0, -20), 1)
	c.Status = entities.CropHarvested
	crops.crops[1] = c

	require.NoError(t, svc.AdvanceStages(now))

	got, _ := crops.FindByID(1)
	assert.Equal(t, 1, got.CurrentStageOrder)
}

func TestUpdateArchivedRejected(t *testing.T) {
	svc, crops, _ := newSvc(nil)
	c := stagedCrop(time.Now(), 1)
	c.Status = entities.CropLost
	crops.crops[1] = c

	name := "renamed"
	_, err := svc.Update(1, service.CropPatch{Name: &name})
	assert.ErrorIs(t, err, service.ErrArchived)
}

func TestToggleStatus(t *testing.T) {
	svc, crops, _ := newSvc(nil)
	crops.crops[1] = stagedCrop(time.Now(), 1)

	got, err := svc.ToggleStatus(1)
	require.NoError(t, err)
	assert.Equal(t, entities.CropHarvested, got.Status)

	got, err = svc.ToggleStatus(1)
	require.NoError(t, err)
	assert.Equal(t, entities.CropActive, got.Status)
}

func TestGetUnknownCrop(t *testing.T) {
	svc, _, _ := newSvc(nil)

	_, err := svc.Get(42)
	assert.ErrorIs(t, err, service.ErrCropNotFound)
}
