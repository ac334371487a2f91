package serviceImp

import (
	"fmt"
	"log"
	"time"

	"cultivapp/entities"
	"cultivapp/pkg/crop/repository"
	"cultivapp/pkg/crop/service"
	"cultivapp/pkg/guard"
	stagerepo "cultivapp/pkg/stage/repository"
)

type speciesFinder interface {
	FindByID(id uint) (*entities.Species, error)
}

type userFinder interface {
	FindByID(id uint) (*entities.User, error)
}

type notifier interface {
	Notify(message string, userID uint)
}

type cropSvc struct {
	crops   repository.CropRepository
	stages  stagerepo.StageRepository
	species speciesFinder
	users   userFinder
	notify  notifier
	locks   *guard.CropGuard
}

func New(
	crops repository.CropRepository,
	stages stagerepo.StageRepository,
	species speciesFinder,
	users userFinder,
	notify notifier,
	locks *guard.CropGuard,
) service.CropService {
	return &cropSvc{
		crops:   crops,
		stages:  stages,
		species: species,
		users:   users,
		notify:  notify,
		locks:   locks,
	}
}

func (s *cropSvc) Create(userID, speciesID uint, name string, areaHectares float64, plantedAt *time.Time) (*entities.Crop, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrUserNotFound
	}
	sp, err := s.species.FindByID(speciesID)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, service.ErrSpeciesNotFound
	}

	now := time.Now()
	planted := now
	if plantedAt != nil {
		planted = *plantedAt
	}
	crop := &entities.Crop{
		UserID:              userID,
		SpeciesID:           speciesID,
		Name:                name,
		AreaHectares:        areaHectares,
		PlantedAt:           planted,
		CurrentStageOrder:   1,
		StageEnteredAt:      now,
		Status:              entities.CropActive,
		HealthIrrigation:    entities.InitialHealth,
		HealthFertilization: entities.InitialHealth,
		HealthMaintenance:   entities.InitialHealth,
	}
	if err := s.crops.Create(crop); err != nil {
		return nil, err
	}
	return crop, nil
}

func (s *cropSvc) ListByUser(userID uint) ([]entities.Crop, error) {
	return s.crops.FindByUser(userID)
}

func (s *cropSvc) Get(id uint) (*entities.Crop, error) {
	crop, err := s.crops.FindByID(id)
	if err != nil {
		return nil, err
	}
	if crop == nil {
		return nil, service.ErrCropNotFound
	}
	return crop, nil
}

func (s *cropSvc) Update(id uint, patch service.CropPatch) (*entities.Crop, error) {
	crop, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if crop.Archived() {
		return nil, service.ErrArchived
	}

	if patch.Name != nil {
		crop.Name = *patch.Name
	}
	if patch.AreaHectares != nil {
		crop.AreaHectares = *patch.AreaHectares
	}
	if patch.YieldKg != nil {
		crop.YieldKg = patch.YieldKg
	}
	return crop, s.crops.Save(crop)
}

func (s *cropSvc) ToggleStatus(id uint) (*entities.Crop, error) {
	crop, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if crop.Status == entities.CropActive {
		crop.Status = entities.CropHarvested
	} else {
		crop.Status = entities.CropActive
	}
	return crop, s.crops.Save(crop)
}

func (s *cropSvc) Delete(id uint) error {
	crop, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.crops.Delete(crop)
}

func (s *cropSvc) AdvanceStages(now time.Time) error {
	crops, err := s.crops.FindActive()
	if err != nil {
		return fmt.Errorf("load active crops: %w", err)
	}

	for i := range crops {
		if err := s.advanceCrop(&crops[i], now); err != nil {
			log.Printf("[stage-pass] crop %d: %v", crops[i].ID, err)
		}
	}
	return nil
}

// advanceCrop promotes the crop one stage when its current stage's duration
// has elapsed. A crop in its species' last stage stays put.
func (s *cropSvc) advanceCrop(crop *entities.Crop, now time.Time) error {
	current, err := s.stages.FindBySpeciesAndOrder(crop.SpeciesID, crop.CurrentStageOrder)
	if err != nil {
		return fmt.Errorf("load stage: %w", err)
	}
	if current == nil || current.DurationDays == nil {
		// unknown stage or open-ended duration: nothing to advance
		return nil
	}

	elapsed := now.Sub(crop.StageEnteredAt)
	if elapsed < time.Duration(*current.DurationDays)*24*time.Hour {
		return nil
	}

	next, err := s.stages.FindNext(crop.SpeciesID, crop.CurrentStageOrder)
	if err != nil {
		return fmt.Errorf("load next stage: %w", err)
	}
	if next == nil {
		// terminal stage, no wrap-around and no auto-harvest
		return nil
	}

	unlock := s.locks.Lock(crop.ID)
	defer unlock()

	crop.CurrentStageOrder = next.StageOrder
	crop.StageEnteredAt = now
	if err := s.crops.Save(crop); err != nil {
		return fmt.Errorf("save crop: %w", err)
	}

	s.notify.Notify(
		fmt.Sprintf("Crop %s entered stage %s", crop.Name, next.Name),
		crop.UserID,
	)
	log.Printf("[stage-pass] crop %d promoted to stage %d (%s)", crop.ID, next.StageOrder, next.Name)
	return nil
}
