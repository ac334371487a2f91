package strategy

import (
	"fmt"

	"cultivapp/entities"
)

// Strategy adjusts one of a crop's health scores in reaction to a task event.
// An expired task is penalized, a still-active task being completed is
// rewarded. Each strategy touches exactly one health field.
type Strategy interface {
	Apply(task *entities.Task, crop *entities.Crop)
}

// Penalty/reward points per category.
const (
	IrrigationPenalty    = 10.0
	IrrigationReward     = 5.0
	FertilizationPenalty = 8.0
	FertilizationReward  = 4.0
	MaintenancePenalty   = 6.0
	MaintenanceReward    = 3.0
)

const (
	minHealth = 0.0
	maxHealth = 100.0
)

// Registry maps each rule category to its strategy. The category set is
// closed, so Resolve failing means broken reference data, not a runtime
// condition to recover from.
type Registry struct {
	strategies map[entities.RuleCategory]Strategy
}

func NewRegistry() *Registry {
	return &Registry{strategies: map[entities.RuleCategory]Strategy{
		entities.RuleIrrigation:    irrigationStrategy{},
		entities.RuleFertilization: fertilizationStrategy{},
		entities.RuleMaintenance:   maintenanceStrategy{},
	}}
}

func (r *Registry) Resolve(category entities.RuleCategory) (Strategy, error) {
	s, ok := r.strategies[category]
	if !ok {
		return nil, fmt.Errorf("no strategy for rule category %q", category)
	}
	return s, nil
}

func adjust(task *entities.Task, current, penalty, reward float64) float64 {
	if task.Expired {
		return max(minHealth, current-penalty)
	}
	if task.Active {
		return min(maxHealth, current+reward)
	}
	return current
}

type irrigationStrategy struct{}

func (irrigationStrategy) Apply(task *entities.Task, crop *entities.Crop) {
	crop.HealthIrrigation = adjust(task, crop.HealthIrrigation, IrrigationPenalty, IrrigationReward)
}

type fertilizationStrategy struct{}

func (fertilizationStrategy) Apply(task *entities.Task, crop *entities.Crop) {
	crop.HealthFertilization = adjust(task, crop.HealthFertilization, FertilizationPenalty, FertilizationReward)
}

type maintenanceStrategy struct{}

func (maintenanceStrategy) Apply(task *entities.Task, crop *entities.Crop) {
	crop.HealthMaintenance = adjust(task, crop.HealthMaintenance, MaintenancePenalty, MaintenanceReward)
}
