package repository

import "cultivapp/entities"

// RuleRepository manages care rules. FindByID returns (nil, nil) when the
// rule does not exist.
type RuleRepository interface {
	Create(r *entities.Rule) error
	// FindAll lists rules, optionally filtered by category ("" means all).
	FindAll(category entities.RuleCategory) ([]entities.Rule, error)
	FindByID(id uint) (*entities.Rule, error)
	Save(r *entities.Rule) error
	Delete(r *entities.Rule) error
}
