package repositoryImp

import (
	"gorm.io/gorm"

	"cultivapp/entities"
	"cultivapp/pkg/rule/repository"
)

type ruleRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.RuleRepository { return &ruleRepo{db} }

func (r *ruleRepo) Create(rule *entities.Rule) error { return r.db.Create(rule).Error }

func (r *ruleRepo) FindAll(category entities.RuleCategory) ([]entities.Rule, error) {
	q := r.db.Order("id ASC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var out []entities.Rule
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ruleRepo) FindByID(id uint) (*entities.Rule, error) {
	var out []entities.Rule
	if err := r.db.Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

func (r *ruleRepo) Save(rule *entities.Rule) error { return r.db.Save(rule).Error }

func (r *ruleRepo) Delete(rule *entities.Rule) error { return r.db.Delete(rule).Error }
