package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/stridepath/goal_service/internal/domain"
)

// GoalRepository scopes every goal lookup by owner so a goal belonging
// to someone else is indistinguishable from a missing one.
type GoalRepository interface {
	CreateGoal(goal *domain.Goal) error
	ListGoals(ownerID uint, status *domain.GoalStatus) ([]domain.Goal, error)
	FindGoal(ownerID, goalID uint) (*domain.Goal, error)
	SaveGoal(goal *domain.Goal) error
	DeleteGoal(goal *domain.Goal) error

	CreateStep(step *domain.Step) error
	FindStep(goalID, stepID uint) (*domain.Step, error)
	SaveStep(step *domain.Step) error
	ListSteps(goalID uint) ([]domain.Step, error)

	// WithTx runs fn against a transaction-scoped repository. Step
	// mutations and the goal progress write share one transaction so a
	// reader never sees a step change with stale progress.
	WithTx(fn func(txRepo GoalRepository) error) error
}

type goalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) WithTx(fn func(txRepo GoalRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&goalRepository{db: tx})
	})
}

func (r *goalRepository) CreateGoal(goal *domain.Goal) error {
	if goal == nil {
		return errors.New("nil goal")
	}
	return r.db.Create(goal).Error
}

func (r *goalRepository) ListGoals(ownerID uint, status *domain.GoalStatus) ([]domain.Goal, error) {
	var goals []domain.Goal

	q := r.db.Preload("Steps", func(db *gorm.DB) *gorm.DB {
		return db.Order("step_order ASC, id ASC")
	}).Where("user_id = ?", ownerID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	if err := q.Order("id ASC").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

// FindGoal returns gorm.ErrRecordNotFound for both a missing goal and an
// ownership mismatch; it is a single filtered query on purpose.
func (r *goalRepository) FindGoal(ownerID, goalID uint) (*domain.Goal, error) {
	goal := &domain.Goal{}

	err := r.db.Preload("Steps", func(db *gorm.DB) *gorm.DB {
		return db.Order("step_order ASC, id ASC")
	}).Where("id = ? AND user_id = ?", goalID, ownerID).First(goal).Error
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func (r *goalRepository) SaveGoal(goal *domain.Goal) error {
	if goal == nil {
		return errors.New("nil goal")
	}
	return r.db.Omit("Steps").Save(goal).Error
}

func (r *goalRepository) DeleteGoal(goal *domain.Goal) error {
	if goal == nil {
		return errors.New("nil goal")
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("goal_id = ?", goal.ID).Delete(&domain.Step{}).Error; err != nil {
			return err
		}
		return tx.Delete(goal).Error
	})
}

func (r *goalRepository) CreateStep(step *domain.Step) error {
	if step == nil {
		return errors.New("nil step")
	}
	return r.db.Create(step).Error
}

func (r *goalRepository) FindStep(goalID, stepID uint) (*domain.Step, error) {
	step := &domain.Step{}

	if err := r.db.Where("id = ? AND goal_id = ?", stepID, goalID).First(step).Error; err != nil {
		return nil, err
	}
	return step, nil
}

func (r *goalRepository) SaveStep(step *domain.Step) error {
	if step == nil {
		return errors.New("nil step")
	}
	return r.db.Save(step).Error
}

func (r *goalRepository) ListSteps(goalID uint) ([]domain.Step, error) {
	var steps []domain.Step

	if err := r.db.Where("goal_id = ?", goalID).Order("step_order ASC, id ASC").Find(&steps).Error; err != nil {
		return nil, err
	}
	return steps, nil
}
