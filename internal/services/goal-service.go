package services

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stridepath/goal_service/internal/domain"
	"github.com/stridepath/goal_service/internal/dto"
	"github.com/stridepath/goal_service/internal/interfaces"
	"github.com/stridepath/goal_service/internal/repository"
)

type GoalService interface {
	CreateGoal(ownerID uint, input dto.GoalCreateRequest) (*domain.Goal, error)
	ListGoals(ownerID uint, status *domain.GoalStatus) ([]domain.Goal, error)
	GetGoal(ownerID, goalID uint) (*domain.Goal, error)
	UpdateGoal(ownerID, goalID uint, input dto.GoalUpdateRequest) (*domain.Goal, error)
	DeleteGoal(ownerID, goalID uint) error

	CreateStep(ownerID, goalID uint, input dto.StepCreateRequest) (*domain.Step, error)
	UpdateStep(ownerID, goalID, stepID uint, input dto.StepUpdateRequest) (*domain.Step, error)
}

type goalService struct {
	repo     repository.GoalRepository
	producer interfaces.ProducerHandler
}

func NewGoalService(repo repository.GoalRepository, producer interfaces.ProducerHandler) GoalService {
	return &goalService{
		repo:     repo,
		producer: producer,
	}
}

func (g *goalService) CreateGoal(ownerID uint, input dto.GoalCreateRequest) (*domain.Goal, error) {
	goal := &domain.Goal{
		Title:       input.Title,
		Description: input.Description,
		Deadline:    input.Deadline,
		Status:      domain.GoalStatusInProgress,
		Progress:    0,
		UserID:      ownerID,
		Steps:       []domain.Step{},
	}

	if err := g.repo.CreateGoal(goal); err != nil {
		log.Printf("create goal error: %v", err)
		return nil, errors.New("failed to create goal")
	}
	return goal, nil
}

func (g *goalService) ListGoals(ownerID uint, status *domain.GoalStatus) ([]domain.Goal, error) {
	goals, err := g.repo.ListGoals(ownerID, status)
	if err != nil {
		log.Printf("list goals error: %v", err)
		return nil, errors.New("failed to list goals")
	}
	return goals, nil
}

func (g *goalService) GetGoal(ownerID, goalID uint) (*domain.Goal, error) {
	goal, err := g.repo.FindGoal(ownerID, goalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return goal, nil
}

func (g *goalService) UpdateGoal(ownerID, goalID uint, input dto.GoalUpdateRequest) (*domain.Goal, error) {
	goal, err := g.GetGoal(ownerID, goalID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		goal.Title = *input.Title
	}
	if input.Description != nil {
		goal.Description = input.Description
	}
	if input.Deadline != nil {
		goal.Deadline = input.Deadline
	}
	if input.Status != nil {
		status := domain.GoalStatus(*input.Status)
		if !status.Valid() {
			return nil, errors.New("invalid status")
		}
		goal.Status = status
	}

	if err := g.repo.SaveGoal(goal); err != nil {
		log.Printf("update goal error: %v", err)
		return nil, errors.New("failed to update goal")
	}
	return goal, nil
}

func (g *goalService) DeleteGoal(ownerID, goalID uint) error {
	goal, err := g.GetGoal(ownerID, goalID)
	if err != nil {
		return err
	}

	if err := g.repo.DeleteGoal(goal); err != nil {
		log.Printf("delete goal error: %v", err)
		return errors.New("failed to delete goal")
	}
	return nil
}

func (g *goalService) CreateStep(ownerID, goalID uint, input dto.StepCreateRequest) (*domain.Step, error) {
	var (
		step      *domain.Step
		completed *domain.Goal
	)

	err := g.repo.WithTx(func(tx repository.GoalRepository) error {
		goal, err := tx.FindGoal(ownerID, goalID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		step = &domain.Step{
			Title:       input.Title,
			Description: input.Description,
			Order:       input.Order,
			GoalID:      goal.ID,
		}
		if err := tx.CreateStep(step); err != nil {
			return err
		}

		completed, err = recomputeProgress(tx, goal)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		log.Printf("create step error: %v", err)
		return nil, errors.New("failed to create step")
	}

	g.publishGoalCompleted(completed)

	return step, nil
}

func (g *goalService) UpdateStep(ownerID, goalID, stepID uint, input dto.StepUpdateRequest) (*domain.Step, error) {
	var (
		step      *domain.Step
		completed *domain.Goal
	)

	err := g.repo.WithTx(func(tx repository.GoalRepository) error {
		goal, err := tx.FindGoal(ownerID, goalID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		step, err = tx.FindStep(goal.ID, stepID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if input.Title != nil {
			step.Title = *input.Title
		}
		if input.Description != nil {
			step.Description = input.Description
		}
		if input.Order != nil {
			step.Order = *input.Order
		}
		if input.IsCompleted != nil {
			// completed_at records the first completion only: it is
			// stamped on the false->true transition and survives both
			// re-completion and un-completion.
			if *input.IsCompleted && step.CompletedAt == nil {
				now := time.Now()
				step.CompletedAt = &now
			}
			step.IsCompleted = *input.IsCompleted
		}

		if err := tx.SaveStep(step); err != nil {
			return err
		}

		completed, err = recomputeProgress(tx, goal)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		log.Printf("update step error: %v", err)
		return nil, errors.New("failed to update step")
	}

	g.publishGoalCompleted(completed)

	return step, nil
}

// recomputeProgress derives the goal's progress from its current step
// set and promotes the status to COMPLETED at 100. It never demotes a
// COMPLETED goal. Returns the goal when this call completed it, so the
// caller can publish the event after the transaction commits.
func recomputeProgress(tx repository.GoalRepository, goal *domain.Goal) (*domain.Goal, error) {
	steps, err := tx.ListSteps(goal.ID)
	if err != nil {
		return nil, err
	}

	progress := 0
	if total := len(steps); total > 0 {
		done := 0
		for _, s := range steps {
			if s.IsCompleted {
				done++
			}
		}
		progress = 100 * done / total
	}

	wasCompleted := goal.Status == domain.GoalStatusCompleted
	goal.Progress = progress
	if progress == 100 && len(steps) > 0 {
		goal.Status = domain.GoalStatusCompleted
	}

	if err := tx.SaveGoal(goal); err != nil {
		return nil, err
	}

	if !wasCompleted && goal.Status == domain.GoalStatusCompleted {
		return goal, nil
	}
	return nil, nil
}

func (g *goalService) publishGoalCompleted(goal *domain.Goal) {
	if g.producer == nil || goal == nil {
		return
	}

	payload, err := json.Marshal(dto.GoalCompletedEvent{
		EventID:    uuid.NewString(),
		GoalID:     goal.ID,
		UserID:     goal.UserID,
		Title:      goal.Title,
		OccurredAt: time.Now(),
	})
	if err != nil {
		return
	}
	if err := g.producer.PublishMessage([]byte(dto.EventGoalCompleted), payload); err != nil {
		log.Printf("publish %s error: %v", dto.EventGoalCompleted, err)
	}
}
