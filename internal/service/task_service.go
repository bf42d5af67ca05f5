package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"task-manager/internal/model"
	"task-manager/internal/repository"
)

// RegularTaskInput describes a recurring task. The weekday set must be
// non-empty with days in 1..7 (Monday..Sunday).
type RegularTaskInput struct {
	UserID   uint           `validate:"required"`
	Name     string         `validate:"required,max=200"`
	Weekdays model.Weekdays `validate:"required,min=1,dive,min=1,max=7"`
}

// IrregularTaskInput describes a one-off task. Both deadlines are optional;
// when both are set the optimal deadline must not be later than the hard one.
type IrregularTaskInput struct {
	UserID          uint   `validate:"required"`
	Name            string `validate:"required,max=200"`
	OptimalDeadline *time.Time
	HardDeadline    *time.Time
}

// TaskService validates input and delegates to the task repository.
type TaskService struct {
	tasks    *repository.TaskRepository
	validate *validator.Validate
}

func NewTaskService(tasks *repository.TaskRepository) *TaskService {
	return &TaskService{
		tasks:    tasks,
		validate: validator.New(),
	}
}

func (s *TaskService) CreateRegularTask(ctx context.Context, input RegularTaskInput) (*model.Task, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrValidation, err)
	}
	return s.tasks.CreateRegular(ctx, input.UserID, input.Name, input.Weekdays)
}

func (s *TaskService) CreateIrregularTask(ctx context.Context, input IrregularTaskInput) (*model.Task, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrValidation, err)
	}
	if input.OptimalDeadline != nil && input.HardDeadline != nil &&
		input.OptimalDeadline.After(*input.HardDeadline) {
		return nil, fmt.Errorf("%w: optimal deadline after hard deadline", repository.ErrValidation)
	}
	return s.tasks.CreateIrregular(ctx, input.UserID, input.Name, input.OptimalDeadline, input.HardDeadline)
}

func (s *TaskService) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	return s.tasks.Get(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context, userID uint, filter repository.TaskFilter) ([]model.Task, error) {
	if filter.Weekday != 0 {
		if err := s.validate.Var(int(filter.Weekday), "min=1,max=7"); err != nil {
			return nil, fmt.Errorf("%w: %v", repository.ErrValidation, err)
		}
	}
	return s.tasks.ListByUser(ctx, userID, filter)
}

func (s *TaskService) UpdateRegularTask(ctx context.Context, taskID uint, patch repository.RegularPatch) (*model.Task, error) {
	if len(patch.Weekdays) > 0 {
		if err := s.validate.Var(patch.Weekdays, "dive,min=1,max=7"); err != nil {
			return nil, fmt.Errorf("%w: %v", repository.ErrValidation, err)
		}
	}
	return s.tasks.UpdateRegular(ctx, taskID, patch)
}

func (s *TaskService) UpdateIrregularTask(ctx context.Context, taskID uint, patch repository.IrregularPatch) (*model.Task, error) {
	return s.tasks.UpdateIrregular(ctx, taskID, patch)
}

// UpdateProgress sets task completion to a percentage between 0 and 100.
func (s *TaskService) UpdateProgress(ctx context.Context, taskID uint, progress int) (*model.Task, error) {
	if err := s.validate.Var(progress, "min=0,max=100"); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrValidation, err)
	}
	return s.tasks.UpdateProgress(ctx, taskID, progress)
}

func (s *TaskService) SetStatus(ctx context.Context, taskID uint, status string) (*model.Task, error) {
	if err := s.validate.Var(status, "oneof=pending done"); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrValidation, err)
	}
	return s.tasks.SetStatus(ctx, taskID, status)
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID uint) error {
	return s.tasks.Delete(ctx, taskID)
}
