package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"task-manager/internal/model"
)

// TaskRepository handles CRUD for tasks and their extension rows. Tasks are
// only ever created through CreateRegular or CreateIrregular, so a committed
// task always carries exactly one extension.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// CreateRegular inserts the base row and its weekday extension in one
// transaction; a failure on either insert leaves no rows behind.
func (r *TaskRepository) CreateRegular(ctx context.Context, userID uint, name string, weekdays model.Weekdays) (*model.Task, error) {
	task := model.Task{
		UserID: userID,
		Name:   name,
		Status: model.StatusPending,
		Kind:   model.KindRegular,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		ext := model.RegularTask{TaskID: task.ID, Weekdays: weekdays.Normalize()}
		if err := tx.Create(&ext).Error; err != nil {
			return err
		}
		task.Regular = &ext
		return nil
	})
	if err != nil {
		return nil, translate("create regular task", err)
	}
	return &task, nil
}

// CreateIrregular inserts the base row and its deadline extension in one
// transaction.
func (r *TaskRepository) CreateIrregular(ctx context.Context, userID uint, name string, optimalDeadline, hardDeadline *time.Time) (*model.Task, error) {
	task := model.Task{
		UserID: userID,
		Name:   name,
		Status: model.StatusPending,
		Kind:   model.KindIrregular,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		ext := model.IrregularTask{
			TaskID:          task.ID,
			OptimalDeadline: optimalDeadline,
			HardDeadline:    hardDeadline,
		}
		if err := tx.Create(&ext).Error; err != nil {
			return err
		}
		task.Irregular = &ext
		return nil
	})
	if err != nil {
		return nil, translate("create irregular task", err)
	}
	return &task, nil
}

// Get returns the task with its extension populated; Kind tells which of
// Regular/Irregular is set.
func (r *TaskRepository) Get(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Preload("Regular").
		Preload("Irregular").
		First(&task, id).Error
	if err != nil {
		return nil, translate("find task", err)
	}
	return &task, nil
}

// TaskFilter narrows ListByUser. Zero values mean "no constraint".
// DueBefore keeps only irregular tasks whose hard deadline is at or before
// the given time; Weekday keeps only regular tasks recurring on that day.
type TaskFilter struct {
	Status    string
	DueBefore *time.Time
	Weekday   model.Weekday
}

// ListByUser returns the user's tasks in creation order. A missing user is
// ErrNotFound; a user with no matching tasks yields an empty slice.
func (r *TaskRepository) ListByUser(ctx context.Context, userID uint, filter TaskFilter) ([]model.Task, error) {
	db := r.db.WithContext(ctx)

	var user model.User
	if err := db.Select("id").First(&user, userID).Error; err != nil {
		return nil, translate("find user", err)
	}

	q := db.Model(&model.Task{}).Where("tasks.user_id = ?", userID)
	if filter.Status != "" {
		q = q.Where("tasks.status = ?", filter.Status)
	}
	if filter.DueBefore != nil {
		q = q.Joins("JOIN irregular_tasks ON irregular_tasks.task_id = tasks.id").
			Where("irregular_tasks.hard_deadline <= ?", *filter.DueBefore)
	}
	if filter.Weekday != 0 {
		// Weekdays are stored as "1,3,5"; wrap both sides in commas so a
		// single-day match cannot hit a substring of another number.
		q = q.Joins("JOIN regular_tasks ON regular_tasks.task_id = tasks.id").
			Where("(',' || regular_tasks.weekdays || ',') LIKE ?", fmt.Sprintf("%%,%d,%%", filter.Weekday))
	}

	var tasks []model.Task
	err := q.Preload("Regular").Preload("Irregular").
		Order("tasks.created_at ASC, tasks.id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, translate("list tasks", err)
	}
	return tasks, nil
}

// RegularPatch is a partial update of a regular task; nil/empty fields are
// left untouched.
type RegularPatch struct {
	Name     *string
	Weekdays model.Weekdays
}

func (r *TaskRepository) UpdateRegular(ctx context.Context, taskID uint, patch RegularPatch) (*model.Task, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ext model.RegularTask
		if err := tx.Where("task_id = ?", taskID).First(&ext).Error; err != nil {
			return err
		}
		if patch.Name != nil {
			if err := tx.Model(&model.Task{}).Where("id = ?", taskID).
				Update("name", *patch.Name).Error; err != nil {
				return err
			}
		}
		if len(patch.Weekdays) > 0 {
			if err := tx.Model(&ext).
				Update("weekdays", patch.Weekdays.Normalize()).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translate("update regular task", err)
	}
	return r.Get(ctx, taskID)
}

// IrregularPatch is a partial update of an irregular task; nil fields are
// left untouched.
type IrregularPatch struct {
	Name            *string
	OptimalDeadline *time.Time
	HardDeadline    *time.Time
}

func (r *TaskRepository) UpdateIrregular(ctx context.Context, taskID uint, patch IrregularPatch) (*model.Task, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ext model.IrregularTask
		if err := tx.Where("task_id = ?", taskID).First(&ext).Error; err != nil {
			return err
		}
		if patch.Name != nil {
			if err := tx.Model(&model.Task{}).Where("id = ?", taskID).
				Update("name", *patch.Name).Error; err != nil {
				return err
			}
		}
		updates := map[string]interface{}{}
		if patch.OptimalDeadline != nil {
			updates["optimal_deadline"] = *patch.OptimalDeadline
		}
		if patch.HardDeadline != nil {
			updates["hard_deadline"] = *patch.HardDeadline
		}
		if len(updates) > 0 {
			if err := tx.Model(&ext).Updates(updates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translate("update irregular task", err)
	}
	return r.Get(ctx, taskID)
}

// UpdateProgress sets completion progress (0..100). Reaching 100 flips the
// status to done; dropping below reopens the task.
func (r *TaskRepository) UpdateProgress(ctx context.Context, taskID uint, progress int) (*model.Task, error) {
	status := model.StatusPending
	if progress >= 100 {
		status = model.StatusDone
	}

	tx := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", taskID).
		Updates(map[string]interface{}{"progress": progress, "status": status})
	if tx.Error != nil {
		return nil, translate("update task progress", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, translate("update task progress", gorm.ErrRecordNotFound)
	}
	return r.Get(ctx, taskID)
}

func (r *TaskRepository) SetStatus(ctx context.Context, taskID uint, status string) (*model.Task, error) {
	tx := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", taskID).
		Update("status", status)
	if tx.Error != nil {
		return nil, translate("set task status", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, translate("set task status", gorm.ErrRecordNotFound)
	}
	return r.Get(ctx, taskID)
}

// Delete hard-deletes the task; its extension row goes with it via the
// database cascade. A missing id is ErrNotFound, not a no-op.
func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&model.Task{}, id)
	if tx.Error != nil {
		return translate("delete task", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return translate("delete task", gorm.ErrRecordNotFound)
	}
	return nil
}
