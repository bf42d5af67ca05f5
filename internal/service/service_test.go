package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"task-manager/internal/config"
	"task-manager/internal/model"
	"task-manager/internal/repository"
)

func newServices(t *testing.T) (*UserService, *TaskService) {
	t.Helper()

	db, err := repository.OpenDialector(
		sqlite.Open("file::memory:?_foreign_keys=on"),
		config.Config{MaxOpenConns: 1, MaxIdleConns: 1},
	)
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return NewUserService(repository.NewUserRepository(db)),
		NewTaskService(repository.NewTaskRepository(db))
}

func TestCreateUserRejectsMissingName(t *testing.T) {
	users, _ := newServices(t)

	_, err := users.CreateUser(context.Background(), UserInput{})
	assert.ErrorIs(t, err, repository.ErrValidation)
}

func TestAddIdentifierRejectsMissingFields(t *testing.T) {
	users, _ := newServices(t)
	ctx := context.Background()

	user, err := users.CreateUser(ctx, UserInput{Name: "Alice"})
	require.NoError(t, err)

	_, err = users.AddIdentifier(ctx, IdentifierInput{UserID: user.ID, IdentifierType: "telegram"})
	assert.ErrorIs(t, err, repository.ErrValidation)
}

func TestCreateRegularTaskRejectsBadWeekdays(t *testing.T) {
	users, tasks := newServices(t)
	ctx := context.Background()

	user, err := users.CreateUser(ctx, UserInput{Name: "Alice"})
	require.NoError(t, err)

	_, err = tasks.CreateRegularTask(ctx, RegularTaskInput{UserID: user.ID, Name: "Gym"})
	assert.ErrorIs(t, err, repository.ErrValidation)

	_, err = tasks.CreateRegularTask(ctx, RegularTaskInput{
		UserID:   user.ID,
		Name:     "Gym",
		Weekdays: model.Weekdays{model.Weekday(8)},
	})
	assert.ErrorIs(t, err, repository.ErrValidation)
}

func TestCreateIrregularTaskRejectsInvertedDeadlines(t *testing.T) {
	users, tasks := newServices(t)
	ctx := context.Background()

	user, err := users.CreateUser(ctx, UserInput{Name: "Alice"})
	require.NoError(t, err)

	optimal := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	hard := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	_, err = tasks.CreateIrregularTask(ctx, IrregularTaskInput{
		UserID:          user.ID,
		Name:            "Pay rent",
		OptimalDeadline: &optimal,
		HardDeadline:    &hard,
	})
	assert.ErrorIs(t, err, repository.ErrValidation)
}

func TestUpdateProgressRejectsOutOfRange(t *testing.T) {
	users, tasks := newServices(t)
	ctx := context.Background()

	user, err := users.CreateUser(ctx, UserInput{Name: "Alice"})
	require.NoError(t, err)
	task, err := tasks.CreateRegularTask(ctx, RegularTaskInput{
		UserID:   user.ID,
		Name:     "Gym",
		Weekdays: model.Weekdays{model.Monday},
	})
	require.NoError(t, err)

	_, err = tasks.UpdateProgress(ctx, task.ID, 101)
	assert.ErrorIs(t, err, repository.ErrValidation)
	_, err = tasks.UpdateProgress(ctx, task.ID, -1)
	assert.ErrorIs(t, err, repository.ErrValidation)
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	users, tasks := newServices(t)
	ctx := context.Background()

	user, err := users.CreateUser(ctx, UserInput{Name: "Alice"})
	require.NoError(t, err)
	task, err := tasks.CreateRegularTask(ctx, RegularTaskInput{
		UserID:   user.ID,
		Name:     "Gym",
		Weekdays: model.Weekdays{model.Monday},
	})
	require.NoError(t, err)

	_, err = tasks.SetStatus(ctx, task.ID, "archived")
	assert.ErrorIs(t, err, repository.ErrValidation)

	done, err := tasks.SetStatus(ctx, task.ID, model.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, done.Status)
}

func TestListTasksRejectsBadWeekdayFilter(t *testing.T) {
	users, tasks := newServices(t)
	ctx := context.Background()

	user, err := users.CreateUser(ctx, UserInput{Name: "Alice"})
	require.NoError(t, err)

	_, err = tasks.ListTasks(ctx, user.ID, repository.TaskFilter{Weekday: model.Weekday(9)})
	assert.ErrorIs(t, err, repository.ErrValidation)
}

// Full lifecycle: user with one regular and one irregular task, listed in
// creation order, then removed by cascade when the user is deleted.
func TestUserTaskLifecycle(t *testing.T) {
	users, tasks := newServices(t)
	ctx := context.Background()

	alice, err := users.CreateUser(ctx, UserInput{Name: "Alice"})
	require.NoError(t, err)

	gym, err := tasks.CreateRegularTask(ctx, RegularTaskInput{
		UserID:   alice.ID,
		Name:     "Gym",
		Weekdays: model.Weekdays{model.Monday, model.Wednesday, model.Friday},
	})
	require.NoError(t, err)
	require.NotNil(t, gym.Regular)
	assert.Nil(t, gym.Irregular)

	deadline := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	rent, err := tasks.CreateIrregularTask(ctx, IrregularTaskInput{
		UserID:       alice.ID,
		Name:         "Pay rent",
		HardDeadline: &deadline,
	})
	require.NoError(t, err)
	require.NotNil(t, rent.Irregular)
	assert.Nil(t, rent.Regular)

	listed, err := tasks.ListTasks(ctx, alice.ID, repository.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, gym.ID, listed[0].ID)
	assert.Equal(t, rent.ID, listed[1].ID)

	require.NoError(t, users.DeleteUser(ctx, alice.ID))

	_, err = users.GetUser(ctx, alice.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = tasks.GetTask(ctx, gym.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = tasks.GetTask(ctx, rent.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
