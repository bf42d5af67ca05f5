package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"task-manager/internal/config"
	"task-manager/internal/model"
	"task-manager/internal/repository"
	"task-manager/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	if err := repository.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	userSvc := service.NewUserService(repository.NewUserRepository(db))
	taskSvc := service.NewTaskService(repository.NewTaskRepository(db))

	// Smoke-exercise the API against the freshly migrated schema.
	user, err := userSvc.CreateUser(ctx, service.UserInput{Name: "Ivan"})
	if err != nil {
		log.Fatalf("create user: %v", err)
	}
	log.Printf("created user %d (%s)", user.ID, user.Name)

	if _, err := userSvc.AddIdentifier(ctx, service.IdentifierInput{
		UserID:         user.ID,
		Identifier:     "123456789",
		IdentifierType: "telegram",
	}); err != nil {
		log.Fatalf("add identifier: %v", err)
	}
	log.Printf("added telegram identifier for user %d", user.ID)

	workout, err := taskSvc.CreateRegularTask(ctx, service.RegularTaskInput{
		UserID:   user.ID,
		Name:     "Morning workout",
		Weekdays: model.Weekdays{model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday},
	})
	if err != nil {
		log.Fatalf("create regular task: %v", err)
	}
	log.Printf("created regular task %d on %s", workout.ID, workout.Regular.Weekdays)

	optimal := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)
	hard := time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC)
	report, err := taskSvc.CreateIrregularTask(ctx, service.IrregularTaskInput{
		UserID:          user.ID,
		Name:            "Prepare report",
		OptimalDeadline: &optimal,
		HardDeadline:    &hard,
	})
	if err != nil {
		log.Fatalf("create irregular task: %v", err)
	}
	log.Printf("created irregular task %d due %s", report.ID, hard.Format("2006-01-02"))

	tasks, err := taskSvc.ListTasks(ctx, user.ID, repository.TaskFilter{})
	if err != nil {
		log.Fatalf("list tasks: %v", err)
	}
	for _, t := range tasks {
		log.Printf("task %d: %s [%s] %d%%", t.ID, t.Name, t.Kind, t.Progress)
	}

	if _, err := taskSvc.UpdateProgress(ctx, workout.ID, 50); err != nil {
		log.Fatalf("update progress: %v", err)
	}
	updated, err := taskSvc.GetTask(ctx, workout.ID)
	if err != nil {
		log.Fatalf("get task: %v", err)
	}
	log.Printf("task %d progress now %d%% (%s)", updated.ID, updated.Progress, updated.Status)

	log.Println("Done.")
}
