package repository

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"task-manager/internal/config"
	"task-manager/internal/model"
)

// NewDB opens the configured PostgreSQL database with a bounded connection
// pool. The pool size is fixed at startup and not adjusted at runtime.
func NewDB(cfg config.Config) (*gorm.DB, error) {
	return OpenDialector(postgres.Open(cfg.DSN()), cfg)
}

// OpenDialector opens a database through an explicit dialector. Tests use
// this to run against in-memory SQLite.
func OpenDialector(dialector gorm.Dialector, cfg config.Config) (*gorm.DB, error) {
	dbLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         dbLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w: %v", ErrConnection, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access pool: %w: %v", ErrConnection, err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w: %v", ErrConnection, err)
	}

	return db, nil
}

// Migrate idempotently ensures all five relations exist with their
// constraints.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.UserIdentifier{},
		&model.Task{},
		&model.RegularTask{},
		&model.IrregularTask{},
	)
	if err != nil {
		return fmt.Errorf("migrate db: %w: %v", ErrSchema, err)
	}
	return nil
}
