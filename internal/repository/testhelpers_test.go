package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"task-manager/internal/config"
)

// newTestDB opens a private in-memory database with foreign keys enforced.
// A single connection keeps the :memory: database alive for the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := OpenDialector(
		sqlite.Open("file::memory:?_foreign_keys=on"),
		config.Config{MaxOpenConns: 1, MaxIdleConns: 1},
	)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
