package repository

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/akhand-data/akhanddatabackend/models"
)

// setupTestDB opens an isolated in-memory database migrated with the full
// schema. The single-connection pool keeps the shared-cache memory database
// alive for the duration of the test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Batch{}, &models.Record{}, &models.User{}))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// seedBatch creates a batch for tests that need one.
func seedBatch(t *testing.T, db *gorm.DB, name string) *models.Batch {
	t.Helper()
	batch, err := NewBatchRepository(db).Create(name)
	require.NoError(t, err)
	return batch
}
