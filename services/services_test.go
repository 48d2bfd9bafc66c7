package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/akhand-data/akhanddatabackend/models"
	"github.com/akhand-data/akhanddatabackend/repository"
)

type testStore struct {
	DB      *gorm.DB
	Batches *repository.BatchRepository
	Records *repository.RecordRepository
}

// setupTestStore opens an isolated in-memory database with the full schema
// and the repositories the services compose over.
func setupTestStore(t *testing.T) *testStore {
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

	return &testStore{
		DB:      db,
		Batches: repository.NewBatchRepository(db),
		Records: repository.NewRecordRepository(db),
	}
}
