package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/facette/natsort"
	"gorm.io/gorm"

	"github.com/akhand-data/akhanddatabackend/models"
)

// BatchRepository handles database operations for Batch entities and the
// derived per-batch file grouping
type BatchRepository struct {
	DB *gorm.DB
}

// NewBatchRepository creates a new instance of BatchRepository
func NewBatchRepository(db *gorm.DB) *BatchRepository {
	return &BatchRepository{DB: db}
}

// Create inserts a new batch row. It does not dedupe by name; ingestion is
// expected to call GetByName first and only create when no match exists. The
// unique index on name is a backstop against concurrent duplicate creates.
func (r *BatchRepository) Create(name string) (*models.Batch, error) {
	batch := models.Batch{
		Name:      name,
		CreatedAt: time.Now().Unix(),
	}
	if err := r.DB.Create(&batch).Error; err != nil {
		return nil, fmt.Errorf("failed to create batch %s: %w", name, err)
	}
	return &batch, nil
}

// GetByID retrieves a batch by its ID
func (r *BatchRepository) GetByID(id uint) (*models.Batch, error) {
	var batch models.Batch
	err := r.DB.First(&batch, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get batch by ID %d: %w", id, err)
	}
	return &batch, nil
}

// GetByName retrieves a batch by its name. Returns gorm.ErrRecordNotFound
// when no batch carries the name.
func (r *BatchRepository) GetByName(name string) (*models.Batch, error) {
	var batch models.Batch
	err := r.DB.Where("name = ?", name).First(&batch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get batch by name %s: %w", name, err)
	}
	return &batch, nil
}

// ListAll retrieves all batches, newest created first
func (r *BatchRepository) ListAll() ([]models.Batch, error) {
	var batches []models.Batch
	err := r.DB.Order("created_at DESC, id DESC").Find(&batches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	return batches, nil
}

// ListFiles returns the distinct file names of a batch in natural order.
// Files are a derived grouping over records, not stored rows.
func (r *BatchRepository) ListFiles(batchID uint) ([]string, error) {
	var fileNames []string
	err := r.DB.Model(&models.Record{}).
		Where("batch_id = ?", batchID).
		Distinct().
		Pluck("file_name", &fileNames).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list files for batch ID %d: %w", batchID, err)
	}
	natsort.Sort(fileNames)
	return fileNames, nil
}

// CountRecords returns the number of records owned by a batch, or by all
// batches when batchID is nil.
func (r *BatchRepository) CountRecords(batchID *uint) (int64, error) {
	query := r.DB.Model(&models.Record{})
	if batchID != nil {
		query = query.Where("batch_id = ?", *batchID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// DeleteFile removes every record of a batch sharing the given file name,
// in one transaction. Deleting a nonexistent file is a no-op, not an error.
func (r *BatchRepository) DeleteFile(batchID uint, fileName string) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("batch_id = ? AND file_name = ?", batchID, fileName).
			Delete(&models.Record{})
		if result.Error != nil {
			return result.Error
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete file %s from batch ID %d: %w", fileName, batchID, err)
	}
	return nil
}

// Delete removes a batch and all its records in one transaction. A failure
// at any point rolls the whole deletion back; orphaned records are never
// observably committed.
func (r *BatchRepository) Delete(id uint) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("batch_id = ?", id).Delete(&models.Record{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Batch{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gorm.ErrRecordNotFound
		}
		return fmt.Errorf("failed to delete batch ID %d: %w", id, err)
	}
	return nil
}
