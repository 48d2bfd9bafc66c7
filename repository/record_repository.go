package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/akhand-data/akhanddatabackend/models"
)

// ErrInvalidStatus is returned when a relationship status outside the
// allowed set reaches a repository operation.
var ErrInvalidStatus = errors.New("invalid relationship status")

// recordOrder is the listing order for records: newest first, with the id
// tiebreak keeping same-second inserts deterministic.
const recordOrder = "records.created_at DESC, records.id DESC"

// batchNameSelect joins batches so queries can surface the owning batch's
// name alongside each record.
const batchNameSelect = "records.*, batches.name AS batch_name"

// RecordRepository handles database operations for Record entities
type RecordRepository struct {
	DB *gorm.DB
}

// NewRecordRepository creates a new instance of RecordRepository
func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{DB: db}
}

// Create inserts a new record under the given batch and file name. The
// relationship status always starts as Regular regardless of any value in
// attrs; imported data is never pre-tagged. The batch must exist.
func (r *RecordRepository) Create(batchID uint, fileName string, attrs models.RecordAttributes) (*models.Record, error) {
	record, err := r.createInTx(r.DB, batchID, fileName, attrs)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *RecordRepository) createInTx(tx *gorm.DB, batchID uint, fileName string, attrs models.RecordAttributes) (*models.Record, error) {
	var batch models.Batch
	if err := tx.First(&batch, batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cannot add record: batch ID %d does not exist: %w", batchID, err)
		}
		return nil, fmt.Errorf("failed to verify batch ID %d: %w", batchID, err)
	}

	record := models.Record{
		BatchID:            batchID,
		FileName:           fileName,
		SerialNumber:       attrs.SerialNumber,
		FullName:           attrs.FullName,
		VoterNumber:        attrs.VoterNumber,
		FatherName:         attrs.FatherName,
		MotherName:         attrs.MotherName,
		Occupation:         attrs.Occupation,
		DateOfBirth:        attrs.DateOfBirth,
		Address:            attrs.Address,
		PhoneNumber:        attrs.PhoneNumber,
		FacebookLink:       attrs.FacebookLink,
		PhotoLink:          attrs.PhotoLink,
		Description:        attrs.Description,
		RelationshipStatus: models.RelationshipRegular,
		CreatedAt:          time.Now().Unix(),
	}
	if err := tx.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to create record in batch ID %d: %w", batchID, err)
	}
	return &record, nil
}

// InsertFile inserts all of one file's records under a batch in a single
// transaction and returns the number inserted. Any failure rolls back the
// whole file; a file is never half-ingested.
func (r *RecordRepository) InsertFile(batchID uint, fileName string, attrs []models.RecordAttributes) (int, error) {
	inserted := 0
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		for _, a := range attrs {
			if _, err := r.createInTx(tx, batchID, fileName, a); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// GetByID retrieves a record by its ID, including the owning batch's name
func (r *RecordRepository) GetByID(id uint) (*models.Record, error) {
	var record models.Record
	err := r.DB.Model(&models.Record{}).
		Select(batchNameSelect).
		Joins("JOIN batches ON batches.id = records.batch_id").
		Where("records.id = ?", id).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get record by ID %d: %w", id, err)
	}
	return &record, nil
}

// Update replaces every mutable attribute of a record, including the
// relationship status. There is no partial-field update; absent fields in
// attrs overwrite with empty strings.
func (r *RecordRepository) Update(id uint, attrs models.RecordAttributes) error {
	status := attrs.RelationshipStatus
	if status == "" {
		status = models.RelationshipRegular
	}
	if !models.IsValidRelationshipStatus(status) {
		return fmt.Errorf("%w %q", ErrInvalidStatus, status)
	}

	result := r.DB.Model(&models.Record{}).Where("id = ?", id).Updates(map[string]interface{}{
		"serial_number":       attrs.SerialNumber,
		"full_name":           attrs.FullName,
		"voter_number":        attrs.VoterNumber,
		"father_name":         attrs.FatherName,
		"mother_name":         attrs.MotherName,
		"occupation":          attrs.Occupation,
		"date_of_birth":       attrs.DateOfBirth,
		"address":             attrs.Address,
		"phone_number":        attrs.PhoneNumber,
		"facebook_link":       attrs.FacebookLink,
		"photo_link":          attrs.PhotoLink,
		"description":         attrs.Description,
		"relationship_status": status,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update record ID %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetRelationshipStatus updates only the relationship status of a record.
// Any status may follow any other; the prior value is overwritten, not kept.
func (r *RecordRepository) SetRelationshipStatus(id uint, status string) error {
	if !models.IsValidRelationshipStatus(status) {
		return fmt.Errorf("%w %q", ErrInvalidStatus, status)
	}
	result := r.DB.Model(&models.Record{}).Where("id = ?", id).
		Update("relationship_status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to set relationship status for record ID %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByBatch retrieves records newest first, scoped to one batch when
// batchID is non-nil; nil means all batches.
func (r *RecordRepository) ListByBatch(batchID *uint) ([]models.Record, error) {
	query := r.DB.Model(&models.Record{}).
		Select(batchNameSelect).
		Joins("JOIN batches ON batches.id = records.batch_id")
	if batchID != nil {
		query = query.Where("records.batch_id = ?", *batchID)
	}

	var records []models.Record
	if err := query.Order(recordOrder).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

// ListByStatus retrieves all records carrying one relationship status,
// newest first.
func (r *RecordRepository) ListByStatus(status string) ([]models.Record, error) {
	if !models.IsValidRelationshipStatus(status) {
		return nil, fmt.Errorf("%w %q", ErrInvalidStatus, status)
	}

	var records []models.Record
	err := r.DB.Model(&models.Record{}).
		Select(batchNameSelect).
		Joins("JOIN batches ON batches.id = records.batch_id").
		Where("records.relationship_status = ?", status).
		Order(recordOrder).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list records with status %s: %w", status, err)
	}
	return records, nil
}

// substringFilters maps each filterable text column to its criterion value.
// The column set is fixed; criteria never reach the SQL as anything but
// bound parameters.
func substringFilters(c models.SearchCriteria) []struct{ column, value string } {
	return []struct{ column, value string }{
		{"records.serial_number", c.SerialNumber},
		{"records.full_name", c.FullName},
		{"records.voter_number", c.VoterNumber},
		{"records.father_name", c.FatherName},
		{"records.mother_name", c.MotherName},
		{"records.occupation", c.Occupation},
		{"records.date_of_birth", c.DateOfBirth},
		{"records.address", c.Address},
		{"records.phone_number", c.PhoneNumber},
	}
}

// SearchAdvanced returns records matching every present, non-empty criterion,
// newest first. Text criteria match by case-insensitive substring; the
// relationship status matches exactly. Empty criteria impose no constraint,
// so an all-empty criteria set lists everything. Criteria are not escaped for
// LIKE, so % and _ inside a criterion act as wildcards.
func (r *RecordRepository) SearchAdvanced(criteria models.SearchCriteria) ([]models.Record, error) {
	query := r.DB.Model(&models.Record{}).
		Select(batchNameSelect).
		Joins("JOIN batches ON batches.id = records.batch_id")

	for _, f := range substringFilters(criteria) {
		value := strings.TrimSpace(f.value)
		if value == "" {
			continue
		}
		query = query.Where("LOWER("+f.column+") LIKE ?", "%"+strings.ToLower(value)+"%")
	}

	if status := strings.TrimSpace(criteria.RelationshipStatus); status != "" {
		if !models.IsValidRelationshipStatus(status) {
			return nil, fmt.Errorf("%w %q", ErrInvalidStatus, status)
		}
		query = query.Where("records.relationship_status = ?", status)
	}

	if criteria.BatchID != nil {
		query = query.Where("records.batch_id = ?", *criteria.BatchID)
	}

	var records []models.Record
	if err := query.Order(recordOrder).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to execute advanced search: %w", err)
	}
	return records, nil
}

// Delete removes a record by its ID
func (r *RecordRepository) Delete(id uint) error {
	result := r.DB.Delete(&models.Record{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete record ID %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
