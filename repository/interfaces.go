package repository

import (
	"github.com/akhand-data/akhanddatabackend/models"
)

// BatchRepositoryInterface defines the methods for batch data operations
type BatchRepositoryInterface interface {
	Create(name string) (*models.Batch, error)
	GetByID(id uint) (*models.Batch, error)
	GetByName(name string) (*models.Batch, error)
	ListAll() ([]models.Batch, error)
	ListFiles(batchID uint) ([]string, error)
	CountRecords(batchID *uint) (int64, error)
	DeleteFile(batchID uint, fileName string) error
	Delete(id uint) error
}

// RecordRepositoryInterface defines the methods for record data operations
type RecordRepositoryInterface interface {
	Create(batchID uint, fileName string, attrs models.RecordAttributes) (*models.Record, error)
	InsertFile(batchID uint, fileName string, attrs []models.RecordAttributes) (int, error)
	GetByID(id uint) (*models.Record, error)
	Update(id uint, attrs models.RecordAttributes) error
	SetRelationshipStatus(id uint, status string) error
	ListByBatch(batchID *uint) ([]models.Record, error)
	ListByStatus(status string) ([]models.Record, error)
	SearchAdvanced(criteria models.SearchCriteria) ([]models.Record, error)
	Delete(id uint) error
}

// UserRepositoryInterface defines the methods for operator account operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Count() (int64, error)
}
