package models

// Batch represents one named import session in the database using GORM.
// It corresponds to the 'batches' table. A batch owns the records ingested
// from one or more uploaded files; file names are a derived grouping within
// the batch, not a table of their own.
type Batch struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"not null;uniqueIndex" json:"name"`
	CreatedAt int64  `gorm:"not null" json:"created_at"` // Stored as INTEGER in SQLite, Unix timestamp

	// Relationships
	Records []Record `gorm:"foreignKey:BatchID;constraint:OnDelete:CASCADE" json:"records,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Batch) TableName() string {
	return "batches"
}
