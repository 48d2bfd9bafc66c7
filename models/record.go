package models

// Relationship status values for a record. Imported records always start as
// Regular; any status may be changed to any other by an explicit user action.
const (
	RelationshipRegular   = "Regular"
	RelationshipFriend    = "Friend"
	RelationshipEnemy     = "Enemy"
	RelationshipConnected = "Connected"
)

// RelationshipStatuses lists every valid relationship status in display order.
var RelationshipStatuses = []string{
	RelationshipRegular,
	RelationshipConnected,
	RelationshipFriend,
	RelationshipEnemy,
}

// IsValidRelationshipStatus reports whether s is one of the known statuses.
func IsValidRelationshipStatus(s string) bool {
	for _, v := range RelationshipStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Record represents one parsed person-entry in the database using GORM.
// It corresponds to the 'records' table. All person attributes are optional
// free-text strings; date_of_birth is deliberately not validated as a
// calendar date because source files carry it in inconsistent formats.
type Record struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	BatchID  uint   `gorm:"not null;index" json:"batch_id"`
	FileName string `gorm:"not null" json:"file_name"`

	SerialNumber string `json:"serial_number"`
	FullName     string `json:"full_name"`
	VoterNumber  string `json:"voter_number"`
	FatherName   string `json:"father_name"`
	MotherName   string `json:"mother_name"`
	Occupation   string `json:"occupation"`
	DateOfBirth  string `json:"date_of_birth"`
	Address      string `json:"address"`
	PhoneNumber  string `json:"phone_number"`
	FacebookLink string `json:"facebook_link"`
	PhotoLink    string `json:"photo_link"`
	Description  string `json:"description"`

	RelationshipStatus string `gorm:"not null;default:Regular" json:"relationship_status"`
	CreatedAt          int64  `gorm:"not null" json:"created_at"` // Stored as INTEGER in SQLite, Unix timestamp

	// BatchName is populated by queries that join against batches; it is not
	// a column of the records table.
	BatchName string `gorm:"->;-:migration" json:"batch_name,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Record) TableName() string {
	return "records"
}

// RecordAttributes carries every mutable person attribute of a record plus
// the relationship status. Ingestion ignores RelationshipStatus (new records
// always start Regular); a full update replaces all of these fields at once.
type RecordAttributes struct {
	SerialNumber string `json:"serial_number"`
	FullName     string `json:"full_name"`
	VoterNumber  string `json:"voter_number"`
	FatherName   string `json:"father_name"`
	MotherName   string `json:"mother_name"`
	Occupation   string `json:"occupation"`
	DateOfBirth  string `json:"date_of_birth"`
	Address      string `json:"address"`
	PhoneNumber  string `json:"phone_number"`
	FacebookLink string `json:"facebook_link"`
	PhotoLink    string `json:"photo_link"`
	Description  string `json:"description"`

	RelationshipStatus string `json:"relationship_status"`
}

// SearchCriteria is the fixed, enumerated set of filterable fields for
// advanced search. Empty fields impose no constraint. Text fields match by
// case-insensitive substring; RelationshipStatus matches exactly; BatchID,
// when set, scopes the search to one batch.
type SearchCriteria struct {
	SerialNumber string `json:"serial_number"`
	FullName     string `json:"full_name"`
	VoterNumber  string `json:"voter_number"`
	FatherName   string `json:"father_name"`
	MotherName   string `json:"mother_name"`
	Occupation   string `json:"occupation"`
	DateOfBirth  string `json:"date_of_birth"`
	Address      string `json:"address"`
	PhoneNumber  string `json:"phone_number"`

	RelationshipStatus string `json:"relationship_status"`
	BatchID            *uint  `json:"batch_id"`
}
