package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akhand-data/akhanddatabackend/models"
	"github.com/akhand-data/akhanddatabackend/parser"
	"github.com/akhand-data/akhanddatabackend/repository"
)

// UploadedFile is one raw text file handed to ingestion.
type UploadedFile struct {
	Name    string
	Content string
}

// FileIngestReport describes the outcome of ingesting a single file.
type FileIngestReport struct {
	FileName        string `json:"file_name"`
	RecordsInserted int    `json:"records_inserted"`
	LinesSkipped    int    `json:"lines_skipped"`
	Error           string `json:"error,omitempty"`
}

// IngestReport summarizes one ingestion call across all its files.
type IngestReport struct {
	ID              string             `json:"id"`
	BatchID         uint               `json:"batch_id"`
	BatchName       string             `json:"batch_name"`
	BatchCreated    bool               `json:"batch_created"`
	FilesProcessed  int                `json:"files_processed"`
	RecordsInserted int                `json:"records_inserted"`
	LinesSkipped    int                `json:"lines_skipped"`
	Files           []FileIngestReport `json:"files"`
}

// IngestionService ties parser output to record-store writes within a batch
// context. Files are processed independently: one file failing to parse or
// insert does not block the remaining files of the same call.
type IngestionService struct {
	Batches repository.BatchRepositoryInterface
	Records repository.RecordRepositoryInterface
}

// NewIngestionService creates a new IngestionService.
func NewIngestionService(batches repository.BatchRepositoryInterface, records repository.RecordRepositoryInterface) *IngestionService {
	return &IngestionService{Batches: batches, Records: records}
}

// Ingest parses each file and inserts its records under the named batch,
// reusing an existing batch with that name or creating a new one. Per-file
// failures are collected into the report; only errors that mean the store
// itself is unusable abort the call.
func (s *IngestionService) Ingest(batchName string, files []UploadedFile) (*IngestReport, error) {
	batchName = strings.TrimSpace(batchName)
	if batchName == "" {
		return nil, fmt.Errorf("batch name must not be empty")
	}

	report := &IngestReport{
		ID:        uuid.NewString(),
		BatchName: batchName,
		Files:     []FileIngestReport{},
	}

	batch, err := s.Batches.GetByName(batchName)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		batch, err = s.Batches.Create(batchName)
		if err != nil {
			return nil, fmt.Errorf("failed to create batch %s: %w", batchName, err)
		}
		report.BatchCreated = true
		log.Printf("Ingestion %s: created new batch %q (ID %d)", report.ID, batchName, batch.ID)
	} else if err != nil {
		return nil, fmt.Errorf("failed to look up batch %s: %w", batchName, err)
	} else {
		log.Printf("Ingestion %s: reusing batch %q (ID %d)", report.ID, batchName, batch.ID)
	}
	report.BatchID = batch.ID

	for _, file := range files {
		fileReport, storeErr := s.ingestFile(batch.ID, file)
		report.Files = append(report.Files, fileReport)
		report.LinesSkipped += fileReport.LinesSkipped

		if storeErr != nil {
			if isStoreFatal(storeErr) {
				return report, fmt.Errorf("ingestion aborted, store unusable: %w", storeErr)
			}
			continue
		}
		report.FilesProcessed++
		report.RecordsInserted += fileReport.RecordsInserted
	}

	log.Printf("Ingestion %s: %d files, %d records, %d lines skipped",
		report.ID, report.FilesProcessed, report.RecordsInserted, report.LinesSkipped)
	return report, nil
}

// ingestFile parses one file and inserts its records in a single
// transaction. Parsing never fails; malformed lines are skipped and counted.
// A non-nil error is the raw store error for the caller's fatality check; it
// is already reflected in the report entry.
func (s *IngestionService) ingestFile(batchID uint, file UploadedFile) (FileIngestReport, error) {
	fileReport := FileIngestReport{FileName: file.Name}

	result := parser.Parse(file.Content)
	fileReport.LinesSkipped = result.Skipped

	attrs := make([]models.RecordAttributes, 0, len(result.Records))
	for _, f := range result.Records {
		attrs = append(attrs, models.RecordAttributes{
			SerialNumber: f.SerialNumber,
			FullName:     f.FullName,
			VoterNumber:  f.VoterNumber,
			FatherName:   f.FatherName,
			MotherName:   f.MotherName,
			Occupation:   f.Occupation,
			DateOfBirth:  f.DateOfBirth,
			Address:      f.Address,
			PhoneNumber:  f.PhoneNumber,
			FacebookLink: f.FacebookLink,
			PhotoLink:    f.PhotoLink,
			Description:  f.Description,
		})
	}

	inserted, err := s.Records.InsertFile(batchID, file.Name, attrs)
	if err != nil {
		log.Printf("Error ingesting file %s into batch ID %d: %v", file.Name, batchID, err)
		fileReport.Error = fmt.Sprintf("failed to insert records: %v", err)
		return fileReport, err
	}
	fileReport.RecordsInserted = inserted
	return fileReport, nil
}

// isStoreFatal reports whether an insert error means the backing store is
// unusable for the rest of the call, as opposed to a problem with one file.
func isStoreFatal(err error) bool {
	return errors.Is(err, gorm.ErrInvalidDB) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
