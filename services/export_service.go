package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/akhand-data/akhanddatabackend/models"
	"github.com/akhand-data/akhanddatabackend/repository"
)

// recordExportHeader is the column order of an exported workbook.
var recordExportHeader = []string{
	"Batch",
	"File",
	"Serial Number",
	"Full Name",
	"Voter Number",
	"Father's Name",
	"Mother's Name",
	"Occupation",
	"Date of Birth",
	"Address",
	"Phone Number",
	"Facebook Link",
	"Photo Link",
	"Description",
	"Relationship Status",
	"Created At",
}

// ExportService renders record listings into downloadable .xlsx workbooks.
type ExportService struct {
	Batches repository.BatchRepositoryInterface
	Records repository.RecordRepositoryInterface
}

// NewExportService creates a new ExportService.
func NewExportService(batches repository.BatchRepositoryInterface, records repository.RecordRepositoryInterface) *ExportService {
	return &ExportService{Batches: batches, Records: records}
}

// ExportBatchXLSX renders the records of one batch (or of all batches when
// batchID is nil) into an .xlsx workbook. Returns the file bytes and a
// suggested file name.
func (s *ExportService) ExportBatchXLSX(batchID *uint) ([]byte, string, error) {
	scopeName := "all-batches"
	if batchID != nil {
		batch, err := s.Batches.GetByID(*batchID)
		if err != nil {
			return nil, "", fmt.Errorf("failed to resolve batch for export: %w", err)
		}
		scopeName = batch.Name
	}

	records, err := s.Records.ListByBatch(batchID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load records for export: %w", err)
	}

	data, err := generateRecordsWorkbook(records)
	if err != nil {
		return nil, "", err
	}

	fileName := fmt.Sprintf("records-%s-%s.xlsx", scopeName, time.Now().Format("2006-01-02"))
	return data, fileName, nil
}

// generateRecordsWorkbook writes records into a styled single-sheet workbook.
func generateRecordsWorkbook(records []models.Record) ([]byte, error) {
	f := excelize.NewFile()
	// WriteTo needs the file open; close explicitly before returning

	sheetName := "Records"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, title := range recordExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write header cell: %w", err)
		}
	}
	lastHeaderCell, _ := excelize.CoordinatesToCellName(len(recordExportHeader), 1)
	if err := f.SetCellStyle(sheetName, "A1", lastHeaderCell, headerStyle); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to style header row: %w", err)
	}

	for i, r := range records {
		rowValues := []interface{}{
			r.BatchName,
			r.FileName,
			r.SerialNumber,
			r.FullName,
			r.VoterNumber,
			r.FatherName,
			r.MotherName,
			r.Occupation,
			r.DateOfBirth,
			r.Address,
			r.PhoneNumber,
			r.FacebookLink,
			r.PhotoLink,
			r.Description,
			r.RelationshipStatus,
			time.Unix(r.CreatedAt, 0).Format(time.RFC3339),
		}
		startCell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to compute row cell: %w", err)
		}
		if err := f.SetSheetRow(sheetName, startCell, &rowValues); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write record row: %w", err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}

	return buf.Bytes(), nil
}
