package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/akhand-data/akhanddatabackend/models"
	"github.com/akhand-data/akhanddatabackend/repository"
)

type RecordHandler struct {
	RecordRepo repository.RecordRepositoryInterface
}

func parseRecordID(r *http.Request) (uint, error) {
	idStr := chi.URLParam(r, "record_id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid record ID %q", idStr)
	}
	return uint(id), nil
}

type createRecordPayload struct {
	BatchID  uint   `json:"batch_id"`
	FileName string `json:"file_name"`
	models.RecordAttributes
}

// CreateRecord adds a single record by hand, outside of file ingestion. The
// record still starts as Regular; manual tagging comes afterwards.
func (rh *RecordHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req createRecordPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}
	if req.BatchID == 0 {
		WriteAPIError(w, http.StatusBadRequest, "missing_field", "Missing required field: batch_id")
		return
	}
	if strings.TrimSpace(req.FileName) == "" {
		WriteAPIError(w, http.StatusBadRequest, "missing_field", "Missing required field: file_name")
		return
	}

	record, err := rh.RecordRepo.Create(req.BatchID, req.FileName, req.RecordAttributes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "Batch not found")
			return
		}
		log.Printf("Error creating record in batch %d: %v", req.BatchID, err)
		WriteAPIError(w, http.StatusInternalServerError, "create_failed", "Failed to create record")
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// ListRecords lists records newest first, optionally filtered by batch_id
// and/or relationship status query parameters.
func (rh *RecordHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	if status := strings.TrimSpace(r.URL.Query().Get("status")); status != "" {
		records, err := rh.RecordRepo.ListByStatus(status)
		if err != nil {
			if !models.IsValidRelationshipStatus(status) {
				WriteAPIError(w, http.StatusBadRequest, "invalid_status", "Unknown relationship status")
				return
			}
			log.Printf("Error listing records with status %q: %v", status, err)
			WriteAPIError(w, http.StatusInternalServerError, "list_failed", "Failed to retrieve records")
			return
		}
		writeJSON(w, http.StatusOK, records)
		return
	}

	var batchID *uint
	if v := r.URL.Query().Get("batch_id"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			WriteAPIError(w, http.StatusBadRequest, "invalid_id", "Invalid batch_id parameter")
			return
		}
		id := uint(parsed)
		batchID = &id
	}

	records, err := rh.RecordRepo.ListByBatch(batchID)
	if err != nil {
		log.Printf("Error listing records: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "list_failed", "Failed to retrieve records")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (rh *RecordHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	recordID, err := parseRecordID(r)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", err.Error())
		return
	}

	record, err := rh.RecordRepo.GetByID(recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "Record not found")
		} else {
			log.Printf("Error getting record %d: %v", recordID, err)
			WriteAPIError(w, http.StatusInternalServerError, "get_failed", "Failed to retrieve record")
		}
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// UpdateRecord replaces every mutable attribute of a record from the edit
// form. Fields absent from the payload become empty strings; there is no
// partial update.
func (rh *RecordHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	recordID, err := parseRecordID(r)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", err.Error())
		return
	}

	var attrs models.RecordAttributes
	if err := json.NewDecoder(r.Body).Decode(&attrs); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	if err := rh.RecordRepo.Update(recordID, attrs); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "Record not found")
			return
		}
		if errors.Is(err, repository.ErrInvalidStatus) {
			WriteAPIError(w, http.StatusBadRequest, "invalid_status", "Unknown relationship status")
			return
		}
		log.Printf("Error updating record %d: %v", recordID, err)
		WriteAPIError(w, http.StatusInternalServerError, "update_failed", "Failed to update record")
		return
	}

	record, err := rh.RecordRepo.GetByID(recordID)
	if err != nil {
		log.Printf("Error fetching updated record %d: %v", recordID, err)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Record updated successfully"})
		return
	}
	writeJSON(w, http.StatusOK, record)
}

type relationshipPayload struct {
	Status string `json:"status"`
}

// SetRelationship updates only the relationship tag of a record. Any status
// may be assigned from any other; no history is kept.
func (rh *RecordHandler) SetRelationship(w http.ResponseWriter, r *http.Request) {
	recordID, err := parseRecordID(r)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", err.Error())
		return
	}

	var payload relationshipPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}
	if !models.IsValidRelationshipStatus(payload.Status) {
		WriteAPIError(w, http.StatusBadRequest, "invalid_status", "Unknown relationship status")
		return
	}

	if err := rh.RecordRepo.SetRelationshipStatus(recordID, payload.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "Record not found")
			return
		}
		log.Printf("Error setting relationship for record %d: %v", recordID, err)
		WriteAPIError(w, http.StatusInternalServerError, "update_failed", "Failed to update relationship status")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Relationship status updated", "status": payload.Status})
}

func (rh *RecordHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	recordID, err := parseRecordID(r)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", err.Error())
		return
	}

	if err := rh.RecordRepo.Delete(recordID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "Record not found")
		} else {
			log.Printf("Error deleting record %d: %v", recordID, err)
			WriteAPIError(w, http.StatusInternalServerError, "delete_failed", "Failed to delete record")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Record deleted successfully"})
}
