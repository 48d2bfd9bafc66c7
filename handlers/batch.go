package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/akhand-data/akhanddatabackend/repository"
	"github.com/akhand-data/akhanddatabackend/services"
)

type BatchHandler struct {
	BatchRepo  repository.BatchRepositoryInterface
	RecordRepo repository.RecordRepositoryInterface
	Exporter   *services.ExportService
}

// parseBatchID reads the batch_id URL parameter.
func parseBatchID(r *http.Request) (uint, error) {
	idStr := chi.URLParam(r, "batch_id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid batch ID %q", idStr)
	}
	return uint(id), nil
}

func (bh *BatchHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		WriteAPIError(w, http.StatusBadRequest, "missing_field", "Missing required field: name")
		return
	}

	batch, err := bh.BatchRepo.Create(strings.TrimSpace(req.Name))
	if err != nil {
		log.Printf("Error creating batch %q: %v", req.Name, err)
		WriteAPIError(w, http.StatusInternalServerError, "create_failed", "Failed to create batch")
		return
	}
	writeJSON(w, http.StatusCreated, batch)
}

func (bh *BatchHandler) ListBatches(w http.ResponseWriter, r *http.Request) {
	batches, err := bh.BatchRepo.ListAll()
	if err != nil {
		log.Printf("Error listing batches: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "list_failed", "Failed to retrieve batches")
		return
	}
	writeJSON(w, http.StatusOK, batches)
}

func (bh *BatchHandler) GetBatch(w http.ResponseWriter, r *http.Request) {
	batchID, err := parseBatchID(r)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", err.Error())
		return
	}

	batch, err := bh.BatchRepo.GetByID(batchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "Batch not found")
		} else {
			log.Printf("Error getting batch %d: %v", batchID, err)
			WriteAPIError(w, http.StatusInternalServerError, "get_failed", "Failed to retrieve batch")
		}
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

func (bh *BatchHandler) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	batchID, err := parseBatchID(r)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", err.Error())
		return
	}

	if err := bh.BatchRepo.Delete(batchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "Batch not found")
		} else {
			log.Printf("Error deleting batch %d: %v", batchID, err)
			WriteAPIError(w, http.StatusInternalServerError, "delete_failed", "Failed to delete batch")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Batch deleted successfully"})
}

func (bh *BatchHandler) ListBatchRecords(w http.ResponseWriter, r *http.Request) {
	batchID, err := parseBatchID(r)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", err.Error())
		return
	}

	records, err := bh.RecordRepo.ListByBatch(&batchID)
	if err != nil {
		log.Printf("Error listing records for batch %d: %v", batchID, err)
		WriteAPIError(w, http.StatusInternalServerError, "list_failed", "Failed to retrieve records")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (bh *BatchHandler) ListBatchFiles(w http.ResponseWriter, r *http.Request) {
	batchID, err := parseBatchID(r)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", err.Error())
		return
	}

	files, err := bh.BatchRepo.ListFiles(batchID)
	if err != nil {
		log.Printf("Error listing files for batch %d: %v", batchID, err)
		WriteAPIError(w, http.StatusInternalServerError, "list_failed", "Failed to retrieve files")
		return
	}
	writeJSON(w, http.StatusOK, files)
}

func (bh *BatchHandler) DeleteBatchFile(w http.ResponseWriter, r *http.Request) {
	batchID, err := parseBatchID(r)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", err.Error())
		return
	}

	fileName, err := url.PathUnescape(chi.URLParam(r, "file_name"))
	if err != nil || strings.TrimSpace(fileName) == "" {
		WriteAPIError(w, http.StatusBadRequest, "invalid_file", "Invalid file name")
		return
	}

	if err := bh.BatchRepo.DeleteFile(batchID, fileName); err != nil {
		log.Printf("Error deleting file %q from batch %d: %v", fileName, batchID, err)
		WriteAPIError(w, http.StatusInternalServerError, "delete_failed", "Failed to delete file")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "File deleted successfully"})
}

func (bh *BatchHandler) ExportBatch(w http.ResponseWriter, r *http.Request) {
	batchID, err := parseBatchID(r)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", err.Error())
		return
	}

	data, fileName, err := bh.Exporter.ExportBatchXLSX(&batchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "Batch not found")
		} else {
			log.Printf("Error exporting batch %d: %v", batchID, err)
			WriteAPIError(w, http.StatusInternalServerError, "export_failed", "Failed to export batch")
		}
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("Error writing export response: %v", err)
	}
}
