package handlers

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/akhand-data/akhanddatabackend/services"
)

type IngestHandler struct {
	Ingestor       *services.IngestionService
	MaxUploadBytes int64
}

// IngestFiles accepts a multipart form with a batch_name field and one or
// more files under the "files" key, runs them through the ingestion
// orchestrator, and returns its report. A partially failed ingestion still
// returns 200 with per-file errors in the report body.
func (ih *IngestHandler) IngestFiles(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, ih.MaxUploadBytes)
	if err := r.ParseMultipartForm(ih.MaxUploadBytes); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_upload", "Invalid or oversized multipart form")
		return
	}

	batchName := strings.TrimSpace(r.FormValue("batch_name"))
	if batchName == "" {
		WriteAPIError(w, http.StatusBadRequest, "missing_field", "Missing required field: batch_name")
		return
	}

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		WriteAPIError(w, http.StatusBadRequest, "missing_field", "At least one file is required")
		return
	}

	files := make([]services.UploadedFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		file, err := fh.Open()
		if err != nil {
			log.Printf("Error opening uploaded file %q: %v", fh.Filename, err)
			WriteAPIError(w, http.StatusBadRequest, "invalid_upload", "Failed to read uploaded file: "+fh.Filename)
			return
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			log.Printf("Error reading uploaded file %q: %v", fh.Filename, err)
			WriteAPIError(w, http.StatusBadRequest, "invalid_upload", "Failed to read uploaded file: "+fh.Filename)
			return
		}
		files = append(files, services.UploadedFile{
			Name:    fh.Filename,
			Content: string(content),
		})
	}

	report, err := ih.Ingestor.Ingest(batchName, files)
	if err != nil {
		log.Printf("Ingestion failed for batch %q: %v", batchName, err)
		WriteAPIError(w, http.StatusInternalServerError, "ingest_failed", "Ingestion failed")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
