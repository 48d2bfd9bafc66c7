package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/akhand-data/akhanddatabackend/imagehost"
)

type ImageHandler struct {
	Uploader       *imagehost.Client
	MaxUploadBytes int64
}

// UploadImage forwards an image blob to the external hosting service and
// returns the public URL, which the client can store as a record's photo
// link.
func (ih *ImageHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, ih.MaxUploadBytes)
	if err := r.ParseMultipartForm(ih.MaxUploadBytes); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_upload", "Invalid or oversized multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "missing_field", "Missing required file field: image")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("Error reading uploaded image %q: %v", header.Filename, err)
		WriteAPIError(w, http.StatusBadRequest, "invalid_upload", "Failed to read uploaded image")
		return
	}

	url, err := ih.Uploader.Upload(data)
	if err != nil {
		log.Printf("Error uploading image %q to host: %v", header.Filename, err)
		WriteAPIError(w, http.StatusBadGateway, "upload_failed", "Image hosting service rejected the upload")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
