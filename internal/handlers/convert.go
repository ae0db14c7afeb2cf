package handlers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"image-catalog/internal/logging"
	"image-catalog/internal/media"

	"github.com/google/uuid"
)

// ConvertImage re-encodes an uploaded image as JPEG at the requested
// quality and reports the size savings. The upload is never cataloged;
// this endpoint exists so a user can preview what conversion would save
// before ingesting.
func (h *Handlers) ConvertImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSONError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSONError(w, "Missing image upload (file part \"image\")", http.StatusBadRequest)
		return
	}
	defer file.Close()

	quality := media.DefaultConvertQuality
	if q := r.FormValue("quality"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil {
			writeJSONError(w, "Invalid quality value", http.StatusBadRequest)
			return
		}
		quality = parsed
	}

	tempPath := filepath.Join(os.TempDir(), "catalog-convert-"+uuid.NewString()+filepath.Ext(header.Filename))
	dst, err := os.Create(tempPath)
	if err != nil {
		writeJSONError(w, "Failed to stage upload", http.StatusInternalServerError)
		return
	}
	defer os.Remove(tempPath)

	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		writeJSONError(w, "Failed to stage upload", http.StatusInternalServerError)
		return
	}
	dst.Close()

	result, err := media.Convert(tempPath, quality)
	if err != nil {
		logging.Error("Conversion failed for %s: %v", header.Filename, err)
		writeJSONError(w, "Failed to convert image", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, result)
}
