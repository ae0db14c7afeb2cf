package handlers

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"image-catalog/internal/ingest"
	"image-catalog/internal/logging"

	"github.com/google/uuid"
)

// maxUploadBytes bounds how much of a multipart upload is held in
// memory before spilling to disk.
const maxUploadBytes = 32 << 20

// AddImage ingests one image from a multipart form. The image bytes
// arrive either as the "thumbnail" file part or, when use_existing_file
// is set, as a filename already present in the asset directory.
func (h *Handlers) AddImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSONError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	fields := ingest.Fields{
		Filename:     r.FormValue("filename"),
		URL:          r.FormValue("url"),
		FileSize:     r.FormValue("file_size"),
		Rating:       r.FormValue("rating"),
		Ranking:      r.FormValue("ranking"),
		Tags:         r.FormValue("tags"),
		CreationTime: r.FormValue("creation_time"),
		Person:       r.FormValue("person"),
		Location:     r.FormValue("location"),
		Type:         r.FormValue("type"),
	}

	var src ingest.AssetSource
	if parseFormBool(r.FormValue("use_existing_file")) {
		src = ingest.ExistingAsset{}
	} else {
		stagingPath, err := h.stageUpload(r)
		if err != nil {
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		src = ingest.UploadedTemp{Path: stagingPath}
	}

	rec, err := h.pipeline.Ingest(r.Context(), fields, src)
	if err != nil {
		h.writeIngestError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, rec)
}

// stageUpload writes the "thumbnail" file part to a uniquely named
// staging file and returns its path. The pipeline owns the staging file
// from here: it removes it after relocation or leaves it for the next
// temp cleanup on failure.
func (h *Handlers) stageUpload(r *http.Request) (string, error) {
	file, header, err := r.FormFile("thumbnail")
	if err != nil {
		return "", errors.New("missing image upload (file part \"thumbnail\")")
	}
	defer file.Close()

	stagingPath := filepath.Join(os.TempDir(), "catalog-upload-"+uuid.NewString()+filepath.Ext(header.Filename))
	dst, err := os.Create(stagingPath)
	if err != nil {
		return "", errors.New("failed to stage upload")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(stagingPath)
		return "", errors.New("failed to stage upload")
	}
	return stagingPath, nil
}

// writeIngestError maps pipeline failures onto HTTP statuses.
func (h *Handlers) writeIngestError(w http.ResponseWriter, err error) {
	var (
		vErr *ingest.ValidationError
		nErr *ingest.NotFoundError
	)
	switch {
	case errors.As(err, &vErr):
		writeJSONError(w, vErr.Error(), http.StatusBadRequest)
	case errors.As(err, &nErr):
		writeJSONError(w, nErr.Error(), http.StatusNotFound)
	default:
		logging.Error("Ingestion failed: %v", err)
		writeJSONError(w, "Failed to ingest image", http.StatusInternalServerError)
	}
}

// parseFormBool accepts the spellings browsers and scripts actually
// send for checkbox-style fields.
func parseFormBool(value string) bool {
	if value == "on" {
		return true
	}
	parsed, err := strconv.ParseBool(value)
	return err == nil && parsed
}
