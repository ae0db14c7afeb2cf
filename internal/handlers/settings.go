package handlers

import (
	"encoding/json"
	"net/http"

	"image-catalog/internal/database"
	"image-catalog/internal/logging"
	"image-catalog/internal/startup"
)

// SettingsResponse reports the catalog's directory configuration.
type SettingsResponse struct {
	RootDirectory string `json:"rootDirectory"`
	ThumbnailsDir string `json:"thumbnailsDir"`
	AssetsDir     string `json:"assetsDir"`
}

// GetSettings returns the current root, thumbnail, and asset directories.
func (h *Handlers) GetSettings(w http.ResponseWriter, _ *http.Request) {
	assetsDir, thumbnailsDir := h.pipeline.Directories()

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, SettingsResponse{
		RootDirectory: h.currentRootDir(),
		ThumbnailsDir: thumbnailsDir,
		AssetsDir:     assetsDir,
	})
}

type updateDirectoriesRequest struct {
	RootDirectory string `json:"rootDirectory"`
}

// UpdateDirectories repoints the catalog at a new root directory,
// creating thumbnails/ and assets/ beneath it, persisting the resolved
// paths as the new defaults, and redirecting future ingestions there.
// Already-cataloged records keep their stored paths.
func (h *Handlers) UpdateDirectories(w http.ResponseWriter, r *http.Request) {
	var req updateDirectoriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.RootDirectory == "" {
		writeJSONError(w, "rootDirectory is required", http.StatusBadRequest)
		return
	}

	thumbnailsDir, assetsDir, err := startup.ResolveDirectories(req.RootDirectory)
	if err != nil {
		logging.Error("Failed to set up directories under %s: %v", req.RootDirectory, err)
		writeJSONError(w, "Failed to create catalog directories", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	if err := h.db.SetSetting(ctx, database.SettingThumbnailsDir, thumbnailsDir); err != nil {
		logging.Error("Failed to persist thumbnails directory: %v", err)
		writeJSONError(w, "Failed to persist settings", http.StatusInternalServerError)
		return
	}
	if err := h.db.SetSetting(ctx, database.SettingAssetsDir, assetsDir); err != nil {
		logging.Error("Failed to persist assets directory: %v", err)
		writeJSONError(w, "Failed to persist settings", http.StatusInternalServerError)
		return
	}

	h.pipeline.UpdateDirectories(assetsDir, thumbnailsDir)
	h.setRootDir(req.RootDirectory)

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, SettingsResponse{
		RootDirectory: req.RootDirectory,
		ThumbnailsDir: thumbnailsDir,
		AssetsDir:     assetsDir,
	})
}
