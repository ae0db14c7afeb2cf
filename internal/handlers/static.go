package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"
)

// ServeThumbnail delivers a generated preview by file name. The serving
// directory is resolved per request so directory updates take effect
// without a restart.
func (h *Handlers) ServeThumbnail(w http.ResponseWriter, r *http.Request) {
	_, thumbnailsDir := h.pipeline.Directories()
	h.serveFromDir(w, r, thumbnailsDir)
}

// ServeAsset delivers an original cataloged image by file name.
func (h *Handlers) ServeAsset(w http.ResponseWriter, r *http.Request) {
	assetsDir, _ := h.pipeline.Directories()
	h.serveFromDir(w, r, assetsDir)
}

func (h *Handlers) serveFromDir(w http.ResponseWriter, r *http.Request, dir string) {
	name := filepath.Base(mux.Vars(r)["file"])
	if name == "." || name == string(filepath.Separator) {
		writeJSONError(w, "Invalid file name", http.StatusBadRequest)
		return
	}

	fullPath := filepath.Join(dir, name)
	info, err := os.Stat(fullPath)
	if err != nil || info.IsDir() {
		writeJSONError(w, "File not found", http.StatusNotFound)
		return
	}

	// Previews and assets are immutable once written; the name changes
	// when the content does.
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, fullPath)
}
