package handlers

import (
	"net/http"
	"time"

	"image-catalog/internal/listing"
	"image-catalog/internal/logging"
)

// ListImages returns every cataloged image in display form, ordered by
// ranking ascending with rating descending as the tie-break.
func (h *Handlers) ListImages(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	records, err := h.db.ListImages(r.Context())
	if err != nil {
		logging.Error("ListImages database error: %v", err)
		writeJSONError(w, "Failed to list images", http.StatusInternalServerError)
		return
	}

	display := listing.Present(records)
	logging.Debug("ListImages returned %d records in %v", len(display), time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, display)
}
