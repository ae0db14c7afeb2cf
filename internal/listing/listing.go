package listing

import (
	"path"
	"sort"

	"image-catalog/internal/database"
	"image-catalog/internal/media"
	"image-catalog/internal/sizeunit"
)

// DefaultThumbnail is served for records whose preview was never
// generated, such as rows that predate thumbnail support.
const DefaultThumbnail = media.ThumbnailRoute + media.DefaultThumbnailName

// DisplayRecord is the display-ready projection of a stored image. The
// byte count is rendered as a human-readable string and the thumbnail
// path is rewritten to its public route.
type DisplayRecord struct {
	ID            int64   `json:"id"`
	Filename      string  `json:"filename"`
	URL           string  `json:"url"`
	FileSize      string  `json:"fileSize"`
	Rating        float64 `json:"rating"`
	Ranking       float64 `json:"ranking"`
	Tags          string  `json:"tags"`
	CreationTime  string  `json:"creationTime"`
	Person        string  `json:"person"`
	Location      string  `json:"location"`
	Type          string  `json:"type"`
	ThumbnailPath string  `json:"thumbnailPath"`
}

// Present maps stored records to their display shape and orders them by
// ranking ascending, ties broken by rating descending. The sort is
// stable so records with an equal (ranking, rating) pair keep their
// scan order.
func Present(records []database.ImageRecord) []DisplayRecord {
	out := make([]DisplayRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, DisplayRecord{
			ID:            rec.ID,
			Filename:      rec.Filename,
			URL:           rec.URL,
			FileSize:      sizeunit.Format(rec.FileSizeBytes),
			Rating:        rec.Rating,
			Ranking:       rec.Ranking,
			Tags:          rec.Tags,
			CreationTime:  rec.CreationTime,
			Person:        rec.Person,
			Location:      rec.Location,
			Type:          rec.Type,
			ThumbnailPath: publicThumbnailPath(rec.ThumbnailPath),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Ranking != out[j].Ranking {
			return out[i].Ranking < out[j].Ranking
		}
		return out[i].Rating > out[j].Rating
	})
	return out
}

// publicThumbnailPath strips any stored directory component and prefixes
// the public thumbnail route. Stored paths may be route-relative already
// or carry a directory from an older layout; either way only the base
// name is trusted.
func publicThumbnailPath(stored string) string {
	if stored == "" {
		return DefaultThumbnail
	}
	return media.ThumbnailRoute + path.Base(stored)
}
