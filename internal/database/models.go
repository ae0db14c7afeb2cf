package database

// ImageRecord is the persisted metadata for a cataloged image.
//
// FileSizeBytes always holds the canonical byte count; the human-readable
// form is derived at read time by the listing presenter, never stored.
// ThumbnailPath is the store-relative path of the derived preview; it is
// empty only for rows that predate preview generation.
type ImageRecord struct {
	ID            int64   `json:"id"`
	Filename      string  `json:"filename"`
	URL           string  `json:"url"`
	FileSizeBytes int64   `json:"fileSizeBytes"`
	Rating        float64 `json:"rating"`
	Ranking       float64 `json:"ranking"`
	Tags          string  `json:"tags"`
	CreationTime  string  `json:"creationTime"`
	Person        string  `json:"person"`
	Location      string  `json:"location"`
	Type          string  `json:"type"`
	ThumbnailPath string  `json:"thumbnailPath"`
}

// Settings keys persisted in the settings table.
const (
	SettingThumbnailsDir = "thumbnailsDir"
	SettingAssetsDir     = "assetsDir"
)
