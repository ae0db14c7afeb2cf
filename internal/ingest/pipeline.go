package ingest

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"image-catalog/internal/database"
	"image-catalog/internal/logging"
	"image-catalog/internal/media"
	"image-catalog/internal/metrics"
	"image-catalog/internal/sizeunit"
)

// CreationTimeLayout is the format applied when the caller does not
// supply a creation time.
const CreationTimeLayout = "2006-01-02 15:04:05"

// Fields carries the caller-supplied metadata for one ingestion. All
// values arrive as form strings; parsing happens inside Ingest so that
// a malformed value surfaces as a ValidationError rather than a panic
// or silent zero.
type Fields struct {
	Filename     string
	URL          string
	FileSize     string
	Rating       string
	Ranking      string
	Tags         string
	CreationTime string
	Person       string
	Location     string
	Type         string
}

// AssetSource tells the pipeline where the image bytes come from.
type AssetSource interface {
	assetSource()
}

// UploadedTemp is a staged temporary file. The pipeline copies its bytes
// into the asset directory and removes the staging file afterwards. Copy
// rather than rename, since the staging area and the asset directory may
// live on different devices.
type UploadedTemp struct {
	Path string
}

func (UploadedTemp) assetSource() {}

// ExistingAsset asserts that a file with the request's filename already
// lives in the managed asset directory.
type ExistingAsset struct{}

func (ExistingAsset) assetSource() {}

// Pipeline runs the image-ingestion sequence: validate, place the asset,
// derive a thumbnail, and commit one metadata row.
type Pipeline struct {
	db     *database.Database
	thumbs *media.Generator

	mu            sync.RWMutex
	assetsDir     string
	thumbnailsDir string
}

// New returns a Pipeline writing assets and thumbnails under the given
// directories.
func New(db *database.Database, thumbs *media.Generator, assetsDir, thumbnailsDir string) *Pipeline {
	return &Pipeline{
		db:            db,
		thumbs:        thumbs,
		assetsDir:     assetsDir,
		thumbnailsDir: thumbnailsDir,
	}
}

// Directories returns the current asset and thumbnail directories.
func (p *Pipeline) Directories() (assetsDir, thumbnailsDir string) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.assetsDir, p.thumbnailsDir
}

// UpdateDirectories repoints the pipeline at new asset and thumbnail
// directories. In-flight ingestions keep the directories they resolved
// at start.
func (p *Pipeline) UpdateDirectories(assetsDir, thumbnailsDir string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.assetsDir = assetsDir
	p.thumbnailsDir = thumbnailsDir
	logging.Info("Ingest directories updated: assets=%s thumbnails=%s", assetsDir, thumbnailsDir)
}

// Ingest validates the request, places the asset, generates a thumbnail,
// and commits the record. On failure it returns one of ValidationError,
// NotFoundError, IOError, ThumbnailError, or PersistError; no record is
// committed on any failure path.
func (p *Pipeline) Ingest(ctx context.Context, f Fields, src AssetSource) (*database.ImageRecord, error) {
	start := time.Now()
	rec, err := p.ingest(ctx, f, src)
	metrics.IngestDuration.Observe(time.Since(start).Seconds())
	metrics.IngestTotal.WithLabelValues(ingestStatus(err)).Inc()
	return rec, err
}

func (p *Pipeline) ingest(ctx context.Context, f Fields, src AssetSource) (*database.ImageRecord, error) {
	rec, err := buildRecord(f)
	if err != nil {
		return nil, err
	}

	assetsDir, thumbnailsDir := p.Directories()
	destPath := filepath.Join(assetsDir, rec.Filename)

	assetWritten := false
	switch s := src.(type) {
	case ExistingAsset:
		if _, err := os.Stat(destPath); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, &NotFoundError{Filename: rec.Filename}
			}
			return nil, &IOError{Op: "stat", Path: destPath, Err: err}
		}
	case UploadedTemp:
		if err := placeUpload(s.Path, destPath); err != nil {
			return nil, err
		}
		assetWritten = true
	default:
		return nil, &ValidationError{Reason: "no asset source supplied"}
	}

	thumbURL, err := p.thumbs.Generate(destPath, thumbnailsDir)
	if err != nil {
		return nil, &ThumbnailError{SourcePath: destPath, Err: err}
	}
	rec.ThumbnailPath = thumbURL

	if _, err := p.db.InsertImage(ctx, rec); err != nil {
		p.cleanupAfterPersistFailure(destPath, thumbnailsDir, assetWritten)
		return nil, &PersistError{Err: err}
	}

	logging.Info("Ingested image %s (id=%d, %s)", rec.Filename, rec.ID, sizeunit.Format(rec.FileSizeBytes))
	return rec, nil
}

// buildRecord validates field presence, parses the numeric fields, and
// assembles the record to be committed. The filename is reduced to its
// base name so a crafted value cannot escape the asset directory.
func buildRecord(f Fields) (*database.ImageRecord, error) {
	var missing []string
	for _, rf := range []struct{ name, value string }{
		{"filename", f.Filename},
		{"url", f.URL},
		{"file_size", f.FileSize},
		{"rating", f.Rating},
		{"ranking", f.Ranking},
		{"type", f.Type},
	} {
		if rf.value == "" {
			missing = append(missing, rf.name)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{MissingFields: missing}
	}

	rating, err := parseFloatField("rating", f.Rating)
	if err != nil {
		return nil, err
	}
	ranking, err := parseFloatField("ranking", f.Ranking)
	if err != nil {
		return nil, err
	}
	sizeBytes, err := sizeunit.Parse(f.FileSize)
	if err != nil {
		return nil, &ValidationError{Reason: "file_size: " + err.Error() + ": " + f.FileSize}
	}

	// Values that reduce to a directory reference carry no usable name.
	filename := filepath.Base(f.Filename)
	if filename == "." || filename == ".." || filename == string(filepath.Separator) {
		return nil, &ValidationError{Reason: "filename does not name a file: " + f.Filename}
	}

	creationTime := f.CreationTime
	if creationTime == "" {
		creationTime = time.Now().Format(CreationTimeLayout)
	}

	return &database.ImageRecord{
		Filename:      filename,
		URL:           f.URL,
		FileSizeBytes: sizeBytes,
		Rating:        rating,
		Ranking:       ranking,
		Tags:          f.Tags,
		CreationTime:  creationTime,
		Person:        f.Person,
		Location:      f.Location,
		Type:          f.Type,
	}, nil
}

// placeUpload copies the staged file into the asset directory and removes
// the staging copy once the destination write completes.
func placeUpload(stagingPath, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return &IOError{Op: "create asset directory", Path: filepath.Dir(destPath), Err: err}
	}

	src, err := os.Open(stagingPath)
	if err != nil {
		return &IOError{Op: "open staged upload", Path: stagingPath, Err: err}
	}
	defer src.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return &IOError{Op: "create asset", Path: destPath, Err: err}
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(destPath)
		return &IOError{Op: "copy asset", Path: destPath, Err: err}
	}
	if err := dst.Close(); err != nil {
		os.Remove(destPath)
		return &IOError{Op: "close asset", Path: destPath, Err: err}
	}
	src.Close()

	if err := os.Remove(stagingPath); err != nil {
		return &IOError{Op: "remove staged upload", Path: stagingPath, Err: err}
	}
	return nil
}

// cleanupAfterPersistFailure deletes the files written earlier in the
// failed ingestion. Best effort: a cleanup failure is logged and counted,
// never escalated past the PersistError already being returned. The
// asset file is only removed when this ingestion wrote it; a referenced
// existing asset is left alone.
func (p *Pipeline) cleanupAfterPersistFailure(destPath, thumbnailsDir string, assetWritten bool) {
	thumbPath := filepath.Join(thumbnailsDir, media.ThumbnailName(destPath))
	if err := os.Remove(thumbPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		metrics.IngestCleanupFailures.Inc()
		logging.Warn("Failed to remove thumbnail %s after persist failure: %v", thumbPath, err)
	}
	if !assetWritten {
		return
	}
	if err := os.Remove(destPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		metrics.IngestCleanupFailures.Inc()
		logging.Warn("Failed to remove asset %s after persist failure: %v", destPath, err)
	}
}

func parseFloatField(name, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &ValidationError{Reason: name + ": invalid numeric value: " + value}
	}
	return v, nil
}

// ingestStatus maps a pipeline outcome to its metrics label.
func ingestStatus(err error) string {
	if err == nil {
		return "success"
	}
	var (
		vErr *ValidationError
		nErr *NotFoundError
		iErr *IOError
		tErr *ThumbnailError
		pErr *PersistError
	)
	switch {
	case errors.As(err, &vErr):
		return "validation"
	case errors.As(err, &nErr):
		return "not_found"
	case errors.As(err, &iErr):
		return "io"
	case errors.As(err, &tErr):
		return "thumbnail"
	case errors.As(err, &pErr):
		return "persist"
	}
	return "error"
}
