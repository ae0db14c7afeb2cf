package media

import (
	"crypto/md5"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"image-catalog/internal/logging"
	"image-catalog/internal/metrics"
)

const (
	// DefaultTargetDimension constrains the longer side of a thumbnail.
	DefaultTargetDimension = 150
	// DefaultQuality is the JPEG encode quality for thumbnails.
	DefaultQuality = 60

	// ThumbnailRoute is the public route prefix under which derived
	// thumbnails are served.
	ThumbnailRoute = "/thumbnails/"

	// DefaultThumbnailName is the placeholder served for records without
	// a generated thumbnail.
	DefaultThumbnailName = "default-thumbnail.jpg"
)

// Generator produces resized preview images from source assets.
type Generator struct {
	targetDimension int
	quality         int
}

// NewGenerator returns a Generator with the given target dimension and
// encode quality. Non-positive values fall back to the defaults.
func NewGenerator(targetDimension, quality int) *Generator {
	if targetDimension <= 0 {
		targetDimension = DefaultTargetDimension
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &Generator{
		targetDimension: targetDimension,
		quality:         quality,
	}
}

// Generate reads the source image, produces an aspect-preserving resized
// preview in destDir and returns the public route path of the result.
//
// The longer dimension of the source is constrained to the target
// dimension: landscape and square sources get the target width, portrait
// sources get the target height. The output name combines the source base
// name with a short digest of the full source path, so two sources that
// share a base name do not overwrite each other's preview.
func (g *Generator) Generate(sourcePath, destDir string) (string, error) {
	start := time.Now()

	relPath, err := g.generate(sourcePath, destDir)

	duration := time.Since(start)
	metrics.ThumbnailGenerationDuration.Observe(duration.Seconds())
	if err != nil {
		metrics.ThumbnailGenerationsTotal.WithLabelValues("error").Inc()
		return "", err
	}

	metrics.ThumbnailGenerationsTotal.WithLabelValues("success").Inc()
	logging.Debug("Thumbnail generated in %v: %s", duration, relPath)
	return relPath, nil
}

func (g *Generator) generate(sourcePath, destDir string) (string, error) {
	img, err := decodeImage(sourcePath)
	if err != nil {
		return "", fmt.Errorf("failed to decode source image %s: %w", sourcePath, err)
	}

	bounds := img.Bounds()
	var thumb = img
	if bounds.Dx() >= bounds.Dy() {
		thumb = imaging.Resize(img, g.targetDimension, 0, imaging.Lanczos)
	} else {
		thumb = imaging.Resize(img, 0, g.targetDimension, imaging.Lanczos)
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create thumbnail directory %s: %w", destDir, err)
	}

	name := ThumbnailName(sourcePath)
	destPath := filepath.Join(destDir, name)

	if err := imaging.Save(thumb, destPath, imaging.JPEGQuality(g.quality)); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail %s: %w", destPath, err)
	}

	return ThumbnailRoute + name, nil
}

// EnsureDefaultThumbnail writes the placeholder preview into destDir if it
// is not already present, so the fallback route always resolves. An
// existing file is left untouched and may be replaced by operators.
func EnsureDefaultThumbnail(destDir string) error {
	destPath := filepath.Join(destDir, DefaultThumbnailName)
	if _, err := os.Stat(destPath); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat default thumbnail %s: %w", destPath, err)
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("failed to create thumbnail directory %s: %w", destDir, err)
	}

	placeholder := imaging.New(DefaultTargetDimension, DefaultTargetDimension, color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff})
	if err := imaging.Save(placeholder, destPath, imaging.JPEGQuality(DefaultQuality)); err != nil {
		return fmt.Errorf("failed to write default thumbnail %s: %w", destPath, err)
	}

	logging.Debug("Default thumbnail created at %s", destPath)
	return nil
}

// ThumbnailName derives the deterministic output file name for a source
// path: the source base name (extension replaced with .jpg) plus a short
// digest of the full path to disambiguate same-named sources.
func ThumbnailName(sourcePath string) string {
	base := filepath.Base(sourcePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	digest := md5.Sum([]byte(sourcePath))
	return fmt.Sprintf("%s-%x.jpg", stem, digest[:4])
}
