package media

import (
	"image"
	"os"

	"image-catalog/internal/logging"

	"github.com/disintegration/imaging"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// decodeImage opens and decodes a source image, honoring EXIF orientation
// where present. Falls back to the registered stdlib decoders (including
// webp) when imaging cannot open the file directly.
func decodeImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err == nil {
		return img, nil
	}

	logging.Debug("imaging.Open failed for %s: %v, trying stdlib decode", path, err)

	file, openErr := os.Open(path)
	if openErr != nil {
		return nil, err
	}
	defer file.Close()

	img, format, decodeErr := image.Decode(file)
	if decodeErr != nil {
		return nil, err
	}

	logging.Debug("Decoded image format: %s for %s", format, path)
	return img, nil
}
