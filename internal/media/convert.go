package media

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"os"

	"image-catalog/internal/metrics"
	"image-catalog/internal/sizeunit"
)

// DefaultConvertQuality is the encode quality used by Convert when the
// caller does not supply one.
const DefaultConvertQuality = 80

// ConvertResult reports the outcome of a lossy preview conversion.
type ConvertResult struct {
	OriginalBytes   int64   `json:"originalBytes"`
	OriginalSize    string  `json:"originalSize"`
	ConvertedBytes  int64   `json:"convertedBytes"`
	ConvertedSize   string  `json:"convertedSize"`
	SavingsPercent  float64 `json:"savingsPercent"`
	ConvertedFormat string  `json:"convertedFormat"`
}

// Convert re-encodes the image at sourcePath into the lossy preview format
// at the given quality and reports the size difference. The converted
// bytes are measured in memory and discarded; nothing is written to disk.
func Convert(sourcePath string, quality int) (*ConvertResult, error) {
	if quality <= 0 || quality > 100 {
		quality = DefaultConvertQuality
	}

	result, err := convert(sourcePath, quality)
	if err != nil {
		metrics.ConvertTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.ConvertTotal.WithLabelValues("success").Inc()
	if saved := result.OriginalBytes - result.ConvertedBytes; saved > 0 {
		metrics.ConvertBytesSaved.Add(float64(saved))
	}
	return result, nil
}

func convert(sourcePath string, quality int) (*ConvertResult, error) {
	info, err := os.Stat(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat source image: %w", err)
	}

	img, err := decodeImage(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to decode source image: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	originalBytes := info.Size()
	convertedBytes := int64(buf.Len())

	var savings float64
	if originalBytes > 0 {
		savings = (1 - float64(convertedBytes)/float64(originalBytes)) * 100
	}

	return &ConvertResult{
		OriginalBytes:   originalBytes,
		OriginalSize:    sizeunit.Format(originalBytes),
		ConvertedBytes:  convertedBytes,
		ConvertedSize:   sizeunit.Format(convertedBytes),
		SavingsPercent:  savings,
		ConvertedFormat: "jpeg",
	}, nil
}
