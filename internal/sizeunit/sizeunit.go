package sizeunit

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	// KB is one kibibyte (1024 bytes); the codec follows the 1024 convention
	// for all unit names.
	KB = int64(1024)
	// MB is 1024 KB.
	MB = KB * 1024
	// GB is 1024 MB.
	GB = MB * 1024
)

// ErrInvalidFormat is returned by Parse when the input is not a decimal
// number followed by a recognized unit token.
var ErrInvalidFormat = errors.New("invalid file size format")

// sizePattern accepts a decimal number, optional whitespace, and a unit.
// Scientific notation, missing units and unknown units are rejected.
var sizePattern = regexp.MustCompile(`^(\d+(\.\d+)?)\s*(B|KB|MB|GB)$`)

var unitMultipliers = map[string]int64{
	"B":  1,
	"KB": KB,
	"MB": MB,
	"GB": GB,
}

// Format renders a byte count as a human-readable string using the largest
// unit that keeps the value at two decimal places. Byte values below 1 KB
// are rendered without decimals.
func Format(bytes int64) string {
	switch {
	case bytes < KB:
		return fmt.Sprintf("%d B", bytes)
	case bytes < MB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	case bytes < GB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	default:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	}
}

// Parse converts a human-readable size string to a byte count. The unit
// token is case-insensitive and may be separated from the number by
// whitespace; surrounding whitespace is not accepted. Returns
// ErrInvalidFormat for any other shape.
func Parse(s string) (int64, error) {
	match := sizePattern.FindStringSubmatch(strings.ToUpper(s))
	if match == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	return int64(math.Round(value * float64(unitMultipliers[match[3]]))), nil
}
