package sizeunit

import (
	"errors"
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"Bytes", "512 B", 512, false},
		{"Kilobytes with space", "1.5 KB", 1536, false},
		{"Megabytes with space", "1.5 MB", 1572864, false},
		{"No space before unit", "2KB", 2048, false},
		{"Gigabytes", "2 GB", 2147483648, false},
		{"Lowercase unit", "1.5 mb", 1572864, false},
		{"Mixed case unit", "3 Kb", 3072, false},
		{"Leading space", " 4 MB", 0, true},
		{"Trailing space", "4 MB ", 0, true},
		{"Fractional bytes round", "1.6 B", 2, false},
		{"Plain text", "abc", 0, true},
		{"Missing unit", "1024", 0, true},
		{"Unknown unit", "1 TB", 0, true},
		{"Scientific notation", "1e3 KB", 0, true},
		{"Negative number", "-1 KB", 0, true},
		{"Unit only", "MB", 0, true},
		{"Empty string", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %d, want error", tt.input, got)
				}
				if !errors.Is(err, ErrInvalidFormat) {
					t.Errorf("Parse(%q) error = %v, want ErrInvalidFormat", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"Zero", 0, "0 B"},
		{"Below one KB", 1023, "1023 B"},
		{"Exactly one KB", 1024, "1.00 KB"},
		{"Kilobytes", 1536, "1.50 KB"},
		{"Megabytes", 1572864, "1.50 MB"},
		{"Just below one MB", 1048575, "1024.00 KB"},
		{"Gigabytes", 3221225472, "3.00 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.bytes); got != tt.want {
				t.Errorf("Format(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

// The Format direction truncates to two decimal places, so the round trip
// is lossy. The reconstruction error is bounded by half a hundredth of the
// selected unit.
func TestRoundTripWithinTolerance(t *testing.T) {
	inputs := []int64{
		0, 1, 512, 1023, 1024, 1536, 2048, 999999,
		1048576, 1572864, 5000000, 123456789,
		1073741824, 5368709120, 987654321098,
	}

	for _, n := range inputs {
		formatted := Format(n)
		parsed, err := Parse(formatted)
		if err != nil {
			t.Fatalf("Parse(Format(%d)) = Parse(%q) failed: %v", n, formatted, err)
		}

		tolerance := roundTripTolerance(n)
		if diff := math.Abs(float64(parsed - n)); diff > tolerance {
			t.Errorf("round trip %d -> %q -> %d: off by %.0f, tolerance %.0f",
				n, formatted, parsed, diff, tolerance)
		}
	}
}

func roundTripTolerance(n int64) float64 {
	switch {
	case n < KB:
		return 0
	case n < MB:
		return 0.005 * float64(KB)
	case n < GB:
		return 0.005 * float64(MB)
	default:
		return 0.005 * float64(GB)
	}
}
