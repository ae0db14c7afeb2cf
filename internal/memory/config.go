package memory

import (
	"math"
	"os"
	"runtime/debug"
	"strconv"

	"image-catalog/internal/logging"
	"image-catalog/internal/sizeunit"
)

// DefaultMemoryRatio is the share of the container memory limit given to
// the Go heap. The rest is headroom for image decode buffers, which live
// outside heap accounting only briefly but spike hard on large sources.
const DefaultMemoryRatio = 0.85

// ConfigResult reports what ConfigureFromEnv decided.
type ConfigResult struct {
	// Configured indicates whether GOMEMLIMIT was set.
	Configured bool

	// Source is "GOMEMLIMIT", "MEMORY_LIMIT", or "none".
	Source string

	// ContainerLimit is the container memory limit in bytes, 0 if unknown.
	ContainerLimit int64

	// GoMemLimit is the configured GOMEMLIMIT in bytes, 0 if unset.
	GoMemLimit int64

	// Ratio is the applied memory ratio, 0 if not applicable.
	Ratio float64
}

// ConfigureFromEnv sets GOMEMLIMIT from the container memory limit. Call
// it early in main, before significant allocations.
//
// An explicit GOMEMLIMIT env var wins. Otherwise MEMORY_LIMIT (bytes, as
// injected by the Kubernetes Downward API) scaled by MEMORY_RATIO is used.
func ConfigureFromEnv() ConfigResult {
	result := ConfigResult{}

	if goMemLimitEnv := os.Getenv("GOMEMLIMIT"); goMemLimitEnv != "" {
		// The runtime already honored it; read the value back to report.
		if limit := debug.SetMemoryLimit(-1); limit > 0 && limit < math.MaxInt64 {
			result.Configured = true
			result.Source = "GOMEMLIMIT"
			result.GoMemLimit = limit
		}
		logging.Info("GOMEMLIMIT set via environment: %s", goMemLimitEnv)
		return result
	}

	memLimitStr := os.Getenv("MEMORY_LIMIT")
	if memLimitStr == "" {
		logging.Debug("MEMORY_LIMIT not set, GOMEMLIMIT will not be configured automatically")
		result.Source = "none"
		return result
	}

	memLimit, err := strconv.ParseInt(memLimitStr, 10, 64)
	if err != nil {
		logging.Warn("Failed to parse MEMORY_LIMIT %q: %v", memLimitStr, err)
		result.Source = "none"
		return result
	}

	ratio := ratioFromEnv()
	goMemLimit := int64(float64(memLimit) * ratio)
	debug.SetMemoryLimit(goMemLimit)

	result.Configured = true
	result.Source = "MEMORY_LIMIT"
	result.ContainerLimit = memLimit
	result.GoMemLimit = goMemLimit
	result.Ratio = ratio

	logging.Info("Configured GOMEMLIMIT: %s (%.1f%% of %s container limit)",
		sizeunit.Format(goMemLimit),
		ratio*100,
		sizeunit.Format(memLimit),
	)

	return result
}

// ratioFromEnv reads MEMORY_RATIO, falling back to the default when the
// value is absent, unparseable, or outside (0, 1].
func ratioFromEnv() float64 {
	ratioStr := os.Getenv("MEMORY_RATIO")
	if ratioStr == "" {
		return DefaultMemoryRatio
	}

	parsed, err := strconv.ParseFloat(ratioStr, 64)
	if err != nil {
		logging.Warn("Failed to parse MEMORY_RATIO %q: %v, using default %.2f", ratioStr, err, DefaultMemoryRatio)
		return DefaultMemoryRatio
	}
	if parsed <= 0 || parsed > 1.0 {
		logging.Warn("MEMORY_RATIO %q out of range (0.0-1.0), using default %.2f", ratioStr, DefaultMemoryRatio)
		return DefaultMemoryRatio
	}
	return parsed
}
