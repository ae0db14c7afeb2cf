package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"image-catalog/internal/logging"
	"image-catalog/internal/metrics"
)

const defaultScanInterval = 5 * time.Minute

// DirectoryProvider reports the asset and thumbnail directories to
// observe. The ingestion pipeline satisfies this, so the watcher follows
// directory updates without holding its own copy of the paths.
type DirectoryProvider interface {
	Directories() (assetsDir, thumbnailsDir string)
}

// Watcher periodically scans the asset and thumbnail directories and
// reports file counts and total bytes. It is advisory only: scan results
// feed logs and gauges, never the ingestion pipeline.
type Watcher struct {
	dirs         DirectoryProvider
	scanInterval time.Duration
	stopChan     chan struct{}
	stopOnce     sync.Once

	statsMu   sync.RWMutex
	lastStats map[string]DirStats
	lastScan  time.Time
}

// DirStats holds the result of one directory scan.
type DirStats struct {
	Files int64 `json:"files"`
	Bytes int64 `json:"bytes"`
}

// New creates a Watcher observing the provider's directories at the
// given interval.
func New(dirs DirectoryProvider, scanInterval time.Duration) *Watcher {
	if scanInterval <= 0 {
		scanInterval = defaultScanInterval
	}
	return &Watcher{
		dirs:         dirs,
		scanInterval: scanInterval,
		stopChan:     make(chan struct{}),
		lastStats:    make(map[string]DirStats),
	}
}

// Start runs an immediate scan and then scans on the configured
// interval until Stop is called.
func (w *Watcher) Start() {
	go func() {
		w.scan()

		ticker := time.NewTicker(w.scanInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				w.scan()
			case <-w.stopChan:
				return
			}
		}
	}()
}

// Stop halts the scan loop. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
	})
}

// Stats returns the most recent scan results keyed by directory label
// ("assets", "thumbnails") along with the scan time.
func (w *Watcher) Stats() (map[string]DirStats, time.Time) {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()

	out := make(map[string]DirStats, len(w.lastStats))
	for k, v := range w.lastStats {
		out[k] = v
	}
	return out, w.lastScan
}

func (w *Watcher) scan() {
	assetsDir, thumbnailsDir := w.dirs.Directories()

	stats := map[string]DirStats{
		"assets":     scanDir(assetsDir),
		"thumbnails": scanDir(thumbnailsDir),
	}

	for label, s := range stats {
		metrics.WatcherFiles.WithLabelValues(label).Set(float64(s.Files))
		metrics.WatcherBytes.WithLabelValues(label).Set(float64(s.Bytes))
	}
	metrics.WatcherScansTotal.Inc()

	w.statsMu.Lock()
	w.lastStats = stats
	w.lastScan = time.Now()
	w.statsMu.Unlock()

	logging.Debug("Watcher scan: assets %d files (%d bytes), thumbnails %d files (%d bytes)",
		stats["assets"].Files, stats["assets"].Bytes,
		stats["thumbnails"].Files, stats["thumbnails"].Bytes)
}

// scanDir counts regular files and their bytes directly under dir.
// A missing or unreadable directory counts as empty; the watcher never
// treats scan problems as fatal.
func scanDir(dir string) DirStats {
	var stats DirStats

	entries, err := os.ReadDir(dir)
	if err != nil {
		logging.Debug("Watcher could not read %s: %v", dir, err)
		return stats
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			logging.Debug("Watcher could not stat %s: %v", filepath.Join(dir, entry.Name()), err)
			continue
		}
		stats.Files++
		stats.Bytes += info.Size()
	}
	return stats
}
