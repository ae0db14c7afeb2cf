package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type staticDirs struct {
	assets, thumbnails string
}

func (d staticDirs) Directories() (string, string) {
	return d.assets, d.thumbnails
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.jpg"), make([]byte, 100), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.jpg"), make([]byte, 250), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	// Subdirectories are not counted
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}

	stats := scanDir(dir)
	if stats.Files != 2 {
		t.Errorf("Files = %d, want 2", stats.Files)
	}
	if stats.Bytes != 350 {
		t.Errorf("Bytes = %d, want 350", stats.Bytes)
	}
}

func TestScanDirMissing(t *testing.T) {
	stats := scanDir(filepath.Join(t.TempDir(), "nope"))
	if stats.Files != 0 || stats.Bytes != 0 {
		t.Errorf("Missing directory should scan as empty, got %+v", stats)
	}
}

func TestWatcherScanUpdatesStats(t *testing.T) {
	assets := t.TempDir()
	thumbs := t.TempDir()
	if err := os.WriteFile(filepath.Join(assets, "img.png"), make([]byte, 64), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	w := New(staticDirs{assets: assets, thumbnails: thumbs}, time.Hour)
	w.scan()

	stats, lastScan := w.Stats()
	if lastScan.IsZero() {
		t.Error("Expected lastScan to be set after a scan")
	}
	if stats["assets"].Files != 1 || stats["assets"].Bytes != 64 {
		t.Errorf("assets stats = %+v, want 1 file of 64 bytes", stats["assets"])
	}
	if stats["thumbnails"].Files != 0 {
		t.Errorf("thumbnails stats = %+v, want empty", stats["thumbnails"])
	}
}

func TestWatcherStartStop(t *testing.T) {
	w := New(staticDirs{assets: t.TempDir(), thumbnails: t.TempDir()}, 10*time.Millisecond)
	w.Start()

	// Give the initial scan a moment to land
	deadline := time.After(2 * time.Second)
	for {
		_, lastScan := w.Stats()
		if !lastScan.IsZero() {
			break
		}
		select {
		case <-deadline:
			t.Fatal("Watcher never completed an initial scan")
		case <-time.After(5 * time.Millisecond):
		}
	}

	w.Stop()
	w.Stop() // second Stop must not panic
}

func TestWatcherDefaultInterval(t *testing.T) {
	w := New(staticDirs{}, 0)
	if w.scanInterval != defaultScanInterval {
		t.Errorf("scanInterval = %v, want default %v", w.scanInterval, defaultScanInterval)
	}
}
