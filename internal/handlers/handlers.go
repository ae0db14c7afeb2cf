package handlers

import (
	"sync"
	"time"

	"image-catalog/internal/database"
	"image-catalog/internal/ingest"
	"image-catalog/internal/startup"
	"image-catalog/internal/watcher"
)

type Handlers struct {
	db        *database.Database
	pipeline  *ingest.Pipeline
	watcher   *watcher.Watcher
	startTime time.Time

	rootMu  sync.RWMutex
	rootDir string
}

func New(db *database.Database, pipeline *ingest.Pipeline, w *watcher.Watcher, config *startup.Config) *Handlers {
	return &Handlers{
		db:        db,
		pipeline:  pipeline,
		watcher:   w,
		startTime: time.Now(),
		rootDir:   config.RootDir,
	}
}

func (h *Handlers) currentRootDir() string {
	h.rootMu.RLock()
	defer h.rootMu.RUnlock()
	return h.rootDir
}

func (h *Handlers) setRootDir(dir string) {
	h.rootMu.Lock()
	defer h.rootMu.Unlock()
	h.rootDir = dir
}
