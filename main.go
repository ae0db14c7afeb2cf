package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"image-catalog/internal/database"
	"image-catalog/internal/handlers"
	"image-catalog/internal/ingest"
	"image-catalog/internal/logging"
	"image-catalog/internal/media"
	"image-catalog/internal/memory"
	"image-catalog/internal/metrics"
	"image-catalog/internal/middleware"
	"image-catalog/internal/startup"
	"image-catalog/internal/watcher"

	"github.com/gorilla/mux"
)

func main() {
	startTime := time.Now()

	// Configure the Go memory limit before any large allocations
	memory.ConfigureFromEnv()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// Metrics server runs on its own port so scrapes bypass the
	// application middleware chain
	if config.MetricsEnabled {
		metrics.InitializeMetrics()
		go metrics.Serve(config.MetricsPort)
	}

	// Initialize database
	dbStart := time.Now()
	db, err := database.New(context.Background(), config.DatabasePath)
	if err != nil {
		startup.LogFatal("Failed to initialize database: %v", err)
	}
	defer db.Close()
	startup.LogDatabaseInit(time.Since(dbStart))

	// Directory settings persisted by a previous update-directories call
	// win over the environment defaults
	thumbnailsDir, assetsDir := resolveCatalogDirs(db, config)

	// Initialize ingestion pipeline
	thumbs := media.NewGenerator(config.ThumbnailSize, config.ThumbnailQuality)
	pipeline := ingest.New(db, thumbs, assetsDir, thumbnailsDir)

	// Initialize directory watcher
	startup.LogWatcherInit(config.WatchInterval)
	watch := watcher.New(pipeline, config.WatchInterval)
	watch.Start()
	startup.LogWatcherStarted()

	// Initialize handlers
	h := handlers.New(db, pipeline, watch, config)

	// Setup router
	router := setupRouter(h)

	// Log routes dynamically
	startup.LogHTTPRoutes(router, config.LogStaticFiles, config.LogHealthChecks)

	// Apply middleware: metrics innermost, then logging, then compression
	var handler http.Handler = router
	if config.MetricsEnabled {
		handler = middleware.Metrics(middleware.DefaultMetricsConfig())(handler)
	}

	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogStaticFiles = config.LogStaticFiles
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	handler = middleware.Logger(loggingConfig)(handler)

	handler = middleware.Compression(middleware.DefaultCompressionConfig())(handler)

	// Create server
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start graceful shutdown handler
	go handleShutdown(srv, watch, db)

	// Start server
	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

// resolveCatalogDirs prefers the directories persisted in the settings
// table over the environment-derived defaults, recreating them if they
// were removed since last run.
func resolveCatalogDirs(db *database.Database, config *startup.Config) (thumbnailsDir, assetsDir string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	thumbnailsDir, err := db.GetSettingDefault(ctx, database.SettingThumbnailsDir, config.ThumbnailsDir)
	if err != nil {
		logging.Warn("Failed to read thumbnails directory setting: %v", err)
		thumbnailsDir = config.ThumbnailsDir
	}
	assetsDir, err = db.GetSettingDefault(ctx, database.SettingAssetsDir, config.AssetsDir)
	if err != nil {
		logging.Warn("Failed to read assets directory setting: %v", err)
		assetsDir = config.AssetsDir
	}

	for _, dir := range []string{thumbnailsDir, assetsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			startup.LogFatal("Failed to create catalog directory %s: %v", dir, err)
		}
	}
	if err := media.EnsureDefaultThumbnail(thumbnailsDir); err != nil {
		logging.Warn("Failed to create default thumbnail: %v", err)
	}
	return thumbnailsDir, assetsDir
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()

	// Health check and version routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	// API routes
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/images", h.ListImages).Methods("GET")
	api.HandleFunc("/settings", h.GetSettings).Methods("GET")
	api.HandleFunc("/settings/update-directories", h.UpdateDirectories).Methods("POST")
	api.HandleFunc("/convert", h.ConvertImage).Methods("POST")

	// Ingestion
	r.HandleFunc("/add_image", h.AddImage).Methods("POST")

	// Image delivery
	r.HandleFunc("/thumbnails/{file}", h.ServeThumbnail).Methods("GET")
	r.HandleFunc("/assets/{file}", h.ServeAsset).Methods("GET")

	// Static files
	r.PathPrefix("/").Handler(http.FileServer(http.Dir("./static")))

	return r
}

func handleShutdown(srv *http.Server, watch *watcher.Watcher, db *database.Database) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	startup.LogShutdownStep("Stopping watcher")
	watch.Stop()
	startup.LogShutdownStepComplete("Watcher stopped")

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownStep("Closing database")
	if err := db.Close(); err != nil {
		logging.Warn("Database close error: %v", err)
	} else {
		startup.LogShutdownStepComplete("Database closed")
	}

	startup.LogShutdownComplete()
}
