package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"image-catalog/internal/logging"
	"image-catalog/internal/media"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// RouteInfo contains information about a registered route
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// Config holds all application configuration
type Config struct {
	RootDir          string
	Port             string
	MetricsPort      string
	WatchInterval    time.Duration
	ThumbnailSize    int
	ThumbnailQuality int
	LogStaticFiles   bool
	LogHealthChecks  bool
	MetricsEnabled   bool

	// Derived paths
	DatabasePath  string
	ThumbnailsDir string
	AssetsDir     string
}

// LoadConfig loads and validates configuration from environment
// variables. A .env file in the working directory is read first, if
// present; real environment variables win over .env entries.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		logging.Debug("Loaded configuration overrides from .env")
	}

	printBanner()
	logSystemInfo()

	logSection("CONFIGURATION")

	rootDir := getEnv("ROOT_DIR", "/data")
	port := getEnv("PORT", "8080")
	metricsPort := getEnv("METRICS_PORT", "9090")
	watchIntervalStr := getEnv("WATCH_INTERVAL", "5m")
	thumbnailSize := getEnvInt("THUMBNAIL_SIZE", 150)
	thumbnailQuality := getEnvInt("THUMBNAIL_QUALITY", 60)
	logStaticFiles := getEnvBool("LOG_STATIC_FILES", false)
	logHealthChecks := getEnvBool("LOG_HEALTH_CHECKS", true)
	metricsEnabled := getEnvBool("METRICS_ENABLED", true)

	logging.Info("  ROOT_DIR:           %s", rootDir)
	logging.Info("  PORT:               %s", port)
	logging.Info("  METRICS_PORT:       %s", metricsPort)
	logging.Info("  METRICS_ENABLED:    %v", metricsEnabled)
	logging.Info("  WATCH_INTERVAL:     %s", watchIntervalStr)
	logging.Info("  THUMBNAIL_SIZE:     %d", thumbnailSize)
	logging.Info("  THUMBNAIL_QUALITY:  %d", thumbnailQuality)
	logging.Info("  LOG_STATIC_FILES:   %v", logStaticFiles)
	logging.Info("  LOG_HEALTH_CHECKS:  %v", logHealthChecks)
	logging.Info("  LOG_LEVEL:          %s", logging.GetLevel())

	watchInterval, err := time.ParseDuration(watchIntervalStr)
	if err != nil {
		logging.Warn("  Invalid WATCH_INTERVAL, using default: 5m")
		watchInterval = 5 * time.Minute
	}

	// Resolve paths
	logSection("DIRECTORY SETUP")

	rootDir, err = filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root directory path: %w", err)
	}
	logging.Info("  Root directory (absolute): %s", rootDir)

	config := &Config{
		RootDir:          rootDir,
		Port:             port,
		MetricsPort:      metricsPort,
		WatchInterval:    watchInterval,
		ThumbnailSize:    thumbnailSize,
		ThumbnailQuality: thumbnailQuality,
		LogStaticFiles:   logStaticFiles,
		LogHealthChecks:  logHealthChecks,
		MetricsEnabled:   metricsEnabled,
		DatabasePath:     filepath.Join(rootDir, "catalog.db"),
		ThumbnailsDir:    filepath.Join(rootDir, "thumbnails"),
		AssetsDir:        filepath.Join(rootDir, "assets"),
	}

	// The root directory holds the database and must be writable
	if err := ensureDirectory(rootDir, "root"); err != nil {
		return nil, fmt.Errorf("root directory error: %w", err)
	}

	logging.Debug("  Testing root directory write access...")
	if err := testWriteAccess(rootDir); err != nil {
		return nil, fmt.Errorf("root directory is not writable (required for database): %w", err)
	}
	logging.Info("  [OK] Root directory is writable")

	if err := ensureDirectory(config.ThumbnailsDir, "thumbnails"); err != nil {
		return nil, fmt.Errorf("thumbnails directory error: %w", err)
	}
	if err := ensureDirectory(config.AssetsDir, "assets"); err != nil {
		return nil, fmt.Errorf("assets directory error: %w", err)
	}

	logging.Info("")
	logging.Info("  Feature availability:")
	logging.Info("    Database:   ENABLED (required)")
	logging.Info("    Thumbnails: ENABLED (required)")
	logging.Info("    Metrics:    %s", enabledString(config.MetricsEnabled))

	return config, nil
}

// ResolveDirectories ensures thumbnails/ and assets/ exist under the
// given root and returns their absolute paths. Used both at startup and
// when the catalog root is repointed at runtime.
func ResolveDirectories(rootDir string) (thumbnailsDir, assetsDir string, err error) {
	rootDir, err = filepath.Abs(rootDir)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve root directory path: %w", err)
	}

	thumbnailsDir = filepath.Join(rootDir, "thumbnails")
	assetsDir = filepath.Join(rootDir, "assets")

	if err := ensureDirectory(thumbnailsDir, "thumbnails"); err != nil {
		return "", "", fmt.Errorf("thumbnails directory error: %w", err)
	}
	if err := ensureDirectory(assetsDir, "assets"); err != nil {
		return "", "", fmt.Errorf("assets directory error: %w", err)
	}
	if err := media.EnsureDefaultThumbnail(thumbnailsDir); err != nil {
		return "", "", fmt.Errorf("default thumbnail error: %w", err)
	}
	return thumbnailsDir, assetsDir, nil
}

func enabledString(enabled bool) string {
	if enabled {
		return "ENABLED"
	}
	return "DISABLED"
}

// LogDatabaseInit logs database initialization
func LogDatabaseInit(duration time.Duration) {
	logSection("DATABASE INITIALIZATION")
	logging.Info("  [OK] Database initialized in %v", duration)
}

// LogWatcherInit logs directory watcher initialization
func LogWatcherInit(interval time.Duration) {
	logSection("WATCHER INITIALIZATION")
	logging.Info("  Scan interval: %v", interval)
	logging.Info("  Starting watcher...")
}

// LogWatcherStarted logs successful watcher start
func LogWatcherStarted() {
	logging.Info("  [OK] Watcher started")
}

// GetRoutes walks a mux.Router and returns one RouteInfo per method and
// path pair. Routes without explicit methods report "*".
func GetRoutes(router *mux.Router) ([]RouteInfo, error) {
	var routes []RouteInfo

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return err
		}

		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"*"}
		}

		for _, method := range methods {
			routes = append(routes, RouteInfo{
				Method: method,
				Path:   pathTemplate,
				Name:   route.GetName(),
			})
		}
		return nil
	})

	return routes, err
}

// LogHTTPRoutes logs the registered routes, grouped by path prefix at
// debug level, plus the access-log configuration.
func LogHTTPRoutes(router *mux.Router, logStaticFiles, logHealthChecks bool) {
	logSection("HTTP SERVER SETUP")

	if logging.IsDebugEnabled() {
		logRouteGroups(router)
	}

	logging.Info("  HTTP logging enabled")
	logToggle("Static file logging", logStaticFiles, "LOG_STATIC_FILES")
	logToggle("Health check logging", logHealthChecks, "LOG_HEALTH_CHECKS")
}

func logToggle(what string, on bool, envVar string) {
	if on {
		logging.Info("    %s: ON", what)
	} else {
		logging.Info("    %s: OFF (set %s=true to enable)", what, envVar)
	}
}

func logRouteGroups(router *mux.Router) {
	routes, err := GetRoutes(router)
	if err != nil {
		logging.Warn("error walking routes: %v", err)
	}

	logging.Debug("  Registered routes (%d total):", len(routes))
	logging.Debug("")

	groups := make(map[string][]RouteInfo)
	for _, route := range routes {
		prefix := getRouteGroup(route.Path)
		groups[prefix] = append(groups[prefix], route)
	}

	groupKeys := make([]string, 0, len(groups))
	for k := range groups {
		groupKeys = append(groupKeys, k)
	}
	sort.Strings(groupKeys)

	for _, group := range groupKeys {
		label := group
		if label == "" {
			label = "root"
		}
		logging.Debug("  [%s]", label)
		for _, route := range groups[group] {
			logging.Debug("    %-6s %s", route.Method, route.Path)
		}
		logging.Debug("")
	}
}

// getRouteGroup maps a route path to its display group, keeping api
// subtrees distinct (e.g. /api/settings/... groups as "api/settings").
func getRouteGroup(path string) string {
	path = strings.TrimPrefix(path, "/")

	parts := strings.SplitN(path, "/", 2)
	if len(parts) == 0 {
		return ""
	}

	if parts[0] == "api" && len(parts) > 1 {
		subParts := strings.SplitN(parts[1], "/", 2)
		return "api/" + subParts[0]
	}
	return parts[0]
}

// ServerConfig holds configuration for the server startup log
type ServerConfig struct {
	Port            string
	MetricsPort     string
	MetricsEnabled  bool
	StartupDuration time.Duration
}

// LogServerStarted logs successful server start with all endpoint information
func LogServerStarted(config ServerConfig) {
	logSection("SERVER STARTED")
	logging.Info("  Startup time:    %v", config.StartupDuration)
	logging.Info("")
	logging.Info("  Endpoints:")
	logging.Info("    Application:   http://0.0.0.0:%s", config.Port)
	if config.MetricsEnabled {
		logging.Info("    Metrics:       http://0.0.0.0:%s/metrics", config.MetricsPort)
	} else {
		logging.Info("    Metrics:       DISABLED")
	}
	logging.Info("")
	logging.Info("  Local access:")
	logging.Info("    Application:   http://localhost:%s", config.Port)
	if config.MetricsEnabled {
		logging.Info("    Metrics:       http://localhost:%s/metrics", config.MetricsPort)
	}
	logging.Info("")
	logging.Info("  Press Ctrl+C to stop the server")
	logging.Info(sectionRule)
	logging.Info("")
}

// LogShutdownInitiated logs shutdown start
func LogShutdownInitiated(signal string) {
	logSection(fmt.Sprintf("SHUTDOWN INITIATED (received %s)", signal))
}

// LogShutdownStep logs a shutdown step
func LogShutdownStep(step string) {
	logging.Debug("  %s...", step)
}

// LogShutdownStepComplete logs a completed shutdown step
func LogShutdownStepComplete(step string) {
	logging.Info("  [OK] %s", step)
}

// LogShutdownComplete logs shutdown completion
func LogShutdownComplete() {
	logging.Info("  [OK] Shutdown complete")
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

// Helper functions

const sectionRule = "------------------------------------------------------------"

// logSection writes a titled separator block in the startup log.
func logSection(title string) {
	logging.Info("")
	logging.Info(sectionRule)
	logging.Info(title)
	logging.Info(sectionRule)
}

func printBanner() {
	banner := `
------------------------------------------------------------
    ____                             ______      __        __
   /  _/___ ___  ____ _____ ____    / ____/___ _/ /_____ _/ /___  ____ _
   / // __ '__ \/ __ '/ __ '/ _ \  / /   / __ '/ __/ __ '/ / __ \/ __ '/
 _/ // / / / / / /_/ / /_/ /  __/ / /___/ /_/ / /_/ /_/ / / /_/ / /_/ /
/___/_/ /_/ /_/\__,_/\__, /\___/  \____/\__,_/\__/\__,_/_/\____/\__, /
                    /____/                                     /____/
------------------------------------------------------------`
	fmt.Println(banner)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

func logSystemInfo() {
	logSection("SYSTEM INFORMATION")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  CPUs available:  %d", runtime.NumCPU())
	logging.Info("  GOMAXPROCS:      %d", runtime.GOMAXPROCS(0))

	if runtime.GOMAXPROCS(0) < runtime.NumCPU() {
		logging.Info("  (Container CPU limit detected)")
	}

	if logging.IsDebugEnabled() {
		logging.Debug("  Goroutines:      %d", runtime.NumGoroutine())

		if wd, err := os.Getwd(); err == nil {
			logging.Debug("  Working dir:     %s", wd)
		}

		if hostname, err := os.Hostname(); err == nil {
			logging.Debug("  Hostname:        %s", hostname)
		}
	}

	logging.Info("")
}

func ensureDirectory(path, name string) error {
	logging.Debug("  Checking %s directory: %s", name, path)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		logging.Debug("    Directory does not exist, creating...")
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		logging.Debug("    [OK] Created directory: %s", path)
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path exists but is not a directory")
	}

	logging.Debug("    [OK] Directory exists")

	if name == "assets" && logging.IsDebugEnabled() {
		entries, err := os.ReadDir(path)
		if err == nil {
			fileCount := 0
			dirCount := 0
			for _, e := range entries {
				if e.IsDir() {
					dirCount++
				} else {
					fileCount++
				}
			}
			logging.Debug("    Contents: %d files, %d directories (top level)", fileCount, dirCount)
		}
	}

	return nil
}

func testWriteAccess(dir string) error {
	testFile := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		return err
	}
	if err := os.Remove(testFile); err != nil {
		logging.Warn("failed to remove write test file %s: %v", testFile, err)
		// Don't return error since write access was confirmed
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logging.Warn("Invalid integer value for %s: %q, using default: %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
