package startup

import (
	"os"
	"path/filepath"
	"testing"

	"image-catalog/internal/media"
)

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()

	// Check that all fields are populated
	if info.Version == "" {
		t.Error("Expected Version to be set")
	}
	if info.GoVersion == "" {
		t.Error("Expected GoVersion to be set")
	}
	if info.OS == "" {
		t.Error("Expected OS to be set")
	}
	if info.Arch == "" {
		t.Error("Expected Arch to be set")
	}

	// Verify that runtime values are correct
	if info.GoVersion != GoVersion {
		t.Errorf("Expected GoVersion=%s, got %s", GoVersion, info.GoVersion)
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		want         string
		setEnv       bool
	}{
		{
			name:         "Returns default when env var not set",
			key:          "TEST_UNSET_VAR",
			defaultValue: "default",
			want:         "default",
			setEnv:       false,
		},
		{
			name:         "Returns env value when set",
			key:          "TEST_SET_VAR",
			defaultValue: "default",
			envValue:     "custom",
			want:         "custom",
			setEnv:       true,
		},
		{
			name:         "Returns default when env var is empty",
			key:          "TEST_EMPTY_VAR",
			defaultValue: "default",
			envValue:     "",
			want:         "default",
			setEnv:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			} else {
				// Ensure the variable is not set
				os.Unsetenv(tt.key)
				t.Cleanup(func() {
					os.Unsetenv(tt.key)
				})
			}

			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv(%q, %q) = %q, want %q", tt.key, tt.defaultValue, got, tt.want)
			}
		})
	}
}

func TestLoadConfigDerivedPaths(t *testing.T) {
	rootDir := t.TempDir()
	t.Setenv("ROOT_DIR", rootDir)
	t.Setenv("PORT", "8181")
	t.Setenv("METRICS_PORT", "9191")
	t.Setenv("WATCH_INTERVAL", "2m")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.DatabasePath != filepath.Join(rootDir, "catalog.db") {
		t.Errorf("DatabasePath = %q, want catalog.db under root", config.DatabasePath)
	}
	if config.ThumbnailsDir != filepath.Join(rootDir, "thumbnails") {
		t.Errorf("ThumbnailsDir = %q, want thumbnails under root", config.ThumbnailsDir)
	}
	if config.AssetsDir != filepath.Join(rootDir, "assets") {
		t.Errorf("AssetsDir = %q, want assets under root", config.AssetsDir)
	}
	if config.Port != "8181" {
		t.Errorf("Port = %q, want 8181", config.Port)
	}
	if config.WatchInterval.Minutes() != 2 {
		t.Errorf("WatchInterval = %v, want 2m", config.WatchInterval)
	}

	// Both managed directories must exist after a successful load
	for _, dir := range []string{config.ThumbnailsDir, config.AssetsDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("Directory %s should exist after LoadConfig", dir)
		}
	}
}

func TestLoadConfigInvalidWatchInterval(t *testing.T) {
	t.Setenv("ROOT_DIR", t.TempDir())
	t.Setenv("WATCH_INTERVAL", "not-a-duration")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.WatchInterval.Minutes() != 5 {
		t.Errorf("WatchInterval = %v, want default 5m", config.WatchInterval)
	}
}

func TestResolveDirectories(t *testing.T) {
	rootDir := t.TempDir()

	thumbnailsDir, assetsDir, err := ResolveDirectories(rootDir)
	if err != nil {
		t.Fatalf("ResolveDirectories failed: %v", err)
	}

	if thumbnailsDir != filepath.Join(rootDir, "thumbnails") {
		t.Errorf("thumbnailsDir = %q, want thumbnails under root", thumbnailsDir)
	}
	if assetsDir != filepath.Join(rootDir, "assets") {
		t.Errorf("assetsDir = %q, want assets under root", assetsDir)
	}
	for _, dir := range []string{thumbnailsDir, assetsDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("Directory %s should be created", dir)
		}
	}

	// The fallback thumbnail route must resolve out of the box.
	if _, err := os.Stat(filepath.Join(thumbnailsDir, media.DefaultThumbnailName)); err != nil {
		t.Errorf("default thumbnail was not created: %v", err)
	}
}

func TestResolveDirectoriesRejectsFileRoot(t *testing.T) {
	rootDir := t.TempDir()
	filePath := filepath.Join(rootDir, "occupied")
	if err := os.WriteFile(filePath, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	// A file where thumbnails/ should go makes directory setup fail
	blocked := filepath.Join(rootDir, "blocked")
	if err := os.MkdirAll(blocked, 0o755); err != nil {
		t.Fatalf("Failed to create root: %v", err)
	}
	if err := os.WriteFile(filepath.Join(blocked, "thumbnails"), []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to write blocking file: %v", err)
	}

	if _, _, err := ResolveDirectories(blocked); err == nil {
		t.Error("ResolveDirectories should fail when thumbnails path is a file")
	}
}

func TestRouteInfo(t *testing.T) {
	route := RouteInfo{
		Method: "GET",
		Path:   "/api/test",
		Name:   "TestRoute",
	}

	if route.Method != "GET" {
		t.Errorf("Expected Method=GET, got %s", route.Method)
	}
	if route.Path != "/api/test" {
		t.Errorf("Expected Path=/api/test, got %s", route.Path)
	}
	if route.Name != "TestRoute" {
		t.Errorf("Expected Name=TestRoute, got %s", route.Name)
	}
}
