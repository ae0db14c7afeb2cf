package startup

import (
	"testing"
)

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		envValue     string
		defaultValue bool
		want         bool
		setEnv       bool
	}{
		{name: "unset returns default true", key: "TEST_BOOL_UNSET", defaultValue: true, want: true},
		{name: "unset returns default false", key: "TEST_BOOL_UNSET2", defaultValue: false, want: false},
		{name: "true", key: "TEST_BOOL_TRUE", envValue: "true", defaultValue: false, want: true, setEnv: true},
		{name: "false", key: "TEST_BOOL_FALSE", envValue: "false", defaultValue: true, want: false, setEnv: true},
		{name: "1", key: "TEST_BOOL_ONE", envValue: "1", defaultValue: false, want: true, setEnv: true},
		{name: "0", key: "TEST_BOOL_ZERO", envValue: "0", defaultValue: true, want: false, setEnv: true},
		{name: "TRUE uppercase", key: "TEST_BOOL_TRUE_UPPER", envValue: "TRUE", defaultValue: false, want: true, setEnv: true},
		{name: "garbage falls back to default", key: "TEST_BOOL_INVALID", envValue: "not-a-bool", defaultValue: true, want: true, setEnv: true},
		{name: "yes is not a ParseBool value", key: "TEST_BOOL_YES", envValue: "yes", defaultValue: false, want: false, setEnv: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			}

			got := getEnvBool(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnvBool(%q, %v) = %v, want %v (env: %q)", tt.key, tt.defaultValue, got, tt.want, tt.envValue)
			}
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		envValue     string
		defaultValue int
		want         int
		setEnv       bool
	}{
		{name: "unset returns default", key: "TEST_INT_UNSET", defaultValue: 150, want: 150},
		{name: "parsed when set", key: "TEST_INT_SET", envValue: "240", defaultValue: 150, want: 240, setEnv: true},
		{name: "garbage falls back to default", key: "TEST_INT_INVALID", envValue: "big", defaultValue: 60, want: 60, setEnv: true},
		{name: "float falls back to default", key: "TEST_INT_FLOAT", envValue: "1.5", defaultValue: 60, want: 60, setEnv: true},
		{name: "negative values parse", key: "TEST_INT_NEGATIVE", envValue: "-1", defaultValue: 60, want: -1, setEnv: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			}

			got := getEnvInt(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnvInt(%q, %d) = %d, want %d (env: %q)", tt.key, tt.defaultValue, got, tt.want, tt.envValue)
			}
		})
	}
}

func TestBuildInfoStruct(t *testing.T) {
	info := BuildInfo{
		Version:   "1.0.0",
		Commit:    "abc123",
		BuildTime: "2026-01-01",
		GoVersion: "go1.25.0",
		OS:        "linux",
		Arch:      "amd64",
	}

	if info.Version != "1.0.0" {
		t.Errorf("Expected Version='1.0.0', got %q", info.Version)
	}
	if info.Commit != "abc123" {
		t.Errorf("Expected Commit='abc123', got %q", info.Commit)
	}
	if info.GoVersion != "go1.25.0" {
		t.Errorf("Expected GoVersion='go1.25.0', got %q", info.GoVersion)
	}
}

func BenchmarkGetEnv(b *testing.B) {
	b.Setenv("BENCH_TEST_VAR", "test-value")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = getEnv("BENCH_TEST_VAR", "default")
	}
}

func BenchmarkGetEnvBool(b *testing.B) {
	b.Setenv("BENCH_TEST_BOOL", "true")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = getEnvBool("BENCH_TEST_BOOL", false)
	}
}
