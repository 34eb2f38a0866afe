package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load missing file: %v", err)
	}

	if cfg.Endpoint != "http://localhost:8080" {
		t.Errorf("endpoint: got %q", cfg.Endpoint)
	}
	if cfg.Path != "/flesh" {
		t.Errorf("path: got %q, want %q", cfg.Path, "/flesh")
	}
	if cfg.Timeout() != 3000*time.Millisecond {
		t.Errorf("timeout: got %v, want 3s", cfg.Timeout())
	}
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	content := `endpoint: "http://scores.local:9000"
timeout_ms: 1500
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	cfg, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"endpoint", cfg.Endpoint, "http://scores.local:9000"},
		{"path", cfg.Path, "/flesh"},
		{"timeout_ms", cfg.TimeoutMS, 1500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("endpoint: [unclosed"), 0644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	want := &Config{Endpoint: "https://example.com", Path: "/score", TimeoutMS: 250}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *want {
		t.Errorf("got %+v, want %+v", *got, *want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", *Default(), false},
		{"no endpoint", Config{Path: "/flesh", TimeoutMS: 3000}, true},
		{"zero timeout", Config{Endpoint: "http://x", TimeoutMS: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate: got %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetConfigDirXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg", "flesch") {
		t.Errorf("dir: got %q", dir)
	}
}
