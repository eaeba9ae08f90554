package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("MAX_UPLOAD_MB", "")

	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.ServerPort)
	}
	if cfg.MaxUploadMB != 10 {
		t.Errorf("expected default cap 10 MB, got %d", cfg.MaxUploadMB)
	}
	if cfg.MaxUploadBytes() != 10*1024*1024 {
		t.Errorf("expected 10485760 bytes, got %d", cfg.MaxUploadBytes())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MAX_UPLOAD_MB", "5")
	t.Setenv("UPLOAD_DIR", "/tmp/clips")

	cfg := Load()
	if cfg.ServerPort != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.ServerPort)
	}
	if cfg.MaxUploadMB != 5 {
		t.Errorf("expected cap 5 MB, got %d", cfg.MaxUploadMB)
	}
	if cfg.UploadDir != "/tmp/clips" {
		t.Errorf("expected upload dir /tmp/clips, got %s", cfg.UploadDir)
	}
}

func TestLoadIgnoresBadInt(t *testing.T) {
	t.Setenv("MAX_UPLOAD_MB", "lots")

	cfg := Load()
	if cfg.MaxUploadMB != 10 {
		t.Errorf("expected fallback 10, got %d", cfg.MaxUploadMB)
	}
}
