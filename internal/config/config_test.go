package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ServerURL != "http://localhost:5000" {
		t.Errorf("expected default server_url %q, got %q", "http://localhost:5000", cfg.ServerURL)
	}
	if cfg.Tone != ToneDefault {
		t.Errorf("expected default tone %q, got %q", ToneDefault, cfg.Tone)
	}
	if cfg.Level != LevelBeginner {
		t.Errorf("expected default level %q, got %q", LevelBeginner, cfg.Level)
	}
	if cfg.MaxUploadMB != 50 {
		t.Errorf("expected default max_upload_mb 50, got %d", cfg.MaxUploadMB)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.learnai.yml")

	original := DefaultConfig()
	original.ServerURL = "https://learn.example.com"
	original.Tone = ToneProfessional
	original.Level = LevelAdvanced
	original.DataDir = "state"
	original.MaxUploadMB = 25

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.ServerURL != original.ServerURL {
		t.Errorf("server_url: got %q, want %q", loaded.ServerURL, original.ServerURL)
	}
	if loaded.Tone != original.Tone {
		t.Errorf("tone: got %q, want %q", loaded.Tone, original.Tone)
	}
	if loaded.Level != original.Level {
		t.Errorf("level: got %q, want %q", loaded.Level, original.Level)
	}
	if loaded.DataDir != original.DataDir {
		t.Errorf("data_dir: got %q, want %q", loaded.DataDir, original.DataDir)
	}
	if loaded.MaxUploadMB != original.MaxUploadMB {
		t.Errorf("max_upload_mb: got %d, want %d", loaded.MaxUploadMB, original.MaxUploadMB)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Tone != ToneDefault {
		t.Errorf("expected default tone, got %q", cfg.Tone)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Override tone via env var.
	os.Setenv("LEARNAI_TONE", "informal")
	defer os.Unsetenv("LEARNAI_TONE")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Tone != ToneInformal {
		t.Errorf("env override failed: got %q, want %q", loaded.Tone, ToneInformal)
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalidServerURL(t *testing.T) {
	tests := []string{"", "not a url", "/relative/path", "localhost:5000"}
	for _, u := range tests {
		cfg := DefaultConfig()
		cfg.ServerURL = u
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected validation error for server_url %q", u)
		}
	}
}

func TestValidateInvalidTone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tone = "sarcastic"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid tone")
	}
}

func TestValidateInvalidLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "expert"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid level")
	}
}

func TestValidateEmptyDataDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty data_dir")
	}
}

func TestValidateNonPositiveUpload(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxUploadMB = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for zero max_upload_mb")
	}
}

func TestValidToneAndLevel(t *testing.T) {
	for _, tone := range Tones {
		if !ValidTone(tone) {
			t.Errorf("ValidTone(%q) = false, want true", tone)
		}
	}
	if ValidTone("shouty") {
		t.Error("ValidTone(shouty) = true, want false")
	}

	for _, level := range Levels {
		if !ValidLevel(level) {
			t.Errorf("ValidLevel(%q) = false, want true", level)
		}
	}
	if ValidLevel("wizard") {
		t.Error("ValidLevel(wizard) = true, want false")
	}
}
