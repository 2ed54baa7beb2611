package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Export.Format != "obj" {
		t.Errorf("expected format obj, got %s", cfg.Export.Format)
	}
	if cfg.Export.Separate {
		t.Error("expected separate to be false by default")
	}
	if cfg.Export.OnlyFinal {
		t.Error("expected only_final to be false by default")
	}
	if cfg.Export.Tolerant {
		t.Error("expected tolerant to be false by default")
	}
	if cfg.Export.Workers != 0 {
		t.Errorf("expected 0 workers (serial), got %d", cfg.Export.Workers)
	}

	if len(cfg.Palette.Colors) == 0 {
		t.Error("expected a non-empty default palette")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
export:
  format: ply
  separate: true
  only_final: true
  tolerant: true
  workers: 4

palette:
  colors:
    - [255, 0, 0]
    - [0, 255, 0]

logging:
  level: "debug"
  log_file: "brickmesh.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Export.Format != "ply" {
		t.Errorf("expected format ply, got %s", cfg.Export.Format)
	}
	if !cfg.Export.Separate {
		t.Error("expected separate to be true")
	}
	if !cfg.Export.OnlyFinal {
		t.Error("expected only_final to be true")
	}
	if !cfg.Export.Tolerant {
		t.Error("expected tolerant to be true")
	}
	if cfg.Export.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Export.Workers)
	}

	if len(cfg.Palette.Colors) != 2 {
		t.Fatalf("expected 2 palette colors, got %d", len(cfg.Palette.Colors))
	}
	colors := cfg.Palette.BrickColors()
	if colors[0] != [3]uint8{255, 0, 0} {
		t.Errorf("expected red first, got %v", colors[0])
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "brickmesh.log" {
		t.Errorf("expected log file 'brickmesh.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("export:\n  format: stl\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Export.Format != "stl" {
		t.Errorf("expected format stl, got %s", cfg.Export.Format)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("unset fields should keep defaults, got level %s", cfg.Logging.Level)
	}
	if len(cfg.Palette.Colors) == 0 {
		t.Error("unset palette should keep default colors")
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
export:
  workers: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("expected non-empty config dir")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("expected absolute path, got %s", dir)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Export.Format = "ply"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Export.Format != "ply" {
		t.Errorf("round trip lost format, got %s", loaded.Export.Format)
	}
}
