package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Bind != "127.0.0.1" {
		t.Errorf("Bind = %q, want 127.0.0.1", cfg.Bind)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.RequireContent {
		t.Error("RequireContent = true, want false by default")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	tmpDir := t.TempDir()
	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want default 8080", cfg.Port)
	}
}

func TestLoad_FromFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `{"port": 9090, "require_content": true, "disabled_tools": ["note_delete"]}`
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.Bind != "127.0.0.1" {
		t.Errorf("Bind = %q, want default retained", cfg.Bind)
	}
	if !cfg.RequireContent {
		t.Error("RequireContent = false, want true")
	}
	if len(cfg.DisabledTools) != 1 || cfg.DisabledTools[0] != "note_delete" {
		t.Errorf("DisabledTools = %v", cfg.DisabledTools)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte("{not json"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Error("Load succeeded on invalid JSON, want error")
	}
}

func TestMerge(t *testing.T) {
	base := &Config{Bind: "0.0.0.0", Port: 8080, DBMaxOpenConns: 4, DisabledTools: []string{"note_delete"}}
	overlay := &Config{Port: 9000, RequireContent: true, DisabledTools: []string{"note_delete", "note_search"}}

	result := Merge(base, overlay)
	if result.Bind != "0.0.0.0" {
		t.Errorf("Bind = %q, want base value", result.Bind)
	}
	if result.Port != 9000 {
		t.Errorf("Port = %d, want overlay value", result.Port)
	}
	if result.DBMaxOpenConns != 4 {
		t.Errorf("DBMaxOpenConns = %d, want base value", result.DBMaxOpenConns)
	}
	if !result.RequireContent {
		t.Error("RequireContent = false, want overlay true")
	}
	// Arrays merge and deduplicate
	if len(result.DisabledTools) != 2 {
		t.Errorf("DisabledTools = %v, want 2 deduplicated entries", result.DisabledTools)
	}
}
