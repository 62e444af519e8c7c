package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_CreatesDefaultWhenMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ytscribe.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config file not created: %v", err)
	}
	if cfg.Fetch.TimeoutSeconds != 15 {
		t.Errorf("Fetch.TimeoutSeconds = %d; want 15", cfg.Fetch.TimeoutSeconds)
	}
	if !cfg.IncludeTimestamps {
		t.Error("IncludeTimestamps should default to true")
	}
	if cfg.Server.ListenAddr == "" || cfg.Server.DBPath == "" {
		t.Errorf("server defaults missing: %+v", cfg.Server)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")
	content := "output_dir: /tmp/out\ngemini:\n  model: gemini-test\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.OutputDir != "/tmp/out" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.Gemini.Model != "gemini-test" {
		t.Errorf("Gemini.Model = %q", cfg.Gemini.Model)
	}
	// champ absent -> défaut conservé
	if cfg.Fetch.MaxBytes != 10_000_000 {
		t.Errorf("Fetch.MaxBytes = %d; want default", cfg.Fetch.MaxBytes)
	}
}

func TestLoad_EnvOverridesAPIKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(path, []byte("gemini:\n  api_key: from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GEMINI_API_KEY", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Gemini.APIKey != "from-env" {
		t.Errorf("Gemini.APIKey = %q; want env value", cfg.Gemini.APIKey)
	}
}

func TestResolveYtDlpPath(t *testing.T) {
	cfg := defaultConfig()
	cfg.YtDlp.Path = "/opt/tools"
	cfg.resolveYtDlpPath()
	if cfg.YtDlp.ResolvedPath != filepath.Join("/opt/tools", cfg.YtDlp.Name) {
		t.Errorf("ResolvedPath = %q", cfg.YtDlp.ResolvedPath)
	}

	cfg.YtDlp.Path = ""
	cfg.resolveYtDlpPath()
	if cfg.YtDlp.ResolvedPath != cfg.YtDlp.Name {
		t.Errorf("ResolvedPath = %q; want bare name for PATH lookup", cfg.YtDlp.ResolvedPath)
	}
}
