package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleYAML = `
app:
  port: 8000
search:
  default_limit: 25
  max_pages: 2
  page_delay_seconds: 2
providers:
  serpapi:
    enabled: true
    google_domain: "google.com"
    language: "en"
  linkedin:
    enabled: true
    host: "linkedin-job-search-api.p.rapidapi.com"
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeTemp(t, sampleYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Port != 8000 {
		t.Errorf("port = %d", cfg.App.Port)
	}
	if cfg.Search.DefaultLimit != 25 || cfg.Search.MaxPages != 2 {
		t.Errorf("search section: %+v", cfg.Search)
	}
	if !cfg.Providers.SerpAPI.Enabled || !cfg.Providers.LinkedIn.Enabled {
		t.Errorf("providers section: %+v", cfg.Providers)
	}
	if cfg.Providers.ActiveJobs.Enabled {
		t.Error("active_jobs should default to disabled")
	}
}

func TestLoad_EnvOverridesPort(t *testing.T) {
	t.Setenv("ENGINE_PORT", "9999")
	cfg, err := Load(writeTemp(t, sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.App.Port != 9999 {
		t.Errorf("expected env override, got port %d", cfg.App.Port)
	}
}

func TestNormalizeAndValidate(t *testing.T) {
	cfg, err := Load(writeTemp(t, sampleYAML))
	if err != nil {
		t.Fatal(err)
	}

	if _, vr := NormalizeAndValidate(cfg); !vr.OK() {
		t.Errorf("expected valid config, got errors: %v", vr.Errors)
	}

	bad := cfg
	bad.App.Port = 0
	bad.Providers.SerpAPI.Enabled = false
	bad.Providers.LinkedIn.Enabled = false
	_, vr := NormalizeAndValidate(bad)
	if vr.OK() {
		t.Fatal("expected validation errors")
	}
	if len(vr.Errors) != 2 {
		t.Errorf("expected 2 errors (port, no providers), got %v", vr.Errors)
	}
}

func TestEnsureUserConfig_CopiesDefaultOnce(t *testing.T) {
	dataDir := t.TempDir()
	defaultPath := writeTemp(t, sampleYAML)

	userPath, err := EnsureUserConfig(dataDir, defaultPath)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if filepath.Dir(userPath) != dataDir {
		t.Errorf("user config outside data dir: %s", userPath)
	}

	// edit the user copy; a second bootstrap must not clobber it
	if err := os.WriteFile(userPath, []byte("app:\n  port: 1234\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	again, err := EnsureUserConfig(dataDir, defaultPath)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(again)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.App.Port != 1234 {
		t.Errorf("bootstrap clobbered user edits: port %d", cfg.App.Port)
	}
}

func TestSaveAtomic_RejectsInvalid(t *testing.T) {
	var cfg Config // zero config fails validation
	if err := SaveAtomic(filepath.Join(t.TempDir(), "config.yml"), cfg); err == nil {
		t.Fatal("expected validation failure")
	}
}
