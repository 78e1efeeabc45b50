package config

import (
	"os"
	"path/filepath"
	"testing"

	"site-quote/internal/errors"
)

// TestDefaultIsValid proves the defaults pass validation
func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

// TestLoadMissingFile proves a missing file yields the defaults
func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Format != "cli" || cfg.Surface.Variant != "rain" || cfg.Surface.FPS != 60 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

// TestSaveLoadKeepsChanges proves edited values survive a save and load,
// and untouched sections keep their defaults
func TestSaveLoadKeepsChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.Quote.Language = "fi"
	cfg.Output.Format = "markdown"
	cfg.Surface.Variant = "ripple"
	cfg.Surface.ReducedMotion = true
	cfg.Surface.Ripple.DropsPerSecond = 40
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Quote.Language != "fi" || got.Output.Format != "markdown" {
		t.Errorf("quote/output not kept: %+v %+v", got.Quote, got.Output)
	}
	if got.Surface.Variant != "ripple" || !got.Surface.ReducedMotion || got.Surface.Ripple.DropsPerSecond != 40 {
		t.Errorf("surface not kept: %+v", got.Surface)
	}
	if got.Surface.Rain.Density != 0.7 {
		t.Errorf("rain density = %g, want default 0.7", got.Surface.Rain.Density)
	}
}

// TestLoadPartialFile proves fields absent from the file keep defaults
func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"surface": {"fps": 30}}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Surface.FPS != 30 || cfg.Surface.Variant != "rain" || cfg.Logging.Level != "warn" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

// TestLoadRejectsBadFiles proves decode and validation failures are
// configuration errors
func TestLoadRejectsBadFiles(t *testing.T) {
	tests := map[string]string{
		"syntax":   `{"quote": `,
		"format":   `{"output": {"format": "yaml"}}`,
		"language": `{"quote": {"language": "de"}}`,
		"currency": `{"quote": {"currency": "USD"}}`,
		"variant":  `{"surface": {"variant": "snow"}}`,
		"damping":  `{"surface": {"ripple": {"damping": 1.5}}}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			if err := os.WriteFile(path, []byte(body), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); !errors.IsType(err, errors.TypeConfig) {
				t.Errorf("expected config error, got %v", err)
			}
		})
	}
}

// TestGlobal proves Set replaces the configuration Get returns
func TestGlobal(t *testing.T) {
	prev := Get()
	defer Set(prev)

	cfg := Default()
	cfg.Output.Details = true
	Set(cfg)
	if !Get().Output.Details {
		t.Error("Set did not replace the global configuration")
	}
}
