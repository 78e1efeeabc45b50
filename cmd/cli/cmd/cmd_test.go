package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"site-quote/core/surface"
	"site-quote/internal/errors"
)

// execute runs the root command with fresh flag state and returns stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	cfg := filepath.Join(t.TempDir(), "config.json")
	rootCmd.SetArgs(append([]string{"--config", cfg, "--no-color", "--lang", "en"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Value.Type() == "stringArray" {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				_ = sv.Replace(nil)
			}
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// TestEstimateDefaults proves the default form prices to the known total
func TestEstimateDefaults(t *testing.T) {
	out, err := execute(t, "estimate")
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if !strings.Contains(out, "€12,261") {
		t.Errorf("expected first month total in output:\n%s", out)
	}
}

// TestEstimateFlagsOverrideFile proves explicit flags win over the quote file
func TestEstimateFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quote.hcl")
	src := `
variable "size" {
  default = 3
}
pages       = var.size
logo        = false
copy_pages  = 0
seo         = "none"
training_hours = 0
maintenance = "none"
hosting     = "none"
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "estimate", path, "--var", "size=4", "--complexity", "simple", "--format", "json")
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	var doc struct {
		Selection struct {
			Pages      int    `json:"pages"`
			Complexity string `json:"complexity"`
		} `json:"selection"`
		Totals map[string]string `json:"totals"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if doc.Selection.Pages != 4 || doc.Selection.Complexity != "simple" {
		t.Errorf("selection = %+v", doc.Selection)
	}
	// 5900 + 4 × 500
	if doc.Totals["first_month_total"] != "7900" {
		t.Errorf("first_month_total = %q", doc.Totals["first_month_total"])
	}
}

// TestEstimateRejectsBadInput proves invalid flag values are input errors
func TestEstimateRejectsBadInput(t *testing.T) {
	if _, err := execute(t, "estimate", "--seo", "ultra"); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("expected input error, got %v", err)
	}
	if _, err := execute(t, "estimate", "--var", "a=1"); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("expected input error for --var without file, got %v", err)
	}
	if _, err := execute(t, "estimate", "--format", "xml"); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("expected input error for format, got %v", err)
	}
}

// TestRatesMarkdown proves the rate sheet honors --format
func TestRatesMarkdown(t *testing.T) {
	out, err := execute(t, "rates", "--format", "md")
	if err != nil {
		t.Fatalf("rates: %v", err)
	}
	if !strings.Contains(out, "| base_website | €5,900 |") {
		t.Errorf("unexpected rates output:\n%s", out)
	}
}

// TestSurfaceExport proves the export command writes the requested frames
func TestSurfaceExport(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "surface", "export", "--variant", "ripple", "--size", "16x12", "--frames", "3", "--seed", "7", "--out", dir)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	files, _ := filepath.Glob(filepath.Join(dir, "frame-*.png"))
	if len(files) != 3 {
		t.Errorf("expected 3 frames, got %v", files)
	}
	if !strings.Contains(out, "wrote 3 frame(s)") {
		t.Errorf("unexpected output: %q", out)
	}
}

// TestParseSize proves WxH parsing and rejection of bad sizes
func TestParseSize(t *testing.T) {
	got, err := parseSize("320X180")
	if err != nil || got != (surface.Size{W: 320, H: 180}) {
		t.Errorf("parseSize = %+v, %v", got, err)
	}
	for _, bad := range []string{"", "320", "0x10", "ax10", "10x-1"} {
		if _, err := parseSize(bad); !errors.IsType(err, errors.TypeInput) {
			t.Errorf("parseSize(%q) = %v, want input error", bad, err)
		}
	}
}

// TestConfigInit proves init writes a file once and refuses to overwrite it
func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	resetFlags(rootCmd)
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	rootCmd.SetArgs([]string{"--config", path, "config", "init"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	resetFlags(rootCmd)
	rootCmd.SetArgs([]string{"--config", path, "config", "init"})
	if err := rootCmd.Execute(); !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("expected config error on second init, got %v", err)
	}
}

// TestConfigSetLang proves the chosen language is saved and used next time
func TestConfigSetLang(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	resetFlags(rootCmd)
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"--config", path, "config", "set-lang", "fi"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("set-lang: %v", err)
	}

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", path, "--no-color", "estimate"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if !strings.Contains(out.String(), "Verkkosivulaskuri") {
		t.Errorf("expected Finnish output:\n%s", out.String())
	}
}
