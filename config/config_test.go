package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Format != "text" {
		t.Errorf("Expected default format text, got %q", cfg.Format)
	}
	if cfg.Output != "" {
		t.Errorf("Expected no default output, got %q", cfg.Output)
	}
	if cfg.Watch.IntervalMS != 1000 {
		t.Errorf("Expected default interval 1000, got %d", cfg.Watch.IntervalMS)
	}
	if cfg.UI.Addr != "localhost:8844" {
		t.Errorf("Expected default address, got %q", cfg.UI.Addr)
	}
	if len(cfg.Exclude) != 0 {
		t.Errorf("Expected no default excludes, got %v", cfg.Exclude)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `format: json
output: report.json
exclude:
  - "Gen*.java"
  - "*/target/*"
watch:
  intervalMs: 250
ui:
  addr: localhost:9000
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Format != "json" || cfg.Output != "report.json" {
		t.Errorf("Unexpected report settings: %q %q", cfg.Format, cfg.Output)
	}
	if len(cfg.Exclude) != 2 {
		t.Errorf("Expected 2 exclude patterns, got %v", cfg.Exclude)
	}
	if cfg.Watch.IntervalMS != 250 {
		t.Errorf("Expected interval 250, got %d", cfg.Watch.IntervalMS)
	}
	if cfg.UI.Addr != "localhost:9000" {
		t.Errorf("Expected overridden address, got %q", cfg.UI.Addr)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "format: xml\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Format != "xml" {
		t.Errorf("Expected format xml, got %q", cfg.Format)
	}
	if cfg.Watch.IntervalMS != 1000 || cfg.UI.Addr != "localhost:8844" {
		t.Errorf("Expected untouched defaults, got %d %q", cfg.Watch.IntervalMS, cfg.UI.Addr)
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "format: yaml\n")

	_, err := Load(dir)
	if err == nil {
		t.Fatal("Expected an error for an unknown format")
	}
	if !strings.Contains(err.Error(), `unknown report format "yaml"`) {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestLoadRejectsNegativeInterval(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "watch:\n  intervalMs: -5\n")

	_, err := Load(dir)
	if err == nil {
		t.Fatal("Expected an error for a negative interval")
	}
	if !strings.Contains(err.Error(), "must not be negative") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "format: [oops\n")

	_, err := Load(dir)
	if err == nil {
		t.Fatal("Expected an error for malformed yaml")
	}
	if !strings.Contains(err.Error(), "parse") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestExcluded(t *testing.T) {
	cfg := &Config{Exclude: []string{"Gen*.java", "*/target/*"}}

	cases := []struct {
		path string
		want bool
	}{
		{"x/GenFoo.java", true},
		{"project/target/Foo.java", true},
		{"src/Main.java", false},
		{"a/b/target/c/D.java", false},
	}
	for _, c := range cases {
		if got := cfg.Excluded(c.path); got != c.want {
			t.Errorf("Excluded(%q): expected %v, got %v", c.path, c.want, got)
		}
	}
}
