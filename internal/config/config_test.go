package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"gubed/internal/model"
)

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	root := t.TempDir()

	os.WriteFile(filepath.Join(home, FileName), []byte("shebang_marker: jruby\n"), 0644)
	os.WriteFile(filepath.Join(root, FileName), []byte(`
skip_dirs: [".git", "coverage"]
confirm_quit: false
debounce: 1s
patterns:
  - kind: remote-pry
    regex: 'binding\.remote_pry\b'
`), 0644)

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg.SkipDirs, []string{".git", "coverage"}) {
		t.Errorf("SkipDirs = %v", cfg.SkipDirs)
	}
	if cfg.ConfirmQuit {
		t.Error("expected confirm_quit to be false")
	}
	if cfg.Debounce != time.Second {
		t.Errorf("Debounce = %s", cfg.Debounce)
	}
	// Omitted keys keep defaults; the global file is not consulted.
	if cfg.ShebangMarker != "ruby" {
		t.Errorf("ShebangMarker = %q", cfg.ShebangMarker)
	}

	sc, err := cfg.Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(sc.Patterns) != 7 {
		t.Fatalf("expected 7 patterns, got %d", len(sc.Patterns))
	}
	if sc.Patterns[0].Kind != model.KindPry {
		t.Errorf("built-in rules must come first, got %q", sc.Patterns[0].Kind)
	}
	if kind, ok := sc.Patterns.Classify("# binding.remote_pry"); !ok || kind != "remote-pry" {
		t.Errorf("custom pattern not applied: %q %v", kind, ok)
	}
}

func TestLoad_GlobalFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	os.WriteFile(filepath.Join(home, FileName), []byte("extensions: [\".rb\"]\n"), 0644)

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg.Extensions, []string{".rb"}) {
		t.Errorf("Extensions = %v", cfg.Extensions)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "skip_dirs: [unterminated"},
		{"bad regex", "patterns:\n  - kind: x\n    regex: '('\n"},
		{"missing kind", "patterns:\n  - regex: 'x'\n"},
		{"nothing admitted", "extensions: []\nshebang_marker: ''\n"},
		{"negative debounce", "debounce: -1s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			os.WriteFile(filepath.Join(root, FileName), []byte(tt.content), 0644)
			if _, err := Load(root); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoad_RootNotDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	file := filepath.Join(t.TempDir(), "x.rb")
	if err := os.WriteFile(file, []byte("binding.pry\n"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, root := range []string{file, filepath.Join(t.TempDir(), "missing")} {
		cfg, err := Load(root)
		if err != nil {
			t.Fatalf("Load(%s): %v", root, err)
		}
		if !reflect.DeepEqual(cfg, DefaultConfig()) {
			t.Errorf("Load(%s) = %+v, want defaults", root, cfg)
		}
	}
}
