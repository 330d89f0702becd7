package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wbrown/img2term"
)

// withPipedStdout points os.Stdout at a pipe so terminal probes fail
// deterministically, restoring it when the test ends.
func withPipedStdout(t *testing.T) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to open pipe: %v", err)
	}
	old := os.Stdout
	os.Stdout = w
	t.Cleanup(func() {
		os.Stdout = old
		w.Close()
		r.Close()
	})
}

func TestResolveSizeRequiresFlagWithoutTerminal(t *testing.T) {
	withPipedStdout(t)
	logger := log.New(io.Discard, "", 0)

	_, _, _, err := resolveSize("", logger)
	if err == nil {
		t.Fatal("Expected an undetectable terminal without --size to fail")
	}
	if !strings.Contains(err.Error(), "--size") {
		t.Errorf("Expected the error to name --size, got %q", err)
	}
}

func TestResolveSizeExplicitSpec(t *testing.T) {
	withPipedStdout(t)
	logger := log.New(io.Discard, "", 0)

	cols, rows, detected, err := resolveSize("100x30", logger)
	if err != nil {
		t.Fatalf("Failed to resolve explicit size: %v", err)
	}
	if cols != 100 || rows != 30 {
		t.Errorf("Expected 100x30, got %dx%d", cols, rows)
	}
	if detected {
		t.Error("Expected no terminal detection through a pipe")
	}
}

func TestParseSize(t *testing.T) {
	testCases := []struct {
		spec       string
		cols, rows int
		ok         bool
	}{
		{"80x24", 80, 24, true},
		{"120X40", 120, 40, true},
		{"1x1", 1, 1, true},
		{"0x24", 0, 0, false},
		{"80x0", 0, 0, false},
		{"-5x24", 0, 0, false},
		{"80", 0, 0, false},
		{"80x", 0, 0, false},
		{"x24", 0, 0, false},
		{"widextall", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tc := range testCases {
		cols, rows, err := parseSize(tc.spec)
		if tc.ok {
			if err != nil {
				t.Errorf("parseSize(%q) failed: %v", tc.spec, err)
				continue
			}
			if cols != tc.cols || rows != tc.rows {
				t.Errorf("parseSize(%q): expected %dx%d, got %dx%d",
					tc.spec, tc.cols, tc.rows, cols, rows)
			}
		} else if err == nil {
			t.Errorf("Expected parseSize(%q) to fail", tc.spec)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("size: 100x30\nansi: ascii\ncompress: true\ncolors: 8\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Size != "100x30" {
		t.Errorf("Expected size 100x30, got %q", cfg.Size)
	}
	if cfg.ANSI != "ascii" {
		t.Errorf("Expected mode ascii, got %q", cfg.ANSI)
	}
	if !cfg.Compress {
		t.Error("Expected compress to be set")
	}
	if cfg.Colors != 8 {
		t.Errorf("Expected 8 colors, got %d", cfg.Colors)
	}
}

func TestLoadConfigMissingExplicit(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Expected an explicitly named missing config to fail")
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("size: [oops"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Fatal("Expected malformed YAML to fail")
	}
}

func TestSimplePalette(t *testing.T) {
	palette, err := simplePalette("simple-black", "")
	if err != nil {
		t.Fatalf("Failed to resolve palette: %v", err)
	}
	if palette[0] != (img2term.RGB{R: 0, G: 0, B: 0}) {
		t.Errorf("Expected black_bg palette, got first entry %v", palette[0])
	}

	palette, err = simplePalette("simple-white", "")
	if err != nil {
		t.Fatalf("Failed to resolve palette: %v", err)
	}
	if palette[0] != (img2term.RGB{R: 0xEE, G: 0xE8, B: 0xD5}) {
		t.Errorf("Expected white_bg palette, got first entry %v", palette[0])
	}

	palette, err = simplePalette("simple-white", "black_bg")
	if err != nil {
		t.Fatalf("Failed to resolve palette override: %v", err)
	}
	if palette[15] != (img2term.RGB{R: 255, G: 255, B: 255}) {
		t.Errorf("Expected overridden palette, got last entry %v", palette[15])
	}

	if palette, _ := simplePalette("truecolor", "black_bg"); palette != nil {
		t.Errorf("Expected no palette for truecolor, got %v", palette)
	}

	if _, err := simplePalette("simple-black", "/does/not/exist.json"); err == nil {
		t.Error("Expected a missing palette override to fail")
	}
}
