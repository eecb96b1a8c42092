package config

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Bootloader != "" || cfg.App.Target != "" || cfg.App.CatalogPath != "" {
		t.Fatalf("expected empty selections, got %#v", cfg.App)
	}
	if cfg.App.DryRun {
		t.Fatalf("expected test mode off by default")
	}
	if !cfg.App.ShowFooter {
		t.Fatalf("expected footer on by default")
	}
	if cfg.Logging.Trace || cfg.Logging.FilePath != "" {
		t.Fatalf("unexpected logging defaults %#v", cfg.Logging)
	}
}

func TestLoadArgsFlags(t *testing.T) {
	args := []string{"-b", "grub2", "--target=sda5", "--catalog", "disks.yaml", "--test", "--width", "100", "--footer=false", "--trace", "--log-file", "/tmp/x.log"}
	cfg, err := LoadArgs(args, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Bootloader != "grub2" || cfg.App.Target != "sda5" || cfg.App.CatalogPath != "disks.yaml" {
		t.Fatalf("unexpected selections %#v", cfg.App)
	}
	if !cfg.App.DryRun || cfg.App.Width != 100 || cfg.App.ShowFooter {
		t.Fatalf("unexpected app config %#v", cfg.App)
	}
	if !cfg.Logging.Trace || cfg.Logging.FilePath != "/tmp/x.log" {
		t.Fatalf("unexpected logging config %#v", cfg.Logging)
	}
	if cfg.Flags["width"] != "100" || cfg.Flags["test"] != "true" {
		t.Fatalf("unexpected flag snapshot %#v", cfg.Flags)
	}
	if len(cfg.Args) != len(args) {
		t.Fatalf("expected args to be kept, got %v", cfg.Args)
	}
}

func TestLoadArgsEnvironmentFallbacks(t *testing.T) {
	env := []string{
		"BOOTSETUP_BOOTLOADER=lilo",
		"BOOTSETUP_TARGET=sdb",
		"BOOTSETUP_TEST=1",
		"BOOTSETUP_HEIGHT=30",
		"BOOTSETUP_TRACE=notabool",
		"malformed",
	}
	cfg, err := LoadArgs([]string{"--target", "sdc"}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Bootloader != "lilo" {
		t.Fatalf("expected bootloader from env, got %q", cfg.App.Bootloader)
	}
	if cfg.App.Target != "sdc" {
		t.Fatalf("expected flag to win over env, got %q", cfg.App.Target)
	}
	if !cfg.App.DryRun || cfg.App.Height != 30 {
		t.Fatalf("unexpected app config %#v", cfg.App)
	}
	if cfg.Logging.Trace {
		t.Fatalf("expected invalid bool to fall back to false")
	}
}

func TestLoadArgsRejectsInvalidValues(t *testing.T) {
	cases := [][]string{
		{"--width", "-1"},
		{"--height", "-5"},
		{"--bootloader", "syslinux"},
		{"--nope"},
		{"stray"},
	}
	for _, args := range cases {
		if _, err := LoadArgs(args, nil); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestLoadArgsHelp(t *testing.T) {
	_, err := LoadArgs([]string{"--help"}, nil)
	if !errors.Is(err, ErrHelp) {
		t.Fatalf("expected ErrHelp, got %v", err)
	}
	if !strings.Contains(Usage(), "--bootloader") {
		t.Fatalf("usage should list flags, got %q", Usage())
	}
}
