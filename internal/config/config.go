package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/bootsetup/internal/app"
	"github.com/atomicstack/bootsetup/internal/setup"
	"github.com/spf13/pflag"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envBootloader = "BOOTSETUP_BOOTLOADER"
	envTarget     = "BOOTSETUP_TARGET"
	envCatalog    = "BOOTSETUP_CATALOG"
	envTest       = "BOOTSETUP_TEST"
	envWidth      = "BOOTSETUP_WIDTH"
	envHeight     = "BOOTSETUP_HEIGHT"
	envShowFooter = "BOOTSETUP_FOOTER"
	envTrace      = "BOOTSETUP_TRACE"
	envLogFile    = "BOOTSETUP_LOG_FILE"
)

// ErrHelp is returned when -h or --help was requested.
var ErrHelp = pflag.ErrHelp

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

func newFlagSet(env map[string]string) *pflag.FlagSet {
	fs := pflag.NewFlagSet("bootsetup", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	fs.SortFlags = false

	fs.StringP("bootloader", "b", envOrDefault(env, envBootloader, ""), "bootloader to preselect: lilo or grub2 (default: first one installed)")
	fs.StringP("target", "t", envOrDefault(env, envTarget, ""), "disk (LiLo) or partition (Grub2) to preselect")
	fs.String("catalog", envOrDefault(env, envCatalog, ""), "read disks and partitions from a YAML file instead of probing the system")
	fs.Bool("test", envOrBool(env, envTest, false), "test mode: log the installation instead of performing it")
	fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	fs.Bool("footer", envOrBool(env, envShowFooter, true), "show the key binding footer")
	fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	return fs
}

// Usage returns the flag help text.
func Usage() string {
	return newFlagSet(nil).FlagUsages()
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := newFlagSet(parseEnv(environ))
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return Config{}, ErrHelp
		}
		return Config{}, err
	}
	if extra := fs.Args(); len(extra) > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(extra, " "))
	}

	bootloader, _ := fs.GetString("bootloader")
	target, _ := fs.GetString("target")
	catalogPath, _ := fs.GetString("catalog")
	dryRun, _ := fs.GetBool("test")
	width, _ := fs.GetInt("width")
	height, _ := fs.GetInt("height")
	footer, _ := fs.GetBool("footer")
	trace, _ := fs.GetBool("trace")
	logFile, _ := fs.GetString("log-file")

	cfg := Config{
		App: app.Config{
			Bootloader:  strings.TrimSpace(bootloader),
			Target:      strings.TrimSpace(target),
			CatalogPath: catalogPath,
			DryRun:      dryRun,
			Width:       width,
			Height:      height,
			ShowFooter:  footer,
		},
		Logging: Logging{
			FilePath: logFile,
			Trace:    trace,
		},
		Flags: map[string]string{
			"bootloader": bootloader,
			"target":     target,
			"catalog":    catalogPath,
			"test":       strconv.FormatBool(dryRun),
			"width":      strconv.Itoa(width),
			"height":     strconv.Itoa(height),
			"footer":     strconv.FormatBool(footer),
			"trace":      strconv.FormatBool(trace),
			"logFile":    logFile,
		},
		Args: append([]string(nil), args...),
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects sizes below zero and unknown bootloader names.
func Validate(cfg Config) error {
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	if cfg.App.Bootloader != "" {
		if _, err := setup.ParseBackend(cfg.App.Bootloader); err != nil {
			return err
		}
	}
	return nil
}
