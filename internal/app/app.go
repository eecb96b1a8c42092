package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/atomicstack/bootsetup/internal/bootloader"
	"github.com/atomicstack/bootsetup/internal/catalog"
	"github.com/atomicstack/bootsetup/internal/commit"
	"github.com/atomicstack/bootsetup/internal/logging"
	"github.com/atomicstack/bootsetup/internal/logging/events"
	"github.com/atomicstack/bootsetup/internal/setup"
	"github.com/atomicstack/bootsetup/internal/ui"
	"github.com/atomicstack/bootsetup/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
)

// Config describes user-provided application options.
type Config struct {
	Bootloader  string
	Target      string
	CatalogPath string
	DryRun      bool
	Width       int
	Height      int
	ShowFooter  bool
	Version     string
}

// Env is the system the session runs against.
type Env struct {
	FS       afero.Fs
	LookPath bootloader.LookPath
	Run      catalog.Runner
}

// SystemEnv uses the real filesystem and commands.
func SystemEnv() Env {
	return Env{FS: afero.NewOsFs(), LookPath: exec.LookPath, Run: catalog.ExecRunner}
}

// Session bundles everything one run of the form needs.
type Session struct {
	Config  *setup.Configuration
	Gateway *commit.Gateway
	// DryRun is set in test mode and records what would have been installed.
	DryRun *bootloader.DryRunWriter
}

// NewSession loads the catalog, detects the installed bootloaders and builds
// the configuration and commit gateway.
func NewSession(ctx context.Context, cfg Config, env Env) (*Session, error) {
	var src catalog.Source
	if cfg.CatalogPath != "" {
		src = catalog.NewFileSource(env.FS, cfg.CatalogPath)
	} else {
		src = catalog.NewProbeSource(env.FS, env.Run)
	}
	snap, err := catalog.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	events.App.Catalog(len(snap.Disks), len(snap.Partitions), len(snap.BootPartitions))

	var detected []setup.Backend
	if env.LookPath != nil {
		detected = bootloader.Detect(ctx, env.LookPath, env.Run)
	}
	names := make([]string, len(detected))
	for i, b := range detected {
		names[i] = b.String()
	}
	events.App.Detected(names)

	conf, err := setup.New(snap, setup.Defaults{
		Backend:  cfg.Bootloader,
		Detected: detected,
		Target:   cfg.Target,
	})
	if err != nil {
		return nil, err
	}

	s := &Session{Config: conf}
	var writer commit.Writer
	if cfg.DryRun {
		s.DryRun = bootloader.DryRun()
		writer = s.DryRun
	} else {
		writer = bootloader.New(env.FS, env.Run)
	}
	s.Gateway = commit.NewGateway(writer)
	return s, nil
}

// Model builds the form for the session.
func (s *Session) Model(ctx context.Context, cfg Config) *ui.Model {
	return ui.NewModel(s.Config, ui.Options{
		Bus:         command.New(ctx, s.Gateway),
		Closer:      s.Gateway,
		Width:       cfg.Width,
		Height:      cfg.Height,
		ShowFooter:  cfg.ShowFooter,
		CursorBlink: true,
		DryRun:      cfg.DryRun,
		Version:     cfg.Version,
	})
}

// Run bootstraps and executes the Bubble Tea program, then reports the
// outcome on out.
func Run(cfg Config, out io.Writer) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session, err := NewSession(ctx, cfg, SystemEnv())
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Gateway.Close(); err != nil {
			logging.Error(err)
		}
	}()

	model := session.Model(ctx, cfg)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	fmt.Fprint(out, session.Summary(model))
	return nil
}

// Summary describes what the finished form did.
func (s *Session) Summary(model *ui.Model) string {
	snap, ok := model.Committed()
	if !ok {
		return "No bootloader was installed.\n"
	}
	var b strings.Builder
	switch snap.Backend {
	case setup.Grub2Backend:
		fmt.Fprintf(&b, "Grub2 installed on %s.\n", snap.Partition)
	default:
		fmt.Fprintf(&b, "LiLo installed on %s with %d boot entries.\n", snap.Disk, len(snap.Entries))
	}
	if s.DryRun != nil {
		b.WriteString("Test mode, nothing was written:\n")
		for _, action := range s.DryRun.Actions() {
			fmt.Fprintf(&b, "  %s\n", action)
		}
	}
	return b.String()
}
