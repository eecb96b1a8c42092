package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/atomicstack/bootsetup/internal/app"
	"github.com/atomicstack/bootsetup/internal/bootloader"
	"github.com/atomicstack/bootsetup/internal/catalog"
	"github.com/atomicstack/bootsetup/internal/format/table"
	"github.com/atomicstack/bootsetup/internal/setup"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newProbeCmd(stdout io.Writer) *cobra.Command {
	var catalogPath string
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "List the disks, partitions and bootloaders the form would offer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			env := app.SystemEnv()
			var src catalog.Source = catalog.NewProbeSource(env.FS, env.Run)
			if catalogPath != "" {
				src = catalog.NewFileSource(env.FS, catalogPath)
			}
			snap, err := catalog.Load(ctx, src)
			if err != nil {
				return err
			}
			printCatalog(stdout, snap, bootloader.Detect(ctx, env.LookPath, env.Run))
			return nil
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "read disks and partitions from a YAML file instead of probing the system")
	return cmd
}

func printCatalog(w io.Writer, snap catalog.Snapshot, detected []setup.Backend) {
	disks := [][]string{{"DISK", "MODEL", "SIZE"}}
	for _, d := range snap.Disks {
		disks = append(disks, []string{d.ID, d.Model, humanize.Bytes(d.Size)})
	}
	writeTable(w, "Disks", disks, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignRight})

	boot := make(map[string]bool, len(snap.BootPartitions))
	for _, p := range snap.BootPartitions {
		boot[p.Device] = true
	}
	parts := [][]string{{"PARTITION", "FS", "SIZE", "BOOT", "OS"}}
	for _, p := range snap.Partitions {
		mark := ""
		if boot[p.Device] {
			mark = "yes"
		}
		parts = append(parts, []string{p.Device, p.FileSystem, humanize.Bytes(p.Size), mark, p.OS})
	}
	fmt.Fprintln(w)
	writeTable(w, "Partitions", parts, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignRight})

	names := make([]string, len(detected))
	for i, b := range detected {
		names[i] = b.String()
	}
	if len(names) == 0 {
		names = []string{"none"}
	}
	fmt.Fprintf(w, "\nInstalled bootloaders: %s\n", strings.Join(names, ", "))
}

func writeTable(w io.Writer, title string, rows [][]string, align []table.Alignment) {
	fmt.Fprintf(w, "%s:\n", title)
	if len(rows) == 1 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, line := range table.Format(rows, align) {
		fmt.Fprintf(w, "  %s\n", line)
	}
}
