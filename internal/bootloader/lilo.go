package bootloader

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"text/template"

	"github.com/atomicstack/bootsetup/internal/bootentry"
	"github.com/atomicstack/bootsetup/internal/logging"
	"github.com/spf13/afero"
)

var liloTemplate = template.Must(template.New("lilo.conf").Parse(`# Generated by bootsetup.
boot = /dev/{{ .Disk }}
prompt
timeout = 50
lba32
compact
{{- range .Entries }}
{{ if .Chain -}}
other = /dev/{{ .Device }}
  label = {{ .Label }}
{{- else -}}
image = /boot/vmlinuz
  root = /dev/{{ .Device }}
  label = {{ .Label }}
  read-only
{{- end }}
{{- end }}
`))

// filesystems lilo can only chain load.
var chainFileSystems = map[string]bool{"vfat": true, "ntfs": true, "exfat": true, "fat32": true, "fat16": true}

type liloEntry struct {
	Device string
	Label  string
	Chain  bool
}

// RenderLiLoConf renders the lilo.conf installing entries to disk. Only the
// entry on root, the running system, boots /boot/vmlinuz directly; every
// other system is chain loaded through its own boot sector. An empty root
// chain loads everything.
func RenderLiLoConf(disk, root string, entries []bootentry.Entry) ([]byte, error) {
	data := struct {
		Disk    string
		Entries []liloEntry
	}{Disk: disk}
	for _, e := range entries {
		data.Entries = append(data.Entries, liloEntry{
			Device: e.Device(),
			Label:  e.Label,
			Chain:  e.Device() != root || chainLoaded(e),
		})
	}
	var buf bytes.Buffer
	if err := liloTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render lilo.conf: %w", err)
	}
	return buf.Bytes(), nil
}

func chainLoaded(e bootentry.Entry) bool {
	if chainFileSystems[strings.ToLower(e.Partition.FileSystem)] {
		return true
	}
	return strings.HasSuffix(e.Partition.Description, "(chain)")
}

// RootDevice returns the partition mounted on /, such as "sda1", or "" when
// findmnt cannot tell.
func (s *System) RootDevice(ctx context.Context) string {
	if s.rootDevice != "" {
		return s.rootDevice
	}
	out, err := s.run(ctx, "findmnt", "-n", "-o", "SOURCE", "/")
	if err != nil {
		logging.Warnf("find root partition: %v", err)
		return ""
	}
	dev, ok := strings.CutPrefix(strings.TrimSpace(string(out)), "/dev/")
	if !ok || strings.ContainsAny(dev, "/[") {
		logging.Warnf("root is not a plain partition: %q", strings.TrimSpace(string(out)))
		return ""
	}
	return dev
}

// InstallLiLo writes lilo.conf and runs lilo against it.
func (s *System) InstallLiLo(ctx context.Context, disk string, entries []bootentry.Entry) error {
	conf, err := RenderLiLoConf(disk, s.RootDevice(ctx), entries)
	if err != nil {
		return err
	}
	if err := s.fs.MkdirAll(path.Dir(s.liloConf), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", path.Dir(s.liloConf), err)
	}
	if err := afero.WriteFile(s.fs, s.liloConf, conf, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.liloConf, err)
	}
	logging.Infof("wrote %s with %d entries", s.liloConf, len(entries))
	return s.exec(ctx, "lilo", "-C", s.liloConf)
}
