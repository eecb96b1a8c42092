package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/bootsetup/internal/format/table"
	"github.com/atomicstack/bootsetup/internal/setup"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.mode {
	case ModePicker:
		if m.picker != nil {
			return m.viewPicker()
		}
	case ModeDialog:
		if m.dialog != nil {
			return m.viewDialog()
		}
	}
	return m.viewForm()
}

func (m *Model) title() string {
	title := "Bootloader setup"
	if m.dryRun {
		title += " (test mode)"
	}
	return title
}

func (m *Model) viewForm() string {
	lines := make([]styledLine, 0, 24)
	lines = append(lines, styledLine{text: m.title(), style: styles.Title}, styledLine{})
	lines = append(lines, m.backendLine(), m.targetLine())

	if m.cfg.Backend() == setup.LiLoBackend {
		lines = append(lines, styledLine{}, styledLine{text: "Boot menu", style: styles.Section})
		lines = append(lines, m.entryLines()...)
	}

	lines = append(lines, styledLine{}, m.installLine())
	if m.loading && m.pendingLabel != "" {
		lines = append(lines, styledLine{text: m.pendingLabel, style: styles.Loading})
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{}, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{}, styledLine{text: m.help.View(m.keys), raw: true})
	}

	lines = limitHeight(lines, m.height-1, m.width)
	lines = applyWidth(lines, m.width)
	status := []styledLine{{}}
	if m.errMsg != "" {
		status[0] = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	lines = append(lines, applyWidth(status, m.width)...)
	return renderLines(lines)
}

func (m *Model) fieldStyle(f Field) *lipgloss.Style {
	if m.focus == f && m.mode == ModeForm {
		return styles.FocusedField
	}
	return styles.Field
}

func (m *Model) backendLine() styledLine {
	parts := make([]string, 0, len(setup.Backends))
	for _, b := range setup.Backends {
		mark := " "
		if b == m.cfg.Backend() {
			mark = "•"
		}
		parts = append(parts, fmt.Sprintf("(%s) %s", mark, b))
	}
	return styledLine{
		text:          "Bootloader:  " + strings.Join(parts, "   "),
		style:         m.fieldStyle(FieldBackend),
		prefixStyle:   styles.FieldLabel,
		highlightFrom: len([]rune("Bootloader:  ")),
	}
}

func (m *Model) targetLine() styledLine {
	label := "MBR disk:  "
	if m.cfg.Backend() == setup.Grub2Backend {
		label = "Install Grub2 files on:  "
	}
	return styledLine{
		text:          label + m.targetDescription(),
		style:         m.fieldStyle(FieldTarget),
		prefixStyle:   styles.FieldLabel,
		highlightFrom: len([]rune(label)),
	}
}

func (m *Model) targetDescription() string {
	id := m.cfg.Target()
	if id == "" {
		return "(none selected)"
	}
	snap := m.cfg.Catalog()
	if m.cfg.Backend() == setup.Grub2Backend {
		if p, ok := snap.Partition(id); ok {
			return p.Summary()
		}
		return id
	}
	if d, ok := snap.Disk(id); ok {
		return d.Description()
	}
	return id
}

func (m *Model) entryLines() []styledLine {
	entries := m.cfg.Entries().Entries()
	if len(entries) == 0 {
		return []styledLine{{text: "(no bootable systems found)", style: styles.Info}}
	}
	rows := make([][]string, 0, len(entries)+1)
	rows = append(rows, []string{"Partition", "File system", "Operating system", "Label"})
	for _, e := range entries {
		label := e.Label
		if m.mode == ModeLabelEdit && e.Device() == m.editing {
			label = m.labelInput.View()
		}
		rows = append(rows, []string{e.Device(), e.Partition.FileSystem, e.Partition.OS, label})
	}
	formatted := table.Format(rows, nil)
	lines := make([]styledLine, 0, len(formatted))
	lines = append(lines, styledLine{text: "  " + formatted[0], style: styles.TableHeader})
	for i, text := range formatted[1:] {
		line := styledLine{text: "  " + text, style: styles.Row}
		switch {
		case m.mode == ModeLabelEdit && entries[i].Device() == m.editing:
			line = styledLine{text: "› " + text, raw: true}
		case m.focus == FieldEntries && i == m.row:
			line = styledLine{text: "› " + text, style: styles.SelectedRow}
		}
		lines = append(lines, line)
	}
	return lines
}

func (m *Model) installLine() styledLine {
	style := styles.Button
	if m.focus == FieldInstall && m.mode == ModeForm {
		style = styles.FocusedButton
	}
	return styledLine{text: "[ Install ]", style: style}
}

func (m *Model) viewPicker() string {
	l := m.picker
	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: l.Title, style: styles.Title}, styledLine{})
	rows := m.pickerRows()
	if len(l.Items) == 0 {
		lines = append(lines, styledLine{text: fmt.Sprintf("No matches for %q", l.Filter), style: styles.Info})
	} else {
		start := 0
		visible := l.Visible(rows)
		if rows > 0 && len(l.Items) > rows {
			start = l.ViewportOffset
		}
		for i, item := range visible {
			lines = append(lines, m.buildItemLine(item.Label, l.IsCurrent(item.ID), start+i == l.Cursor))
		}
	}
	lines = append(lines, styledLine{})
	if m.errMsg != "" {
		lines = append(lines, styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error})
	}
	lines = append(lines, styledLine{text: m.pickerInput.View(), raw: true})
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

func (m *Model) buildItemLine(label string, current, selected bool) styledLine {
	mark := " "
	if current {
		mark = "•"
	}
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	text := "▌ " + mark + " " + label
	if m.width > 0 {
		if pad := m.width - len([]rune(text)); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          text,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func (m *Model) viewDialog() string {
	d := m.dialog
	titleStyle := styles.Section
	if d.err {
		titleStyle = styles.Error
	}
	body := titleStyle.Render(d.title) + "\n\n" + d.body + "\n\n" + styles.Footer.Render("enter/esc close")
	box := styles.Dialog
	if m.width > 4 {
		box = ptrStyle(box.Width(m.width - 4))
	}
	out := box.Render(body)
	if m.errMsg != "" && !d.err {
		out += "\n" + styles.Error.Render("Error: "+m.errMsg)
	}
	return out
}

func ptrStyle(s lipgloss.Style) *lipgloss.Style { return &s }

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		if line.raw {
			if lipgloss.Width(line.text) > width {
				line.text = truncate.StringWithTail(line.text, uint(width-1), "…")
			}
		} else {
			line.text = truncateText(line.text, width)
		}
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil && text != "" {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
