package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type promptResult struct {
	Cmd    tea.Cmd
	Info   string
	Err    error
	Dialog *dialog
}

// withPrompt centralises the flow shared by the form shortcuts: reset status
// lines, run the action, then surface its info, error or dialog.
func (m *Model) withPrompt(action func() promptResult) tea.Cmd {
	m.forceClearInfo()
	m.errMsg = ""
	if action == nil {
		return nil
	}
	result := action()
	if result.Err != nil {
		m.setError(result.Err)
		return nil
	}
	if result.Info != "" {
		m.setInfo(result.Info)
	}
	if result.Dialog != nil {
		m.openDialog(result.Dialog.title, result.Dialog.body, result.Dialog.err)
	}
	return result.Cmd
}

func (m *Model) openDialog(title, body string, isErr bool) {
	m.dialog = &dialog{title: title, body: body, err: isErr}
	m.mode = ModeDialog
}

func (m *Model) closeDialog() {
	m.dialog = nil
	m.mode = ModeForm
}

func (m *Model) helpDialog() promptResult {
	var b strings.Builder
	b.WriteString("Choose LiLo to write the boot menu into a disk's master boot record,\n")
	b.WriteString("or Grub2 to install onto a partition and let grub-mkconfig build the menu.\n\n")
	for _, column := range m.keys.FullHelp() {
		for _, binding := range column {
			h := binding.Help()
			fmt.Fprintf(&b, "%-10s %s\n", h.Key, h.Desc)
		}
	}
	return promptResult{Dialog: &dialog{title: "Help", body: strings.TrimRight(b.String(), "\n")}}
}

func (m *Model) aboutDialog() promptResult {
	version := m.version
	if version == "" {
		version = "dev"
	}
	body := fmt.Sprintf("bootsetup %s\nInstalls LiLo or Grub2 for the operating systems found on this machine.", version)
	return promptResult{Dialog: &dialog{title: "About", body: body}}
}
