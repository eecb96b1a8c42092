package ui

import tea "github.com/charmbracelet/bubbletea"

// Harness drives the UI model programmatically for integration tests.
type Harness struct {
	model *Model
	quit  bool
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

// Keys sends each key name as a key press: "enter", "tab", "ctrl+z" and
// friends map to their key types, anything else is typed as runes.
func (h *Harness) Keys(names ...string) {
	for _, name := range names {
		h.Send(keyMsg(name))
	}
}

// Type sends text one rune at a time.
func (h *Harness) Type(text string) {
	for _, r := range text {
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil:
		return
	case tea.QuitMsg:
		h.quit = true
		return
	case tea.BatchMsg:
		for _, c := range msg {
			h.processCmd(c)
		}
		return
	}
	mdl, next := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(next)
}

// Quit reports whether the model asked the program to exit.
func (h *Harness) Quit() bool {
	return h.quit
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}

var namedKeys = map[string]tea.KeyType{
	"enter":      tea.KeyEnter,
	"tab":        tea.KeyTab,
	"shift+tab":  tea.KeyShiftTab,
	"esc":        tea.KeyEsc,
	"up":         tea.KeyUp,
	"down":       tea.KeyDown,
	"left":       tea.KeyLeft,
	"right":      tea.KeyRight,
	"shift+up":   tea.KeyShiftUp,
	"shift+down": tea.KeyShiftDown,
	"pgup":       tea.KeyPgUp,
	"pgdown":     tea.KeyPgDown,
	"home":       tea.KeyHome,
	"end":        tea.KeyEnd,
	"backspace":  tea.KeyBackspace,
	"space":      tea.KeySpace,
	"ctrl+c":     tea.KeyCtrlC,
	"ctrl+z":     tea.KeyCtrlZ,
	"f10":        tea.KeyF10,
}

func keyMsg(name string) tea.KeyMsg {
	if t, ok := namedKeys[name]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}
