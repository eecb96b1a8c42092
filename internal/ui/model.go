package ui

import (
	"io"
	"reflect"
	"time"

	"github.com/atomicstack/bootsetup/internal/bootentry"
	"github.com/atomicstack/bootsetup/internal/setup"
	"github.com/atomicstack/bootsetup/internal/theme"
	"github.com/atomicstack/bootsetup/internal/ui/command"
	uistate "github.com/atomicstack/bootsetup/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type level = uistate.Level

// Mode selects which part of the form receives key presses.
type Mode int

const (
	ModeForm Mode = iota
	ModePicker
	ModeLabelEdit
	ModeDialog
)

// Field is a focusable part of the form.
type Field int

const (
	FieldBackend Field = iota
	FieldTarget
	FieldEntries
	FieldInstall
)

func (f Field) String() string {
	switch f {
	case FieldBackend:
		return "backend"
	case FieldTarget:
		return "target"
	case FieldEntries:
		return "entries"
	case FieldInstall:
		return "install"
	}
	return "unknown"
}

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	// Bus runs commits; nil leaves the form unable to install.
	Bus *command.Bus
	// Closer releases writer resources on quit.
	Closer io.Closer
	Width  int
	Height int
	// ShowFooter renders the key binding help below the form.
	ShowFooter bool
	// CursorBlink makes text input carets blink.
	CursorBlink bool
	// DryRun marks the session as test mode in the title.
	DryRun  bool
	Version string
}

type dialog struct {
	title string
	body  string
	err   bool
}

// Model implements the Bubble Tea model for the bootloader form.
type Model struct {
	cfg *setup.Configuration

	mode  Mode
	focus Field
	row   int

	picker      *level
	pickerInput textinput.Model

	labelInput   textinput.Model
	editing      string
	editOriginal string
	editBefore   *setup.Snapshot

	lastEdit *setup.Snapshot
	dialog   *dialog

	loading         bool
	quitAfterCommit bool
	pendingID       string
	pendingLabel    string
	errMsg          string
	infoMsg         string
	infoExpire      time.Time
	width           int
	height          int
	fixedWidth      bool
	fixedHeight     bool
	showFooter      bool
	dryRun          bool
	version         string

	keys keyMap
	help help.Model

	handlers map[reflect.Type]msgHandler

	bus       *command.Bus
	closer    io.Closer
	committed *setup.Snapshot
	quitting  bool
}

// NewModel builds the form over cfg.
func NewModel(cfg *setup.Configuration, opts Options) *Model {
	m := &Model{
		cfg:        cfg,
		mode:       ModeForm,
		focus:      FieldBackend,
		keys:       newKeyMap(),
		help:       help.New(),
		bus:        opts.Bus,
		closer:     opts.Closer,
		showFooter: opts.ShowFooter,
		dryRun:     opts.DryRun,
		version:    opts.Version,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
		m.help.Width = opts.Width
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	mode := cursor.CursorStatic
	if opts.CursorBlink {
		mode = cursor.CursorBlink
	}
	m.labelInput = newInput("", bootentry.MaxLabelLength, mode)
	m.pickerInput = newInput("» ", 0, mode)
	m.pickerInput.Placeholder = "type to search"
	m.registerHandlers()
	return m
}

func newInput(prompt string, limit int, mode cursor.Mode) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.CharLimit = limit
	if styles.FilterPrompt != nil {
		in.PromptStyle = *styles.FilterPrompt
	}
	if styles.FilterPlaceholder != nil {
		in.PlaceholderStyle = *styles.FilterPlaceholder
	}
	in.Cursor.SetMode(mode)
	return in
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if cmd := m.updateInputCursor(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handled, cmd := m.handleActiveForm(msg); handled {
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

// updateInputCursor forwards non-key messages, such as cursor blinks, to the
// focused text input.
func (m *Model) updateInputCursor(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.KeyMsg); ok {
		return nil
	}
	var cmd tea.Cmd
	switch m.mode {
	case ModeLabelEdit:
		m.labelInput, cmd = m.labelInput.Update(msg)
	case ModePicker:
		m.pickerInput, cmd = m.pickerInput.Update(msg)
	}
	return cmd
}

func (m *Model) handleActiveForm(msg tea.Msg) (bool, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	switch m.mode {
	case ModeLabelEdit:
		return m.handleLabelForm(key)
	case ModePicker:
		return m.handlePicker(key)
	default:
		return false, nil
	}
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(command.Result{}):    m.handleCommitResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
		m.help.Width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}

// Configuration exposes the configuration being edited.
func (m *Model) Configuration() *setup.Configuration { return m.cfg }

// Mode reports which part of the form has input.
func (m *Model) Mode() Mode { return m.mode }

// Focus reports the focused field.
func (m *Model) Focus() Field { return m.focus }

// Committed returns the snapshot that was installed, if any.
func (m *Model) Committed() (setup.Snapshot, bool) {
	if m.committed == nil {
		return setup.Snapshot{}, false
	}
	return *m.committed, true
}

// Quitting reports whether the session has ended.
func (m *Model) Quitting() bool { return m.quitting }
