package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Title        *lipgloss.Style
	Section      *lipgloss.Style
	FieldLabel   *lipgloss.Style
	Field        *lipgloss.Style
	FocusedField *lipgloss.Style
	Radio        *lipgloss.Style
	RadioActive  *lipgloss.Style

	TableHeader *lipgloss.Style
	Row         *lipgloss.Style
	SelectedRow *lipgloss.Style
	Editing     *lipgloss.Style

	Button        *lipgloss.Style
	FocusedButton *lipgloss.Style

	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	SelectedItem          *lipgloss.Style
	FilterPrompt          *lipgloss.Style
	FilterPlaceholder     *lipgloss.Style

	Dialog  *lipgloss.Style
	Loading *lipgloss.Style
	Error   *lipgloss.Style
	Info    *lipgloss.Style
	Footer  *lipgloss.Style
}

var defaultStyles = Styles{
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("24")).Bold(true).Padding(0, 1),
	),
	Section: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	FieldLabel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Field: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	FocusedField: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Radio: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	RadioActive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	TableHeader: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Underline(true),
	),
	Row: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedRow: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Editing: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
	),
	Button: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Padding(0, 1),
	),
	FocusedButton: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("34")).Bold(true).Padding(0, 1),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Dialog: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
	),
	Loading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
