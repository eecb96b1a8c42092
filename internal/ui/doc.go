// Package ui contains the Bubble Tea program that gathers the bootloader
// configuration. The Model type focuses on message orchestration, while
// dedicated helpers own key routing, the label editor, the target picker and
// rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Update forwards key presses to the active form (label editor or target
//     picker). When no form is active, the message is routed through a typed
//     handler registry so each tea.Msg is handled by a focused function.
//   - Key handlers translate bindings into the controller operations
//     (OnBackendToggled, OnTargetChosen, OnLabelEdited, OnReorderRequested,
//     OnCommitRequested, OnQuitRequested), which are the only code that
//     mutates the setup.Configuration.
//
// State ownership:
//   - The configuration, with both bootloader variants and the boot entries,
//     lives in internal/setup and is owned by the Model.
//   - Picker state lives in internal/ui/state.Level, which tracks items,
//     filtering, the cursor and viewport calculations.
//   - Commits run through the internal/ui/command bus on a snapshot, so the
//     writer never sees the live configuration.
package ui
