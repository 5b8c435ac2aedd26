// Package tui provides terminal user interface components for loadout.
//
// This package uses the Bubble Tea framework for the interactive
// snapshot picker, plus plain prompt helpers for confirmations.
//
// # Snapshot Picker
//
// The picker lists backup snapshots and lets the user pick one to
// inspect:
//
//	result, err := tui.RunPicker(snapshots)
//	switch result.Action {
//	case tui.ActionShow:
//	    // Print result.Snapshot's contents
//	case tui.ActionQuit:
//	    // Exit
//	}
//
// When stdout is not a terminal, callers use SimpleSnapshotList for a
// plain numbered listing instead; IsInteractive reports which applies.
//
// # Confirmations
//
// Confirm is a one-line [y/N] prompt reading from any io.Reader, used
// for the uninstall gate and the settings overwrite question.
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
