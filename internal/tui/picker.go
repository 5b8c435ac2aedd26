// Package tui provides terminal user interface components for loadout
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/loadstone/loadout/internal/lifecycle"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionShow
	ActionQuit
)

// PickerResult holds the result of the snapshot picker
type PickerResult struct {
	Action   Action
	Snapshot lifecycle.Snapshot
}

// snapshotItem implements list.Item for snapshot display
type snapshotItem struct {
	snapshot lifecycle.Snapshot
	now      time.Time
}

func (i snapshotItem) Title() string {
	return i.snapshot.Name
}

func (i snapshotItem) Description() string {
	return fmt.Sprintf("%s | %d items | %s",
		i.snapshot.Age(i.now),
		len(i.snapshot.Items),
		truncateList(i.snapshot.Describe(), 50),
	)
}

func (i snapshotItem) FilterValue() string {
	return i.snapshot.Name
}

func truncateList(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// Model is the bubbletea model for the snapshot picker
type Model struct {
	list     list.Model
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a new snapshot picker
func NewPicker(snapshots []lifecycle.Snapshot) Model {
	now := time.Now()
	items := make([]list.Item, len(snapshots))
	for i, snap := range snapshots {
		items[i] = snapshotItem{snapshot: snap, now: now}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = "Loadout - Select Snapshot"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{list: l}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(snapshotItem); ok {
				m.result = PickerResult{
					Action:   ActionShow,
					Snapshot: item.snapshot,
				}
				m.quitting = true
				return m, tea.Quit
			}

		case "q", "esc":
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Show contents  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive snapshot picker
func RunPicker(snapshots []lifecycle.Snapshot) (PickerResult, error) {
	if len(snapshots) == 0 {
		return PickerResult{Action: ActionQuit}, nil
	}

	m := NewPicker(snapshots)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}

// SimpleSnapshotList is a non-interactive listing for non-TTY output
func SimpleSnapshotList(snapshots []lifecycle.Snapshot) string {
	var sb strings.Builder

	sb.WriteString("Loadout - Snapshots\n")
	sb.WriteString(strings.Repeat("─", 60) + "\n\n")

	if len(snapshots) == 0 {
		sb.WriteString("No snapshots found.\n")
		sb.WriteString("Snapshots are created before install, update, and uninstall.\n")
		return sb.String()
	}

	now := time.Now()
	for i, snap := range snapshots {
		sb.WriteString(fmt.Sprintf("%d. %s (%s)\n",
			i+1, snap.Name, snap.Age(now)))
		sb.WriteString(fmt.Sprintf("   Items: %s\n\n", truncateList(snap.Describe(), 60)))
	}

	return sb.String()
}
