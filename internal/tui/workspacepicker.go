// Package tui provides the interactive terminal surfaces for auto.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lsimons/auto/internal/workspace"
)

// WorkspacePickerAction represents the picker outcome.
type WorkspacePickerAction int

const (
	WorkspacePickerCancel WorkspacePickerAction = iota
	WorkspacePickerSelect
)

// WorkspacePicker is a searchable org/repo picker.
type WorkspacePicker struct {
	input      textinput.Model
	workspaces []workspace.Workspace
	filtered   []int // indices into workspaces
	cursor     int
	action     WorkspacePickerAction
	selected   *workspace.Workspace
	height     int

	styleTitle    lipgloss.Style
	styleItem     lipgloss.Style
	styleSelected lipgloss.Style
	styleDim      lipgloss.Style
	styleHelp     lipgloss.Style
}

// NewWorkspacePicker creates a picker over the given workspaces.
func NewWorkspacePicker(workspaces []workspace.Workspace) *WorkspacePicker {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type to search workspaces..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 50

	filtered := make([]int, len(workspaces))
	for i := range workspaces {
		filtered[i] = i
	}

	return &WorkspacePicker{
		input:      ti,
		workspaces: workspaces,
		filtered:   filtered,
		height:     20,

		styleTitle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		styleItem:     lipgloss.NewStyle().PaddingLeft(2),
		styleSelected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		styleDim:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		styleHelp:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")).MarginTop(1),
	}
}

// Init initializes the picker.
func (m *WorkspacePicker) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m *WorkspacePicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.action = WorkspacePickerCancel
			return m, tea.Quit

		case "enter":
			if len(m.filtered) > 0 && m.cursor < len(m.filtered) {
				m.selected = &m.workspaces[m.filtered[m.cursor]]
				m.action = WorkspacePickerSelect
			} else {
				m.action = WorkspacePickerCancel
			}
			return m, tea.Quit

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.updateFiltered()
	return m, cmd
}

// updateFiltered narrows the list to workspaces whose org/repo contains the
// query, case-insensitively.
func (m *WorkspacePicker) updateFiltered() {
	query := strings.ToLower(m.input.Value())
	if query == "" {
		m.filtered = make([]int, len(m.workspaces))
		for i := range m.workspaces {
			m.filtered[i] = i
		}
	} else {
		m.filtered = m.filtered[:0]
		for i, ws := range m.workspaces {
			label := strings.ToLower(ws.Org + "/" + ws.Repo)
			if strings.Contains(label, query) {
				m.filtered = append(m.filtered, i)
			}
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = 0
	}
}

// View renders the picker.
func (m *WorkspacePicker) View() string {
	var sb strings.Builder

	sb.WriteString(m.styleTitle.Render("Pick a workspace"))
	sb.WriteString("\n\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")

	// Reserve lines for title, input, gaps and help.
	listHeight := m.height - 7
	if listHeight < 3 {
		listHeight = 3
	}

	if len(m.filtered) == 0 {
		sb.WriteString(m.styleDim.Render("  No matching workspaces"))
		sb.WriteString("\n")
	} else {
		start := 0
		if m.cursor >= listHeight {
			start = m.cursor - listHeight + 1
		}
		end := start + listHeight
		if end > len(m.filtered) {
			end = len(m.filtered)
		}

		for i := start; i < end; i++ {
			ws := m.workspaces[m.filtered[i]]
			label := ws.Org + "/" + ws.Repo
			if i == m.cursor {
				sb.WriteString(m.styleSelected.Render("> " + label))
			} else {
				sb.WriteString(m.styleItem.Render(label))
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString(m.styleHelp.Render("↑/↓: Navigate  Enter: Select  Esc: Cancel"))
	return sb.String()
}

// Result returns the outcome and selected workspace, if any.
func (m *WorkspacePicker) Result() (WorkspacePickerAction, *workspace.Workspace) {
	return m.action, m.selected
}

// RunWorkspacePicker runs the picker and returns the chosen workspace, or
// nil when cancelled.
func RunWorkspacePicker(workspaces []workspace.Workspace) (*workspace.Workspace, error) {
	if len(workspaces) == 0 {
		return nil, nil
	}

	m := NewWorkspacePicker(workspaces)
	p := tea.NewProgram(m)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	picker := finalModel.(*WorkspacePicker)
	action, selected := picker.Result()
	if action != WorkspacePickerSelect {
		return nil, nil
	}
	return selected, nil
}
