package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lsimons/auto/internal/workspace"
)

func sampleWorkspaces() []workspace.Workspace {
	return []workspace.Workspace{
		{Org: "lsimons", Repo: "auto", Path: "/git/lsimons/auto"},
		{Org: "lsimons", Repo: "dotfiles", Path: "/git/lsimons/dotfiles"},
		{Org: "work", Repo: "autopilot", Path: "/git/work/autopilot"},
	}
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	panic("unknown key " + s)
}

func TestPickerFiltersOnTyping(t *testing.T) {
	m := NewWorkspacePicker(sampleWorkspaces())

	var model tea.Model = m
	for _, r := range "auto" {
		model, _ = model.(*WorkspacePicker).Update(key(string(r)))
	}

	picker := model.(*WorkspacePicker)
	if len(picker.filtered) != 2 {
		t.Fatalf("filtered = %v, want auto and autopilot", picker.filtered)
	}
	view := picker.View()
	if !strings.Contains(view, "lsimons/auto") || !strings.Contains(view, "work/autopilot") {
		t.Errorf("view missing matches:\n%s", view)
	}
	if strings.Contains(view, "dotfiles") {
		t.Errorf("view should not contain dotfiles:\n%s", view)
	}
}

func TestPickerSelectsWithEnter(t *testing.T) {
	m := NewWorkspacePicker(sampleWorkspaces())

	var model tea.Model = m
	model, _ = model.(*WorkspacePicker).Update(key("down"))
	model, cmd := model.(*WorkspacePicker).Update(key("enter"))

	if cmd == nil {
		t.Fatal("enter should quit")
	}
	action, selected := model.(*WorkspacePicker).Result()
	if action != WorkspacePickerSelect {
		t.Fatalf("action = %v", action)
	}
	if selected == nil || selected.Repo != "dotfiles" {
		t.Errorf("selected = %+v, want dotfiles", selected)
	}
}

func TestPickerEscCancels(t *testing.T) {
	m := NewWorkspacePicker(sampleWorkspaces())
	model, cmd := m.Update(key("esc"))
	if cmd == nil {
		t.Fatal("esc should quit")
	}
	action, selected := model.(*WorkspacePicker).Result()
	if action != WorkspacePickerCancel || selected != nil {
		t.Errorf("action = %v, selected = %+v", action, selected)
	}
}

func TestPickerEnterWithNoMatchesCancels(t *testing.T) {
	m := NewWorkspacePicker(sampleWorkspaces())

	var model tea.Model = m
	for _, r := range "zzz" {
		model, _ = model.(*WorkspacePicker).Update(key(string(r)))
	}
	model, _ = model.(*WorkspacePicker).Update(key("enter"))

	action, _ := model.(*WorkspacePicker).Result()
	if action != WorkspacePickerCancel {
		t.Errorf("action = %v, want cancel", action)
	}
}

func TestPickerCursorStaysInBounds(t *testing.T) {
	m := NewWorkspacePicker(sampleWorkspaces())

	var model tea.Model = m
	for i := 0; i < 10; i++ {
		model, _ = model.(*WorkspacePicker).Update(key("down"))
	}
	picker := model.(*WorkspacePicker)
	if picker.cursor != len(picker.filtered)-1 {
		t.Errorf("cursor = %d", picker.cursor)
	}

	for i := 0; i < 10; i++ {
		model, _ = model.(*WorkspacePicker).Update(key("up"))
	}
	if model.(*WorkspacePicker).cursor != 0 {
		t.Errorf("cursor = %d after ups", model.(*WorkspacePicker).cursor)
	}
}
