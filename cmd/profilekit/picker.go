package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// pickItem is one row of the picker. Locked rows are shown checked and
// cannot be toggled; they are not part of the result.
type pickItem struct {
	Label  string
	Value  string
	Locked bool
}

// picker is a multi-select TUI where Enter toggles items and confirms at the bottom.
type picker struct {
	title    string
	items    []pickItem
	selected map[int]bool
	cursor   int
	aborted  bool
}

func newPicker(title string, items []pickItem) picker {
	return picker{
		title:    title,
		items:    items,
		selected: make(map[int]bool),
	}
}

func (p picker) Init() tea.Cmd { return nil }

func (p picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || p.aborted {
		return p, nil
	}
	switch key.String() {
	case "ctrl+c", "q", "esc":
		p.aborted = true
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.items) {
			p.cursor++
		}
	case "enter", " ":
		if p.cursor == len(p.items) {
			return p, tea.Quit
		}
		if !p.items[p.cursor].Locked {
			p.selected[p.cursor] = !p.selected[p.cursor]
		}
	case "a":
		for i, it := range p.items {
			p.selected[i] = !it.Locked
		}
	case "n":
		clear(p.selected)
	}
	return p, nil
}

func (p picker) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, "  %s\n", titleStyle.Render(p.title))
	b.WriteString(dimStyle.Render("  a: select all · n: select none · q: cancel") + "\n\n")

	for i, it := range p.items {
		cursor := "  "
		if p.cursor == i {
			cursor = "> "
		}
		check := "[ ]"
		label := it.Label
		switch {
		case it.Locked:
			check = "[x]"
			label = dimStyle.Render(label + " (already listed)")
		case p.selected[i]:
			check = "[x]"
		}
		fmt.Fprintf(&b, "  %s%s %s\n", cursor, check, label)
	}

	b.WriteString("\n")
	if p.cursor == len(p.items) {
		b.WriteString("  > [ Confirm ]\n")
	} else {
		b.WriteString("    [ Confirm ]\n")
	}
	return b.String()
}

// Selected returns the values of the toggled items, or nil if cancelled.
func (p picker) Selected() []string {
	if p.aborted {
		return nil
	}
	result := []string{}
	for i, it := range p.items {
		if p.selected[i] && !it.Locked {
			result = append(result, it.Value)
		}
	}
	return result
}

// runPicker runs the picker and returns the chosen values. Cancelling
// returns huh.ErrUserAborted.
func runPicker(title string, items []pickItem) ([]string, error) {
	model, err := tea.NewProgram(newPicker(title, items)).Run()
	if err != nil {
		return nil, err
	}
	selected := model.(picker).Selected()
	if selected == nil {
		return nil, huh.ErrUserAborted
	}
	return selected, nil
}
