package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(key tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: key}
}

func runeMsg(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func scenes() []pickItem {
	return []pickItem{
		{Label: "Boot", Value: "g-boot"},
		{Label: "Menu", Value: "g-menu", Locked: true},
		{Label: "Arena", Value: "g-arena"},
	}
}

func press(p picker, msgs ...tea.Msg) picker {
	for _, msg := range msgs {
		model, _ := p.Update(msg)
		p = model.(picker)
	}
	return p
}

func TestPickerCancel(t *testing.T) {
	for name, msg := range map[string]tea.Msg{
		"esc":    keyMsg(tea.KeyEsc),
		"ctrl+c": keyMsg(tea.KeyCtrlC),
		"q":      runeMsg("q"),
	} {
		t.Run(name, func(t *testing.T) {
			p := press(newPicker("test", scenes()), keyMsg(tea.KeyEnter), msg)
			assert.Nil(t, p.Selected())
		})
	}
}

func TestPickerIgnoresKeysAfterCancel(t *testing.T) {
	p := press(newPicker("test", scenes()), keyMsg(tea.KeyEsc), keyMsg(tea.KeyEnter), runeMsg("a"))
	assert.Nil(t, p.Selected())
}

func TestPickerConfirmEmpty(t *testing.T) {
	p := newPicker("test", scenes())
	p.cursor = len(p.items)
	model, cmd := p.Update(keyMsg(tea.KeyEnter))
	require.NotNil(t, cmd)

	result := model.(picker).Selected()
	require.NotNil(t, result)
	assert.Empty(t, result)
}

func TestPickerConfirmWithSelections(t *testing.T) {
	p := press(newPicker("test", scenes()),
		keyMsg(tea.KeyEnter),
		keyMsg(tea.KeyDown),
		keyMsg(tea.KeyDown),
		keyMsg(tea.KeySpace),
		keyMsg(tea.KeyDown),
		keyMsg(tea.KeyEnter),
	)
	assert.Equal(t, []string{"g-boot", "g-arena"}, p.Selected())
}

func TestPickerLockedItemsDoNotToggle(t *testing.T) {
	p := press(newPicker("test", scenes()), keyMsg(tea.KeyDown), keyMsg(tea.KeyEnter))
	assert.False(t, p.selected[1])
	assert.Empty(t, p.Selected())
}

func TestPickerSelectAllSkipsLocked(t *testing.T) {
	p := press(newPicker("test", scenes()), runeMsg("a"))
	assert.Equal(t, []string{"g-boot", "g-arena"}, p.Selected())

	p = press(p, runeMsg("n"))
	assert.Empty(t, p.Selected())
}

func TestPickerCursorBounds(t *testing.T) {
	p := press(newPicker("test", scenes()), keyMsg(tea.KeyUp))
	assert.Equal(t, 0, p.cursor)

	for range 10 {
		p = press(p, runeMsg("j"))
	}
	assert.Equal(t, len(p.items), p.cursor)

	p = press(p, runeMsg("k"))
	assert.Equal(t, len(p.items)-1, p.cursor)
}

func TestPickerView(t *testing.T) {
	p := press(newPicker("Add scenes", scenes()), keyMsg(tea.KeyEnter))
	view := p.View()
	assert.Contains(t, view, "Add scenes")
	assert.Contains(t, view, "> [x] Boot")
	assert.Contains(t, view, "already listed")
	assert.Contains(t, view, "[ Confirm ]")
}
