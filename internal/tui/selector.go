package tui

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/handiism/discpack/internal/settings"
)

// selector edits one setting.
type selector interface {
	// View renders the current value.
	View(focused, locked bool) string
	// Value returns the raw input, normalized later by the form.
	Value() any
	// Force replaces the shown value.
	Force(v any)
	// Update handles a key while focused and reports whether the value
	// changed in a way that should be committed right away.
	Update(msg tea.KeyMsg) (commit bool, cmd tea.Cmd)
	Focus() tea.Cmd
	Blur()
}

// newSelector builds the selector for a definition's kind.
func newSelector(def settings.Definition) selector {
	switch def.Kind {
	case settings.Check:
		return &checkSelector{}
	case settings.Dropdown:
		return &dropdownSelector{options: def.Options}
	case settings.Number:
		return newInputSelector("0", 6, func(r rune) bool { return r >= '0' && r <= '9' })
	case settings.Text:
		return newInputSelector(fmt.Sprint(def.Default), 40, nil)
	default:
		return newInputSelector("path/to/pack.png", 200, nil)
	}
}

// inputSelector backs the Icon, Number and Text kinds. Its value is
// committed when focus leaves it.
type inputSelector struct {
	input textinput.Model
	allow func(rune) bool
}

func newInputSelector(placeholder string, limit int, allow func(rune) bool) *inputSelector {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	ti.Prompt = ""
	return &inputSelector{input: ti, allow: allow}
}

func (s *inputSelector) View(focused, locked bool) string {
	if locked {
		return dimStyle.Render(s.input.Value() + " (locked)")
	}
	return s.input.View()
}

func (s *inputSelector) Value() any {
	return s.input.Value()
}

func (s *inputSelector) Force(v any) {
	if v == nil {
		s.input.SetValue("")
		return
	}
	s.input.SetValue(fmt.Sprint(v))
}

func (s *inputSelector) Update(msg tea.KeyMsg) (bool, tea.Cmd) {
	if s.allow != nil && msg.Type == tea.KeyRunes {
		for _, r := range msg.Runes {
			if !s.allow(r) {
				return false, nil
			}
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return false, cmd
}

func (s *inputSelector) Focus() tea.Cmd { return s.input.Focus() }
func (s *inputSelector) Blur()          { s.input.Blur() }

// checkSelector toggles with space.
type checkSelector struct {
	checked bool
}

func (s *checkSelector) View(focused, locked bool) string {
	box := "[ ]"
	if s.checked {
		box = "[×]"
	}
	if locked {
		return dimStyle.Render(box + " (locked)")
	}
	return box
}

func (s *checkSelector) Value() any { return s.checked }

func (s *checkSelector) Force(v any) {
	switch b := v.(type) {
	case bool:
		s.checked = b
	case string:
		s.checked, _ = strconv.ParseBool(b)
	}
}

func (s *checkSelector) Update(msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.String() == " " || msg.String() == "x" {
		s.checked = !s.checked
		return true, nil
	}
	return false, nil
}

func (s *checkSelector) Focus() tea.Cmd { return nil }
func (s *checkSelector) Blur()          {}

// dropdownSelector cycles through options with left and right.
type dropdownSelector struct {
	options []settings.Option
	index   int
}

func (s *dropdownSelector) View(focused, locked bool) string {
	if len(s.options) == 0 {
		return dimStyle.Render("(none)")
	}
	label := s.options[s.index].Label
	if focused {
		return "‹ " + label + " ›"
	}
	return label
}

func (s *dropdownSelector) Value() any {
	if len(s.options) == 0 {
		return nil
	}
	return s.options[s.index].Value
}

func (s *dropdownSelector) Force(v any) {
	for i, opt := range s.options {
		if reflect.DeepEqual(opt.Value, v) || opt.Label == v {
			s.index = i
			return
		}
	}
}

func (s *dropdownSelector) Update(msg tea.KeyMsg) (bool, tea.Cmd) {
	if len(s.options) == 0 {
		return false, nil
	}
	switch msg.String() {
	case "left", "h":
		s.index = (s.index + len(s.options) - 1) % len(s.options)
		return true, nil
	case "right", "l", " ":
		s.index = (s.index + 1) % len(s.options)
		return true, nil
	}
	return false, nil
}

func (s *dropdownSelector) Focus() tea.Cmd { return nil }
func (s *dropdownSelector) Blur()          {}
