// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Choice is one selectable entry of the picker.
type Choice struct {
	Name   string
	Detail string
}

// Pick lets the user choose one entry. ok is false when the user quit
// without choosing.
func Pick(title string, choices []Choice, opts ...tea.ProgramOption) (name string, ok bool, err error) {
	if len(choices) == 0 {
		return "", false, nil
	}

	p := tea.NewProgram(newModel(title, choices), opts...)
	m, err := p.Run()
	if err != nil {
		return "", false, fmt.Errorf("failed to run picker: %w", err)
	}

	final := m.(model)
	if final.chosen < 0 {
		return "", false, nil
	}
	return final.choices[final.chosen].Name, true, nil
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Choose, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Choose: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "diff")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q/esc", "quit")),
}

type model struct {
	title   string
	choices []Choice
	cursor  int
	chosen  int
	help    help.Model
}

func newModel(title string, choices []Choice) model {
	return model{title: title, choices: choices, chosen: -1, help: help.New()}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.chosen = -1
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Choose):
			m.chosen = m.cursor
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.title + "\n\n")
	for i, c := range m.choices {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		fmt.Fprintf(&b, "%s %s", cursor, c.Name)
		if c.Detail != "" {
			fmt.Fprintf(&b, "  %s", c.Detail)
		}
		b.WriteString("\n")
	}
	return b.String() + "\n" + m.help.View(keys) + "\n"
}
