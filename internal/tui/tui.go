// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

// Package tui provides the interactive menu of Leasemaster. The menu lists
// the actions the logged-in principal may use; choosing one prompts for its
// fields line by line and shows the result.
package tui // import "github.com/toeirei/leasemaster/internal/tui"

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/leasemaster/internal/core"
	"github.com/toeirei/leasemaster/internal/i18n"
	"github.com/toeirei/leasemaster/internal/logging"
	"github.com/toeirei/leasemaster/internal/ui"
)

// viewState is the part of the UI that is currently active.
type viewState int

const (
	menuView viewState = iota
	formView
	runningView
	resultView
)

// resultMsg carries the outcome of an action.
type resultMsg struct {
	output string
	err    error
}

// mainModel is the top-level model. It is a small state machine: menu,
// form, running, result, back to menu.
type mainModel struct {
	ctx     context.Context
	leasing *core.Leasing

	state   viewState
	actions []action
	cursor  int

	current *action
	step    int
	answers values
	input   textinput.Model
	hint    string

	output string
	failed bool

	keys  keyMap
	help  help.Model
	width int
}

func newModel(ctx context.Context, l *core.Leasing) mainModel {
	return mainModel{
		ctx:     ctx,
		leasing: l,
		state:   menuView,
		actions: actionsFor(l.Gate()),
		keys:    defaultKeyMap,
		help:    help.New(),
	}
}

// Init implements tea.Model.
func (m mainModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case resultMsg:
		m.state = resultView
		m.failed = msg.err != nil
		if msg.err != nil {
			logging.Debugf("tui: %s failed: %v", m.current.id, msg.err)
			m.output = ui.Describe(msg.err)
		} else {
			m.output = msg.output
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.state {
		case menuView:
			return m.updateMenu(msg)
		case formView:
			return m.updateForm(msg)
		case resultView:
			m.state = menuView
			m.current = nil
			m.output = ""
			return m, nil
		}
	}
	if m.state == formView {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m mainModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.actions)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		a := m.actions[m.cursor]
		if a.quit {
			return m, tea.Quit
		}
		m.current = &a
		m.answers = values{}
		m.step = 0
		m.hint = ""
		if len(a.fields) == 0 {
			return m.start()
		}
		m.state = formView
		m.input = newInput(a.fields[0])
		return m, textinput.Blink
	}
	return m, nil
}

func (m mainModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.state = menuView
		m.current = nil
		m.answers = nil
		return m, nil
	case key.Matches(msg, m.keys.Select):
		f := m.current.fields[m.step]
		raw := m.input.Value()
		if !f.secret {
			raw = strings.TrimSpace(raw)
		}
		if raw == "" && !f.optional {
			m.hint = i18n.T("form.required")
			return m, nil
		}
		m.answers[f.key] = raw
		m.hint = ""
		m.step++
		if m.step >= len(m.current.fields) {
			return m.start()
		}
		m.input = newInput(m.current.fields[m.step])
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// start runs the current action with the collected answers.
func (m mainModel) start() (tea.Model, tea.Cmd) {
	m.state = runningView
	a, answers, ctx, l := *m.current, m.answers, m.ctx, m.leasing
	m.answers = nil
	return m, func() tea.Msg {
		out, err := a.run(ctx, l, answers)
		for k := range answers {
			delete(answers, k)
		}
		return resultMsg{output: out, err: err}
	}
}

func newInput(f field) textinput.Model {
	in := textinput.New()
	in.Prompt = "> "
	in.CharLimit = 255
	if f.secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	in.Focus()
	return in
}

func fieldLabel(f field) string {
	label := i18n.T("field." + f.key)
	if f.optional {
		label += " " + i18n.T("form.keep_hint")
	}
	return label
}

// View implements tea.Model.
func (m mainModel) View() string {
	var b strings.Builder
	header := mainTitleStyle.Render(i18n.T("app.title"))
	if p := m.leasing.Principal(); p != nil {
		header = AlignFooter(header, statusMessageStyle.Render(p.String()), m.width-4)
	}
	b.WriteString(header + "\n\n")

	switch m.state {
	case menuView:
		b.WriteString(titleStyle.Render(i18n.T("menu.title")) + "\n")
		for i, a := range m.actions {
			n := i + 1
			if a.quit {
				n = 0
			}
			line := fmt.Sprintf("%d. %s", n, a.title())
			if i == m.cursor {
				b.WriteString(selectedItemStyle.Render("> "+line) + "\n")
			} else {
				b.WriteString(itemStyle.Render("  "+line) + "\n")
			}
		}
	case formView:
		b.WriteString(titleStyle.Render(m.current.title()) + "\n")
		for _, f := range m.current.fields[:m.step] {
			shown := m.answers[f.key]
			if f.secret {
				shown = strings.Repeat("•", len([]rune(shown)))
			}
			b.WriteString(helpStyle.Render(fieldLabel(f)+": "+shown) + "\n")
		}
		b.WriteString(fieldLabel(m.current.fields[m.step]) + ":\n")
		b.WriteString(m.input.View() + "\n")
		if m.hint != "" {
			b.WriteString(errorStyle.Render(m.hint) + "\n")
		}
	case runningView:
		b.WriteString(helpStyle.Render(i18n.T("result.working")) + "\n")
	case resultView:
		b.WriteString(titleStyle.Render(m.current.title()) + "\n")
		if m.failed {
			b.WriteString(errorStyle.Render(m.output) + "\n")
		} else {
			b.WriteString(lipgloss.NewStyle().Render(m.output) + "\n")
			b.WriteString(successStyle.Render(i18n.T("result.done")) + "\n")
		}
		b.WriteString("\n" + helpStyle.Render(i18n.T("result.continue")) + "\n")
	}

	if m.state == menuView || m.state == formView {
		b.WriteString("\n" + m.help.View(m.keys))
	}
	return docStyle.Render(b.String())
}

// Run starts the interactive menu for the logged-in principal and blocks
// until the operator quits.
func Run(ctx context.Context, l *core.Leasing, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(newModel(ctx, l), tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	_, err := p.Run()
	return err
}
