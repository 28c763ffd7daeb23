package main

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/teekgo/teek/bridge"
	"github.com/teekgo/teek/codec"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// visibleEntries bounds how much scrollback the console renders.
const visibleEntries = 20

type consoleEntry struct {
	input  string
	result string
	err    error
}

type consoleModel struct {
	ctx     context.Context
	app     *bridge.App
	input   textinput.Model
	entries []consoleEntry
	busy    bool
}

type evalResultMsg struct {
	input  string
	result string
	err    error
}

func newConsoleModel(ctx context.Context, app *bridge.App) *consoleModel {
	ti := textinput.New()
	ti.Prompt = "% "
	ti.Placeholder = "Tcl command"
	ti.Width = 72
	ti.Focus()

	return &consoleModel{
		ctx:   ctx,
		app:   app,
		input: ti,
	}
}

func (m *consoleModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "ctrl+l":
			m.entries = nil
			return m, nil

		case "enter":
			if m.busy {
				return m, nil
			}
			code := strings.TrimSpace(m.input.Value())
			if code == "" {
				return m, nil
			}
			if code == "exit" {
				return m, tea.Quit
			}
			m.input.Reset()
			m.busy = true
			return m, m.eval(code)
		}

	case evalResultMsg:
		m.busy = false
		m.entries = append(m.entries, consoleEntry{
			input:  msg.input,
			result: msg.result,
			err:    msg.err,
		})
		if len(m.entries) > visibleEntries {
			m.entries = m.entries[len(m.entries)-visibleEntries:]
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// eval queues the command to the loop goroutine and reports back as a
// message, keeping Update non-blocking.
func (m *consoleModel) eval(code string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.app.Eval(m.ctx, codec.Opaque(), code)
		if err != nil {
			return evalResultMsg{input: code, err: err}
		}
		s, _ := result.(string)
		return evalResultMsg{input: code, result: s}
	}
}

func (m *consoleModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Teek Console"))
	b.WriteString("\n\n")

	for _, e := range m.entries {
		b.WriteString(promptStyle.Render("% "))
		b.WriteString(e.input)
		b.WriteString("\n")
		if e.err != nil {
			b.WriteString(errorStyle.Render(e.err.Error()))
			b.WriteString("\n")
		} else if e.result != "" {
			b.WriteString(resultStyle.Render(e.result))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.busy {
		b.WriteString(helpStyle.Render("evaluating..."))
	} else {
		b.WriteString(m.input.View())
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter eval • ctrl+l clear • esc quit"))

	return b.String()
}

// runInteractive drives the console UI on its own goroutine while the
// calling goroutine keeps the Tk event loop alive for queued
// evaluations.
func runInteractive(ctx context.Context, app *bridge.App) error {
	if err := app.EnableThreads(ctx); err != nil {
		_ = app.Quit(ctx)
		return err
	}

	p := tea.NewProgram(newConsoleModel(ctx, app), tea.WithAltScreen())
	done := make(chan error, 1)
	go func() {
		_, err := p.Run()
		_ = app.Quit(ctx)
		done <- err
	}()

	runErr := app.Run(ctx)
	if err := <-done; err != nil {
		return err
	}
	return runErr
}
