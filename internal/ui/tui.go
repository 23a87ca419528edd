// Package ui provides the terminal screen.
package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todos/internal/app"
	"todos/internal/logging"
	"todos/internal/models"
)

// Run starts the terminal screen and blocks until the user quits.
func Run(ctx context.Context, ctrl *app.Controller) error {
	if !logging.IsTerminal(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := NewModel(ctx, ctrl)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

// hydratedMsg reports that the stored tasks have been loaded.
type hydratedMsg struct{}

// Model is the Bubble Tea model for the task screen.
type Model struct {
	ctx    context.Context
	ctrl   *app.Controller
	input  textinput.Model
	focus  focusArea
	cursor int
}

// NewModel creates the screen model. The input field starts focused.
func NewModel(ctx context.Context, ctrl *app.Controller) *Model {
	ti := textinput.New()
	ti.Placeholder = "Add a new task..."
	ti.CharLimit = 256
	ti.Width = 40
	ti.Prompt = "> "
	ti.Focus()

	return &Model{
		ctx:   ctx,
		ctrl:  ctrl,
		input: ti,
		focus: focusInput,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, hydrate(m.ctx, m.ctrl))
}

func hydrate(ctx context.Context, ctrl *app.Controller) tea.Cmd {
	return func() tea.Msg {
		ctrl.Hydrate(ctx)
		return hydratedMsg{}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		state := m.ctrl.State()
		switch {
		case state.Alert != nil:
			return m.updateAlert(msg)
		case state.PendingRemoval != nil:
			return m.updateDeleteConfirm(msg)
		case m.focus == focusInput:
			return m.updateInput(msg)
		default:
			return m.updateList(msg)
		}
	case tea.WindowSizeMsg:
		if msg.Width > 10 {
			m.input.Width = msg.Width - 10
		}
	case hydratedMsg:
		m.clampCursor()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateAlert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", " ":
		m.ctrl.DismissAlert()
	}
	return m, nil
}

func (m *Model) updateDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.ctrl.ConfirmRemove()
		m.clampCursor()
	case "n", "N", "esc":
		m.ctrl.CancelRemove()
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.ctrl.SetDraft(m.input.Value())
		if _, err := m.ctrl.Submit(); err != nil {
			return m, nil
		}
		m.input.Reset()
		m.cursor = len(m.ctrl.Tasks()) - 1
		return m, nil
	case "tab", "esc":
		m.focusList()
		return m, nil
	case "ctrl+t":
		m.ctrl.ToggleTheme()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetDraft(m.input.Value())
	return m, cmd
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := m.ctrl.Tasks()

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}
	case " ", "enter", "x":
		if t, ok := m.selected(tasks); ok {
			m.ctrl.Toggle(t.ID)
		}
	case "d", "delete", "backspace":
		if t, ok := m.selected(tasks); ok {
			m.ctrl.RequestRemove(t.ID)
		}
	case "t", "ctrl+t":
		m.ctrl.ToggleTheme()
	case "tab", "i", "a":
		return m, m.focusInput()
	}
	return m, nil
}

func (m *Model) focusInput() tea.Cmd {
	m.focus = focusInput
	return m.input.Focus()
}

func (m *Model) focusList() {
	m.focus = focusList
	m.input.Blur()
	m.clampCursor()
}

func (m *Model) selected(tasks models.Tasks) (models.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return models.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.Tasks())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) View() string {
	state := m.ctrl.State()
	st := stylesFor(state.Dark)

	var b strings.Builder
	writeHeader(&b, st, state)
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case !state.Hydrated:
		b.WriteString(st.empty.Render("Loading…"))
		b.WriteString("\n")
	case len(state.Tasks) == 0:
		b.WriteString(st.empty.Render("No tasks added yet."))
		b.WriteString("\n")
	default:
		writeTasks(&b, st, state.Tasks, m.cursor, m.focus == focusList)
	}

	if state.Alert != nil {
		b.WriteString("\n")
		b.WriteString(st.modal.Render(state.Alert.Title + "\n\n" + state.Alert.Message + "\n\n[enter] OK"))
		b.WriteString("\n")
	} else if state.PendingRemoval != nil {
		b.WriteString("\n")
		b.WriteString(st.modal.Render(fmt.Sprintf(
			"Confirm deletion\n\nAre you sure you want to delete this task?\n%q\n\n[n] Cancel  [y] Delete",
			state.PendingRemoval.Text)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	writeFooter(&b, st, m.focus)
	return st.screen.Render(b.String())
}

func writeHeader(b *strings.Builder, st styles, state app.State) {
	icon := "🌛"
	if state.Dark {
		icon = "🌞"
	}
	b.WriteString(st.title.Render(state.Title))
	b.WriteString("  ")
	b.WriteString(icon)
	b.WriteString("\n\n")
}

func writeTasks(b *strings.Builder, st styles, tasks models.Tasks, cursor int, listFocused bool) {
	for i, t := range tasks {
		marker := "  "
		if listFocused && i == cursor {
			marker = st.cursor.Render("> ")
		}

		check := "[ ]"
		text := st.task.Render(t.Text)
		if t.Completed {
			check = "[x]"
			text = st.done.Render(t.Text)
		}

		b.WriteString(fmt.Sprintf("%s%s %s\n", marker, check, text))
	}
}

func writeFooter(b *strings.Builder, st styles, focus focusArea) {
	help := "enter add • tab list • ctrl+t theme • ctrl+c quit"
	if focus == focusList {
		help = "↑/k ↓/j move • space toggle • d delete • t theme • tab input • q quit"
	}
	b.WriteString(st.help.Render(help))
	b.WriteString("\n")
}
