// Package tui provides the interactive kanban board.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abatilo/taskboard/internal/board"
	"github.com/abatilo/taskboard/internal/config"
	boarderrors "github.com/abatilo/taskboard/internal/errors"
	"github.com/abatilo/taskboard/internal/task"
)

type mode int

const (
	modeLoading mode = iota
	modeBoard
	modeAdd
	modeConfirmDelete
	modeDetail
)

const (
	fieldTitle = iota
	fieldDescription
)

// loadedMsg reports the end of the initial board load.
type loadedMsg struct {
	err error
}

// Model is the bubbletea model for the board.
type Model struct {
	ctx   context.Context
	board *board.Board
	theme config.Theme

	keys     keyMap
	formKeys formKeyMap
	help     help.Model
	spinner  spinner.Model

	mode mode
	col  int
	rows [3]int

	title      textinput.Model
	desc       textarea.Model
	formField  int
	formErr    string
	status     string
	markdown   string
	quitting   bool
	loadErr    error
	width      int
	height     int
	detailBody string
}

// Option configures the Model.
type Option func(*Model)

// WithMarkdownStyle selects the glamour style for task details.
func WithMarkdownStyle(style string) Option {
	return func(m *Model) {
		m.markdown = style
	}
}

// New creates a board model. The board is loaded by Init.
func New(ctx context.Context, b *board.Board, theme config.Theme, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "e.g., Prepare release notes"
	ti.CharLimit = 256
	ti.Width = 48

	ta := textarea.New()
	ta.Placeholder = "Detailed steps for the task..."
	ta.ShowLineNumbers = false
	ta.SetWidth(50)
	ta.SetHeight(4)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := Model{
		ctx:      ctx,
		board:    b,
		theme:    theme,
		keys:     defaultKeyMap(),
		formKeys: defaultFormKeyMap(),
		help:     help.New(),
		spinner:  sp,
		mode:     modeLoading,
		title:    ti,
		desc:     ta,
		markdown: "dark",
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Run starts the interactive board and blocks until the user quits.
func Run(ctx context.Context, b *board.Board, theme config.Theme, opts ...Option) error {
	program := tea.NewProgram(New(ctx, b, theme, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(Model); ok && m.loadErr != nil {
		return m.loadErr
	}
	return nil
}

// Init starts the spinner and the initial load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m Model) loadCmd() tea.Cmd {
	b, ctx := m.board, m.ctx
	return func() tea.Msg {
		return loadedMsg{err: b.Load(ctx)}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.loadErr = msg.err
			m.quitting = true
			return m, tea.Quit
		}
		m.mode = modeBoard
		m.clampRows()
		return m, nil

	case spinner.TickMsg:
		if m.mode != modeLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modeLoading:
			return m, nil
		case modeAdd:
			return m.updateForm(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg), nil
		case modeDetail:
			return m.updateDetail(msg), nil
		default:
			return m.updateBoard(msg)
		}
	}

	if m.mode == modeAdd {
		return m.forwardToForm(msg)
	}
	return m, nil
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
		}
	case key.Matches(msg, m.keys.Right):
		if m.col < len(task.Statuses)-1 {
			m.col++
		}
	case key.Matches(msg, m.keys.Up):
		if m.rows[m.col] > 0 {
			m.rows[m.col]--
		}
	case key.Matches(msg, m.keys.Down):
		if m.rows[m.col] < len(m.board.Column(task.Statuses[m.col]))-1 {
			m.rows[m.col]++
		}
	case key.Matches(msg, m.keys.Add):
		return m.openForm()
	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.selected(); ok {
			m.mode = modeConfirmDelete
		}
	case key.Matches(msg, m.keys.Detail):
		if t, ok := m.selected(); ok {
			m.detailBody = m.renderMarkdown(t.Description)
			m.mode = modeDetail
		}
	case key.Matches(msg, m.keys.Todo):
		m.moveSelected(task.StatusTodo)
	case key.Matches(msg, m.keys.Progress):
		m.moveSelected(task.StatusInProgress)
	case key.Matches(msg, m.keys.Done):
		m.moveSelected(task.StatusDone)
	case key.Matches(msg, m.keys.Next):
		if m.col < len(task.Statuses)-1 {
			m.moveSelected(task.Statuses[m.col+1])
		}
	case key.Matches(msg, m.keys.Prev):
		if m.col > 0 {
			m.moveSelected(task.Statuses[m.col-1])
		}
	}
	return m, nil
}

func (m *Model) openForm() (tea.Model, tea.Cmd) {
	m.mode = modeAdd
	m.formErr = ""
	m.formField = fieldTitle
	m.title.Reset()
	m.desc.Reset()
	m.desc.Blur()
	return *m, m.title.Focus()
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		m.mode = modeBoard
		m.title.Blur()
		m.desc.Blur()
		return m, nil
	case key.Matches(msg, m.formKeys.Switch):
		if m.formField == fieldTitle {
			m.formField = fieldDescription
			m.title.Blur()
			return m, m.desc.Focus()
		}
		m.formField = fieldTitle
		m.desc.Blur()
		return m, m.title.Focus()
	case key.Matches(msg, m.formKeys.Submit),
		m.formField == fieldTitle && msg.Type == tea.KeyEnter:
		return m.submitForm()
	}
	return m.forwardToForm(msg)
}

func (m Model) forwardToForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.formField == fieldTitle {
		m.title, cmd = m.title.Update(msg)
	} else {
		m.desc, cmd = m.desc.Update(msg)
	}
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	added, err := m.board.Add(m.ctx, m.title.Value(), m.desc.Value())
	var tooShort boarderrors.TitleTooShortError
	if errors.As(err, &tooShort) {
		m.formErr = tooShort.Error()
		return m, nil
	}

	m.mode = modeBoard
	m.title.Blur()
	m.desc.Blur()
	m.col = task.StatusTodo.Order()
	m.rows[m.col] = 0
	m.status = fmt.Sprintf("Added %q", added.Title)
	if err != nil {
		m.status = err.Error()
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) Model {
	m.mode = modeBoard
	if msg.String() != "y" && msg.String() != "Y" {
		m.status = "Delete cancelled"
		return m
	}
	t, ok := m.selected()
	if !ok {
		return m
	}
	_, err := m.board.Delete(m.ctx, t.ID)
	m.status = fmt.Sprintf("Deleted %q", t.Title)
	if err != nil {
		m.status = err.Error()
	}
	m.clampRows()
	return m
}

func (m Model) updateDetail(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc", "enter", "q", " ":
		m.mode = modeBoard
		m.detailBody = ""
	}
	return m
}

// moveSelected moves the highlighted card and keeps it highlighted.
func (m *Model) moveSelected(to task.Status) {
	t, ok := m.selected()
	if !ok {
		return
	}
	moved, err := m.board.Move(m.ctx, t.ID, to)
	m.status = fmt.Sprintf("Moved %q to %s", moved.Title, to.Title())
	if err != nil {
		m.status = err.Error()
	}
	if moved.ID != "" {
		m.col = to.Order()
		m.rows[m.col] = 0
	}
	m.clampRows()
}

// selected returns the highlighted task, if the focused column has one.
func (m Model) selected() (task.Task, bool) {
	col := m.board.Column(task.Statuses[m.col])
	row := m.rows[m.col]
	if row < 0 || row >= len(col) {
		return task.Task{}, false
	}
	return col[row], true
}

func (m *Model) clampRows() {
	for i, st := range task.Statuses {
		n := len(m.board.Column(st))
		if m.rows[i] >= n {
			m.rows[i] = n - 1
		}
		if m.rows[i] < 0 {
			m.rows[i] = 0
		}
	}
}
