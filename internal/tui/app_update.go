package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"planner/internal/board"
	"planner/internal/drag"
	"planner/internal/model"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.noteArea.SetWidth(max(20, m.width/3-4))
		m.noteArea.SetHeight(max(4, m.height/3))
		return m, nil

	case principalChangedMsg:
		m.principal = msg.principal
		if m.principal == nil && m.view == viewBoard {
			m.view = viewLogin
			m.pane = paneCalendar
			m.authFocus = 0
			m.passwordInput.SetValue("")
			m.emailInput.Focus()
			m.passwordInput.Blur()
		}
		return m, m.waitForAuth()

	case authResultMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.principal = msg.principal
		m.status = ""
		if !msg.principal.EmailVerified {
			m.view = viewVerify
			m.tokenInput.Focus()
			return m, nil
		}
		return m, m.enterBoard()

	case verifyResultMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = ""
		return m, m.enterBoard()

	case resendResultMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = "Verification mail sent"
		}
		return m, nil

	case boardRefreshedMsg:
		m.clampCursors()
		return m, nil

	case noteLoadedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		// A slow load for a day the user already left must not clobber
		// the note pane for the current selection.
		if msg.key != m.selectedKey() {
			return m, nil
		}
		m.noteFor = msg.key
		m.noteArea.SetValue(msg.text)
		return m, nil

	case noteSavedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		return m, m.loadNoteKeysCmd()

	case noteKeysMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.noteKeys = map[string]bool{}
		for _, key := range msg.keys {
			m.noteKeys[key] = true
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// enterBoard builds the controller for the signed-in session and kicks
// off the initial loads.
func (m *appModel) enterBoard() tea.Cmd {
	m.view = viewBoard
	m.pane = paneCalendar
	m.board = board.New(m.client, m.selectedKey())
	m.drag = drag.New(m.board)
	return tea.Batch(m.loadBoardCmd(), m.loadNoteCmd(m.selectedKey()), m.loadNoteKeysCmd())
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.view {
	case viewLogin, viewRegister:
		return m.updateAuthForm(msg)
	case viewVerify:
		return m.updateVerifyForm(msg)
	case viewBoard:
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m appModel) updateAuthForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	inputs := []*textinput.Model{&m.emailInput, &m.passwordInput}
	if m.view == viewRegister {
		inputs = []*textinput.Model{&m.emailInput, &m.nameInput, &m.passwordInput}
	}

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "down":
		m.authFocus = (m.authFocus + 1) % len(inputs)
		m.focusAuthInput(inputs)
		return m, nil
	case "shift+tab", "up":
		m.authFocus = (m.authFocus + len(inputs) - 1) % len(inputs)
		m.focusAuthInput(inputs)
		return m, nil
	case "ctrl+r":
		if m.view == viewLogin {
			m.view = viewRegister
		} else {
			m.view = viewLogin
		}
		m.authFocus = 0
		m.focusAuthInput(inputs)
		m.status = ""
		return m, nil
	case "enter":
		email := strings.TrimSpace(m.emailInput.Value())
		password := m.passwordInput.Value()
		if email == "" || password == "" {
			m.status = "Email and password are required"
			return m, nil
		}
		if m.view == viewRegister {
			name := strings.TrimSpace(m.nameInput.Value())
			return m, m.registerCmd(email, name, password)
		}
		return m, m.loginCmd(email, password)
	}

	var cmd tea.Cmd
	*inputs[m.authFocus], cmd = inputs[m.authFocus].Update(msg)
	return m, cmd
}

func (m *appModel) focusAuthInput(inputs []*textinput.Model) {
	for i, input := range inputs {
		if i == m.authFocus {
			input.Focus()
		} else {
			input.Blur()
		}
	}
}

func (m appModel) updateVerifyForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "enter":
		token := strings.TrimSpace(m.tokenInput.Value())
		if token == "" {
			m.status = "Paste the token from the verification mail"
			return m, nil
		}
		return m, m.verifyCmd(token)
	case "ctrl+r":
		return m, m.resendCmd(m.principal.Email)
	}
	var cmd tea.Cmd
	m.tokenInput, cmd = m.tokenInput.Update(msg)
	return m, cmd
}

func (m appModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.addingTask {
		return m.updateTaskInput(msg)
	}
	if m.noteEditing {
		return m.updateNoteArea(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.board.Close()
		return m, tea.Quit
	case "ctrl+l":
		// Sign out. The provider publishes the nil principal, which
		// routes the app back to the login screen.
		m.board.Close()
		m.client.Logout()
		m.status = ""
		return m, nil
	case "tab":
		m.pane = (m.pane + 1) % 4
		return m, nil
	case "shift+tab":
		m.pane = (m.pane + 3) % 4
		return m, nil
	case "esc":
		if m.drag.Dragging() {
			m.drag.Cancel()
			m.status = ""
		}
		return m, nil
	case "n":
		m.addingTask = true
		m.taskInput.SetValue("")
		m.taskInput.Focus()
		return m, textinput.Blink
	case "e":
		if m.pane == paneNote {
			m.noteEditing = true
			m.noteArea.Focus()
			return m, nil
		}
	case "x":
		switch m.pane {
		case paneDay:
			return m, m.deleteCompletedCmd(board.ScopeDay)
		case paneUnassigned:
			return m, m.deleteCompletedCmd(board.ScopeUnassigned)
		}
		return m, nil
	}

	switch m.pane {
	case paneCalendar:
		return m.updateCalendarKeys(msg)
	case paneDay, paneUnassigned:
		return m.updateListKeys(msg)
	}
	return m, nil
}

func (m appModel) updateCalendarKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	moved := m.selected
	switch msg.String() {
	case "left", "h":
		moved = moved.AddDate(0, 0, -1)
	case "right", "l":
		moved = moved.AddDate(0, 0, 1)
	case "up", "k":
		moved = moved.AddDate(0, 0, -7)
	case "down", "j":
		moved = moved.AddDate(0, 0, 7)
	case "pgup", "H":
		moved = moved.AddDate(0, -1, 0)
	case "pgdown", "L":
		moved = moved.AddDate(0, 1, 0)
	case "t":
		moved = time.Now()
	case "enter":
		if m.drag.Dragging() {
			// Dropping onto the calendar has no meaning; the gesture
			// resolves as a cancel.
			m.drag.Cancel()
		}
		return m, nil
	default:
		return m, nil
	}
	return m.selectDate(moved)
}

func (m appModel) selectDate(moved time.Time) (tea.Model, tea.Cmd) {
	m.selected = moved
	key := m.selectedKey()
	cmds := []tea.Cmd{m.selectDateCmd(key), m.loadNoteCmd(key)}

	anchor := time.Date(moved.Year(), moved.Month(), 1, 0, 0, 0, 0, time.Local)
	if !anchor.Equal(m.monthAnchor) {
		m.monthAnchor = anchor
		cmds = append(cmds, m.loadNoteKeysCmd())
	}
	m.dayIdx = 0
	return m, tea.Batch(cmds...)
}

func (m appModel) updateListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks, idx := m.focusedList()
	switch msg.String() {
	case "up", "k":
		if *idx > 0 {
			*idx--
		}
		return m, nil
	case "down", "j":
		if *idx < len(tasks)-1 {
			*idx++
		}
		return m, nil
	case " ":
		if task := m.cursorTask(tasks, *idx); task != nil {
			return m, m.toggleCmd(task.ID)
		}
		return m, nil
	case "g":
		if task := m.cursorTask(tasks, *idx); task != nil {
			m.drag.Start(task.ID.String())
			if m.drag.Dragging() {
				m.status = "Moving: " + task.Text
			}
		}
		return m, nil
	case "enter":
		if !m.drag.Dragging() {
			return m, nil
		}
		active := m.drag.Active()
		zone := drag.DropZoneUnassigned
		if m.pane == paneDay {
			zone = drag.DropZoneDayTasks
		}
		m.status = ""
		return m, m.dropCmd(active.ID.String(), zone)
	}
	return m, nil
}

func (m *appModel) focusedList() ([]model.Task, *int) {
	if m.pane == paneDay {
		return m.board.DayTasks(), &m.dayIdx
	}
	return m.board.Unassigned(), &m.unassignedIdx
}

func (m *appModel) cursorTask(tasks []model.Task, idx int) *model.Task {
	if idx < 0 || idx >= len(tasks) {
		return nil
	}
	return &tasks[idx]
}

func (m *appModel) clampCursors() {
	if m.board == nil {
		return
	}
	if n := len(m.board.DayTasks()); m.dayIdx >= n {
		m.dayIdx = max(0, n-1)
	}
	if n := len(m.board.Unassigned()); m.unassignedIdx >= n {
		m.unassignedIdx = max(0, n-1)
	}
}

func (m appModel) updateTaskInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.addingTask = false
		m.taskInput.Blur()
		return m, nil
	case "enter":
		text := m.taskInput.Value()
		m.addingTask = false
		m.taskInput.Blur()
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		return m, m.createTaskCmd(text)
	}
	var cmd tea.Cmd
	m.taskInput, cmd = m.taskInput.Update(msg)
	return m, cmd
}

// Leaving the note editor always persists; a blank note deletes the
// day's document rather than storing empty text.
func (m appModel) updateNoteArea(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.noteEditing = false
		m.noteArea.Blur()
		return m, m.saveNoteCmd(m.selectedKey(), m.noteArea.Value())
	}
	var cmd tea.Cmd
	m.noteArea, cmd = m.noteArea.Update(msg)
	return m, cmd
}
