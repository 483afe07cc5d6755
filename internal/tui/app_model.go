package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"planner/internal/board"
	"planner/internal/client"
	"planner/internal/datekey"
	"planner/internal/drag"
	"planner/internal/model"
)

type view int

const (
	viewLogin view = iota
	viewRegister
	viewVerify
	viewBoard
)

type pane int

const (
	paneCalendar pane = iota
	paneDay
	paneUnassigned
	paneNote
)

type appModel struct {
	client *client.Client
	board  *board.Controller
	drag   *drag.Protocol

	width  int
	height int

	view view
	pane pane

	// Auth form inputs are shared between the login and register screens.
	emailInput    textinput.Model
	passwordInput textinput.Model
	nameInput     textinput.Model
	tokenInput    textinput.Model
	authFocus     int

	principal *model.Principal
	// authCh carries sign-in changes published by the client's auth provider.
	authCh chan *model.Principal

	selected    time.Time
	monthAnchor time.Time
	noteKeys    map[string]bool

	dayIdx        int
	unassignedIdx int

	taskInput  textinput.Model
	addingTask bool

	noteArea    textarea.Model
	noteEditing bool
	noteFor     string

	status string
}

func newAppModel(c *client.Client) appModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword

	name := textinput.New()
	name.Placeholder = "name"

	token := textinput.New()
	token.Placeholder = "verification token"

	task := textinput.New()
	task.Placeholder = "new task"
	task.CharLimit = 500

	note := textarea.New()
	note.Placeholder = "notes for this day"

	now := time.Now()
	authCh := make(chan *model.Principal, 1)
	c.Auth().Subscribe(func(p *model.Principal) {
		select {
		case authCh <- p:
		default:
		}
	})

	return appModel{
		client:        c,
		view:          viewLogin,
		emailInput:    email,
		passwordInput: password,
		nameInput:     name,
		tokenInput:    token,
		taskInput:     task,
		noteArea:      note,
		authCh:        authCh,
		selected:      now,
		monthAnchor:   time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local),
		noteKeys:      map[string]bool{},
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForAuth())
}

// waitForAuth re-arms after every delivery so provider changes keep
// flowing into the update loop.
func (m appModel) waitForAuth() tea.Cmd {
	return func() tea.Msg {
		return principalChangedMsg{principal: <-m.authCh}
	}
}

func (m *appModel) selectedKey() string {
	return datekey.FromTime(m.selected)
}
