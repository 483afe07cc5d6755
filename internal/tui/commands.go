package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"planner/internal/board"
	"planner/internal/datekey"
	"planner/internal/model"
)

type principalChangedMsg struct {
	principal *model.Principal
}

type authResultMsg struct {
	principal *model.Principal
	err       error
}

type verifyResultMsg struct {
	err error
}

type resendResultMsg struct {
	err error
}

type boardRefreshedMsg struct{}

type noteLoadedMsg struct {
	key  string
	text string
	err  error
}

type noteSavedMsg struct {
	key string
	err error
}

type noteKeysMsg struct {
	keys []string
	err  error
}

const requestTimeout = 15 * time.Second

func withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

func (m *appModel) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		principal, err := m.client.Login(ctx, email, password)
		return authResultMsg{principal: principal, err: err}
	}
}

func (m *appModel) registerCmd(email, name, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		principal, err := m.client.Register(ctx, email, name, password)
		return authResultMsg{principal: principal, err: err}
	}
}

func (m *appModel) verifyCmd(token string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		return verifyResultMsg{err: m.client.Verify(ctx, token)}
	}
}

func (m *appModel) resendCmd(email string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		return resendResultMsg{err: m.client.ResendVerification(ctx, email)}
	}
}

func (m *appModel) loadBoardCmd() tea.Cmd {
	ctrl := m.board
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		ctrl.LoadUnassigned(ctx)
		ctrl.LoadForSelectedDate(ctx)
		return boardRefreshedMsg{}
	}
}

func (m *appModel) selectDateCmd(key string) tea.Cmd {
	ctrl := m.board
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		ctrl.SetSelectedDate(ctx, key)
		return boardRefreshedMsg{}
	}
}

func (m *appModel) createTaskCmd(text string) tea.Cmd {
	ctrl := m.board
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		ctrl.CreateTask(ctx, text)
		return boardRefreshedMsg{}
	}
}

func (m *appModel) toggleCmd(id uuid.UUID) tea.Cmd {
	ctrl := m.board
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		ctrl.ToggleCompleted(ctx, id)
		return boardRefreshedMsg{}
	}
}

func (m *appModel) deleteCompletedCmd(scope board.Scope) tea.Cmd {
	ctrl := m.board
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		ctrl.DeleteCompletedInScope(ctx, scope)
		return boardRefreshedMsg{}
	}
}

func (m *appModel) dropCmd(taskID, dropTargetID string) tea.Cmd {
	proto := m.drag
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		proto.End(ctx, taskID, dropTargetID)
		return boardRefreshedMsg{}
	}
}

func (m *appModel) loadNoteCmd(key string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		note, err := c.Note(ctx, key)
		text := ""
		if note != nil {
			text = note.Text
		}
		return noteLoadedMsg{key: key, text: text, err: err}
	}
}

func (m *appModel) saveNoteCmd(key, text string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		return noteSavedMsg{key: key, err: c.SaveNote(ctx, key, text)}
	}
}

func (m *appModel) loadNoteKeysCmd() tea.Cmd {
	c := m.client
	from, to, err := datekey.MonthRange(datekey.FromTime(m.monthAnchor))
	if err != nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		keys, err := c.NoteKeys(ctx, from, to)
		return noteKeysMsg{keys: keys, err: err}
	}
}
