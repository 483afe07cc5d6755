package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"planner/internal/datekey"
	"planner/internal/model"
)

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	paneStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	activePaneStyle = paneStyle.BorderForeground(lipgloss.Color("205"))
	headerStyle     = lipgloss.NewStyle().Bold(true)
	selectedStyle   = lipgloss.NewStyle().Reverse(true)
	completedStyle  = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("240"))
	draggingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	noteMarkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func (m appModel) View() string {
	switch m.view {
	case viewLogin, viewRegister:
		return m.authView()
	case viewVerify:
		return m.verifyView()
	case viewBoard:
		return m.boardView()
	}
	return ""
}

func (m appModel) authView() string {
	var b strings.Builder
	if m.view == viewRegister {
		b.WriteString(titleStyle.Render("Create account") + "\n\n")
		b.WriteString(m.emailInput.View() + "\n")
		b.WriteString(m.nameInput.View() + "\n")
		b.WriteString(m.passwordInput.View() + "\n")
	} else {
		b.WriteString(titleStyle.Render("Sign in") + "\n\n")
		b.WriteString(m.emailInput.View() + "\n")
		b.WriteString(m.passwordInput.View() + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("enter submit · ctrl+r switch login/register · esc quit"))
	return paneStyle.Render(b.String())
}

func (m appModel) verifyView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Verify your email") + "\n\n")
	b.WriteString("A verification link was mailed to " + m.principal.Email + ".\n")
	b.WriteString("Paste the token from that mail to finish signing in.\n\n")
	b.WriteString(m.tokenInput.View() + "\n")
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("enter verify · ctrl+r resend mail · esc quit"))
	return paneStyle.Render(b.String())
}

func (m appModel) boardView() string {
	calendar := m.renderPane(paneCalendar, m.renderCalendar())
	day := m.renderPane(paneDay, m.renderTaskList(
		m.selectedKey(), m.board.DayTasks(), m.dayIdx, m.pane == paneDay))
	unassigned := m.renderPane(paneUnassigned, m.renderTaskList(
		"Unassigned", m.board.Unassigned(), m.unassignedIdx, m.pane == paneUnassigned))
	note := m.renderPane(paneNote, m.renderNote())

	left := lipgloss.JoinVertical(lipgloss.Left, calendar, note)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, day, unassigned)

	var footer strings.Builder
	if m.addingTask {
		footer.WriteString(m.taskInput.View())
	} else if m.status != "" {
		footer.WriteString(statusStyle.Render(m.status))
	} else {
		footer.WriteString(helpStyle.Render(
			"tab panes · arrows move · enter select/drop · g grab · space done · n new · x clear done · e note · ctrl+l sign out · q quit"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, footer.String())
}

func (m appModel) renderPane(p pane, content string) string {
	if m.pane == p {
		return activePaneStyle.Render(content)
	}
	return paneStyle.Render(content)
}

func (m appModel) renderCalendar() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(m.monthAnchor.Format("January 2006")) + "\n")
	b.WriteString(helpStyle.Render("Mo Tu We Th Fr Sa Su") + "\n")

	first := m.monthAnchor
	// Weeks start on Monday.
	offset := (int(first.Weekday()) + 6) % 7
	day := first.AddDate(0, 0, -offset)
	lastOfMonth := first.AddDate(0, 1, -1)

	for !day.After(lastOfMonth) {
		for i := 0; i < 7; i++ {
			b.WriteString(m.renderCalendarDay(day))
			if i < 6 {
				b.WriteString(" ")
			}
			day = day.AddDate(0, 0, 1)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m appModel) renderCalendarDay(day time.Time) string {
	if day.Month() != m.monthAnchor.Month() {
		return "  "
	}
	cell := fmt.Sprintf("%2d", day.Day())
	key := datekey.FromTime(day)
	switch {
	case key == m.selectedKey():
		return selectedStyle.Render(cell)
	case m.noteKeys[key]:
		return noteMarkStyle.Render(cell)
	default:
		return cell
	}
}

func (m appModel) renderTaskList(title string, tasks []model.Task, cursor int, focused bool) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(title) + "\n")
	if len(tasks) == 0 {
		b.WriteString(helpStyle.Render("(no tasks)"))
		return b.String()
	}
	active := m.drag.Active()
	for i, task := range tasks {
		mark := "[ ]"
		if task.Completed {
			mark = "[x]"
		}
		line := mark + " " + task.Text
		switch {
		case active != nil && task.ID == active.ID:
			line = draggingStyle.Render("➤ " + line)
		case task.Completed:
			line = completedStyle.Render(line)
		}
		if focused && i == cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		if i < len(tasks)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m appModel) renderNote() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Note · "+m.selectedKey()) + "\n")
	if m.noteEditing {
		b.WriteString(m.noteArea.View())
		return b.String()
	}
	text := strings.TrimRight(m.noteArea.Value(), "\n")
	if text == "" {
		b.WriteString(helpStyle.Render("(no note · press e to write one)"))
	} else {
		b.WriteString(text)
	}
	return b.String()
}
