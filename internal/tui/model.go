package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MookeeHugo/kiddo-habit-app/internal/engine"
	"github.com/MookeeHugo/kiddo-habit-app/internal/storage"
	"github.com/MookeeHugo/kiddo-habit-app/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	user  *storage.User
	tasks []storage.Task

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	user  *storage.User
	tasks []storage.Task
	err   error
}

type toggledMsg struct {
	id        string
	completed *engine.CompleteResult
	undone    *engine.UncompleteResult
	err       error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		u, err := m.svc.UserRepo().GetOrCreateDefault(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		tasks, err := m.svc.ListTodayTasks(m.ctx, time.Now())
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{user: u, tasks: tasks}
	}
}

func (m boardModel) toggleCmd(t storage.Task) tea.Cmd {
	return func() tea.Msg {
		if t.Completed {
			res, err := m.svc.UncompleteTask(m.ctx, t.ID)
			return toggledMsg{id: t.ID, undone: res, err: err}
		}
		res, err := m.svc.CompleteTask(m.ctx, t.ID)
		return toggledMsg{id: t.ID, completed: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.user = msg.user
		m.tasks = msg.tasks
		if m.selected >= len(m.tasks) {
			m.selected = len(m.tasks) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case toggledMsg:
		if msg.err != nil {
			m.lastLog = "Toggle failed: " + msg.err.Error()
			return m, nil
		}
		if msg.completed != nil {
			line := fmt.Sprintf("Done! +%d points, +%d exp", msg.completed.Points, msg.completed.Experience)
			if msg.completed.StreakBonusPercent > 0 {
				line += fmt.Sprintf(" (streak +%d%%)", msg.completed.StreakBonusPercent)
			}
			if msg.completed.LevelUp {
				line += " " + ui.BadgeLevelUp
			}
			if len(msg.completed.NewAchievements) > 0 {
				line += fmt.Sprintf(" %s %s", ui.IconTrophy, strings.Join(msg.completed.NewAchievements, ", "))
			}
			m.lastLog = line
		} else if msg.undone != nil {
			m.lastLog = fmt.Sprintf("Undone (streak now %d).", msg.undone.Streak)
		}
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.tasks)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ", "enter":
			if m.selected < 0 || m.selected >= len(m.tasks) {
				return m, nil
			}
			t := m.tasks[m.selected]
			if t.Completed {
				m.lastLog = "Undoing…"
			} else {
				m.lastLog = "Completing…"
			}
			return m, m.toggleCmd(t)
		}
	}
	return m, nil
}
