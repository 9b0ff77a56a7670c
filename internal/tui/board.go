package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MookeeHugo/kiddo-habit-app/internal/engine"
)

// RunBoard starts the interactive dashboard.
func RunBoard(ctx context.Context, svc *engine.Service, out io.Writer) error {
	p := tea.NewProgram(newBoardModel(ctx, svc), tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 26
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.user == nil {
		return "KiddoHabit | loading…"
	}
	next := engine.ExpForNextLevel(m.user.Level)
	var bar string
	if next == engine.NoNextLevel {
		bar = "[MAX]"
	} else {
		bar = progressBar(m.user.Experience, next, 30)
	}
	return fmt.Sprintf("KiddoHabit | %s %s | Level %d %s | Exp %s | Points %d",
		m.user.Avatar, m.user.Name, m.user.Level, engine.LevelTitle(m.user.Level), bar, m.user.AvailablePoints)
}

func (m boardModel) renderSidebar() string {
	if m.user == nil {
		return "Stats\n\nLoading…"
	}
	lines := []string{"Stats"}
	lines = append(lines, fmt.Sprintf("- Tasks done: %d", m.user.TotalTasksCompleted))
	lines = append(lines, fmt.Sprintf("- Best streak: %d", m.user.LongestStreak))
	lines = append(lines, fmt.Sprintf("- Perfect days: %d", m.user.PerfectDays))
	lines = append(lines, fmt.Sprintf("- Total points: %d", m.user.TotalPoints))
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space: toggle done")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}

	var out []string
	out = append(out, "Today")
	if len(m.tasks) == 0 {
		out = append(out, "(nothing scheduled, add a task with `kiddo add`)")
		return strings.Join(out, "\n")
	}

	for i, t := range m.tasks {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		streak := ""
		if t.Kind == string(engine.KindDaily) && t.Streak > 0 {
			streak = fmt.Sprintf(" 🔥%d", t.Streak)
		}
		checklist := ""
		if n := len(t.Checklist); n > 0 {
			done := 0
			for _, item := range t.Checklist {
				if item.Completed {
					done++
				}
			}
			checklist = fmt.Sprintf(" (%d/%d)", done, n)
		}
		out = append(out, fmt.Sprintf("%s%s %s %s [%s]%s%s", cursor, mark, t.Icon, t.Title, t.Difficulty, streak, checklist))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
