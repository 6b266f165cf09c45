package update

import (
	"fmt"
	"time"

	"github.com/cowritehq/sprinter/internal/deadline"
	"github.com/cowritehq/sprinter/internal/model"
	"github.com/cowritehq/sprinter/internal/stats"
	"github.com/cowritehq/sprinter/internal/views"
)

func (m Model) View() string {
	if m.fatal != nil {
		return m.fatalView()
	}
	if !m.loaded {
		return views.RenderLoading(views.RefreshData{SpinnerView: m.spin.View()})
	}

	data := views.AppData{
		Header:     m.headerView(),
		Tabs:       m.tabsView(),
		Checklist:  m.checklistView(),
		StatusLine: m.statusView(),
		IsError:    m.status.IsError,
		Footer:     footerHints,
	}
	if m.adding {
		data.Form = views.RenderAddForm(views.FormData{
			CategoryView: m.categoryInput.View(),
			TitleView:    m.titleInput.View(),
			AssigneeView: m.assigneeInput.View(),
			DueView:      m.dueInput.View(),
		})
	}
	if m.helpVisible {
		data.Help = m.renderHelpView()
	}
	return views.RenderApp(data)
}

func (m Model) fatalView() string {
	return views.RenderFatalError(views.FatalErrorData{
		Title:  "board unavailable",
		Detail: m.fatal.Error(),
		Hint:   "fix the store configuration and restart · q: quit",
	})
}

func (m Model) headerView() string {
	header := views.HeaderData{SummaryLine: m.summaryLine()}
	if !m.state.HasTarget {
		header.NoTarget = true
		return views.RenderHeader(header)
	}
	header.TargetName = m.state.Target.Name
	cd := deadline.Remaining(m.state.Target, m.now)
	if cd.Overdue {
		header.Overdue = true
	} else {
		header.Countdown = formatCountdown(cd)
		pct := deadline.WindowPercent(m.state.Target, m.now, m.window)
		header.ProgressView = m.bar.ViewAs(float64(pct) / 100)
	}
	return views.RenderHeader(header)
}

func formatCountdown(cd deadline.Countdown) string {
	return fmt.Sprintf("%dd %02dh %02dm %02ds", cd.Days, cd.Hours, cd.Minutes, cd.Seconds)
}

func (m Model) summaryLine() string {
	s := m.state.Summary
	line := fmt.Sprintf("overall %d/%d done (%d%%)", s.Done, s.Total, s.RatePercent)
	if m.refreshing {
		line = m.spin.View() + " " + line
	}
	return line
}

func (m Model) tabsView() string {
	if len(m.state.Categories) == 0 {
		return ""
	}
	tabs := make([]views.TabData, 0, len(m.state.Categories))
	for _, c := range m.state.Categories {
		tabs = append(tabs, views.TabData{
			Label: m.state.Aliases.Display(c.Category),
			Done:  c.Done,
			Total: c.Total,
		})
	}
	return views.RenderTabs(tabs, m.activeTab)
}

func (m Model) checklistView() string {
	tasks := m.tabTasks()
	if len(tasks) == 0 {
		return views.RenderChecklist(views.ChecklistData{
			EmptyText: "no tasks yet · a: add one",
		})
	}
	items := make([]views.TaskItemData, 0, len(tasks))
	for i, task := range tasks {
		items = append(items, views.TaskItemData{
			Title:    task.Title,
			Assignee: task.Assignee,
			Done:     task.Done,
			DueText:  dueText(task.DueRaw, task.Due, m.now),
			Urgency:  string(model.ClassifyUrgency(task, m.now)),
			Selected: i == m.cursor(),
		})
	}
	summary := stats.CategorySummary{Category: m.currentCategory()}
	for _, task := range tasks {
		summary.Total++
		if task.Done {
			summary.Done++
		}
	}
	return views.RenderChecklist(views.ChecklistData{
		Items:        items,
		Caption:      fmt.Sprintf("%d/%d done (%d%%)", summary.Done, summary.Total, summary.RatePercent()),
		ProgressView: m.bar.ViewAs(summary.Fraction()),
	})
}

// dueText shows the parsed deadline with relative context, or the raw
// cell text when it never parsed.
func dueText(raw string, due *time.Time, now time.Time) string {
	if due == nil {
		return raw
	}
	diff := due.Sub(now)
	if diff < 0 {
		return fmt.Sprintf("%s · overdue", due.Format("1/2 15:04"))
	}
	if diff < 24*time.Hour {
		return fmt.Sprintf("%s · in %dh%02dm", due.Format("1/2 15:04"), int(diff.Hours()), int(diff.Minutes())%60)
	}
	return due.Format("1/2 15:04")
}

func (m Model) statusView() string {
	if m.status.Text == "" {
		return " "
	}
	return m.status.Text
}

const footerHints = "h/l: tab · j/k: move · space: toggle · a: add · d: delete · D: clear done · r: refresh · ?: help · q: quit"
