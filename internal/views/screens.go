package views

import (
	"fmt"
	"strings"
)

type HeaderData struct {
	TargetName   string
	Countdown    string
	Overdue      bool
	NoTarget     bool
	ProgressView string
	SummaryLine  string
}

func RenderHeader(data HeaderData) string {
	var b strings.Builder
	switch {
	case data.NoTarget:
		b.WriteString(frozenStyle.Render("no upcoming deadline · timer frozen"))
	case data.Overdue:
		b.WriteString(overdueStyle.Render(fmt.Sprintf("🚨 %s: deadline passed! submit now!", data.TargetName)))
	default:
		b.WriteString(countdownStyle.Render(fmt.Sprintf("🔥 %s · %s", data.TargetName, data.Countdown)))
	}
	if data.ProgressView != "" {
		b.WriteString("\n" + data.ProgressView)
	}
	if data.SummaryLine != "" {
		b.WriteString("\n" + footerStyle.Render(data.SummaryLine))
	}
	return b.String()
}

type TabData struct {
	Label string
	Done  int
	Total int
}

func RenderTabs(tabs []TabData, active int) string {
	parts := make([]string, 0, len(tabs))
	for i, tab := range tabs {
		label := fmt.Sprintf("%s %d/%d", tab.Label, tab.Done, tab.Total)
		if i == active {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, inactiveTabStyle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

type TaskItemData struct {
	Title    string
	Assignee string
	Done     bool
	DueText  string
	Urgency  string
	Selected bool
}

type ChecklistData struct {
	Items        []TaskItemData
	Caption      string
	ProgressView string
	EmptyText    string
}

func RenderChecklist(data ChecklistData) string {
	if len(data.Items) == 0 {
		return frozenStyle.Render(data.EmptyText)
	}
	var b strings.Builder
	for _, item := range data.Items {
		cursor := "  "
		if item.Selected {
			cursor = "> "
		}
		box := "[ ]"
		if item.Done {
			box = "[x]"
		}
		label := item.Title
		if item.Assignee != "" {
			label = fmt.Sprintf("【%s】 %s", item.Assignee, item.Title)
		}
		line := fmt.Sprintf("%s%s %s", cursor, box, urgencyStyle(item.Urgency).Render(label))
		if item.DueText != "" {
			line += " " + urgencyStyle(item.Urgency).Render("("+item.DueText+")")
		}
		b.WriteString(line + "\n")
	}
	if data.Caption != "" {
		b.WriteString(footerStyle.Render(data.Caption) + "\n")
	}
	if data.ProgressView != "" {
		b.WriteString(data.ProgressView)
	}
	return strings.TrimRight(b.String(), "\n")
}

type FormData struct {
	CategoryView string
	TitleView    string
	AssigneeView string
	DueView      string
}

func RenderAddForm(data FormData) string {
	var b strings.Builder
	b.WriteString("add task\n")
	b.WriteString("song:     " + data.CategoryView + "\n")
	b.WriteString("title:    " + data.TitleView + "\n")
	b.WriteString("assignee: " + data.AssigneeView + "\n")
	b.WriteString("due:      " + data.DueView + "\n")
	b.WriteString(footerStyle.Render("enter: save · tab: next field · esc: cancel"))
	return b.String()
}

type FatalErrorData struct {
	Title  string
	Detail string
	Hint   string
}

// RenderFatalError is the blocking full-screen error: when the store is
// unreachable or its schema is wrong there is no partial UI to show.
func RenderFatalError(data FatalErrorData) string {
	var b strings.Builder
	b.WriteString(errorStyle.Bold(true).Render(data.Title) + "\n\n")
	b.WriteString(data.Detail)
	if data.Hint != "" {
		b.WriteString("\n\n" + footerStyle.Render(data.Hint))
	}
	return fatalStyle.Render(b.String())
}

type RefreshData struct {
	SpinnerView string
}

func RenderLoading(data RefreshData) string {
	return data.SpinnerView + " loading board…"
}
