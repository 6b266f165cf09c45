package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header     string
	Tabs       string
	Checklist  string
	Form       string
	StatusLine string
	IsError    bool
	Footer     string
	Help       string
}

var (
	countdownStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	overdueStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).Blink(true)
	frozenStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	fatalStyle     = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("9")).Padding(1, 2)

	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("57")).Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)

	doneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Strikethrough(true)
	overdueTask    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dueSoonStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	dueWarnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dueNormalStyle = lipgloss.NewStyle()
	noDueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

func RenderApp(data AppData) string {
	lines := []string{data.Header}
	if data.Tabs != "" {
		lines = append(lines, data.Tabs)
	}
	body := data.Checklist
	if data.Form != "" {
		body = data.Form
	}
	lines = append(lines, panelStyle.Render(body))
	status := statusStyle.Render(data.StatusLine)
	if data.IsError {
		status = errorStyle.Render(data.StatusLine)
	}
	lines = append(lines, status)
	if data.Help != "" {
		lines = append(lines, panelStyle.Render(data.Help))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// urgencyStyle picks the lipgloss style for one urgency class; the
// strings match model.Urgency values.
func urgencyStyle(urgency string) lipgloss.Style {
	switch urgency {
	case "Done":
		return doneStyle
	case "Overdue":
		return overdueTask
	case "DueSoon":
		return dueSoonStyle
	case "DueWarn":
		return dueWarnStyle
	case "NoDue":
		return noDueStyle
	default:
		return dueNormalStyle
	}
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
