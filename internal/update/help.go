package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/cowritehq/sprinter/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.bindings() {
		plain = append(plain, fmt.Sprintf("- **%s**: %s", kb.Key, kb.Action))
	}
	md := "# keys\n\n" + strings.Join(plain, "\n") + "\n\n" + dueNotes
	return views.RenderMarkdown(md) + "\n" + m.helpModel.View(helpKeyMap{
		short: bindings,
		full:  [][]key.Binding{bindings},
	})
}

func (m Model) bindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.keys.PrevTab + "/" + m.keys.NextTab, Action: "previous/next song tab"},
		{Key: m.keys.Down + "/" + m.keys.Up, Action: "move selection"},
		{Key: "space", Action: "toggle task done"},
		{Key: m.keys.Add, Action: "add a task"},
		{Key: m.keys.Delete, Action: "delete the selected task"},
		{Key: m.keys.ClearDone, Action: "delete completed tasks on this tab"},
		{Key: m.keys.Refresh, Action: "reload from the store"},
		{Key: m.keys.Help, Action: "toggle this help"},
		{Key: m.keys.Quit, Action: "quit"},
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.bindings()))
	for _, kb := range m.bindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}

const dueNotes = "Due cells accept `2026-01-14 15:00`, `1/14 15:00`, `1/14` and " +
	"full-width digits. A cell that cannot be parsed is kept and shown as written."
