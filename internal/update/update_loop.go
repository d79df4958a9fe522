package update

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/query"
	"github.com/sandeepkv93/tasklist/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		return m.handleKey(typed)
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.helpModel.Width = typed.Width
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.Cursor < len(m.Rows)-1 {
			m.Cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		m.toggleSelected()
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.Selected(); ok {
			_, err := m.mgr.RemoveTask(m.ctx, t.ID)
			m.report(fmt.Sprintf("removed #%d", t.ID), err)
		}
	case key.Matches(msg, m.keys.Window):
		m.Query.Window = m.Query.Window.Next()
		m.SearchTerm = ""
		m.refresh()
	case key.Matches(msg, m.keys.Sort):
		if m.Query.Sort == query.ByPriority {
			m.Query.Sort = query.ByDate
		} else {
			m.Query.Sort = query.ByPriority
		}
		m.refresh()
	case key.Matches(msg, m.keys.List):
		m.cycleList()
	case key.Matches(msg, m.keys.Tag):
		m.cycleTag()
	case key.Matches(msg, m.keys.Clear):
		n, err := m.mgr.RemoveCompletedTasks(m.ctx)
		m.report(fmt.Sprintf("removed %d completed task(s)", n), err)
	case key.Matches(msg, m.keys.Palette):
		m.Palette = CommandPaletteState{Active: true}
		m.commandInput.SetValue("")
		m.Status = StatusBar{Text: "command palette active"}
		blink := m.commandInput.Focus()
		return m, blink
	case key.Matches(msg, m.keys.Back):
		if m.SearchTerm != "" {
			m.SearchTerm = ""
			m.Status = StatusBar{Text: "search cleared"}
			m.refresh()
		}
	case key.Matches(msg, m.keys.Help):
		m.HelpVisible = !m.HelpVisible
	}
	return m, nil
}

func (m *Model) toggleSelected() {
	t, ok := m.Selected()
	if !ok {
		return
	}
	if t.Completed {
		_, err := m.mgr.UncompleteTask(m.ctx, t.ID)
		m.report(fmt.Sprintf("reopened #%d", t.ID), err)
		return
	}
	res, err := m.mgr.CompleteTask(m.ctx, t.ID)
	text := fmt.Sprintf("completed #%d", t.ID)
	if res.Next != nil {
		text += fmt.Sprintf(", next #%d due %s", res.Next.ID, model.FormatDate(res.Next.DueDate))
	}
	m.report(text, err)
}

// cycleList steps the list context: all lists, then each list in order.
func (m *Model) cycleList() {
	lists := m.mgr.Lists()
	m.Query.Tag = ""
	m.SearchTerm = ""
	i := slices.IndexFunc(lists, func(l model.TaskList) bool { return l.ID == m.Query.ListID })
	if i+1 < len(lists) {
		m.Query.ListID = lists[i+1].ID
	} else {
		m.Query.ListID = 0
	}
	m.refresh()
}

// cycleTag steps the tag context: no tag, then each tag in use.
func (m *Model) cycleTag() {
	tags := m.mgr.Tags()
	m.Query.ListID = 0
	m.SearchTerm = ""
	i := slices.IndexFunc(tags, func(tag string) bool { return strings.EqualFold(tag, m.Query.Tag) })
	if m.Query.Tag == "" {
		i = -1
	}
	if i+1 < len(tags) {
		m.Query.Tag = tags[i+1]
	} else {
		m.Query.Tag = ""
	}
	m.refresh()
}

func (m Model) View() string {
	header := "tasklist | " + m.Query.Describe(m.listName(m.Query.ListID))
	if m.SearchTerm != "" {
		header = fmt.Sprintf("tasklist | search %q · by %s", m.SearchTerm, m.Query.Sort)
	}

	selectedID := 0
	detail := "(no selection)"
	if t, ok := m.Selected(); ok {
		selectedID = t.ID
		detail = views.RenderTaskDetail(views.TaskDetailData{Task: t, ListName: m.listName(t.ListID), Today: m.today(), Width: 48})
	}
	if m.HelpVisible {
		detail = views.RenderHelp(m.keys.bindingLines())
	}

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = "status: error: " + m.Status.Text
		} else {
			status = "status: " + m.Status.Text
		}
	}
	palette := ""
	if m.Palette.Active {
		palette = m.commandInput.View()
	}

	return views.RenderApp(views.AppData{
		Header:      header,
		TablePane:   views.RenderTaskTable(views.TaskTableData{Tasks: m.Rows, ListNames: m.listNames(), Today: m.today(), SelectedID: selectedID}),
		DetailPane:  detail,
		StatusLine:  status,
		StatusError: m.Status.IsError,
		Palette:     palette,
		Footer:      m.helpModel.View(m.keys),
		Width:       m.width,
	})
}
