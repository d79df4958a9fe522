// Package update is the bubbletea interface over a task manager.
package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/tasklist/internal/manager"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/query"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Options tunes a new Model. Zero values pick the defaults.
type Options struct {
	Today func() time.Time
	Sort  query.Criterion
}

type Model struct {
	Query query.Query
	// SearchTerm, when set, replaces the query results with search matches.
	SearchTerm  string
	Rows        []model.Task
	Cursor      int
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Quitting    bool

	ctx          context.Context
	mgr          *manager.Manager
	today        func() time.Time
	keys         keyMap
	commandInput textinput.Model
	helpModel    help.Model
	width        int
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

func NewModel(ctx context.Context, mgr *manager.Manager, opts Options) Model {
	m := Model{
		Query: query.Query{Window: query.WindowAll, Sort: opts.Sort},
		ctx:   ctx,
		mgr:   mgr,
		today: opts.Today,
		keys:  defaultKeyMap(),
	}
	if m.Query.Sort == "" {
		m.Query.Sort = query.ByDate
	}
	if m.today == nil {
		m.today = func() time.Time { return model.Day(time.Now()) }
	}
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 60
	m.helpModel = help.New()
	m.refresh()
	if err := mgr.SyncErr(); err != nil {
		m.Status = StatusBar{Text: "warning: " + err.Error(), IsError: true}
	}
	return m
}

// Selected returns the task under the cursor.
func (m Model) Selected() (model.Task, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Rows) {
		return model.Task{}, false
	}
	return m.Rows[m.Cursor], true
}

// refresh recomputes Rows from the manager and keeps the cursor on the same
// task when it is still visible.
func (m *Model) refresh() {
	selectedID := 0
	if t, ok := m.Selected(); ok {
		selectedID = t.ID
	}
	if m.SearchTerm != "" {
		m.Rows = query.Sort(m.mgr.SearchTasks(m.SearchTerm), m.Query.Sort)
	} else {
		m.Rows = m.Query.Apply(m.mgr.Tasks(), m.today())
	}
	for i, t := range m.Rows {
		if t.ID == selectedID {
			m.Cursor = i
			return
		}
	}
	m.Cursor = min(m.Cursor, len(m.Rows)-1)
	m.Cursor = max(m.Cursor, 0)
}

// report sets the status from the result of a manager call. A successful call
// still shows a warning while the stored copy is stale.
func (m *Model) report(text string, err error) {
	switch {
	case err != nil:
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	case m.mgr.SyncErr() != nil:
		m.Status = StatusBar{Text: text + " (warning: not saved: " + m.mgr.SyncErr().Error() + ")", IsError: true}
	default:
		m.Status = StatusBar{Text: text}
	}
	m.refresh()
}

func (m Model) listName(id int) string {
	if l, ok := m.mgr.FindList(id); ok {
		return l.Name
	}
	return ""
}

func (m Model) listNames() map[int]string {
	names := make(map[int]string)
	for _, l := range m.mgr.Lists() {
		names[l.ID] = l.Name
	}
	return names
}
