package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tasklist/internal/commands"
	"github.com/sandeepkv93/tasklist/internal/model"
)

// handlePaletteKey routes keys to the palette input until Enter runs the
// line or Esc dismisses it. The input's own command (cursor blink) is
// passed back to the program.
func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case tea.KeyEnter:
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand(), nil
	case tea.KeySpace:
		if len(msg.Runes) == 0 {
			msg.Runes = []rune{' '}
		}
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m *Model) closePalette() {
	m.Palette = CommandPaletteState{}
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			draft := a.Draft
			if draft.ListID == 0 {
				draft.ListID = m.defaultListID()
			}
			t, err := m.mgr.AddTask(m.ctx, draft)
			return commands.Result{Message: fmt.Sprintf("added #%d %s", t.ID, t.Title)}, err
		},
		Done: func(a commands.TargetArgs) (commands.Result, error) {
			res, err := m.mgr.CompleteTask(m.ctx, a.ID)
			msg := fmt.Sprintf("completed #%d", a.ID)
			if res.Next != nil {
				msg += fmt.Sprintf(", next #%d due %s", res.Next.ID, model.FormatDate(res.Next.DueDate))
			}
			return commands.Result{Message: msg}, err
		},
		Undo: func(a commands.TargetArgs) (commands.Result, error) {
			_, err := m.mgr.UncompleteTask(m.ctx, a.ID)
			return commands.Result{Message: fmt.Sprintf("reopened #%d", a.ID)}, err
		},
		Remove: func(a commands.TargetArgs) (commands.Result, error) {
			_, err := m.mgr.RemoveTask(m.ctx, a.ID)
			return commands.Result{Message: fmt.Sprintf("removed #%d", a.ID)}, err
		},
		Search: func(a commands.SearchArgs) (commands.Result, error) {
			m.SearchTerm = a.Term
			n := len(m.mgr.SearchTasks(a.Term))
			return commands.Result{Message: fmt.Sprintf("%d match(es) for %q, esc to clear", n, a.Term)}, nil
		},
		Show: func(a commands.ShowArgs) (commands.Result, error) {
			q := a.Query
			if q.Sort == "" {
				q.Sort = m.Query.Sort
			}
			if q.ListID > 0 {
				if _, ok := m.mgr.FindList(q.ListID); !ok {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no list %d", q.ListID)}
				}
			}
			m.Query = q
			m.SearchTerm = ""
			m.Cursor = 0
			return commands.Result{Message: "showing " + q.Describe(m.listName(q.ListID))}, nil
		},
		NewList: func(a commands.NewListArgs) (commands.Result, error) {
			l, err := m.mgr.AddList(m.ctx, a.Name)
			return commands.Result{Message: fmt.Sprintf("created list %d %s", l.ID, l.Name)}, err
		},
		Clear: func() (commands.Result, error) {
			n, err := m.mgr.RemoveCompletedTasks(m.ctx)
			return commands.Result{Message: fmt.Sprintf("removed %d completed task(s)", n)}, err
		},
	})
	m.report(res.Message, err)
	return m
}

// defaultListID is the list in context, or the first list.
func (m Model) defaultListID() int {
	if m.Query.ListID > 0 {
		return m.Query.ListID
	}
	if lists := m.mgr.Lists(); len(lists) > 0 {
		return lists[0].ID
	}
	return 0
}
