package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/sandeepkv93/tasklist/internal/model"
)

// TitleWidth bounds the title column of task rows.
const TitleWidth = 40

type TaskTableData struct {
	Heading   string
	Tasks     []model.Task
	ListNames map[int]string
	Today     time.Time
	// SelectedID marks a row with a cursor; 0 renders no cursor column.
	SelectedID int
}

type TaskDetailData struct {
	Task     model.Task
	ListName string
	Today    time.Time
	Width    int
}

type ListSummary struct {
	List    model.TaskList
	Pending int
	Total   int
}

// RenderTaskTable renders one task per line:
//
//	#3  [ ] 2024-03-01  high    Pay rent  (General) #bills
//
// Overdue pending tasks carry a trailing "!overdue".
func RenderTaskTable(data TaskTableData) string {
	var b strings.Builder
	if data.Heading != "" {
		b.WriteString(data.Heading + "\n")
	}
	if len(data.Tasks) == 0 {
		b.WriteString("(no tasks)")
		return b.String()
	}
	for _, t := range data.Tasks {
		if data.SelectedID != 0 {
			cursor := " "
			if t.ID == data.SelectedID {
				cursor = ">"
			}
			b.WriteString(cursor + " ")
		}
		b.WriteString(TaskLine(t, data.ListNames[t.ListID], data.Today))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func TaskLine(t model.Task, listName string, today time.Time) string {
	due := model.FormatDate(t.DueDate)
	if due == "" {
		due = "-"
	}
	line := fmt.Sprintf("#%-3d %s %-10s  %-6s  %s", t.ID, checkbox(t), due, t.Priority, truncate.StringWithTail(t.Title, TitleWidth, "…"))
	if listName != "" {
		line += "  (" + listName + ")"
	}
	for _, tag := range t.Tags {
		line += " #" + tag
	}
	if t.Recurrence != model.RecurrenceNever && t.Recurrence != "" {
		line += " ↻" + string(t.Recurrence)
	}
	if t.Overdue(today) {
		line += " !overdue"
	}
	return line
}

func checkbox(t model.Task) string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}

func RenderTaskDetail(data TaskDetailData) string {
	t := data.Task
	width := data.Width
	if width <= 0 {
		width = 72
	}
	status := "pending"
	if t.Completed {
		status = "completed"
	} else if t.Overdue(data.Today) {
		status = "overdue"
	}
	due := model.FormatDate(t.DueDate)
	if due == "" {
		due = "(none)"
	}
	tags := strings.Join(t.Tags, ", ")
	if tags == "" {
		tags = "(none)"
	}

	var b strings.Builder
	b.WriteString(wordwrap.String(fmt.Sprintf("#%d %s", t.ID, t.Title), width) + "\n")
	fmt.Fprintf(&b, "list: %s\n", data.ListName)
	fmt.Fprintf(&b, "status: %s\n", status)
	fmt.Fprintf(&b, "due: %s\n", due)
	fmt.Fprintf(&b, "priority: %s\n", t.Priority)
	fmt.Fprintf(&b, "repeat: %s\n", t.Recurrence)
	fmt.Fprintf(&b, "tags: %s\n", tags)
	if notes := RenderMarkdown(t.Notes, width); notes != "" {
		b.WriteString("notes:\n" + notes + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderLists(items []ListSummary) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "%d  %s  (%d pending / %d total)\n", item.List.ID, item.List.Name, item.Pending, item.Total)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderHelp(bindings []string) string {
	return "help:\n" + strings.Join(bindings, "\n")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return "command: /" + input
}
