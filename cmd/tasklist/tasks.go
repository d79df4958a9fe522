package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/views"
)

// taskFlags holds the task field flags shared by add and edit.
type taskFlags struct {
	list     int
	due      string
	priority string
	tags     []string
	notes    string
	repeat   string
	title    string
	clearDue bool
}

func (f *taskFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&f.list, "list", 0, "list id (default: first list)")
	fs.StringVar(&f.due, "due", "", "due date, YYYY-MM-DD")
	fs.StringVar(&f.priority, "priority", "", "high, medium, low or none")
	fs.StringSliceVar(&f.tags, "tag", nil, "tag; repeat or separate with commas")
	fs.StringVar(&f.notes, "notes", "", "free-form notes, markdown allowed")
	fs.StringVar(&f.repeat, "repeat", "", "daily, weekly, monthly, yearly or never")
}

func cleanTags(raw []string) []string {
	return model.ParseTags(strings.Join(raw, ","))
}

var (
	addFlags  taskFlags
	editFlags taskFlags
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change fields of a task; only the given flags apply",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runDone,
}

var undoneCmd = &cobra.Command{
	Use:   "undone <id>",
	Short: "Mark a task pending again",
	Args:  cobra.ExactArgs(1),
	RunE:  runUndone,
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

var clearCompletedCmd = &cobra.Command{
	Use:   "clear-completed",
	Short: "Delete every completed task",
	Args:  cobra.NoArgs,
	RunE:  runClearCompleted,
}

var viewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one task with its notes",
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Find tasks whose title, notes or tags contain term",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags in use",
	Args:  cobra.NoArgs,
	RunE:  runTags,
}

func init() {
	addFlags.register(addCmd.Flags())
	editFlags.register(editCmd.Flags())
	editCmd.Flags().StringVar(&editFlags.title, "title", "", "new title")
	editCmd.Flags().BoolVar(&editFlags.clearDue, "clear-due", false, "remove the due date")
	rootCmd.AddCommand(addCmd, editCmd, doneCmd, undoneCmd, rmCmd, clearCompletedCmd, viewCmd, searchCmd, tagsCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	draft := model.TaskDraft{
		Title:  strings.Join(args, " "),
		ListID: addFlags.list,
		Tags:   cleanTags(addFlags.tags),
		Notes:  addFlags.notes,
	}
	var err error
	if draft.DueDate, err = parseOptionalDate(addFlags.due); err != nil {
		return err
	}
	if draft.Priority, err = model.ParsePriority(addFlags.priority); err != nil {
		return err
	}
	if draft.Recurrence, err = model.ParseRecurrence(addFlags.repeat); err != nil {
		return err
	}
	return withApp(cmd, func(a *app) error {
		if draft.ListID == 0 {
			draft.ListID = a.mgr.Lists()[0].ID
		}
		t, err := a.mgr.AddTask(cmd.Context(), draft)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added #%d %s\n", t.ID, t.Title)
		return nil
	})
}

func buildPatch(fs *pflag.FlagSet, f taskFlags) (model.TaskPatch, error) {
	var patch model.TaskPatch
	if fs.Changed("title") {
		patch.Title = &f.title
	}
	if fs.Changed("list") {
		patch.ListID = &f.list
	}
	if fs.Changed("due") {
		due, err := model.ParseDate(f.due)
		if err != nil {
			return patch, err
		}
		patch.DueDate = &due
	}
	patch.ClearDueDate = f.clearDue
	if fs.Changed("priority") {
		p, err := model.ParsePriority(f.priority)
		if err != nil {
			return patch, err
		}
		patch.Priority = &p
	}
	if fs.Changed("tag") {
		tags := cleanTags(f.tags)
		patch.Tags = &tags
	}
	if fs.Changed("notes") {
		patch.Notes = &f.notes
	}
	if fs.Changed("repeat") {
		r, err := model.ParseRecurrence(f.repeat)
		if err != nil {
			return patch, err
		}
		patch.Recurrence = &r
	}
	return patch, nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	patch, err := buildPatch(cmd.Flags(), editFlags)
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		return fmt.Errorf("nothing to change; pass at least one field flag")
	}
	return withApp(cmd, func(a *app) error {
		t, err := a.mgr.EditTask(cmd.Context(), id, patch)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), views.TaskLine(t, listName(a, t.ListID), a.today()))
		return nil
	})
}

func runDone(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withApp(cmd, func(a *app) error {
		res, err := a.mgr.CompleteTask(cmd.Context(), id)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "completed #%d %s\n", res.Task.ID, res.Task.Title)
		if res.Next != nil {
			fmt.Fprintf(out, "next #%d due %s\n", res.Next.ID, model.FormatDate(res.Next.DueDate))
		}
		return nil
	})
}

func runUndone(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withApp(cmd, func(a *app) error {
		t, err := a.mgr.UncompleteTask(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "reopened #%d %s\n", t.ID, t.Title)
		return nil
	})
}

func runRm(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withApp(cmd, func(a *app) error {
		if _, err := a.mgr.RemoveTask(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed #%d\n", id)
		return nil
	})
}

func runClearCompleted(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) error {
		n, err := a.mgr.RemoveCompletedTasks(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d completed task(s)\n", n)
		return nil
	})
}

func runView(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withApp(cmd, func(a *app) error {
		t, ok := a.mgr.FindTask(id)
		if !ok {
			return fmt.Errorf("no task #%d", id)
		}
		fmt.Fprintln(cmd.OutOrStdout(), views.RenderTaskDetail(views.TaskDetailData{
			Task:     t,
			ListName: listName(a, t.ListID),
			Today:    a.today(),
			Width:    terminalWidth(),
		}))
		return nil
	})
}

func runSearch(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) error {
		tasks := a.mgr.SearchTasks(strings.Join(args, " "))
		printTasks(cmd, a, "", sortTasks(tasks, a))
		return nil
	})
}

func runTags(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) error {
		for _, tag := range a.mgr.Tags() {
			fmt.Fprintln(cmd.OutOrStdout(), tag)
		}
		return nil
	})
}

func listName(a *app, id int) string {
	if l, ok := a.mgr.FindList(id); ok {
		return l.Name
	}
	return ""
}

func listNames(a *app) map[int]string {
	names := make(map[int]string)
	for _, l := range a.mgr.Lists() {
		names[l.ID] = l.Name
	}
	return names
}

func printTasks(cmd *cobra.Command, a *app, heading string, tasks []model.Task) {
	fmt.Fprintln(cmd.OutOrStdout(), views.RenderTaskTable(views.TaskTableData{
		Heading:   heading,
		Tasks:     tasks,
		ListNames: listNames(a),
		Today:     a.today(),
	}))
}
