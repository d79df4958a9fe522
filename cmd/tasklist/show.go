package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/query"
	"github.com/sandeepkv93/tasklist/internal/storage"
)

var (
	showList   int
	showTag    string
	showWindow string
	showSort   string

	exportFormat string
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show tasks filtered by list or tag and date window",
	Long: `Show tasks filtered by list or tag and date window.

Windows: all, today (due today or overdue), week (due within 7 days or
overdue), pending, completed. Sorts: date, priority.`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all lists and tasks to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	showCmd.Flags().IntVar(&showList, "list", 0, "only tasks in this list")
	showCmd.Flags().StringVar(&showTag, "tag", "", "only tasks with this tag")
	showCmd.Flags().StringVar(&showWindow, "window", "all", "all, today, week, pending or completed")
	showCmd.Flags().StringVar(&showSort, "sort", "", "date or priority (default from config)")
	showCmd.MarkFlagsMutuallyExclusive("list", "tag")
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "json or yaml")
	rootCmd.AddCommand(showCmd, exportCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	window, err := query.ParseWindow(showWindow)
	if err != nil {
		return err
	}
	return withApp(cmd, func(a *app) error {
		q := query.Query{ListID: showList, Tag: showTag, Window: window, Sort: a.cfg.Sort()}
		if cmd.Flags().Changed("sort") {
			if q.Sort, err = query.ParseCriterion(showSort); err != nil {
				return err
			}
		}
		if q.ListID > 0 {
			if _, ok := a.mgr.FindList(q.ListID); !ok {
				return fmt.Errorf("no list %d", q.ListID)
			}
		}
		printTasks(cmd, a, q.Describe(listName(a, q.ListID)), q.Apply(a.mgr.Tasks(), a.today()))
		return nil
	})
}

func sortTasks(tasks []model.Task, a *app) []model.Task {
	return query.Sort(tasks, a.cfg.Sort())
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := storage.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	return withApp(cmd, func(a *app) error {
		raw, err := storage.Encode(a.mgr.Snapshot(), format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(raw)
		return err
	})
}

// terminalWidth returns the stdout width, or 80 when it is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 80
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
