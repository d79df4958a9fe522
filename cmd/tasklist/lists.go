package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tasklist/internal/views"
)

var listsCmd = &cobra.Command{
	Use:     "lists",
	Short:   "Show task lists",
	Aliases: []string{"list"},
	Args:    cobra.NoArgs,
	RunE:    runLists,
}

var listsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a list",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runListsAdd,
}

var listsRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a list",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runListsRename,
}

var listsRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Short:   "Delete a list and all of its tasks",
	Aliases: []string{"remove"},
	Args:    cobra.ExactArgs(1),
	RunE:    runListsRm,
}

func init() {
	rootCmd.AddCommand(listsCmd)
	listsCmd.AddCommand(listsAddCmd, listsRenameCmd, listsRmCmd)
}

func runLists(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) error {
		tasks := a.mgr.Tasks()
		items := make([]views.ListSummary, 0)
		for _, l := range a.mgr.Lists() {
			item := views.ListSummary{List: l}
			for _, t := range tasks {
				if t.ListID != l.ID {
					continue
				}
				item.Total++
				if !t.Completed {
					item.Pending++
				}
			}
			items = append(items, item)
		}
		fmt.Fprintln(cmd.OutOrStdout(), views.RenderLists(items))
		return nil
	})
}

func runListsAdd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) error {
		l, err := a.mgr.AddList(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created list %d %s\n", l.ID, l.Name)
		return nil
	})
}

func runListsRename(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withApp(cmd, func(a *app) error {
		l, err := a.mgr.EditList(cmd.Context(), id, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "renamed list %d to %s\n", l.ID, l.Name)
		return nil
	})
}

func runListsRm(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withApp(cmd, func(a *app) error {
		if _, err := a.mgr.RemoveList(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed list %d\n", id)
		return nil
	})
}
