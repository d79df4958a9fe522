// Package main implements the tasklist CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

var (
	configPath   string
	dataFlag     string
	backendFlag  string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:          "tasklist",
	Short:        "Personal task lists with due dates, tags and recurrence",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runRoot,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/tasklist/config.toml)")
	flags.StringVar(&dataFlag, "data", "", "data file or sqlite database path")
	flags.StringVar(&backendFlag, "backend", "", "storage backend: json, yaml or sqlite")
	flags.StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn or error")
}

// runRoot starts the TUI on an interactive terminal and prints help otherwise.
func runRoot(cmd *cobra.Command, args []string) error {
	if !isTerminal() {
		return cmd.Help()
	}
	return runTUI(cmd, args)
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
