package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// configPath overrides ~/.worktracker/config.yaml when set.
var configPath string

var rootCmd = &cobra.Command{
	Use:   "worktracker",
	Short: "Work hours tracker – arrival, lunch break and departure times",
	Long: `worktracker records arrival, lunch break and departure times, compares
the time worked with the required 7h48 per day and keeps the completed days
in a compact binary log under ~/.local/bin.

Run without arguments for the interactive menu.`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.worktracker/config.yaml)")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
}
