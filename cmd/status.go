package cmd

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's day in progress",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	e := mustEnv(cmd)
	if err := e.tracker.ShowStatus(); err != nil {
		fatal(err)
	}
	return nil
}
