package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/worktracker/internal/model"
	"github.com/Tiliavir/worktracker/internal/timecalc"
	"github.com/Tiliavir/worktracker/internal/tracker"
)

var addForce bool

var addCmd = &cobra.Command{
	Use:   "add <date> <arrival> <lunch-start> <lunch-end> <departure>",
	Short: "Record a past day without prompts",
	Example: `  worktracker add 2024-01-10 08:00 12:00 13:00 16:00
  worktracker add 2024-01-10 08:30 12:00 12:45 17:00 --force`,
	Args: cobra.ExactArgs(5),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().BoolVar(&addForce, "force", false, "Replace an existing entry for the same date")
}

func runAdd(cmd *cobra.Command, args []string) error {
	day, err := parseDay(args)
	if err != nil {
		return err
	}

	e := mustEnv(cmd)
	saved, err := e.tracker.Backfill(day, addForce)
	if errors.Is(err, tracker.ErrExists) {
		return fmt.Errorf("%w (use --force to replace it)", err)
	}
	if err != nil {
		fatal(err)
	}
	e.out.DaySummary(fmt.Sprintf("Day %s saved!", saved.Date), saved)
	return nil
}

// parseDay builds a day from a date and its four times, in entry order.
func parseDay(args []string) (model.WorkDay, error) {
	if !timecalc.ValidDate(args[0]) {
		return model.WorkDay{}, tracker.ErrInvalidDate
	}
	day := model.NewDay(args[0])
	for i, f := range model.Fields {
		h, m, err := timecalc.ParseHHMM(args[i+1])
		if err != nil {
			return model.WorkDay{}, fmt.Errorf("%s: %w", f.Label(), err)
		}
		day.Set(f, model.Clock{Hour: h, Minute: m})
	}
	return day, nil
}
