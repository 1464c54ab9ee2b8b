package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/worktracker/internal/timecalc"
)

var (
	historyMonth string
	historyWeek  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed days and today's day in progress",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyMonth, "month", "", "Only show days of this month (YYYY-MM)")
	historyCmd.Flags().BoolVar(&historyWeek, "week", false, "Only show this week's days")
	historyCmd.MarkFlagsMutuallyExclusive("month", "week")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyMonth != "" {
		if _, err := time.Parse("2006-01", historyMonth); err != nil {
			return fmt.Errorf("invalid --month %q, use YYYY-MM", historyMonth)
		}
	}

	e := mustEnv(cmd)
	if historyWeek {
		from, to := timecalc.WeekRange(time.Now())
		e.out.HistoryTable(e.tracker.HistoryBetween(from, to))
		return nil
	}
	e.tracker.ShowHistory(historyMonth)
	return nil
}
