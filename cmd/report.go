package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/worktracker/internal/model"
	"github.com/Tiliavir/worktracker/internal/render"
	"github.com/Tiliavir/worktracker/internal/timecalc"
)

var reportBy string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show time worked and excess per week or month",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportBy, "by", "week", "Group by: week, month")
}

func runReport(cmd *cobra.Command, args []string) error {
	var (
		title string
		label func(string) string
	)
	switch reportBy {
	case "week":
		title, label = "Week", timecalc.ISOWeekLabel
	case "month":
		title, label = "Month", timecalc.MonthLabel
	default:
		return fmt.Errorf("invalid --by %q, use week or month", reportBy)
	}

	e := mustEnv(cmd)
	days, err := e.store.LoadAll()
	if err != nil {
		fatal(err)
	}
	e.out.SummaryTable(title, summarize(days, label))
	return nil
}

// summarize groups days by label. Groups keep the order of their first day,
// so chronologically stored days yield chronological groups.
func summarize(days []model.WorkDay, label func(date string) string) []render.Summary {
	var rows []render.Summary
	index := map[string]int{}
	for _, d := range days {
		l := label(d.Date)
		i, ok := index[l]
		if !ok {
			i = len(rows)
			index[l] = i
			rows = append(rows, render.Summary{Label: l})
		}
		rows[i].Days++
		rows[i].Worked += d.WorkedMinutes
		rows[i].Excess += d.ExcessMinutes
	}
	return rows
}
