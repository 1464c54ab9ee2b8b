package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Tiliavir/worktracker/internal/model"
	"github.com/Tiliavir/worktracker/internal/render"
	"github.com/Tiliavir/worktracker/internal/timecalc"
)

func day(date string, worked int) model.WorkDay {
	d := model.NewDay(date)
	d.WorkedMinutes = worked
	d.ExcessMinutes = worked - model.RequiredMinutes
	d.State = model.StateCompleted
	return d
}

func TestSummarize(t *testing.T) {
	days := []model.WorkDay{
		day("2024-04-29", 480),
		day("2024-05-03", 420),
		day("2024-05-06", 468),
	}

	byWeek := summarize(days, timecalc.ISOWeekLabel)
	assert.Equal(t, []render.Summary{
		{Label: "2024-W18", Days: 2, Worked: 900, Excess: -36},
		{Label: "2024-W19", Days: 1, Worked: 468, Excess: 0},
	}, byWeek)

	byMonth := summarize(days, timecalc.MonthLabel)
	assert.Equal(t, []render.Summary{
		{Label: "2024-04", Days: 1, Worked: 480, Excess: 12},
		{Label: "2024-05", Days: 2, Worked: 888, Excess: -48},
	}, byMonth)

	assert.Empty(t, summarize(nil, timecalc.MonthLabel))
}

func TestFilterMonth(t *testing.T) {
	days := []model.WorkDay{day("2024-04-30", 480), day("2024-05-01", 480), day("2024-05-31", 480)}
	assert.Len(t, filterMonth(days, ""), 3)
	got := filterMonth(days, "2024-05")
	assert.Len(t, got, 2)
	assert.Equal(t, "2024-05-01", got[0].Date)
}
