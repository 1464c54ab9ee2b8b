package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Tiliavir/worktracker/internal/model"
)

func TestRecompute(t *testing.T) {
	tests := []struct {
		name                       string
		start, lunchS, lunchE, end model.Clock
		wantWorked, wantExcess     int
	}{
		{
			name:  "overtime",
			start: model.Clock{Hour: 9}, lunchS: model.Clock{Hour: 12},
			lunchE: model.Clock{Hour: 12, Minute: 30}, end: model.Clock{Hour: 17, Minute: 30},
			wantWorked: 480, wantExcess: 12,
		},
		{
			name:  "departure at expected end",
			start: model.Clock{Hour: 9}, lunchS: model.Clock{Hour: 12},
			lunchE: model.Clock{Hour: 12, Minute: 30}, end: model.Clock{Hour: 17, Minute: 18},
			wantWorked: 468, wantExcess: 0,
		},
		{
			name:  "deficit",
			start: model.Clock{Hour: 8}, lunchS: model.Clock{Hour: 12},
			lunchE: model.Clock{Hour: 13}, end: model.Clock{Hour: 16},
			wantWorked: 420, wantExcess: -48,
		},
		{
			name:  "exact",
			start: model.Clock{Hour: 8}, lunchS: model.Clock{Hour: 12},
			lunchE: model.Clock{Hour: 12, Minute: 30}, end: model.Clock{Hour: 16, Minute: 18},
			wantWorked: 468, wantExcess: 0,
		},
		{
			name:  "out of order times are not corrected",
			start: model.Clock{Hour: 12}, lunchS: model.Clock{Hour: 9},
			lunchE: model.Clock{Hour: 10}, end: model.Clock{Hour: 10},
			wantWorked: -180, wantExcess: -648,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := model.NewDay("2024-01-10")
			d.Start, d.LunchStart, d.LunchEnd, d.End = tt.start, tt.lunchS, tt.lunchE, tt.end
			d.Recompute()
			assert.Equal(t, tt.wantWorked, d.WorkedMinutes)
			assert.Equal(t, tt.wantExcess, d.ExcessMinutes)
		})
	}
}

func TestExpectedEnd(t *testing.T) {
	d := model.NewDay("2024-01-10")
	d.Start = model.Clock{Hour: 9}
	d.LunchStart = model.Clock{Hour: 12}
	d.LunchEnd = model.Clock{Hour: 12, Minute: 30}
	assert.Equal(t, model.Clock{Hour: 17, Minute: 18}, d.ExpectedEnd())
	assert.Equal(t, "17:18", d.ExpectedEnd().String())
}

func TestSetGetHas(t *testing.T) {
	d := model.NewDay("2024-01-10")
	for i, f := range model.Fields {
		d.Set(f, model.Clock{Hour: 8 + i, Minute: i})
	}
	for i, f := range model.Fields {
		assert.Equal(t, model.Clock{Hour: 8 + i, Minute: i}, d.Get(f))
	}

	d.State = model.StateLunchStart
	assert.True(t, d.Has(model.FieldStart))
	assert.True(t, d.Has(model.FieldLunchStart))
	assert.False(t, d.Has(model.FieldLunchEnd))
	assert.False(t, d.Has(model.FieldEnd))
}

func TestStateNextStep(t *testing.T) {
	assert.Equal(t, "Record arrival time", model.StateNew.NextStep())
	assert.Equal(t, "Record departure time", model.StateLunchEnd.NextStep())
	assert.Equal(t, "Unknown", model.StateCompleted.NextStep())
	assert.Equal(t, "lunch ended", model.StateLunchEnd.String())
}
