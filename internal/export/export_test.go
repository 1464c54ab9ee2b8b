package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Tiliavir/worktracker/internal/model"
)

func TestCsvEscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"with space", "with space"},
		{"with,comma", `"with,comma"`},
		{`with"quote`, `"with""quote"`},
		{"with\nnewline", "\"with\nnewline\""},
		{"with\rreturn", "\"with\rreturn\""},
		{"", ""},
	}
	for _, tt := range tests {
		got := csvEscape(tt.input)
		if got != tt.want {
			t.Errorf("csvEscape(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func sampleDays() []model.WorkDay {
	a := model.NewDay("2024-01-10")
	a.Start = model.Clock{Hour: 8}
	a.LunchStart = model.Clock{Hour: 12}
	a.LunchEnd = model.Clock{Hour: 13}
	a.End = model.Clock{Hour: 16}
	a.Recompute()
	a.State = model.StateCompleted

	b := model.NewDay("2024-01-11")
	b.Start = model.Clock{Hour: 9}
	b.LunchStart = model.Clock{Hour: 12}
	b.LunchEnd = model.Clock{Hour: 12, Minute: 30}
	b.End = model.Clock{Hour: 17, Minute: 30}
	b.Recompute()
	b.State = model.StateCompleted
	return []model.WorkDay{a, b}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sampleDays()))
	want := "date,start,lunch_start,lunch_end,end,worked_minutes,excess_minutes,worked,difference\n" +
		"2024-01-10,08:00,12:00,13:00,16:00,420,-48,07:00,-00:48\n" +
		"2024-01-11,09:00,12:00,12:30,17:30,480,12,08:00,+00:12\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleDays()))

	var rows []Row
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-01-10", rows[0].Date)
	assert.Equal(t, -48, rows[0].ExcessMinutes)
	assert.Equal(t, "+00:12", rows[1].Difference)
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatMD, sampleDays()))
	out := buf.String()
	assert.Contains(t, out, "| 2024-01-10 | 08:00 | 12:00-13:00 | 16:00 | 07:00 | -00:48 |")
	assert.Contains(t, out, "**Total difference:** -00:36")
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, sampleDays()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, header, rows[0])
	assert.Equal(t, "2024-01-11", rows[2][0])
	assert.Equal(t, "480", rows[2][5])
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, "yaml", sampleDays())
	assert.ErrorContains(t, err, `unknown format "yaml"`)
	assert.Empty(t, buf.String())
}
