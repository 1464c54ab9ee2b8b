// Package export writes completed work days in machine-readable formats.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Tiliavir/worktracker/internal/model"
	"github.com/Tiliavir/worktracker/internal/timecalc"
)

// Supported formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatMD   = "md"
	FormatXLSX = "xlsx"
)

// Formats lists every format accepted by Write.
var Formats = []string{FormatCSV, FormatJSON, FormatMD, FormatXLSX}

// Binary reports whether format produces non-text output.
func Binary(format string) bool { return format == FormatXLSX }

// Row is one exported day.
type Row struct {
	Date          string `json:"date"`
	Start         string `json:"start"`
	LunchStart    string `json:"lunch_start"`
	LunchEnd      string `json:"lunch_end"`
	End           string `json:"end"`
	WorkedMinutes int    `json:"worked_minutes"`
	ExcessMinutes int    `json:"excess_minutes"`
	Worked        string `json:"worked"`
	Difference    string `json:"difference"`
}

// Rows converts days to export rows.
func Rows(days []model.WorkDay) []Row {
	rows := make([]Row, 0, len(days))
	for _, d := range days {
		rows = append(rows, Row{
			Date:          d.Date,
			Start:         d.Start.String(),
			LunchStart:    d.LunchStart.String(),
			LunchEnd:      d.LunchEnd.String(),
			End:           d.End.String(),
			WorkedMinutes: d.WorkedMinutes,
			ExcessMinutes: d.ExcessMinutes,
			Worked:        timecalc.FormatHHMM(d.WorkedMinutes),
			Difference:    timecalc.FormatSignedDelta(d.ExcessMinutes),
		})
	}
	return rows
}

var header = []string{
	"date", "start", "lunch_start", "lunch_end", "end",
	"worked_minutes", "excess_minutes", "worked", "difference",
}

func (r Row) fields() []string {
	return []string{
		r.Date, r.Start, r.LunchStart, r.LunchEnd, r.End,
		fmt.Sprint(r.WorkedMinutes), fmt.Sprint(r.ExcessMinutes), r.Worked, r.Difference,
	}
}

// Write encodes days to w in the given format.
func Write(w io.Writer, format string, days []model.WorkDay) error {
	rows := Rows(days)
	switch format {
	case FormatCSV:
		return writeCSV(w, rows)
	case FormatJSON:
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatMD:
		return writeMarkdown(w, rows)
	case FormatXLSX:
		return writeXLSX(w, rows)
	default:
		return fmt.Errorf("unknown format %q (use %s)", format, strings.Join(Formats, ", "))
	}
}

func writeCSV(w io.Writer, rows []Row) error {
	if _, err := fmt.Fprintln(w, strings.Join(header, ",")); err != nil {
		return err
	}
	for _, r := range rows {
		fs := r.fields()
		for i := range fs {
			fs[i] = csvEscape(fs[i])
		}
		if _, err := fmt.Fprintln(w, strings.Join(fs, ",")); err != nil {
			return err
		}
	}
	return nil
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func writeMarkdown(w io.Writer, rows []Row) error {
	var b strings.Builder
	b.WriteString("| Date | Start | Lunch | End | Time worked | Difference |\n")
	b.WriteString("|------|-------|-------|-----|-------------|------------|\n")
	total := 0
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %s | %s-%s | %s | %s | %s |\n",
			r.Date, r.Start, r.LunchStart, r.LunchEnd, r.End, r.Worked, r.Difference)
		total += r.ExcessMinutes
	}
	fmt.Fprintf(&b, "\n**Total difference:** %s\n", timecalc.FormatSignedDelta(total))
	_, err := io.WriteString(w, b.String())
	return err
}

const sheetName = "Work days"

func writeXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &head); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{
			r.Date, r.Start, r.LunchStart, r.LunchEnd, r.End,
			r.WorkedMinutes, r.ExcessMinutes, r.Worked, r.Difference,
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
