// Package render prints work days to the console using lipgloss styles.
package render

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/Tiliavir/worktracker/internal/model"
	"github.com/Tiliavir/worktracker/internal/timecalc"
)

// Color modes accepted by New.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const rule = "==========================================="

// Renderer writes formatted output to one writer.
type Renderer struct {
	out    io.Writer
	styled bool

	title   lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	plus    lipgloss.Style
	minus   lipgloss.Style
	header  lipgloss.Style
	box     lipgloss.Style
	pending lipgloss.Style
}

// New returns a Renderer for out. In auto mode styling is enabled only when
// out is a terminal.
func New(out io.Writer, color string) *Renderer {
	styled := false
	switch color {
	case ColorAlways:
		styled = true
	case ColorNever:
	default:
		if f, ok := out.(*os.File); ok {
			styled = term.IsTerminal(int(f.Fd()))
		}
	}

	r := &Renderer{out: out, styled: styled}
	lr := lipgloss.NewRenderer(out)
	plain := lr.NewStyle()
	r.title, r.ok, r.warn, r.plus, r.minus, r.header, r.pending = plain, plain, plain, plain, plain, plain, plain
	r.box = lr.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 2)
	if styled {
		r.title = lr.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Padding(0, 1)
		r.ok = lr.NewStyle().Foreground(lipgloss.Color("#04B575"))
		r.warn = lr.NewStyle().Foreground(lipgloss.Color("#F7DC6F")).Bold(true)
		r.plus = lr.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
		r.minus = lr.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
		r.header = lr.NewStyle().Bold(true)
		r.pending = lr.NewStyle().Foreground(lipgloss.Color("#626262")).Italic(true)
		r.box = r.box.BorderForeground(lipgloss.Color("#874BFD"))
	}
	return r
}

// Out returns the underlying writer.
func (r *Renderer) Out() io.Writer { return r.out }

// Printf writes formatted text unchanged.
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Banner prints a boxed title.
func (r *Renderer) Banner(title string) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.box.Render(r.title.Render(title)))
}

// Success prints a confirmation line.
func (r *Renderer) Success(msg string) {
	fmt.Fprintln(r.out, r.ok.Render("✓ "+msg))
}

// Warning prints a highlighted notice.
func (r *Renderer) Warning(msg string) {
	fmt.Fprintln(r.out, r.warn.Render("⚠️  "+msg))
}

// Delta formats a signed minute delta, colored by sign.
func (r *Renderer) Delta(minutes int) string {
	s := timecalc.FormatSignedDelta(minutes)
	if minutes < 0 {
		return r.minus.Render(s)
	}
	return r.plus.Render(s)
}

// Recorded lists the times already captured for an in-progress day.
func (r *Renderer) Recorded(d model.WorkDay) {
	for _, f := range model.Fields {
		if f == model.FieldEnd || !d.Has(f) {
			continue
		}
		fmt.Fprintln(r.out, r.ok.Render(fmt.Sprintf("✓ %s: %s", f.Label(), d.Get(f))))
	}
}

// ExpectedEnd prints the projected departure time.
func (r *Renderer) ExpectedEnd(c model.Clock) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, rule)
	fmt.Fprintf(r.out, "You should finish at: %s\n", r.header.Render(c.String()))
	fmt.Fprintln(r.out, rule)
}

// DaySummary prints the totals of a completed day under title.
func (r *Renderer) DaySummary(title string, d model.WorkDay) {
	fmt.Fprintln(r.out)
	r.Success(title)
	fmt.Fprintln(r.out, rule)
	fmt.Fprintf(r.out, "Date:            %s\n", d.Date)
	fmt.Fprintf(r.out, "Arrival:         %s\n", d.Start)
	fmt.Fprintf(r.out, "Lunch break:     %s - %s\n", d.LunchStart, d.LunchEnd)
	fmt.Fprintf(r.out, "Departure:       %s\n", d.End)
	fmt.Fprintln(r.out, "-------------------------------------------")
	fmt.Fprintf(r.out, "Time worked:     %s\n", timecalc.FormatHHMM(d.WorkedMinutes))
	fmt.Fprintf(r.out, "Required:        %s\n", timecalc.FormatHHMM(model.RequiredMinutes))
	fmt.Fprintf(r.out, "Difference:      %s\n", r.Delta(d.ExcessMinutes))
	fmt.Fprintln(r.out, rule)
}

// CurrentValues prints the four times of a stored day.
func (r *Renderer) CurrentValues(d model.WorkDay) {
	fmt.Fprintln(r.out, "Current values:")
	fmt.Fprintf(r.out, "  Arrival:     %s\n", d.Start)
	fmt.Fprintf(r.out, "  Lunch start: %s\n", d.LunchStart)
	fmt.Fprintf(r.out, "  Lunch end:   %s\n", d.LunchEnd)
	fmt.Fprintf(r.out, "  Departure:   %s\n", d.End)
	fmt.Fprintln(r.out)
}

// Status prints an in-progress day, its projection and the next step.
func (r *Renderer) Status(d model.WorkDay) {
	r.Banner("DAY IN PROGRESS")
	fmt.Fprintf(r.out, "\nDate: %s\n", d.Date)
	r.Recorded(d)
	if d.State >= model.StateLunchEnd {
		fmt.Fprintf(r.out, "\n→ Expected end time: %s\n", d.ExpectedEnd())
	}
	fmt.Fprintf(r.out, "\nNext step: %s\n", d.State.NextStep())
}

func (r *Renderer) newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...)
}

func dayRow(d model.WorkDay) []string {
	return []string{
		d.Date,
		d.Start.String(),
		d.LunchStart.String() + "-" + d.LunchEnd.String(),
		d.End.String(),
		timecalc.FormatHHMM(d.WorkedMinutes),
	}
}

// ModifyTable prints completed days numbered from 1.
func (r *Renderer) ModifyTable(days []model.WorkDay) {
	t := r.newTable("ID", "Date", "Start", "Lunch", "End", "Time worked", "Difference")
	for i, d := range days {
		row := append([]string{strconv.Itoa(i + 1)}, dayRow(d)...)
		t.Row(append(row, r.Delta(d.ExcessMinutes))...)
	}
	fmt.Fprintln(r.out, t.Render())
}

// History is what the history view prints.
type History struct {
	Days        []model.WorkDay
	InProgress  *model.WorkDay
	TotalExcess int
}

// HistoryTable prints completed days, an optional in-progress row and the
// excess total of the completed days.
func (r *Renderer) HistoryTable(h History) {
	if len(h.Days) == 0 && h.InProgress == nil {
		fmt.Fprintln(r.out, "\nNo history found.")
		return
	}
	required := timecalc.FormatHHMM(model.RequiredMinutes)
	t := r.newTable("Date", "Start", "Lunch", "End", "Time worked", "Required", "Difference")
	for _, d := range h.Days {
		t.Row(append(dayRow(d), required, r.Delta(d.ExcessMinutes))...)
	}
	if d := h.InProgress; d != nil {
		t.Row(inProgressRow(*d, required, r.pending)...)
	}
	fmt.Fprintln(r.out, t.Render())

	if len(h.Days) > 0 {
		suffix := ""
		if h.InProgress != nil {
			suffix = " (excluding day in progress)"
		}
		fmt.Fprintf(r.out, "TOTAL MONTH EXCESS: %s%s\n", r.Delta(h.TotalExcess), suffix)
	}
}

func inProgressRow(d model.WorkDay, required string, pending lipgloss.Style) []string {
	start := "--:--"
	if d.State >= model.StateStarted {
		start = d.Start.String()
	}
	lunch := "--:-----:--"
	switch {
	case d.State >= model.StateLunchEnd:
		lunch = d.LunchStart.String() + "-" + d.LunchEnd.String()
	case d.State >= model.StateLunchStart:
		lunch = d.LunchStart.String() + "-??:??"
	}
	end := "??:??"
	if d.State >= model.StateLunchEnd {
		end = "~" + d.ExpectedEnd().String()
	}
	progress := pending.Render("IN PROGRESS")
	return []string{d.Date, start, lunch, end, progress, required, progress}
}

// Summary is one line of a grouped excess report.
type Summary struct {
	Label  string
	Days   int
	Worked int
	Excess int
}

// SummaryTable prints grouped totals followed by the grand total.
func (r *Renderer) SummaryTable(by string, rows []Summary) {
	if len(rows) == 0 {
		fmt.Fprintln(r.out, "No entries found.")
		return
	}
	t := r.newTable(by, "Days", "Time worked", "Difference")
	var days, worked, excess int
	for _, s := range rows {
		t.Row(s.Label, strconv.Itoa(s.Days), timecalc.FormatHHMM(s.Worked), r.Delta(s.Excess))
		days += s.Days
		worked += s.Worked
		excess += s.Excess
	}
	t.Row("Total", strconv.Itoa(days), timecalc.FormatHHMM(worked), r.Delta(excess))
	fmt.Fprintln(r.out, t.Render())
}
