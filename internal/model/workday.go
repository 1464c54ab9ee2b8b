package model

import "github.com/Tiliavir/worktracker/internal/timecalc"

// RequiredMinutes is the fixed daily requirement (7h48).
const RequiredMinutes = 7*60 + 48

// State is the data-entry lifecycle stage of a WorkDay. The ordinal values
// are part of the on-disk record format.
type State int32

const (
	StateNew State = iota
	StateStarted
	StateLunchStart
	StateLunchEnd
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateStarted:
		return "started"
	case StateLunchStart:
		return "lunch started"
	case StateLunchEnd:
		return "lunch ended"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// NextStep describes the field expected after reaching s.
func (s State) NextStep() string {
	switch s {
	case StateNew:
		return "Record arrival time"
	case StateStarted:
		return "Record lunch break start"
	case StateLunchStart:
		return "Record lunch break end"
	case StateLunchEnd:
		return "Record departure time"
	default:
		return "Unknown"
	}
}

// Clock is a raw wall-clock time as entered. Values are not range checked.
type Clock struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Minutes returns the clock as minutes since midnight.
func (c Clock) Minutes() int {
	return timecalc.ToMinutes(c.Hour, c.Minute)
}

func (c Clock) String() string {
	return timecalc.FormatClock(c.Hour, c.Minute)
}

// Field selects one of the four recorded times of a day.
type Field int

const (
	FieldStart Field = iota
	FieldLunchStart
	FieldLunchEnd
	FieldEnd
)

// Label is the prompt label of the field.
func (f Field) Label() string {
	switch f {
	case FieldStart:
		return "Arrival time"
	case FieldLunchStart:
		return "Lunch break start"
	case FieldLunchEnd:
		return "Lunch break end"
	case FieldEnd:
		return "Departure time"
	default:
		return "Unknown"
	}
}

// Fields lists the four times in entry order.
var Fields = []Field{FieldStart, FieldLunchStart, FieldLunchEnd, FieldEnd}

// WorkDay is one calendar day's timesheet entry.
type WorkDay struct {
	Date          string `json:"date"`
	State         State  `json:"state"`
	Start         Clock  `json:"start"`
	LunchStart    Clock  `json:"lunch_start"`
	LunchEnd      Clock  `json:"lunch_end"`
	End           Clock  `json:"end"`
	WorkedMinutes int    `json:"worked_minutes"`
	ExcessMinutes int    `json:"excess_minutes"`
}

// NewDay returns an empty day in the New state.
func NewDay(date string) WorkDay {
	return WorkDay{Date: date, State: StateNew}
}

// Get returns the time stored for f.
func (d *WorkDay) Get(f Field) Clock {
	switch f {
	case FieldStart:
		return d.Start
	case FieldLunchStart:
		return d.LunchStart
	case FieldLunchEnd:
		return d.LunchEnd
	default:
		return d.End
	}
}

// Set stores c for f. Derived minutes are not touched; call Recompute.
func (d *WorkDay) Set(f Field, c Clock) {
	switch f {
	case FieldStart:
		d.Start = c
	case FieldLunchStart:
		d.LunchStart = c
	case FieldLunchEnd:
		d.LunchEnd = c
	case FieldEnd:
		d.End = c
	}
}

// Recompute derives WorkedMinutes and ExcessMinutes from the four times.
func (d *WorkDay) Recompute() {
	morning := d.LunchStart.Minutes() - d.Start.Minutes()
	afternoon := d.End.Minutes() - d.LunchEnd.Minutes()
	d.WorkedMinutes = morning + afternoon
	d.ExcessMinutes = d.WorkedMinutes - RequiredMinutes
}

// LunchMinutes is the length of the lunch break.
func (d *WorkDay) LunchMinutes() int {
	return d.LunchEnd.Minutes() - d.LunchStart.Minutes()
}

// ExpectedEnd projects the departure time that meets the daily requirement.
// Only meaningful once the lunch break has ended.
func (d *WorkDay) ExpectedEnd() Clock {
	h, m := timecalc.ToHourMinute(d.Start.Minutes() + RequiredMinutes + d.LunchMinutes())
	return Clock{Hour: h, Minute: m}
}

// Has reports whether the time for f has been recorded given the current state.
func (d *WorkDay) Has(f Field) bool {
	return d.State > State(f)
}
