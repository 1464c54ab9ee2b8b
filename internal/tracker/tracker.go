// Package tracker implements the day lifecycle: entering today's times step
// by step, backfilling past days, editing stored days and summarising them.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Tiliavir/worktracker/internal/model"
	"github.com/Tiliavir/worktracker/internal/render"
	"github.com/Tiliavir/worktracker/internal/storage"
	"github.com/Tiliavir/worktracker/internal/timecalc"
)

var (
	// ErrInvalidDate is returned for dates not shaped like YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date format, use YYYY-MM-DD (e.g., 2026-02-03)")
	// ErrAlreadyCompleted is returned when advancing a finished day.
	ErrAlreadyCompleted = errors.New("day already completed")
	// ErrExists is returned when backfilling a date that is already stored
	// without permission to overwrite it.
	ErrExists = errors.New("an entry already exists for this date")
	// ErrInvalidIndex is returned for entry numbers outside the store.
	ErrInvalidIndex = errors.New("invalid ID")
)

// Input is the console the lifecycle operations ask questions on.
type Input interface {
	ReadLine(ctx context.Context, label string) (string, error)
	ReadTime(ctx context.Context, label string) (model.Clock, error)
	ReadInt(ctx context.Context, label string) (int, error)
	Confirm(ctx context.Context, label string) (bool, error)
}

// Tracker runs lifecycle operations against one store.
type Tracker struct {
	store  *storage.Store
	in     Input
	out    *render.Renderer
	errOut io.Writer
	now    func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithNow replaces the wall clock used to determine today.
func WithNow(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithErrOut sets where warnings are written. Defaults to stderr.
func WithErrOut(w io.Writer) Option {
	return func(t *Tracker) { t.errOut = w }
}

// New returns a Tracker.
func New(store *storage.Store, in Input, out *render.Renderer, opts ...Option) *Tracker {
	t := &Tracker{
		store:  store,
		in:     in,
		out:    out,
		errOut: os.Stderr,
		now:    time.Now,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Today returns the current local date key.
func (t *Tracker) Today() string {
	return timecalc.DateKey(t.now())
}

func (t *Tracker) warnf(format string, args ...any) {
	fmt.Fprintf(t.errOut, "Warning: "+format+"\n", args...)
}

// Result describes one successful Advance.
type Result struct {
	// Field is the time that was recorded.
	Field model.Field
	// ExpectedEnd is set once the lunch break has ended.
	ExpectedEnd *model.Clock
	// Completed is true when the day was promoted to the completed store.
	Completed bool
}

// Advance records input as the next expected time of day. Unparseable input
// leaves day and storage untouched. Every step but the last is persisted to
// the scratch slot; the last one computes the totals, writes the day to the
// completed store and then removes the scratch record.
func (t *Tracker) Advance(day *model.WorkDay, input string) (Result, error) {
	if day.State >= model.StateCompleted {
		return Result{}, ErrAlreadyCompleted
	}
	h, m, err := timecalc.ParseHHMM(input)
	if err != nil {
		return Result{}, err
	}

	field := model.Field(day.State)
	day.Set(field, model.Clock{Hour: h, Minute: m})
	res := Result{Field: field}

	if field == model.FieldEnd {
		if err := t.complete(day); err != nil {
			return res, err
		}
		res.Completed = true
		return res, nil
	}

	day.State++
	if day.State == model.StateLunchEnd {
		end := day.ExpectedEnd()
		res.ExpectedEnd = &end
	}
	if err := t.store.SaveScratch(*day); err != nil {
		return res, err
	}
	return res, nil
}

// complete promotes day to the completed store. The scratch record is only
// removed once the completed write succeeded; on failure day is left in the
// LunchEnd state so the departure can be entered again.
func (t *Tracker) complete(day *model.WorkDay) error {
	day.Recompute()
	day.State = model.StateCompleted

	if err := t.promote(*day); err != nil {
		day.State = model.StateLunchEnd
		return err
	}
	return t.store.DiscardScratch()
}

// promote appends day when it is the latest date in the store. If the store
// already holds this date or a later one (a clock change, a second run on
// the same day) appending would break ordering or uniqueness, so the day is
// inserted instead.
func (t *Tracker) promote(day model.WorkDay) error {
	days, err := t.store.LoadAll()
	if err != nil {
		return err
	}
	if n := len(days); n > 0 && days[n-1].Date >= day.Date {
		t.warnf("store already has entries dated %s or later, inserting in order", day.Date)
		return t.store.InsertSorted(day)
	}
	return t.store.AppendCompleted(day)
}

// Backfill stores a fully entered day at its chronological position. An
// existing day with the same date is only replaced when overwrite is set.
func (t *Tracker) Backfill(day model.WorkDay, overwrite bool) (model.WorkDay, error) {
	if !timecalc.ValidDate(day.Date) {
		return day, ErrInvalidDate
	}
	if !overwrite {
		_, found, err := t.store.FindByDate(day.Date)
		if err != nil {
			return day, err
		}
		if found {
			return day, fmt.Errorf("%w: %s", ErrExists, day.Date)
		}
	}
	day.Recompute()
	day.State = model.StateCompleted
	if err := t.store.InsertSorted(day); err != nil {
		return day, err
	}
	return day, nil
}

// UpdateAt changes times of the i-th stored day (0-based), recomputes its
// totals and rewrites the store.
func (t *Tracker) UpdateAt(i int, changes map[model.Field]model.Clock) (model.WorkDay, error) {
	days, err := t.store.LoadAll()
	if err != nil {
		return model.WorkDay{}, err
	}
	if i < 0 || i >= len(days) {
		return model.WorkDay{}, fmt.Errorf("%w: %d", ErrInvalidIndex, i+1)
	}
	for f, c := range changes {
		days[i].Set(f, c)
	}
	days[i].Recompute()
	if err := t.store.ReplaceAll(days); err != nil {
		return model.WorkDay{}, err
	}
	return days[i], nil
}

// DeleteAt removes the i-th stored day (0-based).
func (t *Tracker) DeleteAt(i int) error {
	days, err := t.store.LoadAll()
	if err != nil {
		return err
	}
	if i < 0 || i >= len(days) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, i+1)
	}
	return t.store.DeleteAt(i)
}

// History loads completed days whose date starts with prefix (all days when
// prefix is empty) plus today's in-progress day. A store that cannot be read
// is reported and treated as empty.
func (t *Tracker) History(prefix string) render.History {
	return t.history(func(date string) bool { return strings.HasPrefix(date, prefix) })
}

// HistoryBetween is History restricted to dates in [from, to].
func (t *Tracker) HistoryBetween(from, to string) render.History {
	return t.history(func(date string) bool { return date >= from && date <= to })
}

func (t *Tracker) history(keep func(date string) bool) render.History {
	var h render.History
	days, err := t.store.LoadAll()
	if err != nil {
		t.warnf("%v", err)
		days = nil
	}
	for _, d := range days {
		if !keep(d.Date) {
			continue
		}
		h.Days = append(h.Days, d)
		h.TotalExcess += d.ExcessMinutes
	}

	scratch, ok, err := t.store.LoadScratch(t.Today())
	if err != nil {
		t.warnf("%v", err)
	} else if ok && keep(scratch.Date) {
		h.InProgress = &scratch
	}
	return h
}

// InProgress returns today's in-progress day, if any.
func (t *Tracker) InProgress() (model.WorkDay, bool, error) {
	return t.store.LoadScratch(t.Today())
}
