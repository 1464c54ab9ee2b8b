package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Tiliavir/worktracker/internal/model"
	"github.com/Tiliavir/worktracker/internal/prompt"
	"github.com/Tiliavir/worktracker/internal/timecalc"
)

// StartDay resumes today's scratch record, or begins a new day, and asks
// for the remaining times in order until the day is completed.
//
// When ctx is cancelled while waiting for input the in-memory day is saved
// to the scratch slot and prompt.ErrInterrupted is returned. The answer that
// was pending at that moment is lost.
func (t *Tracker) StartDay(ctx context.Context) error {
	day, resumed, err := t.InProgress()
	if err != nil {
		return err
	}
	if resumed {
		t.out.Banner("RESUMING DAY: " + day.Date)
		t.out.Printf("\n📌 Already recorded:\n")
		t.out.Recorded(day)
	} else {
		day = model.NewDay(t.Today())
		t.out.Banner("NEW DAY: " + day.Date)
	}
	t.out.Printf("\n💡 You can press Ctrl+C at any time to save and quit\n\n")

	for day.State < model.StateCompleted {
		field := model.Field(day.State)
		answer, err := t.in.ReadLine(ctx, field.Label()+" (HH:MM): ")
		if errors.Is(err, prompt.ErrInterrupted) {
			return t.saveInterrupted(day)
		}
		if err != nil {
			return err
		}

		res, err := t.Advance(&day, answer)
		if errors.Is(err, timecalc.ErrInvalidTime) {
			t.out.Printf("Invalid format\n")
			return nil
		}
		if err != nil {
			return err
		}
		if res.ExpectedEnd != nil {
			t.out.ExpectedEnd(*res.ExpectedEnd)
			t.out.Printf("\n")
		}
		if res.Completed {
			t.out.DaySummary("Day saved!", day)
		}
	}
	return nil
}

func (t *Tracker) saveInterrupted(day model.WorkDay) error {
	t.out.Printf("\n\n✓ Saving...\n")
	if err := t.store.SaveScratch(day); err != nil {
		return fmt.Errorf("saving day in progress: %w", err)
	}
	t.out.Success("Data saved! You can continue later.")
	return prompt.ErrInterrupted
}

// AddPastDay asks for a date and its four times and stores the day in
// chronological order. Nothing is written until all four times are read.
func (t *Tracker) AddPastDay(ctx context.Context) error {
	t.out.Banner("ADD PAST DAY")
	date, err := t.in.ReadLine(ctx, "\nDate (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	date = strings.TrimSpace(date)
	if !timecalc.ValidDate(date) {
		t.out.Printf("%s\n", capitalize(ErrInvalidDate.Error()))
		return nil
	}

	existing, found, err := t.store.FindByDate(date)
	if err != nil {
		return err
	}
	if found {
		t.out.Printf("\n")
		t.out.Warning("An entry already exists for this date!")
		t.out.Printf("Arrival: %s, Departure: %s\n\n", existing.Start, existing.End)
		ok, err := t.in.Confirm(ctx, "Do you want to replace it?")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	t.out.Printf("\nEntering times for %s:\n\n", date)
	day := model.NewDay(date)
	for _, f := range model.Fields {
		c, err := t.in.ReadTime(ctx, f.Label())
		if errors.Is(err, timecalc.ErrInvalidTime) {
			t.out.Printf("Invalid format\n")
			return nil
		}
		if err != nil {
			return err
		}
		day.Set(f, c)
	}

	saved, err := t.Backfill(day, true)
	if err != nil {
		return err
	}
	t.out.DaySummary(fmt.Sprintf("Day %s saved!", saved.Date), saved)
	return nil
}

const (
	modifyAll    = 5
	modifyDelete = 6
)

// ModifyEntry lists stored days and lets the user change the times of one
// of them or delete it.
//
// A store that cannot be read is reported and treated as empty.
func (t *Tracker) ModifyEntry(ctx context.Context) error {
	days, err := t.store.LoadAll()
	if err != nil {
		t.warnf("%v", err)
		days = nil
	}
	if len(days) == 0 {
		t.out.Printf("\nNo entries to modify.\n")
		return nil
	}

	t.out.Banner("MODIFY ENTRY")
	t.out.Printf("\nAvailable entries:\n")
	t.out.ModifyTable(days)

	id, err := t.in.ReadInt(ctx, "\nEnter the ID of the entry to modify (or 0 to cancel): ")
	if errors.Is(err, prompt.ErrInvalidNumber) {
		t.out.Printf("Invalid input\n")
		return nil
	}
	if err != nil {
		return err
	}
	if id == 0 {
		return nil
	}
	if id < 1 || id > len(days) {
		t.out.Printf("Invalid ID\n")
		return nil
	}
	index := id - 1
	day := days[index]

	t.out.Printf("\n=== MODIFYING: %s ===\n", day.Date)
	t.out.CurrentValues(day)
	t.out.Printf("What do you want to modify?\n")
	for i, f := range model.Fields {
		t.out.Printf("%d. %s\n", i+1, f.Label())
	}
	t.out.Printf("%d. Modify all times\n", modifyAll)
	t.out.Printf("%d. Delete this entry\n", modifyDelete)
	t.out.Printf("0. Cancel\n")

	choice, err := t.in.ReadInt(ctx, "\nChoice: ")
	if errors.Is(err, prompt.ErrInvalidNumber) {
		t.out.Printf("Invalid input\n")
		return nil
	}
	if err != nil {
		return err
	}

	var fields []model.Field
	switch {
	case choice == 0:
		return nil
	case choice >= 1 && choice <= len(model.Fields):
		fields = model.Fields[choice-1 : choice]
	case choice == modifyAll:
		fields = model.Fields
	case choice == modifyDelete:
		return t.confirmDelete(ctx, index)
	default:
		t.out.Printf("Invalid choice\n")
		return nil
	}

	t.out.Printf("\n")
	changes := make(map[model.Field]model.Clock, len(fields))
	for _, f := range fields {
		c, err := t.in.ReadTime(ctx, "New "+strings.ToLower(f.Label()))
		if errors.Is(err, timecalc.ErrInvalidTime) {
			t.out.Printf("Invalid format\n")
			return nil
		}
		if err != nil {
			return err
		}
		changes[f] = c
	}

	updated, err := t.UpdateAt(index, changes)
	if err != nil {
		return err
	}
	t.out.DaySummary("Entry updated!", updated)
	return nil
}

func (t *Tracker) confirmDelete(ctx context.Context, index int) error {
	ok, err := t.in.Confirm(ctx, "\nAre you sure you want to delete this entry?")
	if err != nil || !ok {
		return err
	}
	if err := t.DeleteAt(index); err != nil {
		return err
	}
	t.out.Success("Entry deleted.")
	return nil
}

// ShowStatus prints today's in-progress day.
func (t *Tracker) ShowStatus() error {
	day, ok, err := t.InProgress()
	if err != nil {
		return err
	}
	if !ok {
		t.out.Printf("\nNo day in progress.\n")
		return nil
	}
	t.out.Status(day)
	return nil
}

// ShowHistory prints the completed days starting with prefix and today's
// in-progress day.
func (t *Tracker) ShowHistory(prefix string) {
	t.out.HistoryTable(t.History(prefix))
}

// CancelDay discards today's in-progress day after confirmation.
func (t *Tracker) CancelDay(ctx context.Context) error {
	_, ok, err := t.InProgress()
	if err != nil {
		return err
	}
	if !ok {
		t.out.Printf("\nNo day in progress.\n")
		return nil
	}
	confirmed, err := t.in.Confirm(ctx, "\nAre you sure you want to cancel the day in progress?")
	if err != nil || !confirmed {
		return err
	}
	if err := t.store.DiscardScratch(); err != nil {
		return err
	}
	t.out.Success("Day in progress cancelled.")
	return nil
}

// Reset deletes the completed store and the scratch record after
// confirmation.
func (t *Tracker) Reset(ctx context.Context) error {
	confirmed, err := t.in.Confirm(ctx, "\nAre you sure you want to delete all data?")
	if err != nil || !confirmed {
		return err
	}
	if err := t.store.Reset(); err != nil {
		return err
	}
	t.out.Success("Data deleted.")
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
