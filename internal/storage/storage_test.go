package storage_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/worktracker/internal/model"
	"github.com/Tiliavir/worktracker/internal/storage"
)

func completedDay(date string, startHour int) model.WorkDay {
	d := model.NewDay(date)
	d.Start = model.Clock{Hour: startHour}
	d.LunchStart = model.Clock{Hour: 12}
	d.LunchEnd = model.Clock{Hour: 12, Minute: 30}
	d.End = model.Clock{Hour: 17, Minute: 30}
	d.Recompute()
	d.State = model.StateCompleted
	return d
}

func dates(days []model.WorkDay) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.Date
	}
	return out
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestRecordRoundTrip(t *testing.T) {
	d := completedDay("2024-05-01", 9)
	b, err := storage.MarshalRecord(d)
	require.NoError(t, err)
	assert.Len(t, b, storage.RecordSize)
	assert.Equal(t, "2024-05-01", string(b[:10]))
	assert.Equal(t, byte(0), b[10])
	assert.Equal(t, byte(model.StateCompleted), b[12])

	got, err := storage.UnmarshalRecord(b)
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestMarshalRecordRejectsLongDate(t *testing.T) {
	d := completedDay("2024-05-01-extra", 9)
	_, err := storage.MarshalRecord(d)
	assert.ErrorIs(t, err, storage.ErrInvalidRecord)
}

func TestLoadAllNotExist(t *testing.T) {
	s := openStore(t)
	days, err := s.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestLoadAllIgnoresPartialTrailingRecord(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.AppendCompleted(completedDay("2024-05-01", 9)))

	f, err := os.OpenFile(s.DataPath(), os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, err = f.Write([]byte("2024-05-02"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	days, err := s.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-05-01"}, dates(days))
}

func TestAppendCompleted(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.AppendCompleted(completedDay("2024-05-01", 9)))
	require.NoError(t, s.AppendCompleted(completedDay("2024-05-02", 8)))

	days, err := s.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-05-01", "2024-05-02"}, dates(days))
	assert.Equal(t, 480, days[0].WorkedMinutes)
	assert.Equal(t, 12, days[0].ExcessMinutes)
}

func TestAppendCompletedRejectsIncompleteDay(t *testing.T) {
	s := openStore(t)
	d := completedDay("2024-05-01", 9)
	d.State = model.StateLunchEnd
	assert.ErrorIs(t, s.AppendCompleted(d), storage.ErrInvalidRecord)

	d = completedDay("2024/05/01", 9)
	assert.ErrorIs(t, s.AppendCompleted(d), storage.ErrInvalidRecord)

	_, err := os.Stat(s.DataPath())
	assert.True(t, os.IsNotExist(err), "nothing should be written")
}

func TestInsertSortedOrdersByDate(t *testing.T) {
	s := openStore(t)
	for _, date := range []string{"2024-05-01", "2024-05-03", "2024-05-02"} {
		require.NoError(t, s.InsertSorted(completedDay(date, 9)))
	}
	days, err := s.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-05-01", "2024-05-02", "2024-05-03"}, dates(days))
}

func TestInsertSortedAnyOrder(t *testing.T) {
	s := openStore(t)
	input := []string{"2024-06-10", "2023-12-31", "2024-06-01", "2024-01-15", "2025-01-01", "2024-06-05"}
	for _, date := range input {
		require.NoError(t, s.InsertSorted(completedDay(date, 9)))
	}
	days, err := s.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2023-12-31", "2024-01-15", "2024-06-01", "2024-06-05", "2024-06-10", "2025-01-01",
	}, dates(days))
}

func TestInsertSortedReplacesSameDate(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.InsertSorted(completedDay("2024-05-01", 9)))
	require.NoError(t, s.InsertSorted(completedDay("2024-05-02", 9)))
	require.NoError(t, s.InsertSorted(completedDay("2024-05-01", 7)))

	days, err := s.LoadAll()
	require.NoError(t, err)
	require.Equal(t, []string{"2024-05-01", "2024-05-02"}, dates(days))
	assert.Equal(t, 7, days[0].Start.Hour)
}

func TestFindByDate(t *testing.T) {
	s := openStore(t)
	_, found, err := s.FindByDate("2024-05-01")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.InsertSorted(completedDay("2024-05-01", 9)))
	d, found, err := s.FindByDate("2024-05-01")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 9, d.Start.Hour)
}

func TestDeleteAtPreservesOthers(t *testing.T) {
	s := openStore(t)
	for i, date := range []string{"2024-05-01", "2024-05-02", "2024-05-03", "2024-05-04"} {
		require.NoError(t, s.InsertSorted(completedDay(date, 7+i)))
	}
	before, err := s.LoadAll()
	require.NoError(t, err)
	rawBefore, err := os.ReadFile(s.DataPath())
	require.NoError(t, err)

	require.NoError(t, s.DeleteAt(1))

	after, err := s.LoadAll()
	require.NoError(t, err)
	require.Len(t, after, 3)
	assert.Equal(t, []model.WorkDay{before[0], before[2], before[3]}, after)

	rawAfter, err := os.ReadFile(s.DataPath())
	require.NoError(t, err)
	rs := storage.RecordSize
	assert.Equal(t, rawBefore[:rs], rawAfter[:rs])
	assert.Equal(t, rawBefore[2*rs:], rawAfter[rs:])
}

func TestDeleteAtOutOfRange(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.InsertSorted(completedDay("2024-05-01", 9)))
	assert.ErrorIs(t, s.DeleteAt(1), storage.ErrInvalidRecord)
	assert.ErrorIs(t, s.DeleteAt(-1), storage.ErrInvalidRecord)
}

func TestReplaceAll(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.InsertSorted(completedDay("2024-05-01", 9)))

	days := []model.WorkDay{completedDay("2024-05-02", 8), completedDay("2024-05-03", 8)}
	require.NoError(t, s.ReplaceAll(days))

	got, err := s.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, days, got)

	_, err = os.Stat(s.DataPath() + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestReplaceAllRejectsIncompleteLeavesFile(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.InsertSorted(completedDay("2024-05-01", 9)))

	bad := completedDay("2024-05-02", 8)
	bad.State = model.StateStarted
	assert.ErrorIs(t, s.ReplaceAll([]model.WorkDay{bad}), storage.ErrInvalidRecord)

	got, err := s.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-05-01"}, dates(got))
}

func TestScratchLifecycle(t *testing.T) {
	s := openStore(t)
	_, ok, err := s.LoadScratch("2024-05-01")
	require.NoError(t, err)
	assert.False(t, ok)

	d := model.NewDay("2024-05-01")
	d.Start = model.Clock{Hour: 9}
	d.State = model.StateStarted
	require.NoError(t, s.SaveScratch(d))

	got, ok, err := s.LoadScratch("2024-05-01")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, d, got)

	require.NoError(t, s.DiscardScratch())
	require.NoError(t, s.DiscardScratch())
	_, ok, err = s.LoadScratch("2024-05-01")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoadScratchStaleDateIsDiscarded(t *testing.T) {
	s := openStore(t)
	d := model.NewDay("2024-04-30")
	d.State = model.StateLunchStart
	require.NoError(t, s.SaveScratch(d))

	_, ok, err := s.LoadScratch("2024-05-01")
	require.NoError(t, err)
	assert.False(t, ok)
	_, statErr := os.Stat(s.ScratchPath())
	assert.True(t, os.IsNotExist(statErr), "stale scratch should be deleted")

	_, ok, err = s.LoadScratch("2024-05-01")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoadScratchCorruptIsDiscarded(t *testing.T) {
	s := openStore(t)
	require.NoError(t, os.WriteFile(s.ScratchPath(), []byte("short"), 0o600))

	_, ok, err := s.LoadScratch("2024-05-01")
	require.NoError(t, err)
	assert.False(t, ok)
	_, statErr := os.Stat(s.ScratchPath())
	assert.True(t, os.IsNotExist(statErr))
}

func TestReset(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Reset())

	require.NoError(t, s.InsertSorted(completedDay("2024-05-01", 9)))
	require.NoError(t, s.SaveScratch(model.NewDay("2024-05-02")))
	require.NoError(t, s.Reset())

	for _, p := range []string{s.DataPath(), s.ScratchPath()} {
		_, err := os.Stat(p)
		assert.True(t, os.IsNotExist(err), "%s should be removed", p)
	}
}
