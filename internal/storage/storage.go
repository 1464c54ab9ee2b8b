package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tiliavir/worktracker/internal/model"
	"github.com/Tiliavir/worktracker/internal/timecalc"
)

const (
	// DataFileName holds the completed days in ascending date order.
	DataFileName = "timetracker.dat"
	// ScratchFileName holds at most one in-progress day.
	ScratchFileName = "temp_day.tmp"
)

// ErrInvalidRecord is returned for days that may not be written to the
// completed store.
var ErrInvalidRecord = errors.New("invalid record")

// BaseDir returns the default data directory (~/.local/bin).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "bin"), nil
}

// Store is the completed-day log plus the scratch slot, both kept in one
// directory.
type Store struct {
	dir string
}

// Open returns a Store rooted at dir, creating the directory if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("storage error creating %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the store lives in.
func (s *Store) Dir() string { return s.dir }

// DataPath returns the path of the completed store file.
func (s *Store) DataPath() string { return filepath.Join(s.dir, DataFileName) }

// ScratchPath returns the path of the scratch file.
func (s *Store) ScratchPath() string { return filepath.Join(s.dir, ScratchFileName) }

// LoadAll reads every completed day in on-disk order. A missing file yields
// an empty slice.
func (s *Store) LoadAll() ([]model.WorkDay, error) {
	path := s.DataPath()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []model.WorkDay{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", path, err)
	}
	days, err := decodeAll(data)
	if err != nil {
		return nil, fmt.Errorf("storage error decoding %s: %w", path, err)
	}
	return days, nil
}

// AppendCompleted appends one day to the end of the store without
// reordering. Callers must only use it when day sorts after every stored
// date.
func (s *Store) AppendCompleted(day model.WorkDay) error {
	if err := checkCompleted(day); err != nil {
		return err
	}
	b, err := MarshalRecord(day)
	if err != nil {
		return err
	}
	path := s.DataPath()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("storage error opening %s: %w", path, err)
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		return fmt.Errorf("storage error appending to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("storage error closing %s: %w", path, err)
	}
	return nil
}

// InsertSorted stores day at its chronological position, replacing any
// existing day with the same date, and rewrites the file.
func (s *Store) InsertSorted(day model.WorkDay) error {
	if err := checkCompleted(day); err != nil {
		return err
	}
	days, err := s.LoadAll()
	if err != nil {
		return err
	}
	return s.ReplaceAll(insertSorted(days, day))
}

// insertSorted drops entries sharing day's date and inserts day before the
// first greater date, or at the end.
func insertSorted(days []model.WorkDay, day model.WorkDay) []model.WorkDay {
	kept := make([]model.WorkDay, 0, len(days)+1)
	for _, d := range days {
		if d.Date != day.Date {
			kept = append(kept, d)
		}
	}
	pos := len(kept)
	for i, d := range kept {
		if day.Date < d.Date {
			pos = i
			break
		}
	}
	kept = append(kept, model.WorkDay{})
	copy(kept[pos+1:], kept[pos:])
	kept[pos] = day
	return kept
}

// ReplaceAll rewrites the store with days in the given order.
func (s *Store) ReplaceAll(days []model.WorkDay) error {
	for _, d := range days {
		if err := checkCompleted(d); err != nil {
			return err
		}
	}
	data, err := encodeAll(days)
	if err != nil {
		return err
	}
	return writeAtomic(s.DataPath(), data)
}

// FindByDate returns the stored day for date, if any.
func (s *Store) FindByDate(date string) (model.WorkDay, bool, error) {
	days, err := s.LoadAll()
	if err != nil {
		return model.WorkDay{}, false, err
	}
	for _, d := range days {
		if d.Date == date {
			return d, true, nil
		}
	}
	return model.WorkDay{}, false, nil
}

// DeleteAt removes the i-th stored day (0-based), keeping the order of the
// rest.
func (s *Store) DeleteAt(i int) error {
	days, err := s.LoadAll()
	if err != nil {
		return err
	}
	if i < 0 || i >= len(days) {
		return fmt.Errorf("%w: index %d out of range (%d entries)", ErrInvalidRecord, i, len(days))
	}
	days = append(days[:i], days[i+1:]...)
	return s.ReplaceAll(days)
}

// Reset removes the completed store and the scratch file.
func (s *Store) Reset() error {
	for _, path := range []string{s.DataPath(), s.ScratchPath()} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("storage error removing %s: %w", path, err)
		}
	}
	return nil
}

func checkCompleted(d model.WorkDay) error {
	if !timecalc.ValidDate(d.Date) {
		return fmt.Errorf("%w: malformed date %q", ErrInvalidRecord, d.Date)
	}
	if d.State != model.StateCompleted {
		return fmt.Errorf("%w: day %s is %s, not completed", ErrInvalidRecord, d.Date, d.State)
	}
	return nil
}

// writeAtomic writes data to a temp file and renames it over path.
func writeAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}
