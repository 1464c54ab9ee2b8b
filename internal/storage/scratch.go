package storage

import (
	"fmt"
	"os"

	"github.com/Tiliavir/worktracker/internal/model"
)

// LoadScratch returns the in-progress day if one is saved for today. A
// scratch record dated any other day, or one that cannot be decoded, is
// deleted and reported as absent.
func (s *Store) LoadScratch(today string) (model.WorkDay, bool, error) {
	path := s.ScratchPath()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return model.WorkDay{}, false, nil
	}
	if err != nil {
		return model.WorkDay{}, false, fmt.Errorf("storage error reading %s: %w", path, err)
	}
	day, err := UnmarshalRecord(data)
	if err != nil || day.Date != today {
		if err := s.DiscardScratch(); err != nil {
			return model.WorkDay{}, false, err
		}
		return model.WorkDay{}, false, nil
	}
	return day, true, nil
}

// SaveScratch overwrites the scratch file with day.
func (s *Store) SaveScratch(day model.WorkDay) error {
	b, err := MarshalRecord(day)
	if err != nil {
		return err
	}
	return writeAtomic(s.ScratchPath(), b)
}

// DiscardScratch deletes the scratch file. A missing file is not an error.
func (s *Store) DiscardScratch() error {
	path := s.ScratchPath()
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage error removing %s: %w", path, err)
	}
	return nil
}
