package storage

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/Tiliavir/worktracker/internal/model"
)

// RecordSize is the size in bytes of one encoded WorkDay.
//
// Layout (little-endian, no version field):
//
//	offset  size  field
//	0       11    date, "YYYY-MM-DD" NUL padded
//	11      1     padding
//	12      4     state (0..4)
//	16      4     start hour
//	20      4     start minute
//	24      4     lunch start hour
//	28      4     lunch start minute
//	32      4     lunch end hour
//	36      4     lunch end minute
//	40      4     end hour
//	44      4     end minute
//	48      4     worked minutes
//	52      4     excess minutes
const RecordSize = 56

type rawRecord struct {
	Date           [11]byte
	_              [1]byte
	State          int32
	StartHour      int32
	StartMinute    int32
	LunchStartHour int32
	LunchStartMin  int32
	LunchEndHour   int32
	LunchEndMinute int32
	EndHour        int32
	EndMinute      int32
	WorkedMinutes  int32
	ExcessMinutes  int32
}

// MarshalRecord encodes a day into its fixed-size binary form.
func MarshalRecord(d model.WorkDay) ([]byte, error) {
	if len(d.Date) > 10 {
		return nil, fmt.Errorf("%w: date %q too long", ErrInvalidRecord, d.Date)
	}
	var r rawRecord
	copy(r.Date[:], d.Date)
	r.State = int32(d.State)
	r.StartHour, r.StartMinute = int32(d.Start.Hour), int32(d.Start.Minute)
	r.LunchStartHour, r.LunchStartMin = int32(d.LunchStart.Hour), int32(d.LunchStart.Minute)
	r.LunchEndHour, r.LunchEndMinute = int32(d.LunchEnd.Hour), int32(d.LunchEnd.Minute)
	r.EndHour, r.EndMinute = int32(d.End.Hour), int32(d.End.Minute)
	r.WorkedMinutes = int32(d.WorkedMinutes)
	r.ExcessMinutes = int32(d.ExcessMinutes)

	var buf bytes.Buffer
	buf.Grow(RecordSize)
	if err := binary.Write(&buf, binary.LittleEndian, &r); err != nil {
		return nil, fmt.Errorf("encoding record %s: %w", d.Date, err)
	}
	return buf.Bytes(), nil
}

// UnmarshalRecord decodes one fixed-size block.
func UnmarshalRecord(b []byte) (model.WorkDay, error) {
	if len(b) < RecordSize {
		return model.WorkDay{}, fmt.Errorf("%w: short record (%d bytes)", ErrInvalidRecord, len(b))
	}
	var r rawRecord
	if err := binary.Read(bytes.NewReader(b[:RecordSize]), binary.LittleEndian, &r); err != nil {
		return model.WorkDay{}, fmt.Errorf("decoding record: %w", err)
	}
	date := r.Date[:]
	if i := bytes.IndexByte(date, 0); i >= 0 {
		date = date[:i]
	}
	return model.WorkDay{
		Date:          string(date),
		State:         model.State(r.State),
		Start:         model.Clock{Hour: int(r.StartHour), Minute: int(r.StartMinute)},
		LunchStart:    model.Clock{Hour: int(r.LunchStartHour), Minute: int(r.LunchStartMin)},
		LunchEnd:      model.Clock{Hour: int(r.LunchEndHour), Minute: int(r.LunchEndMinute)},
		End:           model.Clock{Hour: int(r.EndHour), Minute: int(r.EndMinute)},
		WorkedMinutes: int(r.WorkedMinutes),
		ExcessMinutes: int(r.ExcessMinutes),
	}, nil
}

// decodeAll splits data into records. A trailing partial block is ignored.
func decodeAll(data []byte) ([]model.WorkDay, error) {
	days := make([]model.WorkDay, 0, len(data)/RecordSize)
	for off := 0; off+RecordSize <= len(data); off += RecordSize {
		d, err := UnmarshalRecord(data[off : off+RecordSize])
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}

func encodeAll(days []model.WorkDay) ([]byte, error) {
	out := make([]byte, 0, len(days)*RecordSize)
	for _, d := range days {
		b, err := MarshalRecord(d)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}
