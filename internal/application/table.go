package application

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"qrattend/internal/domain"
	"qrattend/internal/domain/entities"
)

// Table is the in-memory mirror of the attendance sheet, keyed by
// Registration ID. Rows are never added or removed; only the Attendance and
// Time Stamp cells change. All access goes through mu.
type Table struct {
	mu    sync.RWMutex
	sheet *entities.Sheet
	index map[string]int

	idCol, nameCol, phoneCol, attendanceCol, timeStampCol int
}

// NewTable validates the sheet layout and indexes its rows. Attendance and
// Time Stamp must be the two last columns since they are the ones pushed back.
func NewTable(sheet *entities.Sheet) (*Table, error) {
	if sheet == nil || len(sheet.Headers) == 0 {
		return nil, fmt.Errorf("empty sheet: %w", domain.ErrSchema)
	}
	t := &Table{sheet: sheet.Clone(), index: make(map[string]int, len(sheet.Rows))}

	cols := map[string]*int{
		domain.ColumnRegistrationID: &t.idCol,
		domain.ColumnName:           &t.nameCol,
		domain.ColumnPhone:          &t.phoneCol,
		domain.ColumnAttendance:     &t.attendanceCol,
		domain.ColumnTimeStamp:      &t.timeStampCol,
	}
	for header, dst := range cols {
		i := t.sheet.ColumnIndex(header)
		if i < 0 {
			return nil, fmt.Errorf("missing column %q: %w", header, domain.ErrSchema)
		}
		*dst = i
	}
	n := len(t.sheet.Headers)
	if t.attendanceCol != n-2 || t.timeStampCol != n-1 {
		return nil, fmt.Errorf("%q and %q must be the last two columns: %w",
			domain.ColumnAttendance, domain.ColumnTimeStamp, domain.ErrSchema)
	}

	for i, row := range t.sheet.Rows {
		id := strings.TrimSpace(row[t.idCol])
		if id == "" {
			continue
		}
		if _, dup := t.index[id]; dup {
			log.Printf("⚠️ Registration ID %q en double (ligne %d ignorée)", id, i+2)
			continue
		}
		t.index[id] = i
	}
	return t, nil
}

func (t *Table) record(i int) entities.Record {
	row := t.sheet.Rows[i]
	return entities.Record{
		RegistrationID: strings.TrimSpace(row[t.idCol]),
		Name:           row[t.nameCol],
		Phone:          row[t.phoneCol],
		Attendance:     strings.TrimSpace(row[t.attendanceCol]),
		TimeStamp:      row[t.timeStampCol],
	}
}

// Mark sets Attendance to Present with the given time stamp when the row is
// still unset. It returns the record as stored after the call and whether
// this call changed it.
func (t *Table) Mark(id, timeStamp string) (entities.Record, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, ok := t.index[id]
	if !ok {
		return entities.Record{}, false, domain.ErrNotFound
	}
	rec := t.record(i)
	if rec.IsPresent() {
		return rec, false, nil
	}
	t.sheet.Rows[i][t.attendanceCol] = domain.StatusPresent
	t.sheet.Rows[i][t.timeStampCol] = timeStamp
	return t.record(i), true, nil
}

func (t *Table) Lookup(id string) (entities.Record, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	i, ok := t.index[id]
	if !ok {
		return entities.Record{}, false
	}
	return t.record(i), true
}

// Records returns every indexed attendee in sheet order.
func (t *Table) Records() []entities.Record {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]entities.Record, 0, len(t.index))
	for i, row := range t.sheet.Rows {
		if j, ok := t.index[strings.TrimSpace(row[t.idCol])]; ok && j == i {
			out = append(out, t.record(i))
		}
	}
	return out
}

// Snapshot returns a copy of the whole sheet.
func (t *Table) Snapshot() *entities.Sheet {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sheet.Clone()
}

// Equal compares the table against a freshly fetched remote sheet.
func (t *Table) Equal(remote *entities.Sheet) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sheet.Equal(remote)
}

func (t *Table) Summary() entities.Summary {
	var s entities.Summary
	for _, r := range t.Records() {
		s.Total++
		if r.IsPresent() {
			s.Present++
		}
	}
	s.Absent = s.Total - s.Present
	return s
}
