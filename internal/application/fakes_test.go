package application

import (
	"context"
	"fmt"
	"sync"

	"qrattend/internal/domain/entities"
)

type fakeBackup struct {
	mu    sync.Mutex
	lines []string
	err   error
}

func (b *fakeBackup) Append(line string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.lines = append(b.lines, line)
	return nil
}

type fakeTranslator struct{}

func (fakeTranslator) T(key string, data map[string]any) string {
	if data == nil {
		return key
	}
	return fmt.Sprintf("%s %v", key, data)
}

type fakeSheet struct {
	mu      sync.Mutex
	remote  *entities.Sheet
	fetches int
	pushes  [][][]string
	err     error
}

func (f *fakeSheet) Fetch(context.Context) (*entities.Sheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	return f.remote.Clone(), nil
}

func (f *fakeSheet) Push(_ context.Context, s *entities.Sheet) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cols := s.TailColumns(2)
	f.pushes = append(f.pushes, cols)
	for i, row := range s.Rows {
		copy(f.remote.Rows[i][len(row)-2:], row[len(row)-2:])
	}
	return 2 * len(cols), nil
}

func (f *fakeSheet) pushCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pushes)
}

type fakeJournal struct {
	marks []entities.Mark
}

func (j *fakeJournal) Record(_ context.Context, m *entities.Mark) error {
	j.marks = append(j.marks, *m)
	return nil
}

func (j *fakeJournal) FindBySheet(_ context.Context, spreadsheetID, sheetName string) ([]entities.Mark, error) {
	var out []entities.Mark
	for _, m := range j.marks {
		if m.SpreadsheetID == spreadsheetID && m.SheetName == sheetName {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	marks []entities.Record
	syncs []entities.SyncResult
}

func (n *fakeNotifier) NotifyMark(_ context.Context, r entities.Record) error {
	n.marks = append(n.marks, r)
	return nil
}

func (n *fakeNotifier) NotifySync(_ context.Context, r entities.SyncResult, _ entities.Summary) error {
	n.syncs = append(n.syncs, r)
	return nil
}

func entitiesMark(spreadsheetID, sheetName, id, ts string) entities.Mark {
	return entities.Mark{SpreadsheetID: spreadsheetID, SheetName: sheetName, RegistrationID: id, TimeStamp: ts}
}
