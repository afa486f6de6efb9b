package database

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"qrattend/internal/domain/entities"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.values[i].(int64)
		case *string:
			*p = r.values[i].(string)
		case *pgtype.UUID:
			*p = r.values[i].(pgtype.UUID)
		case *pgtype.Timestamptz:
			*p = r.values[i].(pgtype.Timestamptz)
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

type fakeRows struct {
	rows []fakeRow
	i    int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return r.rows[r.i-1].values, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }
func (r *fakeRows) Scan(dest ...any) error                       { return r.rows[r.i-1].Scan(dest...) }
func (r *fakeRows) Next() bool {
	if r.i >= len(r.rows) {
		return false
	}
	r.i++
	return true
}

type fakeDB struct {
	lastSQL  string
	lastArgs []any
	row      fakeRow
	rows     []fakeRow
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.lastSQL, f.lastArgs = sql, args
	return pgconn.CommandTag{}, nil
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.lastSQL, f.lastArgs = sql, args
	return &fakeRows{rows: f.rows}, nil
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.lastSQL, f.lastArgs = sql, args
	return f.row
}

const testRunID = "6f1c1a52-3b7e-4a55-8f0a-1d2c3b4a5e6f"

func TestRecordFillsIDAndMarkedAt(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 3, 21, 0, time.UTC)
	db := &fakeDB{row: fakeRow{values: []any{int64(7), pgtype.Timestamptz{Time: at, Valid: true}}}}
	repo := NewJournalRepository(db)

	mark := &entities.Mark{
		RunID:          testRunID,
		SpreadsheetID:  "sid",
		SheetName:      "Day 1",
		RegistrationID: "42",
		TimeStamp:      "14:03:21",
	}
	if err := repo.Record(context.Background(), mark); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if mark.ID != 7 || !mark.MarkedAt.Equal(at) {
		t.Errorf("mark = %+v", mark)
	}
	if !strings.Contains(db.lastSQL, "INSERT INTO attendance_marks") {
		t.Errorf("sql = %q", db.lastSQL)
	}
	if got := db.lastArgs[3]; got != "42" {
		t.Errorf("registration id arg = %v", got)
	}
	if ts, ok := db.lastArgs[7].(pgtype.Timestamptz); !ok || ts.Valid {
		t.Errorf("zero MarkedAt should be sent as NULL, got %#v", db.lastArgs[7])
	}
}

func TestRecordRejectsBadRunID(t *testing.T) {
	repo := NewJournalRepository(&fakeDB{})
	err := repo.Record(context.Background(), &entities.Mark{RunID: "not-a-uuid"})
	if err == nil {
		t.Fatal("expected an error for a malformed run id")
	}
}

func TestFindBySheet(t *testing.T) {
	var runID pgtype.UUID
	if err := runID.Scan(testRunID); err != nil {
		t.Fatal(err)
	}
	at := time.Date(2024, 3, 9, 14, 3, 21, 0, time.UTC)
	db := &fakeDB{rows: []fakeRow{
		{values: []any{int64(1), runID, "sid", "Day 1", "42", "Asha", "555-0100", "14:03:21", pgtype.Timestamptz{Time: at, Valid: true}}},
		{values: []any{int64(2), runID, "sid", "Day 1", "43", "Ravi", "555-0101", "14:05:00", pgtype.Timestamptz{}}},
	}}
	marks, err := NewJournalRepository(db).FindBySheet(context.Background(), "sid", "Day 1")
	if err != nil {
		t.Fatal(err)
	}
	if len(marks) != 2 {
		t.Fatalf("marks = %d, want 2", len(marks))
	}
	if marks[0].RunID != testRunID || marks[0].Name != "Asha" || !marks[0].MarkedAt.Equal(at) {
		t.Errorf("first mark = %+v", marks[0])
	}
	if !marks[1].MarkedAt.IsZero() {
		t.Errorf("null marked_at should map to zero time, got %v", marks[1].MarkedAt)
	}
	if db.lastArgs[0] != "sid" || db.lastArgs[1] != "Day 1" {
		t.Errorf("args = %v", db.lastArgs)
	}
}
