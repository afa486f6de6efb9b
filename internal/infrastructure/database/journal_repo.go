package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"qrattend/internal/domain/entities"
	"qrattend/internal/ports/output"
)

const (
	insertMarkSQL = `
INSERT INTO attendance_marks
    (run_id, spreadsheet_id, sheet_name, registration_id, name, phone, time_stamp, marked_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, NOW()))
RETURNING id, marked_at`

	findMarksBySheetSQL = `
SELECT id, run_id, spreadsheet_id, sheet_name, registration_id, name, phone, time_stamp, marked_at
FROM attendance_marks
WHERE spreadsheet_id = $1 AND sheet_name = $2
ORDER BY marked_at, id`
)

var _ output.MarkJournal = (*JournalRepository)(nil)

// DBTX is the subset of *pgxpool.Pool used by the repository.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// JournalRepository implements output.MarkJournal using pgx.
type JournalRepository struct {
	db DBTX
}

func NewJournalRepository(db DBTX) *JournalRepository {
	return &JournalRepository{db: db}
}

func (r *JournalRepository) Record(ctx context.Context, mark *entities.Mark) error {
	runID, err := uuid.Parse(mark.RunID)
	if err != nil {
		return fmt.Errorf("record mark: run id: %w", err)
	}
	var markedAt = timeToPgtypeTimestamptz(mark.MarkedAt)
	err = r.db.QueryRow(ctx, insertMarkSQL,
		pgtype.UUID{Bytes: runID, Valid: true},
		mark.SpreadsheetID,
		mark.SheetName,
		mark.RegistrationID,
		mark.Name,
		mark.Phone,
		mark.TimeStamp,
		markedAt,
	).Scan(&mark.ID, &markedAt)
	if err != nil {
		return fmt.Errorf("record mark: %w", err)
	}
	mark.MarkedAt = pgtypeTimestamptzToTime(markedAt)
	return nil
}

func (r *JournalRepository) FindBySheet(ctx context.Context, spreadsheetID, sheetName string) ([]entities.Mark, error) {
	rows, err := r.db.Query(ctx, findMarksBySheetSQL, spreadsheetID, sheetName)
	if err != nil {
		return nil, fmt.Errorf("find marks by sheet: %w", err)
	}
	defer rows.Close()

	var out []entities.Mark
	for rows.Next() {
		var m markRow
		if err := rows.Scan(
			&m.ID, &m.RunID, &m.SpreadsheetID, &m.SheetName,
			&m.RegistrationID, &m.Name, &m.Phone, &m.TimeStamp, &m.MarkedAt,
		); err != nil {
			return nil, fmt.Errorf("scan mark: %w", err)
		}
		out = append(out, markToDomain(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find marks by sheet: %w", err)
	}
	return out, nil
}
