package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"qrattend/internal/domain/entities"
)

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

func timeToPgtypeTimestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

type markRow struct {
	ID             int64
	RunID          pgtype.UUID
	SpreadsheetID  string
	SheetName      string
	RegistrationID string
	Name           string
	Phone          string
	TimeStamp      string
	MarkedAt       pgtype.Timestamptz
}

func markToDomain(r markRow) entities.Mark {
	runID := ""
	if r.RunID.Valid {
		runID = uuid.UUID(r.RunID.Bytes).String()
	}
	return entities.Mark{
		ID:             r.ID,
		RunID:          runID,
		SpreadsheetID:  r.SpreadsheetID,
		SheetName:      r.SheetName,
		RegistrationID: r.RegistrationID,
		Name:           r.Name,
		Phone:          r.Phone,
		TimeStamp:      r.TimeStamp,
		MarkedAt:       pgtypeTimestamptzToTime(r.MarkedAt),
	}
}
