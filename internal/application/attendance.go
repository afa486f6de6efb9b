package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"qrattend/internal/domain"
	"qrattend/internal/domain/entities"
	"qrattend/internal/ports/input"
	"qrattend/internal/ports/output"
)

var _ input.AttendanceUseCase = (*AttendanceService)(nil)

const notifyTimeout = 5 * time.Second

type AttendanceService struct {
	table      *Table
	backup     output.BackupLog
	translator output.T
	loc        *time.Location
	now        func() time.Time

	journal       output.MarkJournal
	runID         string
	spreadsheetID string
	sheetName     string

	notifier output.Notifier
}

func NewAttendanceService(
	table *Table,
	backup output.BackupLog,
	translator output.T,
	loc *time.Location,
) *AttendanceService {
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceService{
		table:      table,
		backup:     backup,
		translator: translator,
		loc:        loc,
		now:        time.Now,
	}
}

// UseJournal records every mark of this run in j, tagged with runID and the
// sheet coordinates.
func (s *AttendanceService) UseJournal(j output.MarkJournal, runID, spreadsheetID, sheetName string) {
	s.journal = j
	s.runID = runID
	s.spreadsheetID = spreadsheetID
	s.sheetName = sheetName
}

func (s *AttendanceService) UseNotifier(n output.Notifier) {
	s.notifier = n
}

// MarkPresent marks registrationID present and returns the confirmation line.
// An attendee already marked (in this run or in the sheet before it) yields
// the already-marked notice together with domain.ErrAlreadyMarked.
func (s *AttendanceService) MarkPresent(ctx context.Context, registrationID string) (string, error) {
	timeStamp := s.now().In(s.loc).Format(domain.TimeStampLayout)
	rec, changed, err := s.table.Mark(registrationID, timeStamp)
	if err != nil {
		return "", fmt.Errorf("mark %q: %w", registrationID, err)
	}
	if !changed {
		return s.AlreadyMarkedNotice(rec), domain.ErrAlreadyMarked
	}

	msg := rec.Confirmation()
	if err := s.backup.Append(msg); err != nil {
		log.Printf("⚠️ Écriture de la sauvegarde impossible: %v", err)
	}
	s.record(ctx, rec)
	return msg, nil
}

// AlreadyMarkedNotice renders the console notice for an attendee seen before.
func (s *AttendanceService) AlreadyMarkedNotice(rec entities.Record) string {
	return s.translator.T("scan.already_marked", map[string]any{"TimeStamp": rec.TimeStamp})
}

func (s *AttendanceService) record(ctx context.Context, rec entities.Record) {
	if s.journal != nil {
		mark := &entities.Mark{
			RunID:          s.runID,
			SpreadsheetID:  s.spreadsheetID,
			SheetName:      s.sheetName,
			RegistrationID: rec.RegistrationID,
			Name:           rec.Name,
			Phone:          rec.Phone,
			TimeStamp:      rec.TimeStamp,
			MarkedAt:       s.now(),
		}
		if err := s.journal.Record(ctx, mark); err != nil {
			log.Printf("❌ Journalisation de %s: %v", rec.RegistrationID, err)
		}
	}
	if s.notifier != nil {
		nctx, cancel := context.WithTimeout(ctx, notifyTimeout)
		defer cancel()
		if err := s.notifier.NotifyMark(nctx, rec); err != nil {
			log.Printf("⚠️ Notification de %s: %v", rec.RegistrationID, err)
		}
	}
}

// Replay re-applies journaled marks of the current sheet to rows that are
// still unset. Rows already marked keep their value.
func (s *AttendanceService) Replay(ctx context.Context) (int, error) {
	if s.journal == nil {
		return 0, nil
	}
	marks, err := s.journal.FindBySheet(ctx, s.spreadsheetID, s.sheetName)
	if err != nil {
		return 0, fmt.Errorf("load journal: %w", err)
	}
	restored := 0
	for _, m := range marks {
		_, changed, err := s.table.Mark(m.RegistrationID, m.TimeStamp)
		if errors.Is(err, domain.ErrNotFound) {
			log.Printf("⚠️ Journal: %s absent de la feuille, ignoré", m.RegistrationID)
			continue
		}
		if changed {
			restored++
		}
	}
	return restored, nil
}

func (s *AttendanceService) Lookup(registrationID string) (entities.Record, bool) {
	return s.table.Lookup(registrationID)
}

func (s *AttendanceService) Summary() entities.Summary {
	return s.table.Summary()
}
