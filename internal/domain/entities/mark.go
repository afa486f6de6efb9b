package entities

import "time"

// Mark is a journaled attendance event.
type Mark struct {
	ID             int64
	RunID          string
	SpreadsheetID  string
	SheetName      string
	RegistrationID string
	Name           string
	Phone          string
	TimeStamp      string
	MarkedAt       time.Time
}

// SyncResult describes one push-if-changed round.
type SyncResult struct {
	Pushed       bool
	UpdatedCells int
	At           time.Time
}
