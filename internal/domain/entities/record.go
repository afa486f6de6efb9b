package entities

import (
	"fmt"

	"qrattend/internal/domain"
)

// Record is one attendee row of the attendance sheet.
type Record struct {
	RegistrationID string
	Name           string
	Phone          string
	Attendance     string // "" = not marked yet
	TimeStamp      string // HH:MM:SS, set together with Attendance
}

func (r Record) IsPresent() bool {
	return r.Attendance != domain.StatusUnset
}

// Confirmation is the line printed on the console and appended to the backup log.
func (r Record) Confirmation() string {
	return fmt.Sprintf("Attendance for %s\t%s marked at %s!", r.Name, r.Phone, r.TimeStamp)
}

// Summary counts attendees of a table.
type Summary struct {
	Total   int `json:"total"`
	Present int `json:"present"`
	Absent  int `json:"absent"`
}
