package domain

// Attendance cell values.
const (
	StatusUnset   = ""
	StatusPresent = "P"
)

// Column headers the sheet must carry.
const (
	ColumnRegistrationID = "Registration ID"
	ColumnName           = "Name"
	ColumnPhone          = "Phone"
	ColumnAttendance     = "Attendance"
	ColumnTimeStamp      = "Time Stamp"
)

// TimeStampLayout formats the Time Stamp column (hour:minute:second).
const TimeStampLayout = "15:04:05"
