package output

// BackupLog appends one line per successful mark.
type BackupLog interface {
	Append(line string) error
}
