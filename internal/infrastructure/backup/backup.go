package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"qrattend/internal/ports/output"
)

var _ output.BackupLog = (*File)(nil)

// File is an append-only text log. The file is opened and closed on every
// write so that a crash never loses more than the line being written.
type File struct {
	path string
	mu   sync.Mutex
}

func NewFile(path string) *File {
	return &File{path: path}
}

// Append writes line followed by a newline, creating the file if needed.
func (f *File) Append(line string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create backup directory: %w", err)
		}
	}
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open backup file: %w", err)
	}
	if _, err := fmt.Fprintln(file, line); err != nil {
		file.Close()
		return fmt.Errorf("write backup line: %w", err)
	}
	return file.Close()
}
